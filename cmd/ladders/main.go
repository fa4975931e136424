// Package main provides the ladders command: scraping A2OJ ladders and enriching them
// with Codeforces problem data.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/ladder-scraper/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "ladders",
	Short:        "A2OJ ladder scraper and Codeforces enricher",
	Long:         "Scrapes the A2OJ problem ladders into JSON files and enriches them with Codeforces ratings and tags.",
	SilenceUsage: true,
}

var cfgFile string

func init() {
	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (YAML or JSON)")
	flags.String("data-dir", defaults.DataDir, "Directory holding index.json and ladder-*.json")
	flags.String("base-url", defaults.BaseURL, "Base URL of the ladder pages")
	flags.String("problemset-url", defaults.ProblemsetURL, "Codeforces problemset endpoint")
	flags.String("user-status-url", defaults.UserStatusURL, "Codeforces user.status endpoint")
	flags.Duration("request-delay", defaults.RequestDelay, "Minimum delay between page requests")
	flags.Duration("request-timeout", defaults.RequestTimeout, "Timeout of a single request")
	flags.Bool("use-browser", defaults.UseBrowser, "Render ladder pages with headless Chrome")
	flags.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
