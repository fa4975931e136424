// Package config provides configuration loading and validation for the ladder jobs.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default values. Every one of them can be overridden by a config file, a LADDERS_*
// environment variable or a command-line flag.
const (
	DefaultBaseURL        = "https://earthshakira.github.io/a2oj-clientside/server/"
	DefaultIndexPage      = "Ladders.html"
	DefaultDataDir        = "data/ladders"
	DefaultProblemsetURL  = "https://codeforces.com/api/problemset.problems"
	DefaultUserStatusURL  = "https://codeforces.com/api/user.status"
	DefaultRequestDelay   = 500 * time.Millisecond
	DefaultRequestTimeout = 30 * time.Second
	DefaultUserAgent      = "Mozilla/5.0 (compatible; LadderScraper/1.0)"
	DefaultSchedule       = "0 6 * * 1"
	DefaultLogLevel       = "info"
)

// EnvPrefix is the prefix of environment variable overrides (LADDERS_DATA_DIR, ...).
const EnvPrefix = "LADDERS"

// Config holds the settings shared by every command.
type Config struct {
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	IndexPage      string        `mapstructure:"index_page" validate:"required"`
	DataDir        string        `mapstructure:"data_dir" validate:"required"`
	ProblemsetURL  string        `mapstructure:"problemset_url" validate:"required,url"`
	UserStatusURL  string        `mapstructure:"user_status_url" validate:"required,url"`
	RequestDelay   time.Duration `mapstructure:"request_delay" validate:"gte=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	UserAgent      string        `mapstructure:"user_agent"`
	UseBrowser     bool          `mapstructure:"use_browser"`
	FailFast       bool          `mapstructure:"fail_fast"`
	Schedule       string        `mapstructure:"schedule" validate:"required"`
	LogLevel       string        `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		IndexPage:      DefaultIndexPage,
		DataDir:        DefaultDataDir,
		ProblemsetURL:  DefaultProblemsetURL,
		UserStatusURL:  DefaultUserStatusURL,
		RequestDelay:   DefaultRequestDelay,
		RequestTimeout: DefaultRequestTimeout,
		UserAgent:      DefaultUserAgent,
		Schedule:       DefaultSchedule,
		LogLevel:       DefaultLogLevel,
	}
}

// ValidationError reports configuration values that failed validation.
type ValidationError struct {
	Fields []string
	Cause  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config error: invalid %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Load resolves the configuration from defaults, an optional config file, the
// environment and any flags in flags whose name matches a key (dashes for underscores).
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !isKnownKey(key) {
				return
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Warnings returns settings that are valid but loosen the defaults in a way the
// operator should see, such as pacing page requests faster than DefaultRequestDelay.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.RequestDelay < DefaultRequestDelay {
		warnings = append(warnings, fmt.Sprintf(
			"request_delay %s is below the default %s between page requests", c.RequestDelay, DefaultRequestDelay))
	}
	return warnings
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []string{"(root)"}, Cause: err}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &ValidationError{Fields: fields, Cause: err}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("index_page", d.IndexPage)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("problemset_url", d.ProblemsetURL)
	v.SetDefault("user_status_url", d.UserStatusURL)
	v.SetDefault("request_delay", d.RequestDelay)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("use_browser", d.UseBrowser)
	v.SetDefault("fail_fast", d.FailFast)
	v.SetDefault("schedule", d.Schedule)
	v.SetDefault("log_level", d.LogLevel)
}

func isKnownKey(key string) bool {
	switch key {
	case "base_url", "index_page", "data_dir", "problemset_url", "user_status_url",
		"request_delay", "request_timeout", "user_agent", "use_browser", "fail_fast",
		"schedule", "log_level":
		return true
	}
	return false
}
