// Package observability provides the human-readable output of the ladder commands:
// progress lines, summary boxes and tables.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jonathan/ladder-scraper/internal/analytics"
	"github.com/jonathan/ladder-scraper/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxNameLength is where ladder names are cut in status lines
	maxNameLength = 40
	// maxTagsLength is where the tag column is cut in problem tables
	maxTagsLength = 40
)

// Stat is one labelled value of a summary box.
type Stat struct {
	Label string
	Value any
}

// Printer writes progress and summaries for a person watching the run.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Banner prints a title between two rules.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Banner(title string) {
	rule := strings.Repeat("=", boxWidth)
	fmt.Fprintf(p.out, "%s\n%s\n%s\n", rule, title, rule)
}

// Step announces step n of total.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Step(n, total int, msg string) {
	fmt.Fprintf(p.out, "\n[%d/%d] %s\n", n, total, msg)
}

// Infof prints an indented progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.out, "  "+format+"\n", args...)
}

// LadderScraped reports one scraped ladder.
func (p *Printer) LadderScraped(id, problems int, name string) {
	p.Infof("✓ Ladder %2d: %3d problems (%s)", id, problems, truncate(name, maxNameLength))
}

// LadderFailed reports a ladder page that could not be scraped.
func (p *Printer) LadderFailed(id int, err error) {
	p.Infof("✗ Ladder %2d: %v", id, err)
}

// LadderEnriched reports the enrichment of one ladder. The marker is ✓ when every
// problem was matched and ⚠ otherwise.
func (p *Printer) LadderEnriched(id, enriched, total, missing int, name string) {
	marker := "✓"
	if missing > 0 {
		marker = "⚠"
	}
	p.Infof("%s Ladder %2d: %3d/%3d enriched (%s)", marker, id, enriched, total, truncate(name, maxNameLength))
}

// PrintSummary prints stats in a box.
func (p *Printer) PrintSummary(title string, stats []Stat) {
	var sb strings.Builder
	for _, s := range stats {
		sb.WriteString(fmt.Sprintf("%s: %v\n", s.Label, s.Value))
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFailures prints one line per failure in a box. Nothing is printed when there
// are none.
func (p *Printer) PrintFailures(title string, failures []error) {
	if len(failures) == 0 {
		return
	}
	lines := make([]string, 0, len(failures))
	for _, err := range failures {
		lines = append(lines, "⚠ "+err.Error())
	}
	p.printBox(title, strings.Join(lines, "\n"))
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintIndex prints one table per category.
func (p *Printer) PrintIndex(idx *types.LadderIndex) {
	for _, t := range types.LadderTypes() {
		entries := idx.Category(t)
		tw := p.newTable(strings.ToUpper(string(t)) + " LADDERS")
		tw.AppendHeader(table.Row{"#", "ID", "Name", "Problems"})
		for _, e := range entries {
			tw.AppendRow(table.Row{analytics.FormatLadderNumber(e.ID, t, idx), e.ID, e.Name, e.ProblemCount})
		}
		tw.AppendFooter(table.Row{"", "", "Total", len(entries)})
		tw.Render()
	}
}

// PrintLadder prints the problems of l followed by its tag, rating and analytics
// summary. number is the display number of the ladder.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintLadder(l *types.Ladder, number string) {
	level := analytics.LevelByNumber(l.DifficultyLevel)
	tw := p.newTable(fmt.Sprintf("LADDER %s: %s (%s)", number, l.Name, level.Name))
	tw.AppendHeader(table.Row{"#", "Problem", "ID", "Difficulty", "Rating", "Tags"})
	for _, pr := range l.Problems {
		tw.AppendRow(table.Row{
			pr.Position,
			pr.Name,
			pr.Key(),
			optionalInt(pr.Difficulty),
			optionalInt(pr.Rating),
			truncate(strings.Join(pr.Tags, ", "), maxTagsLength),
		})
	}
	tw.Render()

	if l.Description != "" {
		fmt.Fprintf(p.out, "%s\n", l.Description)
	}

	ratings := analytics.Ratings(l.Problems)
	stats := []Stat{
		{Label: "Problems", Value: l.ProblemCount},
		{Label: "Rating range", Value: fmt.Sprintf("%d - %d", ratings.Min, ratings.Max)},
	}
	for _, r := range analytics.AnalyticsRanges(l.Problems) {
		stats = append(stats, Stat{Label: r.Label, Value: r.Count})
	}
	if tags := analytics.AllTags(l.Problems); len(tags) > 0 {
		stats = append(stats, Stat{Label: "Tags", Value: strings.Join(tags, ", ")})
	}
	p.PrintSummary("LADDER ANALYTICS", stats)
}

// PrintProgress prints a user's progress, one ladder per row.
func (p *Printer) PrintProgress(handle string, rows []analytics.LadderProgress) {
	tw := p.newTable("PROGRESS FOR " + handle)
	tw.AppendHeader(table.Row{"ID", "Ladder", "Solved", "Attempted", "Total", "%"})

	var solved, total int
	for _, r := range rows {
		tw.AppendRow(table.Row{r.ID, r.Name, r.Solved, r.Attempted, r.Total, r.Percent()})
		solved += r.Solved
		total += r.Total
	}
	overall := analytics.LadderProgress{Solved: solved, Total: total}
	tw.AppendFooter(table.Row{"", "Total", solved, "", total, overall.Percent()})
	tw.Render()
}

func (p *Printer) newTable(title string) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(p.out)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(title)
	return tw
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
