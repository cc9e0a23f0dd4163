package report

import (
	"context"
	"fmt"
	"io"
	"sort"
)

// TextFormatter renders reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		fmt.Fprintf(w, "%s (%s): %s [%s]\n", report.App, report.Environment, report.Status, report.StatusLine)
		return nil
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "=== Fend Sentry Health Report: %s (%s) ===\n\n", report.App, report.Environment)
	fmt.Fprintf(w, "Status:     %s\n", report.Status)
	fmt.Fprintf(w, "Summary:    %s\n", report.StatusLine)
	fmt.Fprintf(w, "Error rate: %s of %d entries\n\n", report.ErrorRate, report.Summary.TotalEntries)

	f.formatLevelCounts(report, w)
	f.formatErrorGroups(report, w)
	f.formatRecent(report, w)
	f.formatTrends(report, w)

	return nil
}

func (f *TextFormatter) formatLevelCounts(report *Report, w io.Writer) {
	counts := report.Summary.LevelCounts
	if len(counts) == 0 {
		return
	}

	levels := make([]string, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	fmt.Fprintln(w, "Entries by level:")
	for _, level := range levels {
		fmt.Fprintf(w, "  %-8s %d\n", level, counts[level])
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatErrorGroups(report *Report, w io.Writer) {
	groups := report.Summary.ErrorGroups
	if len(groups) == 0 {
		return
	}

	fmt.Fprintf(w, "Error groups (%d):\n", len(groups))
	for _, g := range groups {
		fmt.Fprintf(w, "  [%s] x%d", g.Signature, g.Count)
		if !g.FirstSeen.IsZero() {
			fmt.Fprintf(w, " (%s - %s)",
				g.FirstSeen.Format("15:04:05"), g.LastSeen.Format("15:04:05"))
		}
		fmt.Fprintln(w)

		if g.Example != nil {
			fmt.Fprintf(w, "      %s: %s\n", g.Example.Source, truncate(g.Example.Message, 120))
			if f.opts.Verbose {
				for _, line := range g.Example.StackLines {
					fmt.Fprintf(w, "      | %s\n", line)
				}
			}
		}
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatRecent(report *Report, w io.Writer) {
	if len(report.Summary.RecentErrors) > 0 {
		fmt.Fprintf(w, "Recent errors (last hour, newest last):\n")
		for _, entry := range report.Summary.RecentErrors {
			fmt.Fprintf(w, "  %s %s: %s\n",
				entry.Timestamp.Format("15:04:05"), entry.Source, truncate(entry.Message, 100))
		}
		fmt.Fprintln(w)
	}

	if f.opts.Verbose && len(report.Summary.RecentWarnings) > 0 {
		fmt.Fprintf(w, "Recent warnings (last hour, newest last):\n")
		for _, entry := range report.Summary.RecentWarnings {
			fmt.Fprintf(w, "  %s %s: %s\n",
				entry.Timestamp.Format("15:04:05"), entry.Source, truncate(entry.Message, 100))
		}
		fmt.Fprintln(w)
	}
}

func (f *TextFormatter) formatTrends(report *Report, w io.Writer) {
	trends := report.Trends
	if trends == nil {
		return
	}

	fmt.Fprintf(w, "Trend: %d errors, %d warnings in window\n",
		trends.TotalErrors, trends.TotalWarnings)

	if len(trends.HourlyErrors) == 0 && len(trends.HourlyWarnings) == 0 {
		return
	}

	hours := make(map[string]bool)
	for h := range trends.HourlyErrors {
		hours[h] = true
	}
	for h := range trends.HourlyWarnings {
		hours[h] = true
	}
	keys := make([]string, 0, len(hours))
	for h := range hours {
		keys = append(keys, h)
	}
	sort.Strings(keys)

	for _, h := range keys {
		fmt.Fprintf(w, "  %s  errors=%-4d warnings=%d\n",
			h, trends.HourlyErrors[h], trends.HourlyWarnings[h])
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
