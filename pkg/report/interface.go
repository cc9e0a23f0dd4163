package report

import (
	"context"
	"io"
)

// Formatter renders a health report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose includes stack traces and per-entry details.
	Verbose bool

	// Quiet reduces output to a single status line.
	Quiet bool
}
