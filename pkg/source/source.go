// Package source retrieves bounded batches of raw log lines from local
// files, remote hosts over SSH, and container runtimes. Readers return the
// most recent lines oldest-first; parsing is left entirely to the caller.
package source

import "context"

// Reader retrieves the trailing lines of a log stream.
// Implementations are safe for sequential use only.
type Reader interface {
	// ReadLines returns up to limit trailing lines, oldest first.
	// A non-positive limit returns all available lines.
	ReadLines(ctx context.Context, limit int) ([]string, error)

	// Close releases any resources held by the reader.
	Close() error
}

// tail keeps the order-preserving last n lines.
func tail(lines []string, n int) []string {
	if n > 0 && len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}
