// Package parser converts raw application log text into structured entries,
// deduplicated error groups, and summary statistics.
package parser

import "time"

// LogEntry is a single structured log record. An entry may span multiple raw
// lines: wrapped message text is space-joined into Message, and stack trace
// fragments are collected in StackLines. Entries are immutable once the
// parser has finalized them.
type LogEntry struct {
	// Timestamp is the parsed entry time. Zero when no known format matched;
	// callers must treat a missing timestamp as ordinary input.
	Timestamp time.Time `json:"timestamp"`

	// Severity is the normalized uppercase level (ERROR, WARNING, INFO, ...).
	Severity string `json:"severity"`

	// Source is the originating logger or component name. Formats that carry
	// no source field get a synthetic placeholder.
	Source string `json:"source"`

	// Message is the primary text, possibly extended by continuation lines.
	Message string `json:"message"`

	// StackLines holds raw continuation lines classified as stack trace, in
	// input order.
	StackLines []string `json:"stack_lines,omitempty"`

	// RawLine and LineNumber record where the entry header was read.
	RawLine    string `json:"raw_line"`
	LineNumber int    `json:"line_number"`

	// Metadata extracted from Message, empty or zero when not present.
	ClientIP   string `json:"client_ip,omitempty"`
	URLPath    string `json:"url_path,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// IsError reports whether the entry is error-level.
func (e *LogEntry) IsError() bool {
	switch e.Severity {
	case "ERROR", "CRITICAL", "FATAL":
		return true
	}
	return false
}

// IsWarning reports whether the entry is warning-level.
func (e *LogEntry) IsWarning() bool {
	return e.Severity == "WARNING"
}

// ErrorGroup accumulates error entries sharing one signature. Member entries
// are referenced, not copied.
type ErrorGroup struct {
	Signature string    `json:"signature"`
	Count     int       `json:"count"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`

	// Example is the member with the most recent timestamp seen so far; on
	// equal timestamps the later arrival wins. A member without a timestamp
	// never displaces one that has one.
	Example *LogEntry `json:"example"`

	Entries []*LogEntry `json:"-"`
}

func (g *ErrorGroup) add(entry *LogEntry) {
	g.Entries = append(g.Entries, entry)
	g.Count++

	if g.FirstSeen.IsZero() || (!entry.Timestamp.IsZero() && entry.Timestamp.Before(g.FirstSeen)) {
		g.FirstSeen = entry.Timestamp
	}
	if g.LastSeen.IsZero() || (!entry.Timestamp.IsZero() && entry.Timestamp.After(g.LastSeen)) {
		g.LastSeen = entry.Timestamp
	}

	if g.Example == nil ||
		(!entry.Timestamp.IsZero() &&
			(g.Example.Timestamp.IsZero() || !entry.Timestamp.Before(g.Example.Timestamp))) {
		g.Example = entry
	}
}
