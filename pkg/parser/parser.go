package parser

import "strings"

// Parser converts a bounded batch of raw log lines into structured entries
// and aggregates. A Parser holds only its recognizer table; every Parse call
// owns its own state, so a single Parser may be reused across batches.
type Parser struct {
	recognizers []recognizer
}

// New creates a Parser with the built-in format recognizers.
func New() *Parser {
	return &Parser{recognizers: defaultRecognizers()}
}

// parseState tracks the streaming continuation state machine.
type parseState int

const (
	stateNoEntry parseState = iota
	stateOpenEntry
	stateOpenEntryInStack
)

// stackMarkers flag a continuation line as part of a stack trace: the
// traceback header, a frame marker, deep indentation, or exception
// chaining phrases.
var stackMarkers = []string{
	"Traceback (most recent call last):",
	`  File "`,
	"    ",
	"During handling of the above exception",
	"The above exception was the direct cause",
}

func isStackLine(line string) bool {
	for _, marker := range stackMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Parse runs a single pass over the lines and returns the aggregated
// summary. Malformed input never fails: unrecognized lines become message
// continuations or are dropped, and unparseable timestamps are simply
// absent. Line numbers are 1-based positions in the input batch.
func (p *Parser) Parse(lines []string) *Summary {
	var (
		entries []*LogEntry
		current *LogEntry
		state   = stateNoEntry
	)

	finalize := func() {
		if current == nil {
			return
		}
		current.extractMetadata()
		entries = append(entries, current)
		current = nil
	}

	for i, raw := range lines {
		line := strings.TrimRight(raw, " \t\r\n")

		// Blank lines never open or close an entry. In particular, a blank
		// line inside a stack trace does not terminate the trace block.
		if line == "" {
			continue
		}

		if fields, ok := classify(p.recognizers, line); ok {
			finalize()
			current = &LogEntry{
				Timestamp:  parseTimestamp(fields.timestamp),
				Severity:   fields.severity,
				Source:     fields.source,
				Message:    fields.message,
				RawLine:    line,
				LineNumber: i + 1,
			}
			state = stateOpenEntry
			continue
		}

		switch state {
		case stateNoEntry:
			// No open entry to attach the line to; drop it.
		case stateOpenEntry:
			if isStackLine(line) {
				current.StackLines = append(current.StackLines, line)
				state = stateOpenEntryInStack
			} else {
				current.Message += " " + strings.TrimSpace(line)
			}
		case stateOpenEntryInStack:
			// Once a trace has started, everything up to the next header
			// belongs to it.
			current.StackLines = append(current.StackLines, line)
		}
	}
	finalize()

	return summarize(entries)
}
