package parser

import (
	"regexp"
	"strings"
)

// headerFields is the result of matching a line against a recognizer.
type headerFields struct {
	timestamp string // raw timestamp substring, parsed by the caller
	severity  string
	source    string
	message   string
}

// recognizer matches one log line shape and extracts its header fields.
type recognizer struct {
	name    string
	pattern *regexp.Regexp
	extract func(groups []string) headerFields
}

// defaultRecognizers returns the built-in line formats. Order is a priority
// policy, not an accident: formats overlap syntactically, so the most
// structured shapes come first and generic catch-alls last.
func defaultRecognizers() []recognizer {
	return []recognizer{
		// [timestamp] LEVEL source: message
		{
			name:    "bracketed",
			pattern: regexp.MustCompile(`^\[([^\]]+)\]\s+(\w+)\s+([^:]+):\s*(.+)$`),
			extract: func(g []string) headerFields {
				return headerFields{timestamp: g[1], severity: g[2], source: g[3], message: g[4]}
			},
		},
		// timestamp - source - LEVEL - message
		{
			name:    "dashed",
			pattern: regexp.MustCompile(`^([0-9-]+\s+[0-9:,]+)\s+-\s+([^-]+)\s+-\s+(\w+)\s+-\s*(.+)$`),
			extract: func(g []string) headerFields {
				return headerFields{timestamp: g[1], severity: g[3], source: g[2], message: g[4]}
			},
		},
		// timestamp LEVEL: message
		{
			name:    "simple",
			pattern: regexp.MustCompile(`^([0-9-]+\s+[0-9:,]+)\s+(\w+):\s*(.+)$`),
			extract: func(g []string) headerFields {
				return headerFields{timestamp: g[1], severity: g[2], source: "generic", message: g[3]}
			},
		},
		// [timestamp] [LEVEL] message, as written by gunicorn/uwsgi style servers
		{
			name:    "server-bracketed",
			pattern: regexp.MustCompile(`^\[([^\]]+)\]\s+\[(\w+)\]\s*(.+)$`),
			extract: func(g []string) headerFields {
				return headerFields{timestamp: g[1], severity: g[2], source: "server", message: g[3]}
			},
		},
	}
}

// classify matches a line against the recognizers in order and returns the
// header fields from the first match. ok is false when the line does not
// begin a new entry.
func classify(recognizers []recognizer, line string) (fields headerFields, ok bool) {
	for _, r := range recognizers {
		g := r.pattern.FindStringSubmatch(line)
		if g == nil {
			continue
		}
		fields = r.extract(g)
		fields.severity = strings.ToUpper(fields.severity)
		fields.source = strings.TrimSpace(fields.source)
		return fields, true
	}
	return headerFields{}, false
}
