package parser

import (
	"regexp"
	"strconv"
)

var (
	ipPattern           = regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`)
	quotedURLPattern    = regexp.MustCompile(`"[A-Z]+ ([^"]+) HTTP`)
	quotedStatusPattern = regexp.MustCompile(`" (\d{3}) `)
	requestLinePattern  = regexp.MustCompile(`\b(?:GET|POST|PUT|PATCH|DELETE|HEAD|OPTIONS)\s+(/[^\s"]*)\s+(\d{3})(?:\s|$)`)
	requestIDPattern    = regexp.MustCompile(`rid=([a-f0-9-]+)`)
)

// extractMetadata derives secondary fields from the message text. All fields
// are best effort; absence is not an error. Stack lines are never inspected.
func (e *LogEntry) extractMetadata() {
	e.ClientIP = ipPattern.FindString(e.Message)

	if m := quotedURLPattern.FindStringSubmatch(e.Message); m != nil {
		e.URLPath = m[1]
	}
	if m := quotedStatusPattern.FindStringSubmatch(e.Message); m != nil {
		e.StatusCode, _ = strconv.Atoi(m[1])
	}

	// Unquoted request lines ("GET /health/ 200") carry path and status too.
	if e.URLPath == "" || e.StatusCode == 0 {
		if m := requestLinePattern.FindStringSubmatch(e.Message); m != nil {
			if e.URLPath == "" {
				e.URLPath = m[1]
			}
			if e.StatusCode == 0 {
				e.StatusCode, _ = strconv.Atoi(m[2])
			}
		}
	}

	if m := requestIDPattern.FindStringSubmatch(e.Message); m != nil {
		e.RequestID = m[1]
	}
}
