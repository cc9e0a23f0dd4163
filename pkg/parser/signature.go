package parser

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

var exceptionPattern = regexp.MustCompile(`(\w+Error|\w*Exception):`)

const (
	frameMarker  = `File "/`
	vendorMarker = `/site-packages/`
)

// Signature returns a short stable hash identifying a class of equivalent
// failures. Severity, source and the exception type token dominate; the first
// application stack frame is consulted only when no exception token exists,
// so a recurrence logged without its traceback still lands in the same group
// as its traceback-bearing sibling. Only meaningful for error-level entries.
func (e *LogEntry) Signature() string {
	parts := []string{e.Severity, e.Source}

	if tok := e.exceptionToken(); tok != "" {
		parts = append(parts, tok)
	} else if frame := e.firstAppFrame(); frame != "" {
		parts = append(parts, frame)
	}

	h := fnv.New32a()
	h.Write([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%08x", h.Sum32())
}

// exceptionToken finds the first ...Error or ...Exception token, looking at
// the message first and then the stack lines.
func (e *LogEntry) exceptionToken() string {
	if m := exceptionPattern.FindStringSubmatch(e.Message); m != nil {
		return m[1]
	}
	for _, line := range e.StackLines {
		if m := exceptionPattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

// firstAppFrame returns the first stack line that looks like a frame and is
// not inside a vendored dependency tree. The vendor check is a substring
// heuristic; relocated project layouts can misclassify frames.
func (e *LogEntry) firstAppFrame() string {
	for _, line := range e.StackLines {
		if strings.Contains(line, vendorMarker) {
			continue
		}
		if strings.Contains(line, frameMarker) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
