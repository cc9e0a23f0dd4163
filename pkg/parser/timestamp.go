package parser

import (
	"regexp"
	"strings"
	"time"
)

// timestampLayouts is tried in order; the first layout that parses wins.
// Comma and period fractional separators are both accepted by time.Parse.
var timestampLayouts = []string{
	"2006-01-02 15:04:05,999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"02/Jan/2006 15:04:05",
	"02/Jan/2006:15:04:05 -0700",
}

// looseTimestampPattern pulls a date/time-shaped substring out of a header
// field that carries extra characters around the timestamp.
var looseTimestampPattern = regexp.MustCompile(`[0-9-]+\s+[0-9:,.]+`)

// parseTimestamp parses a free-form timestamp substring. Zoneless layouts
// are read as host-local wall times so they compare correctly against
// time.Now in the recency and trend cutoffs; a layout with an explicit
// offset keeps that offset. Returns the zero time when no layout matches;
// a missing timestamp is common, valid input rather than an error.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}

	// Retry against just the date/time-shaped portion.
	if m := looseTimestampPattern.FindString(s); m != "" {
		for _, layout := range timestampLayouts {
			if t, err := time.ParseInLocation(layout, m, time.Local); err == nil {
				return t
			}
		}
	}

	return time.Time{}
}
