package parser

import (
	"fmt"
	"sort"
	"time"
)

// Summary is the aggregate result of one parse pass. ErrorGroups is sorted
// by count descending with encounter order preserved on ties; RecentErrors
// and RecentWarnings hold at most the ten most recent last-hour entries each,
// in input order. Both orderings are stable contracts for consumers.
type Summary struct {
	TotalEntries   int            `json:"total_entries"`
	LevelCounts    map[string]int `json:"level_counts"`
	ErrorGroups    []*ErrorGroup  `json:"error_groups"`
	RecentErrors   []*LogEntry    `json:"recent_errors"`
	RecentWarnings []*LogEntry    `json:"recent_warnings"`
	Entries        []*LogEntry    `json:"entries"`
	ParsedAt       time.Time      `json:"parsed_at"`
}

const recentLimit = 10

func summarize(entries []*LogEntry) *Summary {
	now := time.Now()
	oneHourAgo := now.Add(-time.Hour)

	s := &Summary{
		TotalEntries: len(entries),
		LevelCounts:  make(map[string]int),
		Entries:      entries,
		ParsedAt:     now,
	}

	groups := make(map[string]*ErrorGroup)
	var order []*ErrorGroup
	var recentErrors, recentWarnings []*LogEntry

	for _, entry := range entries {
		s.LevelCounts[entry.Severity]++

		if entry.IsError() {
			sig := entry.Signature()
			g := groups[sig]
			if g == nil {
				g = &ErrorGroup{Signature: sig}
				groups[sig] = g
				order = append(order, g)
			}
			g.add(entry)
		}

		// Entries without timestamps still count above but are excluded
		// from the recency buckets.
		if !entry.Timestamp.IsZero() && entry.Timestamp.After(oneHourAgo) {
			switch {
			case entry.IsError():
				recentErrors = append(recentErrors, entry)
			case entry.IsWarning():
				recentWarnings = append(recentWarnings, entry)
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return order[i].Count > order[j].Count })
	s.ErrorGroups = order
	s.RecentErrors = lastN(recentErrors, recentLimit)
	s.RecentWarnings = lastN(recentWarnings, recentLimit)

	return s
}

// lastN keeps the order-preserving tail of entries.
func lastN(entries []*LogEntry, n int) []*LogEntry {
	if len(entries) > n {
		return entries[len(entries)-n:]
	}
	return entries
}

// TrendReport buckets error and warning counts by hour within a window.
// Keys use the "2006-01-02 15:00" form.
type TrendReport struct {
	HourlyErrors   map[string]int `json:"hourly_errors"`
	HourlyWarnings map[string]int `json:"hourly_warnings"`
	TotalErrors    int            `json:"total_errors_period"`
	TotalWarnings  int            `json:"total_warnings_period"`
}

const hourBucketLayout = "2006-01-02 15:00"

// ErrorTrends buckets error and warning counts by hour over the trailing
// window. Entries without timestamps or older than the cutoff are skipped.
// It may be called repeatedly with different windows against the same
// summary.
func (s *Summary) ErrorTrends(hours int) (*TrendReport, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("trend window must be positive, got %d hours", hours)
	}

	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
	r := &TrendReport{
		HourlyErrors:   make(map[string]int),
		HourlyWarnings: make(map[string]int),
	}

	for _, entry := range s.Entries {
		if entry.Timestamp.IsZero() || entry.Timestamp.Before(cutoff) {
			continue
		}
		key := entry.Timestamp.Format(hourBucketLayout)
		switch {
		case entry.IsError():
			r.HourlyErrors[key]++
			r.TotalErrors++
		case entry.IsWarning():
			r.HourlyWarnings[key]++
			r.TotalWarnings++
		}
	}

	return r, nil
}
