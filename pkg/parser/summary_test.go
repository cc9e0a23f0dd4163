package parser

import (
	"fmt"
	"testing"
	"time"
)

func TestErrorTrends(t *testing.T) {
	now := time.Now()
	lines := []string{
		entryLine(now.Add(-30*time.Minute), "ERROR", "ValueError: a"),
		entryLine(now.Add(-30*time.Minute), "ERROR", "ValueError: b"),
		entryLine(now.Add(-90*time.Minute), "WARNING", "slow query"),
		entryLine(now.Add(-30*time.Hour), "ERROR", "ValueError: stale"),
		"[garbage timestamp] ERROR app.views: ValueError: no clock",
	}

	summary := New().Parse(lines)

	trends, err := summary.ErrorTrends(24)
	if err != nil {
		t.Fatalf("ErrorTrends(24) error = %v", err)
	}

	if trends.TotalErrors != 2 {
		t.Errorf("TotalErrors = %d, want 2 (stale and clockless entries excluded)", trends.TotalErrors)
	}
	if trends.TotalWarnings != 1 {
		t.Errorf("TotalWarnings = %d, want 1", trends.TotalWarnings)
	}

	hourKey := now.Add(-30 * time.Minute).Format("2006-01-02 15:00")
	if trends.HourlyErrors[hourKey] != 2 {
		t.Errorf("HourlyErrors[%s] = %d, want 2", hourKey, trends.HourlyErrors[hourKey])
	}

	// Narrowing the window drops the 90 minute old warning.
	trends, err = summary.ErrorTrends(1)
	if err != nil {
		t.Fatalf("ErrorTrends(1) error = %v", err)
	}
	if trends.TotalWarnings != 0 {
		t.Errorf("TotalWarnings = %d, want 0 within 1h window", trends.TotalWarnings)
	}
	if trends.TotalErrors != 2 {
		t.Errorf("TotalErrors = %d, want 2 within 1h window", trends.TotalErrors)
	}
}

func TestErrorTrends_InvalidWindow(t *testing.T) {
	summary := New().Parse(nil)

	for _, hours := range []int{0, -1, -24} {
		if _, err := summary.ErrorTrends(hours); err == nil {
			t.Errorf("ErrorTrends(%d) = nil error, want rejection", hours)
		}
	}
}

func TestErrorTrends_RepeatedQueries(t *testing.T) {
	now := time.Now()
	lines := []string{
		entryLine(now.Add(-10*time.Minute), "ERROR", "ValueError: a"),
	}
	summary := New().Parse(lines)

	a, err := summary.ErrorTrends(24)
	if err != nil {
		t.Fatal(err)
	}
	b, err := summary.ErrorTrends(24)
	if err != nil {
		t.Fatal(err)
	}
	if a.TotalErrors != b.TotalErrors {
		t.Errorf("repeated trend queries disagree: %d vs %d", a.TotalErrors, b.TotalErrors)
	}
}

func TestSummarize_EmptyInput(t *testing.T) {
	summary := New().Parse(nil)

	if summary.TotalEntries != 0 {
		t.Errorf("TotalEntries = %d, want 0", summary.TotalEntries)
	}
	if len(summary.ErrorGroups) != 0 {
		t.Errorf("ErrorGroups = %d, want 0", len(summary.ErrorGroups))
	}
	if summary.ParsedAt.IsZero() {
		t.Error("ParsedAt not set")
	}
}

func TestLastN(t *testing.T) {
	entries := make([]*LogEntry, 5)
	for i := range entries {
		entries[i] = &LogEntry{LineNumber: i + 1}
	}

	tail := lastN(entries, 3)
	if len(tail) != 3 {
		t.Fatalf("len = %d, want 3", len(tail))
	}
	if tail[0].LineNumber != 3 || tail[2].LineNumber != 5 {
		t.Errorf("tail = [%d..%d], want [3..5]", tail[0].LineNumber, tail[2].LineNumber)
	}

	short := lastN(entries[:2], 3)
	if len(short) != 2 {
		t.Errorf("len = %d, want 2 for short input", len(short))
	}
}

func entryLine(ts time.Time, level, message string) string {
	return fmt.Sprintf("[%s] %s app.views: %s", ts.Format("2006-01-02 15:04:05"), level, message)
}
