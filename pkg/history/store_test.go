package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fendlabs/fend-sentry/pkg/parser"
	"github.com/fendlabs/fend-sentry/pkg/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func reportFromLines(t *testing.T, app string, lines []string) *report.Report {
	t.Helper()
	summary := parser.New().Parse(lines)
	trends, err := summary.ErrorTrends(24)
	if err != nil {
		t.Fatal(err)
	}
	return report.New(app, "test", summary, trends)
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rep := reportFromLines(t, "shop", []string{
		"[2024-06-30 16:20:01] ERROR django.request: ConnectionError: upstream down",
		"[2024-06-30 16:21:01] INFO django.request: GET /health/ 200",
	})

	run, err := store.RecordCheck(ctx, rep)
	if err != nil {
		t.Fatalf("RecordCheck() error = %v", err)
	}

	if run.ID == "" {
		t.Error("expected run ID to be set")
	}
	if run.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", run.ErrorCount)
	}
	if run.TopSignature == "" {
		t.Error("expected top signature for report with error groups")
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Recent() returned %d runs, want 1", len(runs))
	}

	got := runs[0]
	if got.ID != run.ID {
		t.Errorf("ID = %s, want %s", got.ID, run.ID)
	}
	if got.App != "shop" {
		t.Errorf("App = %s, want shop", got.App)
	}
	if got.Status != string(rep.Status) {
		t.Errorf("Status = %s, want %s", got.Status, rep.Status)
	}
	if got.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, want 2", got.TotalEntries)
	}
	if got.TopSignature != run.TopSignature {
		t.Errorf("TopSignature = %s, want %s", got.TopSignature, run.TopSignature)
	}
}

func TestStore_RecentNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rep := reportFromLines(t, "shop", []string{
			"[2024-06-30 16:20:01] INFO django.request: GET /health/ 200",
		})
		if _, err := store.RecordCheck(ctx, rep); err != nil {
			t.Fatalf("RecordCheck() error = %v", err)
		}
	}

	runs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Recent() returned %d runs, want 2", len(runs))
	}

	for i := 1; i < len(runs); i++ {
		if runs[i].CheckedAt.After(runs[i-1].CheckedAt) {
			t.Errorf("runs out of order: %v before %v", runs[i-1].CheckedAt, runs[i].CheckedAt)
		}
	}
}

func TestStore_RecentEmpty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Recent() returned %d runs, want 0", len(runs))
	}
}

func TestStore_NoErrorGroups(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rep := reportFromLines(t, "shop", []string{
		"[2024-06-30 16:20:01] INFO django.request: GET /health/ 200",
	})

	run, err := store.RecordCheck(ctx, rep)
	if err != nil {
		t.Fatalf("RecordCheck() error = %v", err)
	}
	if run.TopSignature != "" {
		t.Errorf("TopSignature = %q, want empty", run.TopSignature)
	}

	runs, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if runs[0].TopSignature != "" {
		t.Errorf("stored TopSignature = %q, want empty", runs[0].TopSignature)
	}
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if _, err := store.Recent(context.Background(), 1); err != nil {
		t.Errorf("Recent() on fresh store error = %v", err)
	}
}
