package journal

import (
	"context"
	"testing"
	"time"

	"github.com/open-unicorn/uws-sidebar/internal/db"
	"github.com/open-unicorn/uws-sidebar/internal/patcher"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func sampleRun(started time.Time) Run {
	return Run{
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		StaticDir:  "src/main/resources/static",
		Pages: []PageRecord{
			{
				Filename:   "uws-s3.html",
				Outcome:    patcher.OutcomePatched,
				Applied:    []patcher.Edit{patcher.EditCSS, patcher.EditBody},
				HashBefore: "aaa",
				HashAfter:  "bbb",
			},
			{
				Filename:       "uws-dns.html",
				Outcome:        patcher.OutcomePatched,
				Applied:        []patcher.Edit{patcher.EditCSS},
				MissingAnchors: []patcher.Edit{patcher.EditBody},
			},
			{Filename: "uws-iam.html", Outcome: patcher.OutcomeMissing},
		},
	}
}

func TestRecordAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	id, err := store.Record(ctx, sampleRun(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated run ID")
	}

	run, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if run.StaticDir != "src/main/resources/static" {
		t.Errorf("StaticDir = %q", run.StaticDir)
	}
	if !run.StartedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("StartedAt = %v", run.StartedAt)
	}
	if len(run.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(run.Pages))
	}
	if run.Pages[0].Filename != "uws-s3.html" || run.Pages[2].Filename != "uws-iam.html" {
		t.Error("pages should keep their recorded order")
	}
	if len(run.Pages[0].Applied) != 2 || run.Pages[0].Applied[1] != patcher.EditBody {
		t.Errorf("Applied = %v", run.Pages[0].Applied)
	}
	if run.Pages[0].HashAfter != "bbb" {
		t.Errorf("HashAfter = %q, want bbb", run.Pages[0].HashAfter)
	}
	if len(run.Pages[1].MissingAnchors) != 1 || run.Pages[1].MissingAnchors[0] != patcher.EditBody {
		t.Errorf("MissingAnchors = %v", run.Pages[1].MissingAnchors)
	}
	if run.Count(patcher.OutcomePatched) != 2 || run.Count(patcher.OutcomeMissing) != 1 {
		t.Error("unexpected outcome counts")
	}
}

func TestRecent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		run := sampleRun(base.Add(time.Duration(i) * time.Hour))
		run.DryRun = i == 1
		id, err := store.Record(ctx, run)
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Error("runs should be newest first")
	}
	if !runs[1].DryRun {
		t.Error("dry run flag lost")
	}
	if len(runs[0].Pages) != 3 {
		t.Errorf("pages not loaded for recent runs: %d", len(runs[0].Pages))
	}
}

func TestPageHistory(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first := sampleRun(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	if _, err := store.Record(ctx, first); err != nil {
		t.Fatalf("Record: %v", err)
	}
	second := sampleRun(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC))
	second.Pages[0].Outcome = patcher.OutcomeSkipped
	second.Pages[0].Applied = nil
	if _, err := store.Record(ctx, second); err != nil {
		t.Fatalf("Record: %v", err)
	}

	history, err := store.PageHistory(ctx, "uws-s3.html", 0)
	if err != nil {
		t.Fatalf("PageHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d, want 2", len(history))
	}
	if history[0].Outcome != patcher.OutcomeSkipped || history[1].Outcome != patcher.OutcomePatched {
		t.Errorf("history outcomes = %q, %q", history[0].Outcome, history[1].Outcome)
	}
	if len(history[0].Applied) != 0 {
		t.Errorf("skipped record should have no applied edits, got %v", history[0].Applied)
	}
}

func TestGetUnknown(t *testing.T) {
	store := setupStore(t)
	if _, err := store.Get(context.Background(), "nope"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestRecordRejectsUnknownOutcome(t *testing.T) {
	store := setupStore(t)
	run := sampleRun(time.Now())
	run.Pages[0].Outcome = "exploded"
	if _, err := store.Record(context.Background(), run); err == nil {
		t.Fatal("expected error for unknown outcome")
	}

	runs, err := store.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 0 {
		t.Error("failed record should be rolled back")
	}
}
