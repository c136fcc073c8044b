package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kweston/typequest/internal/game"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return s
}

func sampleRun(ended time.Time, score int) game.Run {
	return game.Run{
		StartedAt:    ended.Add(-time.Minute),
		EndedAt:      ended,
		LessonIndex:  0,
		LessonTitle:  "Excuse me!",
		Score:        score,
		Accuracy:     96,
		Speed:        72,
		MaxCombo:     14,
		Errors:       2,
		CorrectChars: 48,
		TotalChars:   50,
	}
}

func TestInsertAndList(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, err := s.InsertRun(ctx, sampleRun(base.Add(time.Duration(i)*time.Hour), 100*(i+1))); err != nil {
			t.Fatalf("failed to insert run: %v", err)
		}
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].Score != 300 || runs[2].Score != 100 {
		t.Fatalf("unexpected order: %d, %d", runs[0].Score, runs[2].Score)
	}
	got := runs[0]
	if got.LessonTitle != "Excuse me!" || got.Accuracy != 96 || got.MaxCombo != 14 {
		t.Fatalf("unexpected run fields: %+v", got)
	}
	if !got.EndedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("unexpected ended_at: %v", got.EndedAt)
	}
}

func TestListLimit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if _, err := s.InsertRun(ctx, sampleRun(base.Add(time.Duration(i)*time.Minute), i)); err != nil {
			t.Fatalf("failed to insert run: %v", err)
		}
	}
	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
}

func TestRecordSatisfiesRecorder(t *testing.T) {
	s := openStore(t)
	var rec game.Recorder = s
	if err := rec.Record(sampleRun(time.Now(), 42)); err != nil {
		t.Fatalf("failed to record run: %v", err)
	}
	runs, err := s.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 42 {
		t.Fatalf("expected the recorded run, got %+v", runs)
	}
}

func TestListEmpty(t *testing.T) {
	s := openStore(t)
	runs, err := s.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}
