package leaderboard

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "leaderboard.json"))
}

func TestAddScoreRanks(t *testing.T) {
	b := newTestBoard(t)
	b.AddScore("alice", 500, 95, 120, 10, 1)
	ranks := b.AddScore("bob", 800, 98, 140, 15, 2)
	if ranks.Daily != 1 || ranks.Weekly != 1 || ranks.AllTime != 1 {
		t.Fatalf("expected bob ranked first everywhere, got %+v", ranks)
	}
	top := b.Top("all_time", 10)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Name != "bob" || top[1].Name != "alice" {
		t.Fatalf("unexpected order: %q, %q", top[0].Name, top[1].Name)
	}
}

func TestTopUnknownCategory(t *testing.T) {
	b := newTestBoard(t)
	b.AddScore("alice", 100, 90, 80, 5, 1)
	if got := b.Top("monthly", 10); len(got) != 0 {
		t.Fatalf("expected empty view for unknown category, got %d entries", len(got))
	}
}

func TestTruncationToTop100(t *testing.T) {
	b := newTestBoard(t)
	for i := 0; i < 105; i++ {
		b.AddScore(fmt.Sprintf("p%d", i), i*10, 90, 80, 5, 1)
	}
	top := b.Top("all_time", maxEntries+10)
	if len(top) != maxEntries {
		t.Fatalf("expected %d entries after truncation, got %d", maxEntries, len(top))
	}
	if top[0].Score != 1040 {
		t.Fatalf("expected best score first, got %d", top[0].Score)
	}
	ranks := b.AddScore("loser", 0, 50, 10, 0, 1)
	if ranks.AllTime != 0 {
		t.Fatalf("expected truncated entry to be unranked, got %d", ranks.AllTime)
	}
}

func TestRetentionWindows(t *testing.T) {
	b := newTestBoard(t)
	day := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return day }
	b.AddScore("old", 900, 95, 100, 10, 1)

	// Three days later the entry leaves the daily view but stays weekly.
	b.now = func() time.Time { return day.AddDate(0, 0, 3) }
	b.AddScore("mid", 100, 90, 80, 5, 1)
	if _, ok := b.PlayerBest("old", "daily"); ok {
		t.Fatalf("old entry must leave the daily view")
	}
	if _, ok := b.PlayerBest("old", "weekly"); !ok {
		t.Fatalf("old entry must remain in the weekly view")
	}

	// Ten days later it leaves the weekly view but stays all-time.
	b.now = func() time.Time { return day.AddDate(0, 0, 10) }
	b.AddScore("new", 50, 85, 70, 3, 1)
	if _, ok := b.PlayerBest("old", "weekly"); ok {
		t.Fatalf("old entry must leave the weekly view")
	}
	if _, ok := b.PlayerBest("old", "all_time"); !ok {
		t.Fatalf("old entry must remain in the all-time view")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.json")
	b := New(path)
	b.AddScore("alice", 300, 92, 90, 8, 1)

	reloaded := New(path)
	best, ok := reloaded.PlayerBest("alice", "all_time")
	if !ok {
		t.Fatalf("expected alice to survive reload")
	}
	if best.Score != 300 {
		t.Fatalf("expected score 300, got %d", best.Score)
	}
}
