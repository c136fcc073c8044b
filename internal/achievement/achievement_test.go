package achievement

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "achievements.json"))
}

func TestUnlockIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	if !e.Unlock("combo_5") {
		t.Fatalf("expected first unlock to succeed")
	}
	if e.Unlock("combo_5") {
		t.Fatalf("expected second unlock to report false")
	}
	if _, ok := e.PendingNotification(); !ok {
		t.Fatalf("expected one pending notification")
	}
	if _, ok := e.PendingNotification(); ok {
		t.Fatalf("expected exactly one notification")
	}
}

func TestUnlockUnknownID(t *testing.T) {
	e := newTestEngine(t)
	if e.Unlock("not_a_thing") {
		t.Fatalf("expected unknown id to be rejected")
	}
	if e.UnlockedCount() != 0 {
		t.Fatalf("expected no unlocks, got %d", e.UnlockedCount())
	}
}

func TestCheckComboThresholds(t *testing.T) {
	e := newTestEngine(t)
	e.CheckCombo(4)
	if e.Unlocked("combo_5") {
		t.Fatalf("combo 4 must not unlock combo_5")
	}
	e.CheckCombo(12)
	if !e.Unlocked("combo_5") || !e.Unlocked("combo_10") {
		t.Fatalf("combo 12 should unlock combo_5 and combo_10")
	}
	if e.Unlocked("combo_20") {
		t.Fatalf("combo 12 must not unlock combo_20")
	}
}

func TestCheckSpeedAndAccuracy(t *testing.T) {
	e := newTestEngine(t)
	e.CheckSpeed(59)
	if e.Unlocked("speed_demon") {
		t.Fatalf("59 cpm must not unlock speed_demon")
	}
	e.CheckSpeed(120)
	if !e.Unlocked("speed_demon") || !e.Unlocked("speed_demon_pro") {
		t.Fatalf("120 cpm should unlock both speed achievements")
	}
	e.CheckAccuracy(99)
	if e.Unlocked("perfect_sentence") {
		t.Fatalf("99%% must not unlock perfect_sentence")
	}
	e.CheckAccuracy(100)
	if !e.Unlocked("perfect_sentence") {
		t.Fatalf("100%% should unlock perfect_sentence")
	}
}

func TestCheckLevelComplete(t *testing.T) {
	e := newTestEngine(t)
	e.CheckLevelComplete(0, 3, 5)
	if !e.Unlocked("first_level") {
		t.Fatalf("first level should unlock first_level")
	}
	if e.Unlocked("no_errors") || e.Unlocked("all_levels") {
		t.Fatalf("unexpected unlocks for errorful mid-game level")
	}
	e.CheckLevelComplete(4, 0, 5)
	if !e.Unlocked("no_errors") || !e.Unlocked("all_levels") {
		t.Fatalf("flawless final level should unlock no_errors and all_levels")
	}
}

func TestCheckClock(t *testing.T) {
	e := newTestEngine(t)
	e.CheckClock(time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC))
	if !e.Unlocked("early_bird") {
		t.Fatalf("6:30 should unlock early_bird")
	}
	e.CheckClock(time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC))
	if !e.Unlocked("night_owl") {
		t.Fatalf("23:00 should unlock night_owl")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "achievements.json")
	e := New(path)
	e.Unlock("combo_5")
	e.Unlock("first_level")

	reloaded := New(path)
	if !reloaded.Unlocked("combo_5") || !reloaded.Unlocked("first_level") {
		t.Fatalf("expected unlocks to survive reload")
	}
	if _, ok := reloaded.PendingNotification(); ok {
		t.Fatalf("notification queue must not be persisted")
	}
}
