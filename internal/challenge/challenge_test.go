package challenge

import (
	"path/filepath"
	"testing"
	"time"
)

var noon = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, now time.Time) *Engine {
	t.Helper()
	e := New(filepath.Join(t.TempDir(), "daily_challenge.json"))
	e.now = func() time.Time { return now }
	e.ensureToday()
	return e
}

// forceType pins today's challenge to a known catalog entry so goal
// mechanics can be tested independently of the daily draw.
func forceType(e *Engine, id string) {
	ct := typeByID(id)
	e.state.TodayChallenge.Type = ct.ID
	e.state.TodayChallenge.Info = challengeInfo{
		GoalType:  ct.GoalType,
		Goals:     ct.Goals,
		TimeLimit: ct.TimeLimit,
	}
	e.state.Progress = Progress{}
	e.state.CompletedToday = false
	e.state.RewardTier = ""
}

func TestSelectionIsDeterministicPerDate(t *testing.T) {
	a := newTestEngine(t, noon)
	b := newTestEngine(t, noon)
	if a.Today().ID != b.Today().ID {
		t.Fatalf("same date selected different challenges: %q vs %q", a.Today().ID, b.Today().ID)
	}
}

func TestDateRolloverResetsState(t *testing.T) {
	e := newTestEngine(t, noon)
	forceType(e, "combo")
	e.Start()
	e.UpdateProgress(10, 2, 1, 8, 0)
	if e.state.Progress.Chars != 10 {
		t.Fatalf("expected accumulated chars")
	}

	e.now = func() time.Time { return noon.AddDate(0, 0, 1) }
	e.ensureToday()
	if e.state.Progress.Started || e.state.Progress.Chars != 0 {
		t.Fatalf("expected progress reset on new date")
	}
	if e.CompletedToday() {
		t.Fatalf("expected completion flag reset on new date")
	}
}

func TestComboGoldCompletesEarly(t *testing.T) {
	e := newTestEngine(t, noon)
	forceType(e, "combo")
	e.Start()

	e.now = func() time.Time { return noon.Add(20 * time.Second) }
	if reward := e.UpdateProgress(0, 0, 0, 29, 0); reward != nil {
		t.Fatalf("combo 29 must not complete, got %+v", reward)
	}
	reward := e.UpdateProgress(0, 0, 0, 30, 0)
	if reward == nil {
		t.Fatalf("combo 30 within the limit should complete with gold")
	}
	if reward.Tier != "gold" || reward.Exp != 100 || reward.ScoreMultiplier != 1.5 {
		t.Fatalf("unexpected gold reward: %+v", reward)
	}
	if !e.CompletedToday() || e.RewardTier() != "gold" {
		t.Fatalf("expected terminal gold state")
	}
	if r := e.UpdateProgress(0, 0, 0, 40, 0); r != nil {
		t.Fatalf("updates after completion must be no-ops")
	}
}

func TestSentenceGoalNeedsZeroErrors(t *testing.T) {
	e := newTestEngine(t, noon)
	forceType(e, "accuracy")
	e.Start()
	e.now = func() time.Time { return noon.Add(30 * time.Second) }
	if reward := e.UpdateProgress(0, 0, 5, 0, 1); reward != nil {
		t.Fatalf("errorful sentences must not complete the accuracy challenge")
	}
	if e.CompletedToday() {
		t.Fatalf("challenge must stay open while within the limit")
	}
}

func TestTimeoutAwardsHighestQualifyingTier(t *testing.T) {
	e := newTestEngine(t, noon)
	forceType(e, "speed")
	e.Start()
	e.UpdateProgress(90, 0, 0, 0, 0)

	e.now = func() time.Time { return noon.Add(31 * time.Second) }
	reward := e.UpdateProgress(0, 0, 0, 0, 0)
	if reward == nil || reward.Tier != "silver" {
		t.Fatalf("90 chars after timeout should earn silver, got %+v", reward)
	}
}

func TestTimeoutBelowBronzeCompletesWithoutReward(t *testing.T) {
	e := newTestEngine(t, noon)
	forceType(e, "speed")
	e.Start()
	e.UpdateProgress(10, 0, 0, 0, 0)

	e.now = func() time.Time { return noon.Add(31 * time.Second) }
	if reward := e.UpdateProgress(0, 0, 0, 0, 0); reward != nil {
		t.Fatalf("10 chars must not earn a reward, got %+v", reward)
	}
	if !e.CompletedToday() {
		t.Fatalf("expired challenge must be terminal for the day")
	}
	if e.RewardTier() != "" {
		t.Fatalf("expected no tier, got %q", e.RewardTier())
	}
}

func TestUpdateBeforeStartIsNoop(t *testing.T) {
	e := newTestEngine(t, noon)
	forceType(e, "speed")
	if reward := e.UpdateProgress(200, 0, 0, 0, 0); reward != nil {
		t.Fatalf("progress before Start must be ignored")
	}
	if e.state.Progress.Chars != 0 {
		t.Fatalf("expected no accumulation before Start")
	}
}

func TestStartIsIdempotent(t *testing.T) {
	e := newTestEngine(t, noon)
	forceType(e, "speed")
	e.Start()
	first := e.state.Progress.StartTime

	e.now = func() time.Time { return noon.Add(10 * time.Second) }
	e.Start()
	if e.state.Progress.StartTime != first {
		t.Fatalf("second Start must not move the start timestamp")
	}
}

func TestProgressDisplay(t *testing.T) {
	e := newTestEngine(t, noon)
	forceType(e, "speed")
	e.Start()
	e.now = func() time.Time { return noon.Add(10 * time.Second) }
	e.UpdateProgress(60, 0, 0, 0, 0)

	d := e.ProgressDisplay()
	if d.Current != 60 {
		t.Fatalf("expected current 60, got %d", d.Current)
	}
	if d.ProgressPct != 50 {
		t.Fatalf("expected 50%% toward gold, got %v", d.ProgressPct)
	}
	if d.TimeRemaining != 20 {
		t.Fatalf("expected 20s remaining, got %v", d.TimeRemaining)
	}
}
