// Package challenge implements the deterministic daily challenge.
package challenge

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/kweston/typequest/internal/storage"
)

// GoalType selects which progress metric a challenge measures.
type GoalType string

// Goal types.
const (
	GoalChars     GoalType = "chars"
	GoalWords     GoalType = "words"
	GoalSentences GoalType = "sentences"
	GoalCombo     GoalType = "combo"
	GoalTime      GoalType = "time"
)

// Type describes one entry of the fixed challenge catalog.
type Type struct {
	ID          string
	Name        string
	Description string
	Icon        string
	TimeLimit   int
	GoalType    GoalType
	Goals       [3]int
}

// Types is the fixed challenge catalog; the daily draw indexes into it.
var Types = []Type{
	{
		ID:          "speed",
		Name:        "Speed Challenge",
		Description: "Type as many characters as possible in 30 seconds",
		Icon:        "⚡",
		TimeLimit:   30,
		GoalType:    GoalChars,
		Goals:       [3]int{50, 80, 120},
	},
	{
		ID:          "accuracy",
		Name:        "Accuracy Challenge",
		Description: "Complete 5 sentences with 100% accuracy",
		Icon:        "🎯",
		TimeLimit:   180,
		GoalType:    GoalSentences,
		Goals:       [3]int{3, 4, 5},
	},
	{
		ID:          "combo",
		Name:        "Combo Challenge",
		Description: "Reach a 30x combo streak",
		Icon:        "🔥",
		TimeLimit:   120,
		GoalType:    GoalCombo,
		Goals:       [3]int{15, 25, 30},
	},
	{
		ID:          "marathon",
		Name:        "Word Marathon",
		Description: "Type 100 words correctly",
		Icon:        "🏃",
		TimeLimit:   300,
		GoalType:    GoalWords,
		Goals:       [3]int{50, 75, 100},
	},
	{
		ID:          "endurance",
		Name:        "Endurance Test",
		Description: "Type continuously for 5 minutes",
		Icon:        "💪",
		TimeLimit:   300,
		GoalType:    GoalTime,
		Goals:       [3]int{180, 240, 300},
	},
}

// Reward maps a tier to its experience and score multiplier.
type Reward struct {
	Tier            string
	Exp             int
	ScoreMultiplier float64
	Challenge       string
}

var rewardTable = map[string]Reward{
	"bronze": {Tier: "bronze", Exp: 50, ScoreMultiplier: 1.2},
	"silver": {Tier: "silver", Exp: 75, ScoreMultiplier: 1.35},
	"gold":   {Tier: "gold", Exp: 100, ScoreMultiplier: 1.5},
}

type challengeInfo struct {
	GoalType  GoalType `json:"goal_type"`
	Goals     [3]int   `json:"goals"`
	TimeLimit int      `json:"time_limit"`
}

type todayChallenge struct {
	Date string        `json:"date"`
	Type string        `json:"type"`
	Info challengeInfo `json:"info"`
}

// Progress accumulates challenge metrics for the current day.
type Progress struct {
	Chars     int     `json:"chars"`
	Words     int     `json:"words"`
	Sentences int     `json:"sentences"`
	Combo     int     `json:"combo"`
	MaxCombo  int     `json:"max_combo"`
	Time      float64 `json:"time"`
	Errors    int     `json:"errors"`
	Started   bool    `json:"started"`
	StartTime string  `json:"start_time,omitempty"`
}

type stateFile struct {
	TodayChallenge *todayChallenge `json:"today_challenge"`
	Progress       Progress        `json:"challenge_progress"`
	CompletedToday bool            `json:"completed_today"`
	RewardTier     string          `json:"reward_tier,omitempty"`
}

// Engine owns the daily challenge state machine.
type Engine struct {
	savePath string
	now      func() time.Time
	state    stateFile
}

// New loads persisted challenge state and rolls a fresh challenge when the
// stored one belongs to another day.
func New(savePath string) *Engine {
	e := &Engine{savePath: savePath, now: time.Now}
	if _, err := storage.Load(savePath, &e.state); err != nil {
		logErrf("failed to load daily challenge: %v\n", err)
		e.state = stateFile{}
	}
	e.ensureToday()
	return e
}

// Today returns the challenge type selected for the current date.
func (e *Engine) Today() Type {
	e.ensureToday()
	return typeByID(e.state.TodayChallenge.Type)
}

// Start begins the challenge run. A second call is a no-op.
func (e *Engine) Start() {
	e.ensureToday()
	if e.state.Progress.Started {
		return
	}
	e.state.Progress.Started = true
	e.state.Progress.StartTime = e.now().Format(time.RFC3339Nano)
	e.save()
}

// UpdateProgress accumulates metrics and evaluates completion. It returns
// the earned reward when the challenge just completed with a tier, and nil
// otherwise. Calls before Start or after completion are no-ops.
func (e *Engine) UpdateProgress(chars, words, sentences, combo, errors int) *Reward {
	e.ensureToday()
	if !e.state.Progress.Started || e.state.CompletedToday {
		return nil
	}

	p := &e.state.Progress
	p.Chars += chars
	p.Words += words
	p.Sentences += sentences
	p.Errors += errors
	if combo > p.MaxCombo {
		p.MaxCombo = combo
	}
	if p.StartTime != "" {
		if start, err := time.Parse(time.RFC3339Nano, p.StartTime); err == nil {
			p.Time = e.now().Sub(start).Seconds()
		}
	}

	reward := e.checkCompletion()
	e.save()
	return reward
}

// CompletedToday reports whether today's challenge has finished.
func (e *Engine) CompletedToday() bool {
	e.ensureToday()
	return e.state.CompletedToday
}

// RewardTier returns the earned tier, or "" when none.
func (e *Engine) RewardTier() string {
	e.ensureToday()
	return e.state.RewardTier
}

// Active reports whether the challenge is started, unfinished, and within
// its time limit.
func (e *Engine) Active() bool {
	e.ensureToday()
	ct := e.Today()
	return e.state.Progress.Started &&
		!e.state.CompletedToday &&
		e.state.Progress.Time < float64(ct.TimeLimit)
}

// Display summarizes challenge progress for presentation layers.
type Display struct {
	Current       int
	Goals         [3]int
	ProgressPct   float64
	TimeRemaining float64
	Completed     bool
	RewardTier    string
}

// ProgressDisplay reports current progress against the gold goal.
func (e *Engine) ProgressDisplay() Display {
	ct := e.Today()
	current := e.metric(ct.GoalType)
	pct := float64(current) / float64(ct.Goals[2]) * 100
	if pct > 100 {
		pct = 100
	}
	remaining := float64(ct.TimeLimit) - e.state.Progress.Time
	if remaining < 0 {
		remaining = 0
	}
	return Display{
		Current:       current,
		Goals:         ct.Goals,
		ProgressPct:   pct,
		TimeRemaining: remaining,
		Completed:     e.state.CompletedToday,
		RewardTier:    e.state.RewardTier,
	}
}

func (e *Engine) checkCompletion() *Reward {
	ct := typeByID(e.state.TodayChallenge.Type)
	elapsed := e.state.Progress.Time

	if elapsed > float64(ct.TimeLimit) {
		// Out of time: settle on the highest qualifying tier, if any.
		current := e.metric(ct.GoalType)
		tier := ""
		switch {
		case current >= ct.Goals[2]:
			tier = "gold"
		case current >= ct.Goals[1]:
			tier = "silver"
		case current >= ct.Goals[0]:
			tier = "bronze"
		}
		e.state.CompletedToday = true
		e.state.RewardTier = tier
		if tier == "" {
			return nil
		}
		return e.reward(tier, ct)
	}

	// Sentence goals only count error-free play.
	if ct.GoalType == GoalSentences && e.state.Progress.Errors > 0 {
		return nil
	}
	if e.metric(ct.GoalType) >= ct.Goals[2] {
		e.state.CompletedToday = true
		e.state.RewardTier = "gold"
		return e.reward("gold", ct)
	}
	return nil
}

func (e *Engine) metric(goal GoalType) int {
	p := e.state.Progress
	switch goal {
	case GoalChars:
		return p.Chars
	case GoalWords:
		return p.Words
	case GoalSentences:
		return p.Sentences
	case GoalCombo:
		return p.MaxCombo
	case GoalTime:
		return int(p.Time)
	default:
		return 0
	}
}

func (e *Engine) reward(tier string, ct Type) *Reward {
	r := rewardTable[tier]
	r.Challenge = ct.Name
	return &r
}

func (e *Engine) ensureToday() {
	today := dateOnly(e.now())
	iso := today.Format("2006-01-02")
	if e.state.TodayChallenge != nil && e.state.TodayChallenge.Date == iso {
		return
	}

	// A generator scoped to this single draw keeps the selection
	// deterministic per date without touching any shared rand state.
	rng := rand.New(rand.NewSource(dateOrdinal(today)))
	ct := Types[rng.Intn(len(Types))]

	e.state = stateFile{
		TodayChallenge: &todayChallenge{
			Date: iso,
			Type: ct.ID,
			Info: challengeInfo{
				GoalType:  ct.GoalType,
				Goals:     ct.Goals,
				TimeLimit: ct.TimeLimit,
			},
		},
	}
	e.save()
}

// dateOrdinal returns the proleptic Gregorian ordinal of the date, with
// January 1 of year 1 as day 1.
func dateOrdinal(t time.Time) int64 {
	const unixEpochOrdinal = 719163
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return unixEpochOrdinal + d.Unix()/86400
}

func typeByID(id string) Type {
	for _, ct := range Types {
		if ct.ID == id {
			return ct
		}
	}
	return Types[0]
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (e *Engine) save() {
	if err := storage.Save(e.savePath, e.state); err != nil {
		logErrf("failed to save daily challenge: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
