// Package level implements the player experience and rank progression.
package level

import (
	"fmt"
	"os"

	"github.com/kweston/typequest/internal/storage"
)

// Rank describes one step of the fixed progression table.
type Rank struct {
	Level       int
	Name        string
	ExpRequired int
}

// Ranks is the ascending experience threshold table.
var Ranks = []Rank{
	{Level: 1, Name: "Beginner", ExpRequired: 0},
	{Level: 2, Name: "Learner", ExpRequired: 100},
	{Level: 3, Name: "Student", ExpRequired: 300},
	{Level: 4, Name: "Scholar", ExpRequired: 600},
	{Level: 5, Name: "Expert", ExpRequired: 1000},
	{Level: 6, Name: "Master", ExpRequired: 1500},
	{Level: 7, Name: "Champion", ExpRequired: 2100},
	{Level: 8, Name: "Legend", ExpRequired: 2800},
	{Level: 9, Name: "Mythic", ExpRequired: 3600},
	{Level: 10, Name: "Transcendent", ExpRequired: 4500},
}

type progressFile struct {
	Exp            int `json:"exp"`
	Level          int `json:"level"`
	TotalWords     int `json:"total_words"`
	TotalSentences int `json:"total_sentences"`
	TotalLevels    int `json:"total_levels"`
}

// System accumulates experience and derives the player level.
type System struct {
	savePath string
	state    progressFile
}

// New loads persisted progress from savePath, defaulting to level 1.
func New(savePath string) *System {
	s := &System{
		savePath: savePath,
		state:    progressFile{Level: 1},
	}
	var stored progressFile
	found, err := storage.Load(savePath, &stored)
	if err != nil {
		logErrf("failed to load progress: %v\n", err)
	}
	if found {
		s.state = stored
		if s.state.Level < 1 {
			s.state.Level = 1
		}
		// The stored level wins over a retroactively lower computed one;
		// level-ups are one-directional.
		if computed := levelForExp(s.state.Exp); computed > s.state.Level {
			s.state.Level = computed
		}
	}
	return s
}

// AddExp adds experience and reports the new level when it increased.
func (s *System) AddExp(amount int) (int, bool) {
	s.state.Exp += amount
	if newLevel := levelForExp(s.state.Exp); newLevel > s.state.Level {
		s.state.Level = newLevel
		s.save()
		return newLevel, true
	}
	return 0, false
}

// AddExpForChar awards the per-correct-character experience.
func (s *System) AddExpForChar() (int, bool) {
	return s.AddExp(1)
}

// AddExpForSentence awards sentence-completion experience.
func (s *System) AddExpForSentence(perfect bool) (int, bool) {
	exp := 10
	if perfect {
		exp = 15
	}
	s.state.TotalSentences++
	level, up := s.AddExp(exp)
	s.save()
	return level, up
}

// AddExpForLevel awards lesson-completion experience.
func (s *System) AddExpForLevel() (int, bool) {
	s.state.TotalLevels++
	level, up := s.AddExp(50)
	s.save()
	return level, up
}

// AddExpForCombo awards a streak bonus of half the combo value.
func (s *System) AddExpForCombo(combo int) (int, bool) {
	return s.AddExp(combo / 2)
}

// AddWords adds to the lifetime typed-word counter.
func (s *System) AddWords(n int) {
	if n <= 0 {
		return
	}
	s.state.TotalWords += n
	s.save()
}

// ProgressToNext returns the percentage of the way to the next level,
// clamped to 100 and 100 at the maximum level.
func (s *System) ProgressToNext() float64 {
	if s.state.Level >= Ranks[len(Ranks)-1].Level {
		return 100
	}
	cur := Ranks[s.state.Level-1].ExpRequired
	next := Ranks[s.state.Level].ExpRequired
	pct := float64(s.state.Exp-cur) / float64(next-cur) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// ExpToNext returns the remaining experience to the next level, 0 at max.
func (s *System) ExpToNext() int {
	if s.state.Level >= Ranks[len(Ranks)-1].Level {
		return 0
	}
	return Ranks[s.state.Level].ExpRequired - s.state.Exp
}

// Level returns the current player level.
func (s *System) Level() int { return s.state.Level }

// Exp returns the accumulated experience.
func (s *System) Exp() int { return s.state.Exp }

// Rank returns the rank record for the current level.
func (s *System) Rank() Rank { return Ranks[s.state.Level-1] }

// TotalSentences returns the lifetime completed sentence count.
func (s *System) TotalSentences() int { return s.state.TotalSentences }

// TotalLevels returns the lifetime completed lesson count.
func (s *System) TotalLevels() int { return s.state.TotalLevels }

// TotalWords returns the lifetime typed word count.
func (s *System) TotalWords() int { return s.state.TotalWords }

func levelForExp(exp int) int {
	level := 1
	for _, r := range Ranks {
		if exp >= r.ExpRequired {
			level = r.Level
		}
	}
	return level
}

func (s *System) save() {
	if err := storage.Save(s.savePath, s.state); err != nil {
		logErrf("failed to save progress: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
