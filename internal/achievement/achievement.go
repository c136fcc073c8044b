// Package achievement tracks unlockable achievements.
package achievement

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/kweston/typequest/internal/storage"
)

// Achievement describes one entry of the fixed catalog.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
}

// Catalog is the fixed set of achievements, in display order.
var Catalog = []Achievement{
	{ID: "first_level", Name: "First Steps", Description: "Complete your first level", Icon: "🎯"},
	{ID: "perfect_sentence", Name: "Perfect!", Description: "100% accuracy on a sentence", Icon: "⭐"},
	{ID: "speed_demon", Name: "Speed Demon", Description: "Type faster than 60 chars/min", Icon: "⚡"},
	{ID: "speed_demon_pro", Name: "Speed Demon Pro", Description: "Type faster than 100 chars/min", Icon: "⚡⚡"},
	{ID: "combo_5", Name: "On a Roll", Description: "Reach a 5x combo", Icon: "🔥"},
	{ID: "combo_10", Name: "Unstoppable", Description: "Reach a 10x combo", Icon: "💫"},
	{ID: "combo_20", Name: "Legendary", Description: "Reach a 20x combo", Icon: "👑"},
	{ID: "all_levels", Name: "Champion", Description: "Complete all levels", Icon: "🏆"},
	{ID: "no_errors", Name: "Flawless", Description: "Complete a level with no errors", Icon: "💎"},
	{ID: "early_bird", Name: "Early Bird", Description: "Practice before 7am", Icon: "🌅"},
	{ID: "night_owl", Name: "Night Owl", Description: "Practice after 10pm", Icon: "🦉"},
	{ID: "daily_streak_7", Name: "Weekly Dedication", Description: "7 days login streak", Icon: "📅"},
	{ID: "daily_streak_30", Name: "Monthly Master", Description: "30 days login streak", Icon: "🗓️"},
}

var catalogByID = func() map[string]Achievement {
	m := make(map[string]Achievement, len(Catalog))
	for _, a := range Catalog {
		m[a.ID] = a
	}
	return m
}()

// Engine owns the unlocked set and the pending notification queue.
type Engine struct {
	savePath string
	unlocked map[string]struct{}
	pending  []Achievement
}

// New loads the unlocked set from savePath. A missing or corrupt file
// starts an empty set.
func New(savePath string) *Engine {
	e := &Engine{
		savePath: savePath,
		unlocked: map[string]struct{}{},
	}
	var ids []string
	if _, err := storage.Load(savePath, &ids); err != nil {
		logErrf("failed to load achievements: %v\n", err)
	}
	for _, id := range ids {
		e.unlocked[id] = struct{}{}
	}
	return e
}

// Unlock marks id as unlocked. It reports true only for a new unlock of a
// known achievement. The unlock stands in memory even if persisting fails.
func (e *Engine) Unlock(id string) bool {
	a, known := catalogByID[id]
	if !known {
		return false
	}
	if _, ok := e.unlocked[id]; ok {
		return false
	}
	e.unlocked[id] = struct{}{}
	e.pending = append(e.pending, a)
	e.save()
	return true
}

// CheckCombo unlocks combo achievements for the given streak value.
func (e *Engine) CheckCombo(combo int) {
	if combo >= 5 {
		e.Unlock("combo_5")
	}
	if combo >= 10 {
		e.Unlock("combo_10")
	}
	if combo >= 20 {
		e.Unlock("combo_20")
	}
}

// CheckSpeed unlocks speed achievements for a chars-per-minute value.
func (e *Engine) CheckSpeed(speed int) {
	if speed >= 60 {
		e.Unlock("speed_demon")
	}
	if speed >= 100 {
		e.Unlock("speed_demon_pro")
	}
}

// CheckAccuracy unlocks the perfect-sentence achievement.
func (e *Engine) CheckAccuracy(accuracy int) {
	if accuracy >= 100 {
		e.Unlock("perfect_sentence")
	}
}

// CheckLevelComplete unlocks level-completion achievements.
func (e *Engine) CheckLevelComplete(levelIndex, errorsInLevel, totalLevels int) {
	if levelIndex == 0 {
		e.Unlock("first_level")
	}
	if errorsInLevel == 0 {
		e.Unlock("no_errors")
	}
	if levelIndex >= totalLevels-1 {
		e.Unlock("all_levels")
	}
}

// CheckClock unlocks time-of-day achievements.
func (e *Engine) CheckClock(now time.Time) {
	hour := now.Hour()
	if hour < 7 {
		e.Unlock("early_bird")
	} else if hour >= 22 {
		e.Unlock("night_owl")
	}
}

// PendingNotification pops the oldest queued unlock notification.
func (e *Engine) PendingNotification() (Achievement, bool) {
	if len(e.pending) == 0 {
		return Achievement{}, false
	}
	a := e.pending[0]
	e.pending = e.pending[1:]
	return a, true
}

// Unlocked reports whether id has been unlocked.
func (e *Engine) Unlocked(id string) bool {
	_, ok := e.unlocked[id]
	return ok
}

// UnlockedCount returns the number of unlocked achievements.
func (e *Engine) UnlockedCount() int {
	return len(e.unlocked)
}

// TotalCount returns the catalog size.
func (e *Engine) TotalCount() int {
	return len(Catalog)
}

func (e *Engine) save() {
	ids := make([]string, 0, len(e.unlocked))
	for id := range e.unlocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if err := storage.Save(e.savePath, ids); err != nil {
		logErrf("failed to save achievements: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
