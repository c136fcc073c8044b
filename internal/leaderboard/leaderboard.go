// Package leaderboard keeps daily, weekly, and all-time score tables.
package leaderboard

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/kweston/typequest/internal/storage"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
	maxEntries = 100
)

// Entry is one scored result.
type Entry struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Accuracy int    `json:"accuracy"`
	Speed    int    `json:"speed"`
	Combo    int    `json:"combo"`
	Level    int    `json:"level"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

type boardFile struct {
	Daily   []Entry `json:"daily"`
	Weekly  []Entry `json:"weekly"`
	AllTime []Entry `json:"all_time"`
}

// Ranks holds the 1-based position of an entry per view; 0 means unranked.
type Ranks struct {
	Daily   int
	Weekly  int
	AllTime int
}

// Board is the persisted leaderboard.
type Board struct {
	savePath string
	now      func() time.Time
	data     boardFile
}

// New loads the leaderboard from savePath; missing or corrupt files start
// an empty board.
func New(savePath string) *Board {
	b := &Board{savePath: savePath, now: time.Now}
	found, err := storage.Load(savePath, &b.data)
	if err != nil {
		logErrf("failed to load leaderboard: %v\n", err)
	}
	if found {
		b.cleanupAndSort()
	}
	return b
}

// AddScore appends an entry to every view, re-applies retention windows and
// the top-100 cap, persists, and returns the entry's rank in each view.
func (b *Board) AddScore(name string, score, accuracy, speed, combo, level int) Ranks {
	now := b.now()
	entry := Entry{
		Name:     name,
		Score:    score,
		Accuracy: accuracy,
		Speed:    speed,
		Combo:    combo,
		Level:    level,
		Date:     now.Format(dateLayout),
		Time:     now.Format(timeLayout),
	}
	b.data.Daily = append(b.data.Daily, entry)
	b.data.Weekly = append(b.data.Weekly, entry)
	b.data.AllTime = append(b.data.AllTime, entry)

	b.cleanupAndSort()
	if err := storage.Save(b.savePath, b.data); err != nil {
		logErrf("failed to save leaderboard: %v\n", err)
	}

	return Ranks{
		Daily:   rankOf(b.data.Daily, name, score),
		Weekly:  rankOf(b.data.Weekly, name, score),
		AllTime: rankOf(b.data.AllTime, name, score),
	}
}

// Top returns the first limit entries of the requested view.
func (b *Board) Top(category string, limit int) []Entry {
	view := b.view(category)
	if limit > len(view) {
		limit = len(view)
	}
	if limit < 0 {
		limit = 0
	}
	return append([]Entry(nil), view[:limit]...)
}

// PlayerBest returns the highest-ranked entry for a player in a view.
func (b *Board) PlayerBest(name, category string) (Entry, bool) {
	for _, e := range b.view(category) {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func (b *Board) view(category string) []Entry {
	switch category {
	case "daily":
		return b.data.Daily
	case "weekly":
		return b.data.Weekly
	case "all_time":
		return b.data.AllTime
	default:
		return nil
	}
}

func (b *Board) cleanupAndSort() {
	today := dateOnly(b.now())
	weekAgo := today.AddDate(0, 0, -7)

	b.data.Daily = lo.Filter(b.data.Daily, func(e Entry, _ int) bool {
		d, err := time.Parse(dateLayout, e.Date)
		return err == nil && dateOnly(d).Equal(today)
	})
	b.data.Weekly = lo.Filter(b.data.Weekly, func(e Entry, _ int) bool {
		d, err := time.Parse(dateLayout, e.Date)
		return err == nil && !dateOnly(d).Before(weekAgo)
	})

	for _, view := range []*[]Entry{&b.data.Daily, &b.data.Weekly, &b.data.AllTime} {
		entries := *view
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Score > entries[j].Score
		})
		if len(entries) > maxEntries {
			entries = entries[:maxEntries]
		}
		*view = entries
	}
}

func rankOf(entries []Entry, name string, score int) int {
	for i, e := range entries {
		if e.Name == name && e.Score == score {
			return i + 1
		}
	}
	return 0
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
