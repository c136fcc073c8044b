package game

import (
	"time"

	"github.com/kweston/typequest/internal/achievement"
	"github.com/kweston/typequest/internal/challenge"
	"github.com/kweston/typequest/internal/leaderboard"
	"github.com/kweston/typequest/internal/lesson"
	"github.com/kweston/typequest/internal/level"
)

// Screen identifies one state of the game's screen machine.
type Screen int

// Screen states.
const (
	ScreenMenu Screen = iota
	ScreenCourseSelect
	ScreenPlaying
	ScreenLevelComplete
	ScreenGameOver
	ScreenLeaderboard
	ScreenAchievements
)

// Narrator enqueues text for background speech. Enqueue must never block.
type Narrator interface {
	Enqueue(text string)
}

// Run records one completed level for the history store.
type Run struct {
	StartedAt    time.Time
	EndedAt      time.Time
	LessonIndex  int
	LessonTitle  string
	Score        int
	Accuracy     int
	Speed        int
	MaxCombo     int
	Errors       int
	CorrectChars int
	TotalChars   int
}

// Recorder persists completed runs. Failures are the recorder's problem;
// the controller treats it as fire-and-forget.
type Recorder interface {
	Record(run Run) error
}

// Config wires the controller's collaborators.
type Config struct {
	Lessons      []lesson.Lesson
	Achievements *achievement.Engine
	Levels       *level.System
	Board        *leaderboard.Board
	Daily        *challenge.Engine
	Recorder     Recorder
	Narrator     Narrator
	Hooks        Hooks
	PlayerName   string
	TimeLimit    time.Duration
	Now          func() time.Time
}

// Controller owns the screen state machine and drives every engine from
// discrete input events. All mutation happens on the caller's goroutine.
type Controller struct {
	lessons      []lesson.Lesson
	achievements *achievement.Engine
	levels       *level.System
	board        *leaderboard.Board
	daily        *challenge.Engine
	recorder     Recorder
	narrator     Narrator
	hooks        Hooks
	playerName   string
	timeLimit    time.Duration
	now          func() time.Time

	screen         Screen
	levelIndex     int
	levelScores    []int
	session        *Session
	levelStartedAt time.Time
	lastRanks      leaderboard.Ranks
	lastReward     *challenge.Reward
}

// NewController builds a controller over the given lesson corpus.
func NewController(cfg Config) *Controller {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	timeLimit := cfg.TimeLimit
	if timeLimit <= 0 {
		timeLimit = TimeLimitPerSentence
	}
	return &Controller{
		lessons:      cfg.Lessons,
		achievements: cfg.Achievements,
		levels:       cfg.Levels,
		board:        cfg.Board,
		daily:        cfg.Daily,
		recorder:     cfg.Recorder,
		narrator:     cfg.Narrator,
		hooks:        cfg.Hooks,
		playerName:   cfg.PlayerName,
		timeLimit:    timeLimit,
		now:          now,
		screen:       ScreenMenu,
		levelScores:  make([]int, len(cfg.Lessons)),
	}
}

// Screen returns the current screen state.
func (c *Controller) Screen() Screen { return c.screen }

// Session returns the active session, nil outside of play.
func (c *Controller) Session() *Session { return c.session }

// Lessons returns the lesson corpus.
func (c *Controller) Lessons() []lesson.Lesson { return c.lessons }

// LevelIndex returns the selected lesson index.
func (c *Controller) LevelIndex() int { return c.levelIndex }

// LevelScore returns the persisted score for a lesson index.
func (c *Controller) LevelScore(i int) int {
	if i < 0 || i >= len(c.levelScores) {
		return 0
	}
	return c.levelScores[i]
}

// LastRanks returns the leaderboard ranks earned by the latest completion.
func (c *Controller) LastRanks() leaderboard.Ranks { return c.lastRanks }

// LastReward returns the daily challenge reward from the latest completion.
func (c *Controller) LastReward() *challenge.Reward { return c.lastReward }

// TimeLimit returns the per-sentence deadline.
func (c *Controller) TimeLimit() time.Duration { return c.timeLimit }

// Achievements exposes the achievement engine for presentation layers.
func (c *Controller) Achievements() *achievement.Engine { return c.achievements }

// Levels exposes the level system for presentation layers.
func (c *Controller) Levels() *level.System { return c.levels }

// Board exposes the leaderboard for presentation layers.
func (c *Controller) Board() *leaderboard.Board { return c.board }

// Daily exposes the daily challenge engine for presentation layers.
func (c *Controller) Daily() *challenge.Engine { return c.daily }

// SelectLevel starts playing the lesson at index i. Out-of-range indexes
// are ignored.
func (c *Controller) SelectLevel(i int) {
	if c.screen != ScreenMenu && c.screen != ScreenCourseSelect {
		return
	}
	if i < 0 || i >= len(c.lessons) {
		return
	}
	c.levelIndex = i
	c.startLevel()
}

// NextLevel advances from the level-complete screen to the next lesson, or
// back to the menu after the final one.
func (c *Controller) NextLevel() {
	if c.screen != ScreenLevelComplete {
		return
	}
	if c.levelIndex+1 < len(c.lessons) {
		c.levelIndex++
		c.startLevel()
		return
	}
	c.screen = ScreenMenu
	c.session = nil
}

// Retry restarts the current lesson from the game-over screen.
func (c *Controller) Retry() {
	if c.screen != ScreenGameOver {
		return
	}
	c.startLevel()
}

// OpenCourseSelect shows the lesson picker.
func (c *Controller) OpenCourseSelect() {
	if c.screen == ScreenMenu {
		c.screen = ScreenCourseSelect
	}
}

// OpenLeaderboard shows the leaderboard screen from the menu.
func (c *Controller) OpenLeaderboard() {
	if c.screen == ScreenMenu {
		c.screen = ScreenLeaderboard
	}
}

// OpenAchievements shows the achievements screen from the menu.
func (c *Controller) OpenAchievements() {
	if c.screen == ScreenMenu {
		c.screen = ScreenAchievements
	}
}

// Escape leaves the current screen. From play it abandons the session.
func (c *Controller) Escape() {
	switch c.screen {
	case ScreenPlaying:
		c.session = nil
		c.screen = ScreenMenu
	case ScreenCourseSelect, ScreenLeaderboard, ScreenAchievements, ScreenLevelComplete, ScreenGameOver:
		c.screen = ScreenMenu
	}
}

// Tick checks the per-sentence deadline. The control loop calls it once per
// tick, independent of keystrokes.
func (c *Controller) Tick(now time.Time) {
	if c.screen != ScreenPlaying || c.session == nil {
		return
	}
	if now.Sub(c.session.startedAt) > c.timeLimit {
		c.screen = ScreenGameOver
	}
}

// Remaining returns the time left on the current sentence.
func (c *Controller) Remaining() time.Duration {
	if c.session == nil {
		return 0
	}
	rem := c.timeLimit - c.session.Elapsed()
	if rem < 0 {
		return 0
	}
	return rem
}

// TypeRune feeds one printable character to the active session.
func (c *Controller) TypeRune(r rune) {
	if c.screen != ScreenPlaying || c.session == nil {
		return
	}
	if c.session.TypeRune(r) {
		c.achievements.CheckCombo(c.session.Combo())
		c.levels.AddExpForChar()
		c.daily.UpdateProgress(1, 0, 0, c.session.Combo(), 0)
		c.hooks.correctChar()
		return
	}
	c.daily.UpdateProgress(0, 0, 0, 0, 1)
	c.hooks.incorrectChar()
	c.speakEncouragement()
}

// Backspace removes the last typed character.
func (c *Controller) Backspace() {
	if c.screen != ScreenPlaying || c.session == nil {
		return
	}
	c.session.Backspace()
}

// Submit checks the typed sentence against the target.
func (c *Controller) Submit() {
	if c.screen != ScreenPlaying || c.session == nil {
		return
	}
	res := c.session.Submit()
	if !res.Correct {
		c.daily.UpdateProgress(0, 0, 0, 0, 1)
		c.hooks.incorrectChar()
		c.speakEncouragement()
		return
	}

	c.achievements.CheckSpeed(res.Speed)
	c.achievements.CheckAccuracy(res.Accuracy)
	c.levels.AddExpForSentence(res.Accuracy >= 100)
	c.levels.AddWords(res.Words)
	c.lastReward = c.daily.UpdateProgress(0, res.Words, 1, c.session.MaxCombo(), 0)
	c.hooks.sentenceComplete()
	c.speakPraise()

	if res.LevelDone {
		c.finishLevel(res)
		return
	}
	c.speak(c.session.Target())
}

// PendingAchievement pops the oldest unseen achievement unlock and fires
// the unlock hook for it.
func (c *Controller) PendingAchievement() (achievement.Achievement, bool) {
	a, ok := c.achievements.PendingNotification()
	if ok {
		c.hooks.achievementUnlocked(a)
	}
	return a, ok
}

func (c *Controller) startLevel() {
	// Retrying a lesson resumes from its last banked score.
	c.session = NewSession(c.lessons[c.levelIndex], c.levelIndex, c.levelScores[c.levelIndex], c.now)
	c.levelStartedAt = c.now()
	c.screen = ScreenPlaying
	c.achievements.CheckClock(c.now())
	c.daily.Start()
	c.speak(c.session.Target())
}

func (c *Controller) finishLevel(res SubmitResult) {
	s := c.session
	c.levelScores[c.levelIndex] = s.Score()
	c.achievements.CheckLevelComplete(c.levelIndex, s.Errors(), len(c.lessons))
	c.levels.AddExpForLevel()
	c.levels.AddExpForCombo(s.MaxCombo())
	c.lastRanks = c.board.AddScore(c.playerName, s.Score(), s.Accuracy(), res.Speed, s.MaxCombo(), c.levels.Level())

	if c.recorder != nil {
		run := Run{
			StartedAt:    c.levelStartedAt,
			EndedAt:      c.now(),
			LessonIndex:  c.levelIndex,
			LessonTitle:  c.lessons[c.levelIndex].Title,
			Score:        s.Score(),
			Accuracy:     s.Accuracy(),
			Speed:        res.Speed,
			MaxCombo:     s.MaxCombo(),
			Errors:       s.Errors(),
			CorrectChars: s.CorrectChars(),
			TotalChars:   s.TotalChars(),
		}
		if err := c.recorder.Record(run); err != nil {
			// History is best-effort; gameplay continues regardless.
			_ = err
		}
	}

	c.hooks.levelComplete()
	c.screen = ScreenLevelComplete
}

func (c *Controller) speak(text string) {
	if c.narrator != nil && text != "" {
		c.narrator.Enqueue(text)
	}
}

func (c *Controller) speakPraise() {
	c.speak(praisePhrase(c.now()))
}

func (c *Controller) speakEncouragement() {
	c.speak(encouragementPhrase(c.now()))
}
