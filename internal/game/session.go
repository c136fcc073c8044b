package game

import (
	"strings"
	"time"

	"github.com/kweston/typequest/internal/lesson"
)

// Session tracks one play-through of a lesson: the per-keystroke input
// matcher plus score, combo, and error bookkeeping.
type Session struct {
	lesson     lesson.Lesson
	levelIndex int
	now        func() time.Time

	sentenceIndex int
	target        []rune
	input         []rune
	startedAt     time.Time

	correctChars int
	totalChars   int
	errors       int
	score        int
	combo        int
	maxCombo     int
}

// SubmitResult reports the outcome of a sentence submission.
type SubmitResult struct {
	Correct    bool
	Accuracy   int
	Speed      int
	ScoreDelta int
	Chars      int
	Words      int
	LevelDone  bool
}

// NewSession starts a fresh attempt at the given lesson. startScore carries
// the accumulated score from earlier levels.
func NewSession(l lesson.Lesson, levelIndex, startScore int, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		lesson:     l,
		levelIndex: levelIndex,
		now:        now,
		score:      startScore,
	}
	s.startSentence()
	return s
}

func (s *Session) startSentence() {
	s.target = []rune(s.lesson.Sentences[s.sentenceIndex])
	s.input = nil
	s.startedAt = s.now()
}

// TypeRune appends a printable character and reports whether it matched the
// target at its position. Typing past the end of the sentence is always a
// mismatch.
func (s *Session) TypeRune(r rune) bool {
	s.input = append(s.input, r)
	s.totalChars++

	pos := len(s.input) - 1
	if pos < len(s.target) && s.target[pos] == r {
		s.correctChars++
		s.combo++
		if s.combo > s.maxCombo {
			s.maxCombo = s.combo
		}
		s.score += comboBonus(s.combo)
		return true
	}
	s.errors++
	s.combo = 0
	return false
}

// Backspace removes the last typed character and unwinds its bookkeeping.
// It reports whether a character was removed.
func (s *Session) Backspace() bool {
	if len(s.input) == 0 {
		return false
	}
	pos := len(s.input) - 1
	mismatched := pos >= len(s.target) || s.input[pos] != s.target[pos]
	s.input = s.input[:pos]

	if s.totalChars > 0 {
		s.totalChars--
	}
	if mismatched && s.errors > 0 {
		s.errors--
	}
	if s.correctChars > len(s.input) {
		s.correctChars = len(s.input)
	}
	return true
}

// Submit compares the input against the target sentence. On an exact match
// it scores the sentence and advances; otherwise it counts an error and
// resets the combo.
func (s *Session) Submit() SubmitResult {
	if string(s.input) != string(s.target) {
		s.errors++
		s.combo = 0
		return SubmitResult{}
	}

	accuracy := s.Accuracy()
	speed := s.Speed()
	delta := int(float64(sentenceScore(len(s.target), accuracy, speed, s.levelIndex)) * comboMultiplier(s.maxCombo))

	result := SubmitResult{
		Correct:  true,
		Accuracy: accuracy,
		Speed:    speed,
		Chars:    len(s.input),
		Words:    len(strings.Fields(string(s.target))),
	}

	s.sentenceIndex++
	if s.sentenceIndex >= len(s.lesson.Sentences) {
		delta += LevelCompletionBonus
		result.LevelDone = true
	} else {
		s.startSentence()
	}
	s.score += delta
	result.ScoreDelta = delta
	return result
}

// Accuracy returns the percentage of typed characters that matched, 100
// when nothing has been typed.
func (s *Session) Accuracy() int {
	if s.totalChars == 0 {
		return 100
	}
	acc := s.correctChars * 100 / s.totalChars
	if acc < 0 {
		return 0
	}
	return acc
}

// Speed returns the typing speed in characters per minute for the current
// sentence, 0 when no time has elapsed.
func (s *Session) Speed() int {
	elapsed := s.now().Sub(s.startedAt).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return int(float64(len(s.input)) / elapsed * 60)
}

// Elapsed returns the time since the current sentence started.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.startedAt)
}

// Target returns the current target sentence.
func (s *Session) Target() string { return string(s.target) }

// TargetRunes returns the target sentence runes.
func (s *Session) TargetRunes() []rune { return s.target }

// Input returns the characters typed so far.
func (s *Session) Input() string { return string(s.input) }

// InputRunes returns the typed runes.
func (s *Session) InputRunes() []rune { return s.input }

// Translation returns the translation for the current sentence, if any.
func (s *Session) Translation() string {
	if s.sentenceIndex < len(s.lesson.Translations) {
		return s.lesson.Translations[s.sentenceIndex]
	}
	return ""
}

// SentenceIndex returns the zero-based index of the current sentence.
func (s *Session) SentenceIndex() int { return s.sentenceIndex }

// SentenceCount returns the number of sentences in the lesson.
func (s *Session) SentenceCount() int { return len(s.lesson.Sentences) }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Combo returns the current streak.
func (s *Session) Combo() int { return s.combo }

// MaxCombo returns the session-best streak.
func (s *Session) MaxCombo() int { return s.maxCombo }

// Errors returns the error count for this level attempt.
func (s *Session) Errors() int { return s.errors }

// CorrectChars returns the count of correctly typed characters.
func (s *Session) CorrectChars() int { return s.correctChars }

// TotalChars returns the count of typed characters net of backspaces.
func (s *Session) TotalChars() int { return s.totalChars }
