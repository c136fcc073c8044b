package game

import (
	"testing"
	"time"

	"github.com/kweston/typequest/internal/lesson"
)

func testLesson(sentences ...string) lesson.Lesson {
	return lesson.Lesson{Level: 1, Title: "Test", Sentences: sentences}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func typeString(s *Session, text string) {
	for _, r := range text {
		s.TypeRune(r)
	}
}

func TestCorrectPrefixKeepsCountersAligned(t *testing.T) {
	s := NewSession(testLesson("hello"), 0, 0, fixedClock(time.Now()))
	for i, r := range "hello" {
		if !s.TypeRune(r) {
			t.Fatalf("expected rune %q to match", r)
		}
		n := i + 1
		if s.CorrectChars() != n || s.TotalChars() != n || len(s.InputRunes()) != n {
			t.Fatalf("counters diverged at %d: correct=%d total=%d input=%d",
				n, s.CorrectChars(), s.TotalChars(), len(s.InputRunes()))
		}
	}
}

func TestMismatchResetsCombo(t *testing.T) {
	s := NewSession(testLesson("abc"), 0, 0, fixedClock(time.Now()))
	s.TypeRune('a')
	s.TypeRune('b')
	if s.Combo() != 2 {
		t.Fatalf("expected combo 2, got %d", s.Combo())
	}
	if s.TypeRune('x') {
		t.Fatalf("expected mismatch")
	}
	if s.Combo() != 0 {
		t.Fatalf("combo must reset on mismatch, got %d", s.Combo())
	}
	if s.MaxCombo() != 2 {
		t.Fatalf("maxCombo must survive the reset, got %d", s.MaxCombo())
	}
	if s.Errors() != 1 {
		t.Fatalf("expected 1 error, got %d", s.Errors())
	}
}

func TestTypingPastEndIsMismatch(t *testing.T) {
	s := NewSession(testLesson("ab"), 0, 0, fixedClock(time.Now()))
	typeString(s, "ab")
	if s.TypeRune('c') {
		t.Fatalf("typing past the end of the target must mismatch")
	}
	if s.Errors() != 1 {
		t.Fatalf("expected 1 error, got %d", s.Errors())
	}
}

func TestBackspaceInvertsAppend(t *testing.T) {
	s := NewSession(testLesson("Hi"), 0, 0, fixedClock(time.Now()))
	typeString(s, "Hi")
	s.Backspace()

	ref := NewSession(testLesson("Hi"), 0, 0, fixedClock(time.Now()))
	typeString(ref, "H")
	if s.Input() != ref.Input() || s.TotalChars() != ref.TotalChars() || s.Errors() != ref.Errors() {
		t.Fatalf("backspace did not invert append: (%q,%d,%d) vs (%q,%d,%d)",
			s.Input(), s.TotalChars(), s.Errors(), ref.Input(), ref.TotalChars(), ref.Errors())
	}
}

func TestBackspaceRemovesError(t *testing.T) {
	s := NewSession(testLesson("ab"), 0, 0, fixedClock(time.Now()))
	s.TypeRune('a')
	s.TypeRune('x')
	if s.Errors() != 1 {
		t.Fatalf("expected 1 error, got %d", s.Errors())
	}
	s.Backspace()
	if s.Errors() != 0 {
		t.Fatalf("removing a mismatched char must unwind the error, got %d", s.Errors())
	}
	if s.CorrectChars() != 1 {
		t.Fatalf("expected 1 correct char, got %d", s.CorrectChars())
	}
	s.Backspace()
	s.Backspace() // empty input is a no-op
	if s.TotalChars() != 0 {
		t.Fatalf("totalChars must floor at 0, got %d", s.TotalChars())
	}
}

func TestIncorrectSubmit(t *testing.T) {
	s := NewSession(testLesson("abc"), 0, 0, fixedClock(time.Now()))
	typeString(s, "ab")
	before := s.Score()
	res := s.Submit()
	if res.Correct {
		t.Fatalf("incomplete input must not submit")
	}
	if s.Score() != before {
		t.Fatalf("incorrect submit must not change the score")
	}
	if s.Errors() != 1 || s.Combo() != 0 {
		t.Fatalf("incorrect submit must count an error and reset combo, got errors=%d combo=%d", s.Errors(), s.Combo())
	}
}

func TestCorrectSubmitScoresSentence(t *testing.T) {
	start := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	current := start
	s := NewSession(testLesson("Yes, it is.", "Second one."), 0, 0, func() time.Time { return current })
	typeString(s, "Yes, it is.")
	current = start.Add(10 * time.Second)

	scoreBefore := s.Score()
	res := s.Submit()
	if !res.Correct {
		t.Fatalf("expected correct submit")
	}
	if res.Accuracy != 100 {
		t.Fatalf("expected accuracy 100, got %d", res.Accuracy)
	}
	// 11 chars in 10 seconds is 66 chars/min.
	if res.Speed != 66 {
		t.Fatalf("expected speed 66, got %d", res.Speed)
	}
	// base 110 + accuracy 110 + speed 6.6 + level 50 = 276; combo x1.55 = 427.
	if res.ScoreDelta != 427 {
		t.Fatalf("expected score delta 427, got %d", res.ScoreDelta)
	}
	if s.Score() != scoreBefore+427 {
		t.Fatalf("score not applied: %d", s.Score())
	}
	if res.LevelDone {
		t.Fatalf("first of two sentences must not finish the level")
	}
	if s.SentenceIndex() != 1 || s.Input() != "" {
		t.Fatalf("expected advance to next sentence")
	}
}

func TestFinalSentenceAddsCompletionBonus(t *testing.T) {
	start := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	current := start
	s := NewSession(testLesson("Yes, it is."), 0, 0, func() time.Time { return current })
	typeString(s, "Yes, it is.")
	current = start.Add(10 * time.Second)

	res := s.Submit()
	if !res.LevelDone {
		t.Fatalf("expected level completion")
	}
	if res.ScoreDelta != 427+LevelCompletionBonus {
		t.Fatalf("expected completion bonus included, got %d", res.ScoreDelta)
	}
}

func TestScoreMonotonicWithinAttempt(t *testing.T) {
	s := NewSession(testLesson("abc abc abc"), 0, 0, fixedClock(time.Now()))
	prev := s.Score()
	for _, r := range "abc aXc" {
		s.TypeRune(r)
		if s.Score() < prev {
			t.Fatalf("score decreased from %d to %d", prev, s.Score())
		}
		prev = s.Score()
	}
}

func TestSpeedZeroElapsed(t *testing.T) {
	s := NewSession(testLesson("ab"), 0, 0, fixedClock(time.Now()))
	typeString(s, "ab")
	if s.Speed() != 0 {
		t.Fatalf("expected speed 0 with no elapsed time, got %d", s.Speed())
	}
}

func TestAccuracyEmptyInput(t *testing.T) {
	s := NewSession(testLesson("ab"), 0, 0, fixedClock(time.Now()))
	if s.Accuracy() != 100 {
		t.Fatalf("expected accuracy 100 with nothing typed, got %d", s.Accuracy())
	}
}

func TestPerCharComboBonus(t *testing.T) {
	s := NewSession(testLesson("abcd"), 0, 0, fixedClock(time.Now()))
	typeString(s, "abcd")
	// 1+2+3+4 from the streak bonus.
	if s.Score() != 10 {
		t.Fatalf("expected per-char combo bonuses to total 10, got %d", s.Score())
	}
}
