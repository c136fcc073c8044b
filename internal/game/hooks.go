package game

import "github.com/kweston/typequest/internal/achievement"

// Hooks are fire-and-forget notifications for presentation layers (audio,
// effects). The core never waits on them; nil fields are skipped.
type Hooks struct {
	OnCorrectChar         func()
	OnIncorrectChar       func()
	OnSentenceComplete    func()
	OnLevelComplete       func()
	OnAchievementUnlocked func(achievement.Achievement)
}

func (h Hooks) correctChar() {
	if h.OnCorrectChar != nil {
		h.OnCorrectChar()
	}
}

func (h Hooks) incorrectChar() {
	if h.OnIncorrectChar != nil {
		h.OnIncorrectChar()
	}
}

func (h Hooks) sentenceComplete() {
	if h.OnSentenceComplete != nil {
		h.OnSentenceComplete()
	}
}

func (h Hooks) levelComplete() {
	if h.OnLevelComplete != nil {
		h.OnLevelComplete()
	}
}

func (h Hooks) achievementUnlocked(a achievement.Achievement) {
	if h.OnAchievementUnlocked != nil {
		h.OnAchievementUnlocked(a)
	}
}
