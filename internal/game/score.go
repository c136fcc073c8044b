// Package game implements the session scoring and progression core.
package game

import "time"

// Scoring and pacing constants.
const (
	ScorePerCorrectChar   = 10
	LevelCompletionBonus  = 100
	LevelNumberMultiplier = 50
	MaxErrorsPerLevel     = 5
	MinAccuracyForPass    = 80
	TimeLimitPerSentence  = 30 * time.Second

	// Combo rewards are capped at a 20-streak.
	comboCap = 20
)

// comboBonus is the per-character score bonus for the current streak.
func comboBonus(combo int) int {
	if combo > comboCap {
		return comboCap
	}
	return combo
}

// comboMultiplier scales the sentence score by the session-best streak.
func comboMultiplier(maxCombo int) float64 {
	if maxCombo > comboCap {
		maxCombo = comboCap
	}
	return 1 + float64(maxCombo)*0.05
}

// sentenceScore computes the score awarded for a correctly submitted
// sentence, before the combo multiplier.
func sentenceScore(sentenceLen, accuracy, speed, levelIndex int) int {
	base := float64(sentenceLen * ScorePerCorrectChar)
	accuracyBonus := base * float64(accuracy) / 100
	speedBonus := float64(speed) / 10
	if speedBonus > 50 {
		speedBonus = 50
	}
	levelBonus := float64((levelIndex + 1) * LevelNumberMultiplier)
	return int(base + accuracyBonus + speedBonus + levelBonus)
}
