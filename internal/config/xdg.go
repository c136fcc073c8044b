// Package config provides configuration helpers and XDG paths.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "typequest", "config.toml")
}

// DefaultLessonsDir returns the default directory for custom lesson files.
func DefaultLessonsDir() string {
	return filepath.Join(XDGConfigHome(), "typequest", "lessons")
}

// DefaultDataDir returns the directory holding all persisted game state.
func DefaultDataDir() string {
	return filepath.Join(XDGDataHome(), "typequest")
}

// DefaultAchievementsPath returns the achievements save file path.
func DefaultAchievementsPath() string {
	return filepath.Join(DefaultDataDir(), "achievements.json")
}

// DefaultProgressPath returns the level progress save file path.
func DefaultProgressPath() string {
	return filepath.Join(DefaultDataDir(), "progress.json")
}

// DefaultLeaderboardPath returns the leaderboard save file path.
func DefaultLeaderboardPath() string {
	return filepath.Join(DefaultDataDir(), "leaderboard.json")
}

// DefaultChallengePath returns the daily challenge save file path.
func DefaultChallengePath() string {
	return filepath.Join(DefaultDataDir(), "daily_challenge.json")
}

// DefaultHistoryPath returns the default path for the SQLite run history.
func DefaultHistoryPath() string {
	return filepath.Join(DefaultDataDir(), "history.db")
}
