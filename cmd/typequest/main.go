// Package main provides the CLI entrypoint for typequest.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kweston/typequest/internal/achievement"
	"github.com/kweston/typequest/internal/challenge"
	"github.com/kweston/typequest/internal/config"
	"github.com/kweston/typequest/internal/game"
	"github.com/kweston/typequest/internal/history"
	"github.com/kweston/typequest/internal/leaderboard"
	"github.com/kweston/typequest/internal/lesson"
	"github.com/kweston/typequest/internal/level"
	"github.com/kweston/typequest/internal/narrator"
	"github.com/kweston/typequest/internal/stats"
	"github.com/kweston/typequest/internal/tui"
)

const (
	defaultTimeLimit   = 30
	defaultStatsWindow = 5
	defaultBoardLimit  = 10
	terminalWidthFloor = 80
)

var (
	playPlayer     string
	playLessonsDir string
	playTimeLimit  int
	playNarration  bool

	statsLast   int
	statsWindow int

	boardCategory string
	boardLimit    int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typequest",
		Short:         "TUI typing game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playPlayer, "player", defaultPlayerName(), "player name for the leaderboard")
	rootCmd.Flags().StringVar(&playLessonsDir, "lessons-dir", "", "directory with custom lesson files")
	rootCmd.Flags().IntVar(&playTimeLimit, "time-limit", defaultTimeLimit, "seconds allowed per sentence")
	rootCmd.Flags().BoolVar(&playNarration, "narration", true, "speak sentences through a TTS engine when available")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newChallengeCmd())

	return rootCmd
}

func defaultPlayerName() string {
	if name := strings.TrimSpace(os.Getenv("USER")); name != "" {
		return name
	}
	return "Player"
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "player", &playPlayer, fileCfg.Game.Player)
	applyStringConfig(cmd, "lessons-dir", &playLessonsDir, fileCfg.Game.LessonsDir)
	applyIntConfig(cmd, "time-limit", &playTimeLimit, fileCfg.Game.TimeLimit)
	applyBoolConfig(cmd, "narration", &playNarration, fileCfg.Game.Narration)

	if playTimeLimit <= 0 {
		return fmt.Errorf("--time-limit must be > 0")
	}
	if strings.TrimSpace(playPlayer) == "" {
		return fmt.Errorf("--player must not be empty")
	}

	lessons, err := loadLessons(playLessonsDir)
	if err != nil {
		return err
	}

	store, err := history.Open(config.DefaultHistoryPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	var speech *narrator.Narrator
	if playNarration {
		if speaker := narrator.FindSpeaker(); speaker != nil {
			speech = narrator.New(speaker)
			defer speech.Close()
		}
	}

	ctrl := game.NewController(game.Config{
		Lessons:      lessons,
		Achievements: achievement.New(config.DefaultAchievementsPath()),
		Levels:       level.New(config.DefaultProgressPath()),
		Board:        leaderboard.New(config.DefaultLeaderboardPath()),
		Daily:        challenge.New(config.DefaultChallengePath()),
		Recorder:     store,
		Narrator:     speech,
		PlayerName:   playPlayer,
		TimeLimit:    time.Duration(playTimeLimit) * time.Second,
	})

	program := tea.NewProgram(tui.NewModel(ctrl), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadLessons(dir string) ([]lesson.Lesson, error) {
	if dir == "" {
		dir = config.DefaultLessonsDir()
	}
	lessons, err := lesson.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons from %s: %w", dir, err)
	}
	if len(lessons) == 0 {
		return lesson.Default(), nil
	}
	return lessons, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show run history and trends",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window for trends")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	store, err := history.Open(config.DefaultHistoryPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	runs, err := store.ListRuns(context.Background(), statsLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, runs); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := stats.RenderRunTable(out, runs); err != nil {
		return fmt.Errorf("failed to render runs: %w", err)
	}
	// The sparkline has one cell per run; cap it to the terminal.
	trendRuns := runs
	if width := terminalWidth() - 10; len(trendRuns) > width {
		trendRuns = trendRuns[:width]
	}
	if err := stats.RenderTrends(out, trendRuns, statsWindow); err != nil {
		return fmt.Errorf("failed to render trends: %w", err)
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthFloor
	}
	return width
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().StringVar(&boardCategory, "category", "all_time", "daily, weekly, or all_time")
	cmd.Flags().IntVar(&boardLimit, "limit", defaultBoardLimit, "number of entries to show")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	switch boardCategory {
	case "daily", "weekly", "all_time":
	default:
		return fmt.Errorf("--category must be daily, weekly, or all_time")
	}
	board := leaderboard.New(config.DefaultLeaderboardPath())
	entries := board.Top(boardCategory, boardLimit)
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		if _, err := fmt.Fprintln(out, "No scores yet."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	for i, e := range entries {
		_, err := fmt.Fprintf(out, "%2d. %-12s %6d  %3d%%  %4d cpm  %3dx  %s\n",
			i+1, e.Name, e.Score, e.Accuracy, e.Speed, e.Combo, e.Date)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newChallengeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge",
		Short: "Show today's daily challenge",
		Args:  cobra.NoArgs,
		RunE:  runChallengeCmd,
	}
}

func runChallengeCmd(cmd *cobra.Command, _ []string) error {
	daily := challenge.New(config.DefaultChallengePath())
	ct := daily.Today()
	d := daily.ProgressDisplay()
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s %s\n%s\n", ct.Icon, ct.Name, ct.Description); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintf(out, "Goals: bronze %d · silver %d · gold %d (within %ds)\n",
		ct.Goals[0], ct.Goals[1], ct.Goals[2], ct.TimeLimit); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	status := fmt.Sprintf("Progress: %d/%d (%.0f%%)", d.Current, d.Goals[2], d.ProgressPct)
	if d.Completed {
		status = "Completed"
		if d.RewardTier != "" {
			status += " — " + d.RewardTier + " earned"
		}
	}
	if _, err := fmt.Fprintln(out, status); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typequest configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# player = %q        # Leaderboard name (default: $USER)
# lessons-dir = ""        # Directory with custom lesson files
# time-limit = %d         # Seconds allowed per sentence
# narration = true        # Speak sentences through a TTS engine
`,
		defaultPlayerName(),
		defaultTimeLimit,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
