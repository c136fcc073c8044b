// Package tui provides the Bubble Tea game interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kweston/typequest/internal/achievement"
	"github.com/kweston/typequest/internal/game"
)

var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	comboStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C1A")).Bold(true)
	toastStyle       = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#C89A3A")).
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1)
)

const tickInterval = 250 * time.Millisecond

type tickMsg time.Time

var menuItems = []string{"Play", "Lessons", "Leaderboard", "Achievements", "Quit"}

var boardTabs = []string{"daily", "weekly", "all_time"}

// Model implements the Bubble Tea game UI over the controller.
type Model struct {
	ctrl *game.Controller

	width  int
	height int

	menuIndex   int
	lessonIndex int
	boardTab    int

	expBar    progress.Model
	lessonBar progress.Model

	toast      *achievement.Achievement
	toastUntil time.Time
}

// NewModel constructs the game TUI model.
func NewModel(ctrl *game.Controller) *Model {
	return &Model{
		ctrl:      ctrl,
		expBar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		lessonBar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.expBar.Width = barWidth(m.width)
		m.lessonBar.Width = barWidth(m.width)
		return m, nil
	case tickMsg:
		m.ctrl.Tick(time.Time(msg))
		if a, ok := m.ctrl.PendingAchievement(); ok {
			m.toast = &a
			m.toastUntil = time.Time(msg).Add(3 * time.Second)
		} else if m.toast != nil && time.Time(msg).After(m.toastUntil) {
			m.toast = nil
		}
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func barWidth(total int) int {
	w := total / 3
	if w < 10 {
		w = 10
	}
	return w
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.ctrl.Screen() {
	case game.ScreenMenu:
		return m.handleMenuKey(msg)
	case game.ScreenCourseSelect:
		return m.handleCourseKey(msg)
	case game.ScreenPlaying:
		return m.handlePlayKey(msg)
	case game.ScreenLevelComplete:
		switch msg.String() {
		case "enter", " ":
			m.ctrl.NextLevel()
		case "esc":
			m.ctrl.Escape()
		}
	case game.ScreenGameOver:
		switch msg.String() {
		case "enter", "r":
			m.ctrl.Retry()
		case "esc", "q":
			m.ctrl.Escape()
		}
	case game.ScreenLeaderboard:
		switch msg.String() {
		case "tab", "right", "l":
			m.boardTab = (m.boardTab + 1) % len(boardTabs)
		case "shift+tab", "left", "h":
			m.boardTab = (m.boardTab + len(boardTabs) - 1) % len(boardTabs)
		case "esc", "q":
			m.ctrl.Escape()
		}
	case game.ScreenAchievements:
		switch msg.String() {
		case "esc", "q":
			m.ctrl.Escape()
		}
	}
	return m, nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "q":
		return m, tea.Quit
	case "enter", " ":
		switch menuItems[m.menuIndex] {
		case "Play":
			m.ctrl.SelectLevel(m.lessonIndex)
		case "Lessons":
			m.ctrl.OpenCourseSelect()
		case "Leaderboard":
			m.ctrl.OpenLeaderboard()
		case "Achievements":
			m.ctrl.OpenAchievements()
		case "Quit":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) handleCourseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.lessonIndex > 0 {
			m.lessonIndex--
		}
	case "down", "j":
		if m.lessonIndex < len(m.ctrl.Lessons())-1 {
			m.lessonIndex++
		}
	case "enter", " ":
		m.ctrl.SelectLevel(m.lessonIndex)
	case "esc", "q":
		m.ctrl.Escape()
	}
	return m, nil
}

func (m *Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.Escape()
	case tea.KeyEnter:
		m.ctrl.Submit()
	case tea.KeyBackspace, tea.KeyDelete:
		m.ctrl.Backspace()
	case tea.KeySpace:
		m.ctrl.TypeRune(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.ctrl.TypeRune(r)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.ctrl.Screen() {
	case game.ScreenMenu:
		content = m.viewMenu()
	case game.ScreenCourseSelect:
		content = m.viewCourseSelect()
	case game.ScreenPlaying:
		content = m.viewPlaying()
	case game.ScreenLevelComplete:
		content = m.viewLevelComplete()
	case game.ScreenGameOver:
		content = m.viewGameOver()
	case game.ScreenLeaderboard:
		content = m.viewLeaderboard()
	case game.ScreenAchievements:
		content = m.viewAchievements()
	}
	if m.toast != nil {
		content += "\n" + toastStyle.Render(fmt.Sprintf("%s  %s unlocked!", m.toast.Icon, m.toast.Name))
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TypeQuest"))
	b.WriteString("\n\n")

	levels := m.ctrl.Levels()
	rank := levels.Rank()
	b.WriteString(fmt.Sprintf("Lv.%d %s\n", rank.Level, rank.Name))
	b.WriteString(m.expBar.ViewAs(levels.ProgressToNext() / 100))
	if exp := levels.ExpToNext(); exp > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %d exp to next", exp)))
	}
	b.WriteString("\n\n")

	daily := m.ctrl.Daily()
	ct := daily.Today()
	status := "not started"
	if daily.CompletedToday() {
		status = "completed"
		if tier := daily.RewardTier(); tier != "" {
			status = tier + " earned"
		}
	} else if daily.Active() {
		status = "in progress"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s Daily: %s (%s)", ct.Icon, ct.Name, status)))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		style := pendingStyle
		if i == m.menuIndex {
			cursor = "> "
			style = selectedStyle
		}
		b.WriteString(cursor + style.Render(item) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("↑/↓ select · enter confirm · q quit"))
	return b.String()
}

func (m *Model) viewCourseSelect() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Lessons"))
	b.WriteString("\n\n")
	for i, l := range m.ctrl.Lessons() {
		cursor := "  "
		style := pendingStyle
		if i == m.lessonIndex {
			cursor = "> "
			style = selectedStyle
		}
		line := fmt.Sprintf("Lesson %d: %s", l.Level, l.Title)
		if l.Difficulty > 0 {
			line += " " + dimStyle.Render(strings.Repeat("★", l.Difficulty))
		}
		if score := m.ctrl.LevelScore(i); score > 0 {
			line += dimStyle.Render(fmt.Sprintf("  best %d", score))
		}
		b.WriteString(cursor + style.Render(line) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("enter play · esc back"))
	return b.String()
}

func (m *Model) viewPlaying() string {
	s := m.ctrl.Session()
	if s == nil {
		return ""
	}
	var b strings.Builder

	remaining := m.ctrl.Remaining().Seconds()
	hud := fmt.Sprintf("Score %d   Acc %d%%   Speed %d cpm   Time %.0fs",
		s.Score(), s.Accuracy(), s.Speed(), remaining)
	b.WriteString(dimStyle.Render(hud))
	errStyle := dimStyle
	if s.Errors()*2 >= game.MaxErrorsPerLevel {
		errStyle = incorrectStyle
	}
	b.WriteString("  " + errStyle.Render(fmt.Sprintf("Errors %d/%d", s.Errors(), game.MaxErrorsPerLevel)))
	if combo := s.Combo(); combo >= 2 {
		b.WriteString("  " + comboStyle.Render(fmt.Sprintf("%dx combo", combo)))
	}
	b.WriteString("\n\n")

	cursorIndex := -1
	if len(s.InputRunes()) < len(s.TargetRunes()) {
		cursorIndex = len(s.InputRunes())
	}
	styled := buildStyledRunes(s.TargetRunes(), s.InputRunes(), cursorIndex)
	width := m.width * 7 / 10
	if width < 20 {
		width = 20
	}
	b.WriteString(wrapStyledRunes(styled, width))
	b.WriteString("\n")
	if tr := s.Translation(); tr != "" {
		b.WriteString(dimStyle.Render(tr) + "\n")
	}
	lesson := m.ctrl.Lessons()[m.ctrl.LevelIndex()]
	if s.SentenceIndex() == 0 && len(s.InputRunes()) == 0 && len(lesson.Words) > 0 {
		b.WriteString(dimStyle.Render("New words: "+strings.Join(lesson.Words, ", ")) + "\n")
	}
	b.WriteString("\n")

	done := float64(s.SentenceIndex()) / float64(s.SentenceCount())
	b.WriteString(fmt.Sprintf("Sentence %d/%d ", s.SentenceIndex()+1, s.SentenceCount()))
	b.WriteString(m.lessonBar.ViewAs(done))
	b.WriteString("\n")

	if m.ctrl.Daily().Active() {
		d := m.ctrl.Daily().ProgressDisplay()
		b.WriteString(dimStyle.Render(fmt.Sprintf("Daily %d/%d (%.0f%%)", d.Current, d.Goals[2], d.ProgressPct)))
		b.WriteString("\n")
	}
	b.WriteString("\n" + dimStyle.Render("enter submit · esc quit"))
	return b.String()
}

func (m *Model) viewLevelComplete() string {
	s := m.ctrl.Session()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Level Complete!"))
	b.WriteString("\n\n")
	if s != nil {
		accStyle := correctStyle
		if s.Accuracy() < game.MinAccuracyForPass {
			accStyle = incorrectStyle
		}
		b.WriteString(fmt.Sprintf("Score     %d\n", s.Score()))
		b.WriteString("Accuracy  " + accStyle.Render(fmt.Sprintf("%d%%", s.Accuracy())) + "\n")
		b.WriteString(fmt.Sprintf("Max Combo %dx\n", s.MaxCombo()))
		b.WriteString(fmt.Sprintf("Errors    %d\n", s.Errors()))
	}
	ranks := m.ctrl.LastRanks()
	if ranks.AllTime > 0 {
		b.WriteString(fmt.Sprintf("\nRanked #%d today · #%d this week · #%d all-time\n",
			ranks.Daily, ranks.Weekly, ranks.AllTime))
	}
	if r := m.ctrl.LastReward(); r != nil {
		b.WriteString("\n" + toastStyle.Render(fmt.Sprintf("Daily challenge %s! +%d exp", r.Tier, r.Exp)) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("enter next lesson · esc menu"))
	return b.String()
}

func (m *Model) viewGameOver() string {
	var b strings.Builder
	b.WriteString(incorrectStyle.Render("Time's up!"))
	b.WriteString("\n\n")
	if s := m.ctrl.Session(); s != nil {
		b.WriteString(fmt.Sprintf("Score %d · Accuracy %d%%\n", s.Score(), s.Accuracy()))
	}
	b.WriteString("\n" + dimStyle.Render("enter retry · esc menu"))
	return b.String()
}

func (m *Model) viewLeaderboard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Leaderboard"))
	b.WriteString("\n\n")
	for i, tab := range boardTabs {
		label := strings.ReplaceAll(tab, "_", " ")
		if i == m.boardTab {
			b.WriteString(selectedStyle.Render("[" + label + "]"))
		} else {
			b.WriteString(dimStyle.Render(" " + label + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")
	b.WriteString(m.boardTable().View())
	b.WriteString("\n\n" + dimStyle.Render("tab switch · esc back"))
	return b.String()
}

func (m *Model) boardTable() table.Model {
	entries := m.ctrl.Board().Top(boardTabs[m.boardTab], 10)
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Acc", Width: 5},
		{Title: "Speed", Width: 6},
		{Title: "Combo", Width: 6},
		{Title: "Date", Width: 10},
	}
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d%%", e.Accuracy),
			fmt.Sprintf("%d", e.Speed),
			fmt.Sprintf("%dx", e.Combo),
			e.Date,
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, len(rows))),
	)
	t.SetStyles(boardTableStyles())
	return t
}

func boardTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell
	return styles
}

func (m *Model) viewAchievements() string {
	eng := m.ctrl.Achievements()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Achievements"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", eng.UnlockedCount(), eng.TotalCount())))
	b.WriteString("\n\n")
	for _, a := range achievement.Catalog {
		if eng.Unlocked(a.ID) {
			b.WriteString(fmt.Sprintf("%s %s — %s\n", a.Icon, selectedStyle.Render(a.Name), a.Description))
		} else {
			b.WriteString(dimStyle.Render(fmt.Sprintf("🔒 %s — %s", a.Name, a.Description)) + "\n")
		}
	}
	b.WriteString("\n" + dimStyle.Render("esc back"))
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
