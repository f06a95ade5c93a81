package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/mindely/internal/timer"
)

const (
	eventBuffer      = 16
	progressBarWidth = 40
)

var (
	clockStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	messageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Italic(true)
	activeModeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#C89A3A"))
	idleModeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	timerPaneStyle  = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
)

// engineEventMsg delivers one engine event to the Bubble Tea loop. The engine
// id lets the model drop events from an engine it already tore down.
type engineEventMsg struct {
	engineID string
	events   <-chan timer.Event
	event    timer.Event
	closed   bool
}

func waitForEvent(engineID string, events <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return engineEventMsg{engineID: engineID, events: events, event: ev, closed: !ok}
	}
}

func newProgressBar() progress.Model {
	return progress.New(
		progress.WithSolidFill("#C89A3A"),
		progress.WithoutPercentage(),
		progress.WithWidth(progressBarWidth),
	)
}

func renderModeToggle(phase timer.Phase) string {
	focus, brk := idleModeStyle, idleModeStyle
	if phase == timer.PhaseBreak {
		brk = activeModeStyle
	} else {
		focus = activeModeStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, focus.Render("Focus"), " ", brk.Render("Break"))
}

func renderStatusLine(state timer.State) string {
	status := "⏸ paused"
	if state.Running {
		status = "▶ running"
	}
	sound := "♪ sound on"
	if !state.SoundEnabled {
		sound = "♪ sound off"
	}
	return fmt.Sprintf("Session %d · %s · %s", state.SessionCount, status, sound)
}

func renderTimerPane(state timer.State, allowToggle bool, bar progress.Model, width int) string {
	lines := []string{}
	if allowToggle {
		lines = append(lines, renderModeToggle(state.Phase), "")
	}
	lines = append(lines,
		clockStyle.Render(timer.FormatClock(state.RemainingSeconds)),
		labelStyle.Render(state.PhaseLabel()),
		"",
		bar.ViewAs(state.Progress()),
		"",
		labelStyle.Render(renderStatusLine(state)),
	)
	if state.Message != "" {
		msgWidth := max(10, min(width, progressBarWidth))
		lines = append(lines, "", messageStyle.Render(wrapText(state.Message, msgWidth)))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return timerPaneStyle.Render(strings.TrimRight(content, "\n"))
}
