package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/mindely/internal/catalog"
	"github.com/verte-zerg/mindely/internal/clock"
	"github.com/verte-zerg/mindely/internal/model"
	"github.com/verte-zerg/mindely/internal/timer"
)

type screen int

const (
	screenLanding screen = iota
	screenMethods
	screenDetail
)

const (
	encouragement  = "Remember: There's no rush. Learn at your own pace. You've got this! 💚"
	methodsFooter  = "Every study session is a step forward 🌱"
	maxDetailWidth = 90

	defaultDetailHeight = 20
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Options configures the TUI model.
type Options struct {
	Catalog      *catalog.Catalog
	Messages     model.MessageSet
	Sound        timer.SoundCue
	SoundEnabled bool
	Clock        clock.Clock
	Logger       *zerolog.Logger
	// MethodID opens the detail screen of this method on start.
	MethodID string
}

// Model implements the Bubble Tea study companion UI.
type Model struct {
	opts    Options
	log     zerolog.Logger
	soundOn bool

	screen screen
	width  int
	height int

	methods   []model.StudyMethod
	table     table.Model
	filter    textinput.Model
	filtering bool

	method  model.StudyMethod
	detail  viewport.Model
	engine  *timer.Engine
	events  <-chan timer.Event
	state   timer.State
	bar     progress.Model
	initCmd tea.Cmd
	errMsg  string
}

// NewModel constructs the UI model.
func NewModel(opts Options) (*Model, error) {
	if opts.Catalog == nil {
		c, err := catalog.New(nil)
		if err != nil {
			return nil, err
		}
		opts.Catalog = c
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	m := &Model{
		opts:    opts,
		log:     logger.With().Str("component", "tui").Logger(),
		soundOn: opts.SoundEnabled,
		detail:  viewport.New(maxDetailWidth, defaultDetailHeight),
		bar:     newProgressBar(),
	}
	m.initFilter()
	m.initTable()
	m.applyFilter()
	if opts.MethodID != "" {
		method, err := opts.Catalog.Lookup(opts.MethodID)
		if err != nil {
			return nil, err
		}
		m.initCmd = m.openDetail(method)
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.initCmd
}

// Close tears down the active timer engine, if any.
func (m *Model) Close() {
	m.closeEngine()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case engineEventMsg:
		return m.handleEngineEvent(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		switch m.screen {
		case screenLanding:
			return m.updateLanding(msg)
		case screenMethods:
			return m.updateMethods(msg)
		default:
			return m.updateDetail(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenLanding:
		body = m.renderLanding()
	case screenMethods:
		body = m.renderMethods()
	default:
		body = m.renderDetail()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	return fitLines(body, m.width, m.height)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.closeEngine()
	return m, tea.Quit
}

func (m *Model) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m.quit()
	case "enter", " ":
		m.screen = screenMethods
		m.table.Focus()
	}
	return m, nil
}

func (m *Model) updateMethods(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc":
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		}
		m.screen = screenLanding
		return m, nil
	case "/":
		m.filtering = true
		return m, m.filter.Focus()
	case "enter":
		idx := m.table.Cursor()
		if idx < 0 || idx >= len(m.methods) {
			return m, nil
		}
		return m, m.openDetail(m.methods[idx])
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filter.SetValue("")
		m.filtering = false
		m.filter.Blur()
		m.applyFilter()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc", "backspace":
		m.closeEngine()
		m.screen = screenMethods
		m.table.Focus()
		return m, nil
	}
	if m.engine != nil {
		switch msg.String() {
		case " ", "enter", "p":
			m.engine.Toggle()
		case "r":
			m.engine.Reset()
		case "s":
			m.engine.Stop()
		case "f":
			m.engine.SwitchMode(false)
		case "b":
			m.engine.SwitchMode(true)
		case "m":
			m.soundOn = !m.engine.SoundEnabled()
			m.engine.ToggleSound(m.soundOn)
		default:
			return m.scrollDetail(msg)
		}
		m.state = m.engine.Snapshot()
		return m, nil
	}
	return m.scrollDetail(msg)
}

func (m *Model) scrollDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) handleEngineEvent(msg engineEventMsg) (tea.Model, tea.Cmd) {
	if m.engine == nil || msg.engineID != m.engine.ID() {
		return m, nil
	}
	if msg.closed {
		return m, nil
	}
	m.state = msg.event.State
	if msg.event.Type == timer.EventTransition {
		m.log.Info().
			Str("method", m.method.ID).
			Str("phase", string(msg.event.State.Phase)).
			Int("session", msg.event.State.SessionCount).
			Msg("phase changed")
	}
	return m, waitForEvent(msg.engineID, msg.events)
}

func (m *Model) openDetail(method model.StudyMethod) tea.Cmd {
	m.closeEngine()
	m.method = method
	m.screen = screenDetail
	m.errMsg = ""
	m.table.Blur()
	m.log.Info().Str("method", method.ID).Msg("method opened")

	var cmd tea.Cmd
	if cfg, ok := catalog.SessionConfig(method); ok {
		soundOn := m.soundOn
		engine, err := timer.New(cfg, timer.Options{
			Clock:        m.opts.Clock,
			Sound:        m.opts.Sound,
			Messages:     m.opts.Messages,
			Logger:       &m.log,
			SoundEnabled: &soundOn,
		})
		if err != nil {
			m.errMsg = fmt.Sprintf("failed to start timer: %v", err)
			m.log.Error().Err(err).Str("method", method.ID).Msg("timer creation failed")
		} else {
			m.engine = engine
			m.events = engine.Subscribe(eventBuffer)
			m.state = engine.Snapshot()
			cmd = waitForEvent(engine.ID(), m.events)
		}
	}
	m.detail.SetContent(renderMethodInfo(method, m.detailWidth()))
	m.updateLayout()
	m.detail.GotoTop()
	return cmd
}

func (m *Model) closeEngine() {
	if m.engine == nil {
		return
	}
	m.engine.Close()
	m.engine = nil
	m.events = nil
	m.state = timer.State{}
}

func (m *Model) initFilter() {
	input := textinput.New()
	input.Prompt = "Filter: "
	input.Placeholder = "name, tag or description"
	input.CharLimit = 64
	input.Cursor.SetMode(cursor.CursorBlink)
	m.filter = input
}

func (m *Model) initTable() {
	t := table.New(
		table.WithColumns(methodColumns(80)),
		table.WithFocused(true),
		table.WithHeight(len(m.opts.Catalog.Methods())),
	)
	t.SetStyles(methodTableStyles())
	m.table = t
}

func (m *Model) applyFilter() {
	m.methods = m.opts.Catalog.Filter(m.filter.Value())
	rows := make([]table.Row, 0, len(m.methods))
	for _, method := range m.methods {
		rows = append(rows, table.Row{method.Icon, method.Title, method.Description, timerSummary(method)})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) || m.table.Cursor() < 0 {
		m.table.SetCursor(0)
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.table.SetColumns(methodColumns(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(3, m.height-8))
	m.filter.Width = max(10, m.width-lipgloss.Width(m.filter.Prompt)-2)

	contentWidth := m.detailWidth()
	m.bar.Width = min(progressBarWidth, max(10, contentWidth-6))
	m.detail.Width = contentWidth
	m.detail.SetContent(renderMethodInfo(m.method, contentWidth))
	m.detail.Height = max(3, m.height-lipgloss.Height(m.renderDetailHeader())-m.timerPaneHeight()-2)
}

func (m *Model) detailWidth() int {
	if m.width <= 0 {
		return maxDetailWidth
	}
	return max(20, min(m.width-2, maxDetailWidth))
}

func (m *Model) timerPaneHeight() int {
	if m.engine == nil {
		return 0
	}
	return lipgloss.Height(m.renderTimer())
}

func (m *Model) renderLanding() string {
	lines := []string{
		accentStyle.Render("mindely"),
		"",
		titleStyle.Render("Let's start studying"),
		subtitleStyle.Render("Choose how you want to study. No pressure. No tracking."),
		"",
		helpStyle.Render("enter: choose a method  q: quit"),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderMethods() string {
	lines := []string{
		titleStyle.Render("Pick a study method that feels right"),
		subtitleStyle.Render("You can change anytime. There's no wrong choice."),
		"",
	}
	if len(m.methods) == 0 {
		lines = append(lines, subtitleStyle.Render("No methods match your filter."))
	} else {
		lines = append(lines, m.table.View())
	}
	if m.filtering || m.filter.Value() != "" {
		lines = append(lines, m.filter.View())
	}
	lines = append(lines, "", subtitleStyle.Render(methodsFooter), m.renderMethodsHelp())
	return strings.Join(lines, "\n")
}

func (m *Model) renderMethodsHelp() string {
	help := "Move: up/down  Open: enter  Filter: /  Back: esc  Quit: q"
	if m.filtering {
		help = "Type to filter  enter: keep  esc: clear"
	}
	return helpStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderDetailHeader() string {
	title := titleStyle.Render(strings.TrimSpace(m.method.Icon + " " + m.method.Title))
	if m.method.Custom {
		title += " " + tagStyle.Render("(custom)")
	}
	return title
}

func (m *Model) renderTimer() string {
	return renderTimerPane(m.state, m.engine.Config().AllowModeToggle, m.bar, m.detailWidth())
}

func (m *Model) renderDetail() string {
	parts := []string{m.renderDetailHeader()}
	if m.errMsg != "" {
		parts = append(parts, errorStyle.Render(m.errMsg))
	}
	if m.engine != nil {
		parts = append(parts, m.renderTimer())
	}
	parts = append(parts, m.detail.View(), m.renderDetailHelp())
	return strings.Join(parts, "\n")
}

func (m *Model) renderDetailHelp() string {
	help := "Scroll: up/down  Back: esc  Quit: q"
	if m.engine != nil {
		help = "Start/Pause: space  Reset: r  Stop: s  Sound: m  Back: esc  Quit: q"
		if m.engine.Config().AllowModeToggle {
			help = "Start/Pause: space  Reset: r  Stop: s  Focus/Break: f/b  Sound: m  Back: esc  Quit: q"
		}
	}
	return helpStyle.Render(truncateLine(help, m.width))
}

func renderMethodInfo(method model.StudyMethod, width int) string {
	if method.ID == "" {
		return ""
	}
	var parts []string
	if method.FullDescription != "" {
		parts = append(parts, wrapText(method.FullDescription, width), "")
	} else if method.Description != "" {
		parts = append(parts, wrapText(method.Description, width), "")
	}
	if len(method.HowItWorks) > 0 {
		parts = append(parts, accentStyle.Render("How it works"))
		for i, step := range method.HowItWorks {
			parts = append(parts, hangingIndent(fmt.Sprintf("%d. ", i+1), step, width))
		}
		parts = append(parts, "")
	}
	if len(method.BestFor) > 0 {
		parts = append(parts, accentStyle.Render("Best for"))
		parts = append(parts, tagStyle.Render(wrapText(strings.Join(method.BestFor, " · "), width)), "")
	}
	parts = append(parts, subtitleStyle.Render(wrapText(encouragement, width)))
	return strings.Join(parts, "\n")
}

func timerSummary(method model.StudyMethod) string {
	if !method.HasTimer {
		return "-"
	}
	return fmt.Sprintf("%d/%d min", method.FocusMinutes, method.BreakMinutes)
}

func methodColumns(width int) []table.Column {
	const iconW, titleW, timerW = 3, 22, 10
	descW := max(10, width-iconW-titleW-timerW-8)
	return []table.Column{
		{Title: "", Width: iconW},
		{Title: "Method", Width: titleW},
		{Title: "Description", Width: descW},
		{Title: "Timer", Width: timerW},
	}
}

func methodTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true)
	return styles
}
