package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/mindely/internal/clock"
	"github.com/verte-zerg/mindely/internal/model"
	"github.com/verte-zerg/mindely/internal/timer"
)

func newTestModel(t *testing.T, methodID string) (*Model, *clock.Fake, tea.Cmd) {
	t.Helper()
	fake := clock.NewFake(time.Unix(0, 0))
	m, err := NewModel(Options{
		Clock:        fake,
		SoundEnabled: true,
		Messages:     model.MessageSet{Focus: []string{"focus"}, Break: []string{"rest"}},
		MethodID:     methodID,
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, fake, m.Init()
}

func press(m *Model, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

// drain feeds queued engine events back into the model until the channel is empty.
func drain(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	for cmd != nil && len(m.events) > 0 {
		_, cmd = m.Update(cmd())
	}
	return cmd
}

func TestLandingToDetailFlow(t *testing.T) {
	m, _, _ := newTestModel(t, "")

	if !strings.Contains(m.View(), "Let's start studying") {
		t.Fatalf("expected landing screen")
	}
	press(m, "enter")
	if m.screen != screenMethods {
		t.Fatalf("expected methods screen, got %v", m.screen)
	}
	if !strings.Contains(m.View(), "Pomodoro Technique") {
		t.Fatalf("expected method table to list pomodoro")
	}

	cmd := press(m, "enter")
	if m.screen != screenDetail || m.method.ID != "pomodoro" {
		t.Fatalf("expected pomodoro detail, got screen %v method %q", m.screen, m.method.ID)
	}
	if m.engine == nil || cmd == nil {
		t.Fatalf("expected timer engine and event listener")
	}
	view := m.View()
	for _, want := range []string{"25:00", "How it works", "Best for", "Session 1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("detail view missing %q", want)
		}
	}
}

func TestDetailTimerCountsDown(t *testing.T) {
	m, fake, cmd := newTestModel(t, "pomodoro")

	press(m, "space")
	if !m.state.Running {
		t.Fatalf("expected timer to run after space")
	}
	fake.Advance(3 * time.Second)
	drain(t, m, cmd)
	if m.state.RemainingSeconds != 1497 {
		t.Fatalf("expected 1497 seconds remaining, got %d", m.state.RemainingSeconds)
	}
	if !strings.Contains(m.View(), "24:57") {
		t.Fatalf("expected clock 24:57 in view")
	}

	press(m, "space")
	if m.state.Running {
		t.Fatalf("expected timer to pause")
	}
	press(m, "s")
	if m.state.RemainingSeconds != 1500 || m.state.Phase != timer.PhaseFocus {
		t.Fatalf("expected stop to restore focus phase, got %+v", m.state)
	}
}

func TestDetailModeAndSoundKeys(t *testing.T) {
	m, _, _ := newTestModel(t, "pomodoro")

	press(m, "b")
	if m.state.Phase != timer.PhaseBreak || m.state.RemainingSeconds != 300 {
		t.Fatalf("expected break phase with 300s, got %+v", m.state)
	}
	if !strings.Contains(m.View(), "Break time") {
		t.Fatalf("expected break label in view")
	}
	press(m, "f")
	if m.state.Phase != timer.PhaseFocus {
		t.Fatalf("expected focus phase")
	}

	press(m, "m")
	if m.state.SoundEnabled || m.soundOn {
		t.Fatalf("expected sound to be disabled")
	}
	if !strings.Contains(m.View(), "sound off") {
		t.Fatalf("expected sound off indicator")
	}
}

func TestModeKeysIgnoredWithoutToggle(t *testing.T) {
	m, _, _ := newTestModel(t, "cornell")
	press(m, "b")
	if m.state.Phase != timer.PhaseFocus || m.state.RemainingSeconds != 3000 {
		t.Fatalf("expected mode switch to be ignored, got %+v", m.state)
	}
}

func TestSoundPreferenceCarriesToNextMethod(t *testing.T) {
	m, _, _ := newTestModel(t, "pomodoro")
	press(m, "m")
	press(m, "esc")
	if m.screen != screenMethods || m.engine != nil {
		t.Fatalf("expected engine torn down on leaving detail")
	}
	m.openDetail(m.methods[1])
	if m.state.SoundEnabled {
		t.Fatalf("expected sound to stay disabled")
	}
}

func TestStaleEngineEventsIgnored(t *testing.T) {
	m, fake, cmd := newTestModel(t, "pomodoro")
	press(m, "space")
	press(m, "esc")
	fake.Advance(5 * time.Second)

	msg := cmd()
	_, next := m.Update(msg)
	if next != nil {
		t.Fatalf("expected no follow-up command for stale engine")
	}
	if m.engine != nil || m.state.RemainingSeconds != 0 {
		t.Fatalf("expected stale event to leave model untouched, got %+v", m.state)
	}
}

func TestMethodWithoutTimer(t *testing.T) {
	m, _, cmd := newTestModel(t, "feynman")
	if cmd != nil || m.engine != nil {
		t.Fatalf("expected no timer for feynman")
	}
	view := m.View()
	if !strings.Contains(view, "Feynman Technique") || !strings.Contains(view, "How it works") {
		t.Fatalf("expected feynman details in view")
	}
	if strings.Contains(view, "Start/Pause") {
		t.Fatalf("expected no timer controls")
	}
}

func TestUnknownInitialMethod(t *testing.T) {
	if _, err := NewModel(Options{MethodID: "nap"}); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}

func TestFilterNarrowsTable(t *testing.T) {
	m, _, _ := newTestModel(t, "")
	press(m, "enter")
	press(m, "/")
	if !m.filtering {
		t.Fatalf("expected filter mode")
	}
	press(m, "feyn")
	if len(m.methods) != 1 || m.methods[0].ID != "feynman" {
		t.Fatalf("expected only feynman, got %d methods", len(m.methods))
	}
	press(m, "enter")
	if m.filtering {
		t.Fatalf("expected filter mode to end on enter")
	}
	press(m, "esc")
	if len(m.methods) != 10 {
		t.Fatalf("expected esc to clear filter, got %d methods", len(m.methods))
	}
	press(m, "esc")
	if m.screen != screenLanding {
		t.Fatalf("expected landing screen")
	}
}

func TestQuitClosesEngine(t *testing.T) {
	m, _, _ := newTestModel(t, "pomodoro")
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if m.engine != nil {
		t.Fatalf("expected engine to be closed")
	}
}

func TestRenderTimerPane(t *testing.T) {
	state := timer.State{
		Phase:            timer.PhaseFocus,
		Running:          true,
		RemainingSeconds: 90,
		PhaseSeconds:     120,
		SessionCount:     2,
		Message:          "Keep going",
		Label:            "Pomodoro Technique",
		SoundEnabled:     true,
	}
	out := renderTimerPane(state, true, newProgressBar(), 60)
	for _, want := range []string{"01:30", "Pomodoro Technique", "Session 2", "running", "Keep going", "Focus", "Break"} {
		if !strings.Contains(out, want) {
			t.Fatalf("timer pane missing %q:\n%s", want, out)
		}
	}
}
