package timer

import (
	"fmt"
	"time"
)

// Phase identifies the active interval of a session.
type Phase string

const (
	PhaseFocus Phase = "focus"
	PhaseBreak Phase = "break"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventTick       EventType = "tick"
	EventTransition EventType = "transition"
	EventMessage    EventType = "message"
	EventControl    EventType = "control"
	EventClosed     EventType = "closed"
)

// State is a read-only snapshot of a session.
type State struct {
	Phase            Phase
	Running          bool
	RemainingSeconds int
	PhaseSeconds     int
	SessionCount     int
	Message          string
	Label            string
	SoundEnabled     bool
}

// Event carries a state snapshot to observers.
type Event struct {
	Type  EventType
	State State
	At    time.Time
}

// Progress returns the elapsed fraction of the active phase in [0, 1].
func (s State) Progress() float64 {
	if s.PhaseSeconds <= 0 {
		return 0
	}
	p := float64(s.PhaseSeconds-s.RemainingSeconds) / float64(s.PhaseSeconds)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// PhaseLabel returns the caption shown under the countdown.
func (s State) PhaseLabel() string {
	if s.Phase == PhaseBreak {
		return "Break time"
	}
	if s.Label == "" {
		return "Focus"
	}
	return s.Label
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
