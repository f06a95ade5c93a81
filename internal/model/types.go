// Package model defines shared data structures.
package model

import "time"

// SessionConfig defines the immutable settings of one timer session.
type SessionConfig struct {
	FocusSeconds    int
	BreakSeconds    int
	AllowModeToggle bool
	Label           string
}

// MessageSet holds the encouragement strings shown per phase.
type MessageSet struct {
	Focus []string
	Break []string
}

// StudyMethod describes one entry of the method catalog.
type StudyMethod struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"`
	FullDescription string   `json:"full_description" yaml:"full_description"`
	HowItWorks      []string `json:"how_it_works" yaml:"how_it_works"`
	BestFor         []string `json:"best_for" yaml:"best_for"`
	Icon            string   `json:"icon" yaml:"icon"`
	HasTimer        bool     `json:"has_timer" yaml:"has_timer"`
	FocusMinutes    int      `json:"focus_minutes,omitempty" yaml:"focus_minutes,omitempty"`
	BreakMinutes    int      `json:"break_minutes,omitempty" yaml:"break_minutes,omitempty"`
	ModeToggle      bool     `json:"mode_toggle" yaml:"mode_toggle"`
	Custom          bool     `json:"custom" yaml:"custom"`
}

// CustomMethod is a user-defined method as persisted in the store.
type CustomMethod struct {
	StudyMethod
	CreatedAt time.Time
}

// Cue names a phase-boundary sound trigger.
type Cue int

// Sound cues fired at phase boundaries.
const (
	CueFocusStarted Cue = iota + 1
	CueBreakStarted
)

func (c Cue) String() string {
	switch c {
	case CueFocusStarted:
		return "focus_started"
	case CueBreakStarted:
		return "break_started"
	default:
		return "unknown"
	}
}
