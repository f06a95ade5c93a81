// Package sound plays the soft chimes that mark phase boundaries.
package sound

import (
	"time"

	"github.com/verte-zerg/mindely/internal/model"
)

// Tone is one note of a chime, played Offset after the chime starts.
type Tone struct {
	Offset    time.Duration
	Frequency float64
	Duration  time.Duration
}

// FocusChime ascends to signal the start of a focus phase.
var FocusChime = []Tone{
	{Offset: 0, Frequency: 440, Duration: 400 * time.Millisecond},
	{Offset: 150 * time.Millisecond, Frequency: 554, Duration: 400 * time.Millisecond},
	{Offset: 300 * time.Millisecond, Frequency: 659, Duration: 600 * time.Millisecond},
}

// BreakChime descends to signal the start of a break.
var BreakChime = []Tone{
	{Offset: 0, Frequency: 659, Duration: 400 * time.Millisecond},
	{Offset: 150 * time.Millisecond, Frequency: 554, Duration: 400 * time.Millisecond},
	{Offset: 300 * time.Millisecond, Frequency: 440, Duration: 600 * time.Millisecond},
}

// ChimeFor returns the tone sequence for a cue.
func ChimeFor(cue model.Cue) []Tone {
	switch cue {
	case model.CueFocusStarted:
		return FocusChime
	case model.CueBreakStarted:
		return BreakChime
	default:
		return nil
	}
}
