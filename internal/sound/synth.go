package sound

import (
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"time"
)

// Synth renders a single tone. Tone may block for the tone's duration.
type Synth interface {
	Tone(frequency float64, d time.Duration) error
}

// Bell rings the terminal bell once per tone.
type Bell struct {
	W io.Writer
}

// Tone implements Synth.
func (b Bell) Tone(float64, time.Duration) error {
	if b.W == nil {
		return fmt.Errorf("bell output is not set")
	}
	if _, err := io.WriteString(b.W, "\a"); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}
	return nil
}

// Beep plays tones through the external beep(1) program.
type Beep struct {
	Path string
}

// Tone implements Synth.
func (b Beep) Tone(frequency float64, d time.Duration) error {
	cmd := exec.Command(b.Path, beepArgs(frequency, d)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to run beep: %w (%s)", err, string(out))
	}
	return nil
}

func beepArgs(frequency float64, d time.Duration) []string {
	return []string{
		"-f", strconv.FormatFloat(frequency, 'f', -1, 64),
		"-l", strconv.FormatInt(d.Milliseconds(), 10),
	}
}

// Detect picks beep(1) when it is on PATH and falls back to the terminal bell.
func Detect(lookPath func(string) (string, error), bell io.Writer) Synth {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if path, err := lookPath("beep"); err == nil && path != "" {
		return Beep{Path: path}
	}
	return Bell{W: bell}
}
