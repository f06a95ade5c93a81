// Package timer implements the focus/break session timer engine.
package timer

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/mindely/internal/clock"
	"github.com/verte-zerg/mindely/internal/model"
)

const (
	// TickInterval is the countdown resolution.
	TickInterval = time.Second
	// MessageInterval is how often the encouragement message rotates while running.
	MessageInterval = 30 * time.Second
)

// ErrInvalidDuration reports a non-positive phase duration.
var ErrInvalidDuration = errors.New("phase duration must be positive")

// SoundCue plays a short tone sequence at a phase boundary.
// Play must not block; Cancel drops any tones not yet played.
type SoundCue interface {
	Play(cue model.Cue)
	Cancel()
}

// Options contains runtime collaborators for an Engine. Zero values select defaults.
type Options struct {
	Clock        clock.Clock
	Pick         func(n int) int
	Sound        SoundCue
	Messages     model.MessageSet
	Logger       *zerolog.Logger
	SoundEnabled *bool
}

type handle struct {
	timer clock.Timer
	gen   uint64
}

// Engine is the session state machine. All methods are safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	cfg      model.SessionConfig
	clock    clock.Clock
	pick     func(n int) int
	sound    SoundCue
	messages model.MessageSet
	log      zerolog.Logger
	runID    string

	phase     Phase
	running   bool
	remaining int
	sessions  int
	message   string
	soundOn   bool
	closed    bool

	gen       uint64
	tick      handle
	tickDue   time.Time
	rotate    handle
	rotateDue time.Time

	subscribers []chan Event
}

// New validates cfg and returns an idle engine in the focus phase.
func New(cfg model.SessionConfig, opts Options) (*Engine, error) {
	if cfg.FocusSeconds <= 0 {
		return nil, fmt.Errorf("%w: focus=%d", ErrInvalidDuration, cfg.FocusSeconds)
	}
	if cfg.BreakSeconds <= 0 {
		return nil, fmt.Errorf("%w: break=%d", ErrInvalidDuration, cfg.BreakSeconds)
	}
	if opts.Clock == nil {
		opts.Clock = clock.System
	}
	if opts.Pick == nil {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		opts.Pick = rnd.Intn
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	runID := uuid.NewString()

	e := &Engine{
		cfg:      cfg,
		clock:    opts.Clock,
		pick:     opts.Pick,
		sound:    opts.Sound,
		messages: withDefaultMessages(opts.Messages),
		runID:    runID,
		soundOn:  true,
	}
	if opts.SoundEnabled != nil {
		e.soundOn = *opts.SoundEnabled
	}
	e.log = logger.With().Str("run_id", runID).Str("label", cfg.Label).Logger()
	e.resetLocked()
	e.log.Debug().
		Int("focus_seconds", cfg.FocusSeconds).
		Int("break_seconds", cfg.BreakSeconds).
		Bool("mode_toggle", cfg.AllowModeToggle).
		Msg("timer created")
	return e, nil
}

// ID returns the unique id of this engine instance.
func (e *Engine) ID() string {
	return e.runID
}

// Config returns the session configuration.
func (e *Engine) Config() model.SessionConfig {
	return e.cfg
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Subscribe registers an observer channel. Sends never block; a full channel drops the event.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		close(ch)
		return ch
	}
	e.subscribers = append(e.subscribers, ch)
	return ch
}

// Start begins the countdown. It is a no-op while running or when no time remains.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked()
}

// Pause halts the countdown, keeping the remaining seconds.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pauseLocked()
}

// Toggle pauses a running engine and starts a paused one.
func (e *Engine) Toggle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		e.pauseLocked()
		return
	}
	e.startLocked()
}

// Reset restores the full duration of the active phase.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.remaining = e.phaseSecondsLocked()
	if e.running {
		e.armTickLocked()
	}
	e.log.Debug().Str("phase", string(e.phase)).Msg("phase reset")
	e.emitLocked(EventControl)
}

// Stop abandons the whole cycle and restores the construction-time state.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.cancelAllLocked()
	e.resetLocked()
	e.log.Debug().Msg("session stopped")
	e.emitLocked(EventControl)
}

// SwitchMode selects the focus or break phase manually. Ignored unless the
// configuration allows mode toggling.
func (e *Engine) SwitchMode(toBreak bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if !e.cfg.AllowModeToggle {
		e.log.Debug().Bool("to_break", toBreak).Msg("mode switch ignored")
		return
	}
	e.cancelAllLocked()
	e.running = false
	if toBreak {
		e.phase = PhaseBreak
		e.message = firstMessage(e.messages.Break)
	} else {
		e.phase = PhaseFocus
		e.message = firstMessage(e.messages.Focus)
	}
	e.remaining = e.phaseSecondsLocked()
	e.log.Debug().Str("phase", string(e.phase)).Msg("mode switched")
	e.emitLocked(EventControl)
}

// ToggleSound enables or disables sound cues.
func (e *Engine) ToggleSound(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.soundOn = enabled
	if !enabled {
		e.cancelSoundLocked()
	}
	e.emitLocked(EventControl)
}

// SoundEnabled reports whether sound cues are enabled.
func (e *Engine) SoundEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.soundOn
}

// Close tears the engine down. Pending callbacks are cancelled and observers closed.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.emitLocked(EventClosed)
	e.closed = true
	e.running = false
	e.cancelAllLocked()
	for _, ch := range e.subscribers {
		close(ch)
	}
	e.subscribers = nil
	e.log.Debug().Int("sessions", e.sessions).Msg("timer closed")
}

func (e *Engine) startLocked() {
	if e.closed || e.running || e.remaining == 0 {
		return
	}
	e.running = true
	e.armTickLocked()
	e.armRotateLocked()
	e.log.Debug().Str("phase", string(e.phase)).Int("remaining", e.remaining).Msg("timer started")
	e.emitLocked(EventControl)
}

func (e *Engine) pauseLocked() {
	if e.closed || !e.running {
		return
	}
	e.running = false
	e.cancelAllLocked()
	e.log.Debug().Str("phase", string(e.phase)).Int("remaining", e.remaining).Msg("timer paused")
	e.emitLocked(EventControl)
}

func (e *Engine) resetLocked() {
	e.phase = PhaseFocus
	e.running = false
	e.remaining = e.cfg.FocusSeconds
	e.sessions = 1
	e.message = firstMessage(e.messages.Focus)
}

func (e *Engine) onTick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.running || e.tick.gen != gen {
		return
	}
	e.tick = handle{}
	eventType := EventTick
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining == 0 {
		e.transitionLocked()
		eventType = EventTransition
	}
	e.rearmTickLocked()
	e.emitLocked(eventType)
}

func (e *Engine) transitionLocked() {
	from := e.phase
	var cue model.Cue
	if e.phase == PhaseFocus {
		e.phase = PhaseBreak
		e.remaining = e.cfg.BreakSeconds
		e.message = e.pickLocked(e.messages.Break)
		cue = model.CueBreakStarted
	} else {
		e.phase = PhaseFocus
		e.remaining = e.cfg.FocusSeconds
		e.sessions++
		e.message = e.pickLocked(e.messages.Focus)
		cue = model.CueFocusStarted
	}
	e.armRotateLocked()
	e.log.Info().
		Str("from", string(from)).
		Str("to", string(e.phase)).
		Int("session", e.sessions).
		Msg("phase transition")
	e.playLocked(cue)
}

func (e *Engine) onRotate(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.running || e.rotate.gen != gen {
		return
	}
	e.rotate = handle{}
	if e.phase == PhaseBreak {
		e.message = e.pickLocked(e.messages.Break)
	} else {
		e.message = e.pickLocked(e.messages.Focus)
	}
	e.rotateDue = e.rotateDue.Add(MessageInterval)
	e.rotate = e.scheduleLocked(e.rotateDue, e.onRotate)
	e.emitLocked(EventMessage)
}

func (e *Engine) armTickLocked() {
	e.cancelTickLocked()
	e.tickDue = e.clock.Now().Add(TickInterval)
	e.tick = e.scheduleLocked(e.tickDue, e.onTick)
}

func (e *Engine) rearmTickLocked() {
	e.tickDue = e.tickDue.Add(TickInterval)
	e.tick = e.scheduleLocked(e.tickDue, e.onTick)
}

func (e *Engine) armRotateLocked() {
	e.cancelRotateLocked()
	e.rotateDue = e.clock.Now().Add(MessageInterval)
	e.rotate = e.scheduleLocked(e.rotateDue, e.onRotate)
}

func (e *Engine) scheduleLocked(due time.Time, fn func(gen uint64)) handle {
	e.gen++
	gen := e.gen
	delay := due.Sub(e.clock.Now())
	if delay < 0 {
		delay = 0
	}
	return handle{
		gen:   gen,
		timer: e.clock.AfterFunc(delay, func() { fn(gen) }),
	}
}

func (e *Engine) cancelTickLocked() {
	if e.tick.timer != nil {
		e.tick.timer.Stop()
	}
	e.tick = handle{}
}

func (e *Engine) cancelRotateLocked() {
	if e.rotate.timer != nil {
		e.rotate.timer.Stop()
	}
	e.rotate = handle{}
}

func (e *Engine) cancelAllLocked() {
	e.cancelTickLocked()
	e.cancelRotateLocked()
	e.cancelSoundLocked()
}

func (e *Engine) playLocked(cue model.Cue) {
	if e.sound == nil || !e.soundOn {
		return
	}
	e.cancelSoundLocked()
	e.safeSound(func() { e.sound.Play(cue) })
}

func (e *Engine) cancelSoundLocked() {
	if e.sound == nil {
		return
	}
	e.safeSound(e.sound.Cancel)
}

func (e *Engine) safeSound(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("sound cue failed")
		}
	}()
	fn()
}

func (e *Engine) pickLocked(set []string) string {
	if len(set) == 0 {
		return ""
	}
	idx := e.pick(len(set))
	if idx < 0 || idx >= len(set) {
		idx = 0
	}
	return set[idx]
}

func (e *Engine) phaseSecondsLocked() int {
	if e.phase == PhaseBreak {
		return e.cfg.BreakSeconds
	}
	return e.cfg.FocusSeconds
}

func (e *Engine) stateLocked() State {
	return State{
		Phase:            e.phase,
		Running:          e.running,
		RemainingSeconds: e.remaining,
		PhaseSeconds:     e.phaseSecondsLocked(),
		SessionCount:     e.sessions,
		Message:          e.message,
		Label:            e.cfg.Label,
		SoundEnabled:     e.soundOn,
	}
}

func (e *Engine) emitLocked(eventType EventType) {
	if len(e.subscribers) == 0 {
		return
	}
	event := Event{
		Type:  eventType,
		State: e.stateLocked(),
		At:    e.clock.Now(),
	}
	for _, ch := range e.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func firstMessage(set []string) string {
	if len(set) == 0 {
		return ""
	}
	return set[0]
}
