package sound

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/mindely/internal/clock"
	"github.com/verte-zerg/mindely/internal/model"
)

// Options configures a Player. Zero values select defaults.
type Options struct {
	Clock    clock.Clock
	Synth    Synth
	LookPath func(string) (string, error)
	Bell     io.Writer
	Logger   *zerolog.Logger
}

// Player schedules chime tones and can cancel the ones not yet played.
// Failures are logged and never returned to the caller.
type Player struct {
	mu      sync.Mutex
	clock   clock.Clock
	opts    Options
	log     zerolog.Logger
	gen     uint64
	pending []clock.Timer

	once  sync.Once
	synth Synth
}

// NewPlayer returns a Player. The synth is resolved lazily on the first cue.
func NewPlayer(opts Options) *Player {
	if opts.Clock == nil {
		opts.Clock = clock.System
	}
	if opts.Bell == nil {
		opts.Bell = os.Stderr
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Player{
		clock: opts.Clock,
		opts:  opts,
		log:   logger.With().Str("component", "sound").Logger(),
	}
}

// Play schedules the chime for cue, replacing any chime still in flight.
func (p *Player) Play(cue model.Cue) {
	tones := ChimeFor(cue)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()
	if len(tones) == 0 {
		p.log.Warn().Int("cue", int(cue)).Msg("unknown cue")
		return
	}
	gen := p.gen
	for _, tone := range tones {
		p.pending = append(p.pending, p.clock.AfterFunc(tone.Offset, func() {
			p.playTone(gen, cue, tone)
		}))
	}
}

// Cancel drops every tone that has not started yet.
func (p *Player) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()
}

func (p *Player) cancelLocked() {
	p.gen++
	for _, t := range p.pending {
		t.Stop()
	}
	p.pending = nil
}

func (p *Player) playTone(gen uint64, cue model.Cue, tone Tone) {
	p.mu.Lock()
	current := p.gen == gen
	p.mu.Unlock()
	if !current {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn().Interface("panic", r).Str("cue", cue.String()).Msg("tone failed")
		}
	}()
	synth := p.resolveSynth()
	if err := synth.Tone(tone.Frequency, tone.Duration); err != nil {
		p.log.Warn().Err(err).Str("cue", cue.String()).Float64("frequency", tone.Frequency).Msg("tone failed")
	}
}

func (p *Player) resolveSynth() Synth {
	p.once.Do(func() {
		if p.opts.Synth != nil {
			p.synth = p.opts.Synth
			return
		}
		p.synth = Detect(p.opts.LookPath, p.opts.Bell)
		p.log.Debug().Str("synth", synthName(p.synth)).Msg("sound initialized")
	})
	return p.synth
}

func synthName(s Synth) string {
	switch s.(type) {
	case Beep:
		return "beep"
	case Bell:
		return "bell"
	default:
		return "custom"
	}
}
