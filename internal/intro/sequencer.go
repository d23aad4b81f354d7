// Package intro runs the opening animation timeline: glyphs start scattered,
// resolve into the name, and the overlay exits before the page is shown.
package intro

import (
	"time"

	"go.uber.org/zap"

	"github.com/preethi-chalasani/portfolio/internal/schedule"
)

// Timeline instants, measured from Start.
const (
	ResolveAt  = 200 * time.Millisecond
	CompleteAt = 1400 * time.Millisecond
	DoneAt     = 1800 * time.Millisecond
)

// Phase is one named interval of the intro timeline.
type Phase int

const (
	Scatter Phase = iota
	Resolve
	Complete
)

func (p Phase) String() string {
	switch p {
	case Scatter:
		return "scatter"
	case Resolve:
		return "resolve"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Sequencer drives the phases on a schedule.Clock and calls back once when the
// timeline is over. It must be used from the clock's execution queue.
type Sequencer struct {
	clock     schedule.Clock
	timers    *schedule.Timers
	logger    *zap.Logger
	phase     Phase
	started   bool
	finished  bool
	startedAt time.Time
	listeners []func(Phase)
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger used for phase transitions.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a sequencer in the Scatter phase.
func New(clock schedule.Clock, opts ...Option) *Sequencer {
	s := &Sequencer{
		clock:  clock,
		timers: schedule.NewTimers(clock),
		logger: zap.NewNop(),
		phase:  Scatter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnPhase registers fn to be called after every phase transition.
func (s *Sequencer) OnPhase(fn func(Phase)) {
	s.listeners = append(s.listeners, fn)
}

// Start begins the timeline. onComplete runs once, DoneAt after Start.
// Calling Start again, or after Stop, does nothing.
func (s *Sequencer) Start(onComplete func()) {
	if s.started {
		return
	}
	s.started = true
	s.startedAt = s.clock.Now()
	s.logger.Debug("intro started", zap.Duration("done_at", DoneAt))

	s.timers.After(ResolveAt, func() { s.enter(Resolve) })
	s.timers.After(CompleteAt, func() { s.enter(Complete) })
	s.timers.After(DoneAt, func() {
		s.finished = true
		s.logger.Debug("intro finished")
		if onComplete != nil {
			onComplete()
		}
	})
}

// Stop cancels every pending transition. onComplete will not run afterwards.
func (s *Sequencer) Stop() {
	if s.timers.Stopped() {
		return
	}
	s.timers.CancelAll()
	s.started = true
	if !s.finished {
		s.logger.Debug("intro cancelled", zap.Stringer("phase", s.phase))
	}
}

func (s *Sequencer) Phase() Phase {
	return s.phase
}

// Finished reports whether onComplete has been called.
func (s *Sequencer) Finished() bool {
	return s.finished
}

// Elapsed returns the time since Start, or zero if not started.
func (s *Sequencer) Elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	return s.clock.Now().Sub(s.startedAt)
}

func (s *Sequencer) enter(p Phase) {
	if p <= s.phase {
		return
	}
	s.phase = p
	s.logger.Debug("intro phase", zap.Stringer("phase", p))
	for _, fn := range s.listeners {
		fn(p)
	}
}
