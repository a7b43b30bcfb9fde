package sim

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/alienfield/internal/input"
)

// Scheduler owns a session State and advances it on a virtual clock. It is
// the single tick source: the host calls Advance from its own update loop
// and Press whenever input arrives. Ticks fire every TickInterval; while
// hold-fire is active a shot fires every AutoFireInterval. When both fall on
// the same instant the tick runs first.
//
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	cfg   Config
	state State
	seed  int64

	clock        time.Duration
	nextTick     time.Duration
	holding      bool
	nextAutoFire time.Duration
	pending      []input.Event

	log *zap.SugaredLogger
}

// NewScheduler validates cfg and spawns a fresh session. A nil logger
// disables logging.
func NewScheduler(cfg Config, log *zap.SugaredLogger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Terrain = cfg.Terrain.Clone()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	state, skipped, err := NewState(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Warnw("enemies skipped: no clear spawn position", "skipped", skipped, "requested", cfg.EnemyCount)
	}
	log.Infow("session created",
		"seed", seed,
		"field", [2]float64{cfg.FieldWidth, cfg.FieldHeight},
		"enemies", len(state.Enemies),
		"terrain", len(cfg.Terrain),
		"tick", cfg.TickInterval,
	)

	return &Scheduler{
		cfg:      cfg,
		state:    state,
		seed:     seed,
		nextTick: cfg.TickInterval,
		log:      log,
	}, nil
}

// Press delivers one input event. Directional and fire presses are queued
// for the next tick; hold-fire press and release take effect at the current
// clock. Release cancels any pending auto-fire shot. Input after the session
// has ended is ignored.
func (s *Scheduler) Press(ev input.Event) {
	if s.state.Status.Terminal() {
		return
	}
	switch ev.Kind {
	case input.HoldStart:
		if !s.holding {
			s.holding = true
			s.nextAutoFire = s.clock + s.cfg.AutoFireInterval
		}
	case input.HoldEnd:
		s.holding = false
	case input.Up, input.Down, input.Left, input.Right, input.Fire:
		s.pending = append(s.pending, ev)
	}
}

// PressAll delivers events in order.
func (s *Scheduler) PressAll(events []input.Event) {
	for _, ev := range events {
		s.Press(ev)
	}
}

// Advance moves the clock forward by dt, running every tick and auto-fire
// shot that falls due, and returns the number of ticks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	target := s.clock + dt
	ticks := 0
	for !s.state.Status.Terminal() {
		at := s.nextTick
		autoFire := s.holding && s.nextAutoFire < at
		if autoFire {
			at = s.nextAutoFire
		}
		if at > target {
			break
		}
		s.clock = at
		if autoFire {
			s.state = Fire(s.state, &s.cfg)
			s.nextAutoFire += s.cfg.AutoFireInterval
			continue
		}
		s.state = Step(s.state, &s.cfg, s.pending)
		s.pending = s.pending[:0]
		s.nextTick += s.cfg.TickInterval
		ticks++
	}
	if s.state.Status.Terminal() {
		s.holding = false
		s.pending = s.pending[:0]
	}
	s.clock = target
	return ticks
}

// Snapshot returns a renderer copy of the current state.
func (s *Scheduler) Snapshot() *Snapshot {
	return NewSnapshot(s.state, &s.cfg)
}

// State returns a deep copy of the current state.
func (s *Scheduler) State() State {
	return s.state.Clone()
}

// Status returns the session outcome so far.
func (s *Scheduler) Status() Status {
	return s.state.Status
}

// Config returns the validated session parameters.
func (s *Scheduler) Config() Config {
	cfg := s.cfg
	cfg.Terrain = cfg.Terrain.Clone()
	return cfg
}

// Seed returns the random seed the session was spawned with.
func (s *Scheduler) Seed() int64 {
	return s.seed
}

// Clock returns the virtual time elapsed since the session started.
func (s *Scheduler) Clock() time.Duration {
	return s.clock
}

// Holding reports whether hold-fire is active.
func (s *Scheduler) Holding() bool {
	return s.holding
}
