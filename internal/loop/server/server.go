// Package server runs one simulation session on its own goroutine and
// publishes snapshots for renderers.
package server

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/alienfield/internal/input"
	"github.com/tomz197/alienfield/internal/loop/config"
	"github.com/tomz197/alienfield/internal/metrics"
	"github.com/tomz197/alienfield/internal/sim"
)

// Session is what a host needs from a running session. Runner is the only
// production implementation.
type Session interface {
	ID() string
	Send(ev input.Event) bool
	Snapshot() *sim.Snapshot
	Events() <-chan Event
	Done() <-chan struct{}
}

// Runner owns a Scheduler and drives it with wall-clock time. Input arrives
// through Send from any goroutine; renderers read Snapshot without locking.
type Runner struct {
	id       string
	sched    *sim.Scheduler
	inputs   *input.Queue
	buf      []input.Event
	snapshot atomic.Pointer[sim.Snapshot]
	events   chan Event
	done     chan struct{}
	started  atomic.Bool
	metrics  *metrics.Session
	log      *zap.SugaredLogger

	poll time.Duration
	now  func() time.Time
}

var _ Session = (*Runner)(nil)

// NewRunner validates cfg and spawns the session. It does not start the
// clock; call Run.
func NewRunner(id string, cfg sim.Config, log *zap.SugaredLogger) (*Runner, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.With("session", id)
	sched, err := sim.NewScheduler(cfg, log)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		id:      id,
		sched:   sched,
		inputs:  input.NewQueue(config.RunnerInputBuffer),
		events:  make(chan Event, 1),
		done:    make(chan struct{}),
		metrics: &metrics.Session{},
		log:     log,
		poll:    config.RunnerPollInterval,
		now:     time.Now,
	}
	r.snapshot.Store(sched.Snapshot())
	return r, nil
}

func (r *Runner) ID() string { return r.id }
func (r *Runner) Metrics() *metrics.Session { return r.metrics }

// Snapshot returns the latest published snapshot. Callers must not modify it.
func (r *Runner) Snapshot() *sim.Snapshot {
	return r.snapshot.Load()
}

// Events delivers the terminal-status event. It is closed when Run returns.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Send queues one input event without blocking. It reports false when the
// buffer is full and the event was dropped.
func (r *Runner) Send(ev input.Event) bool {
	if !r.inputs.Push(ev) {
		r.metrics.IncDropped()
		return false
	}
	r.metrics.IncAccepted()
	return true
}

// Run advances the session until ctx is cancelled or the session ends.
// A Runner runs once; later calls return immediately.
func (r *Runner) Run(ctx context.Context) {
	if !r.started.CompareAndSwap(false, true) {
		return
	}
	defer close(r.done)
	defer close(r.events)

	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()

	r.log.Infow("session started", "seed", r.sched.Seed())
	last := r.now()
	for {
		select {
		case <-ctx.Done():
			r.log.Infow("session stopped", "tick", r.Snapshot().Tick)
			return
		case <-ticker.C:
		}

		now := r.now()
		if r.step(now.Sub(last)) {
			snap := r.Snapshot()
			r.log.Infow("session ended",
				"status", snap.Status,
				"tick", snap.Tick,
				"kills", snap.Kills,
				"shots", snap.Shots,
			)
			r.events <- newEvent(snap)
			return
		}
		last = now
	}
}

// step feeds queued input and advances by dt. It reports whether the
// session has ended.
func (r *Runner) step(dt time.Duration) bool {
	r.buf = r.inputs.Drain(r.buf[:0])
	r.sched.PressAll(r.buf)

	start := time.Now()
	ticks := r.sched.Advance(dt)
	if ticks > 0 {
		r.metrics.AddTicks(ticks, time.Since(start).Nanoseconds())
	}
	// Auto-fire can change state between ticks, so publish on any shot too.
	snap := r.Snapshot()
	st := r.sched.State()
	if ticks > 0 || st.Shots != snap.Shots {
		snap = r.sched.Snapshot()
		r.snapshot.Store(snap)
		r.metrics.SetTotals(snap.Shots, snap.Kills)
	}
	return r.sched.Status().Terminal()
}
