// Package metrics keeps per-session counters for monitoring.
package metrics

import "sync/atomic"

// Session counts what one running session has done. All methods are safe
// for concurrent use.
type Session struct {
	ticks          atomic.Int64
	totalTickNs    atomic.Int64
	shots          atomic.Int64
	kills          atomic.Int64
	inputsAccepted atomic.Int64
	inputsDropped  atomic.Int64
}

func (m *Session) IncAccepted() { m.inputsAccepted.Add(1) }
func (m *Session) IncDropped() { m.inputsDropped.Add(1) }

// AddTicks records n ticks that together took ns nanoseconds of wall time.
func (m *Session) AddTicks(n int, ns int64) {
	if n <= 0 {
		return
	}
	m.ticks.Add(int64(n))
	m.totalTickNs.Add(ns)
}

// SetTotals stores the session's running shot and kill totals.
func (m *Session) SetTotals(shots, kills int) {
	m.shots.Store(int64(shots))
	m.kills.Store(int64(kills))
}

// Snapshot returns a read-only copy for HTTP output.
func (m *Session) Snapshot() map[string]any {
	ticks := m.ticks.Load()
	total := m.totalTickNs.Load()
	var avgMs float64
	if ticks > 0 {
		avgMs = float64(total) / float64(ticks) / 1e6
	}
	return map[string]any{
		"tick_count":      ticks,
		"shots":           m.shots.Load(),
		"kills":           m.kills.Load(),
		"inputs_accepted": m.inputsAccepted.Load(),
		"inputs_dropped":  m.inputsDropped.Load(),
		"avg_tick_ms":     avgMs,
	}
}
