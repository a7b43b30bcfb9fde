// Package config centralizes the host-side tunables. Simulation parameters
// live in sim.Config.
package config

import "time"

// Terminal render area. Larger terminals get a centered, bordered canvas.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Runner pacing. The runner wakes this often and advances the scheduler by
// the wall time that actually elapsed.
const (
	RunnerPollInterval = 5 * time.Millisecond
	RunnerInputBuffer  = 256
)

// Shutdown
const (
	ShutdownDisplayTime = 10 * time.Second
	ShutdownGracePeriod = 15 * time.Second
)
