package core

import "time"

// DefaultTickInterval is the fixed simulation step used by the viewer and
// the headless runner.
const DefaultTickInterval = 15 * time.Millisecond

// RuntimeConfig contains configuration passed to a session at initialization.
// Sessions use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Fixed simulation step
	Seed         int64         // RNG seed for deterministic simulation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickInterval: DefaultTickInterval,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// DT returns the tick interval in seconds, falling back to the default.
func (c RuntimeConfig) DT() float64 {
	if c.TickInterval <= 0 {
		return DefaultTickInterval.Seconds()
	}
	return c.TickInterval.Seconds()
}

// SessionState represents the current state of a sandbox session.
// Returned by Session.State() to communicate status to the platform.
type SessionState struct {
	Tick       uint64 // Ticks simulated so far
	Health     float64
	Food       float64
	MobsKilled int
	Dead       bool // Whether the player has died
	Paused     bool // Whether the session is paused
}

// StepResult is returned by Session.Step() after each simulation tick.
type StepResult struct {
	State SessionState
}
