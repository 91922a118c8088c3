package core

import "time"

// DefaultMaxFrameDelta caps a single frame step at 1/30 s.
const DefaultMaxFrameDelta = time.Second / 30

// FrameClock turns monotonic frame timestamps into clamped step deltas.
// A long gap (suspended terminal, slow frame) never produces a step longer
// than MaxDelta, which bounds tunneling through thin platforms.
type FrameClock struct {
	MaxDelta time.Duration
	last     time.Time
	started  bool
}

// NewFrameClock creates a clock with the given cap.
// A non-positive cap falls back to DefaultMaxFrameDelta.
func NewFrameClock(maxDelta time.Duration) *FrameClock {
	if maxDelta <= 0 {
		maxDelta = DefaultMaxFrameDelta
	}
	return &FrameClock{MaxDelta: maxDelta}
}

// Delta records now and returns the clamped time since the previous call.
// The first call after construction or Reset returns zero.
func (c *FrameClock) Delta(now time.Time) time.Duration {
	if !c.started {
		c.last = now
		c.started = true
		return 0
	}
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		return 0
	}
	if d > c.MaxDelta {
		return c.MaxDelta
	}
	return d
}

// Reset forgets the previous timestamp so the next frame starts fresh.
func (c *FrameClock) Reset() {
	c.started = false
}
