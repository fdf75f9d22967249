package sketch

import (
	"math"
	"time"
)

// Clock turns wall-clock instants into per-frame render props.
// Paused time does not count towards Time and does not advance Frame.
type Clock struct {
	Duration float64

	elapsed float64
	last    time.Time
	frame   int
	paused  bool
}

func NewClock(duration float64) *Clock {
	return &Clock{Duration: duration}
}

// Tick advances the clock to now. The first tick reports time zero.
func (c *Clock) Tick(now time.Time) RenderProps {
	if c.last.IsZero() {
		c.last = now
	}
	var delta float64
	if !c.paused {
		delta = now.Sub(c.last).Seconds()
		c.elapsed += delta
	}
	c.last = now

	props := RenderProps{Time: c.elapsed, DeltaTime: delta, Frame: c.frame}
	if c.Duration > 0 {
		props.Time = math.Mod(c.elapsed, c.Duration)
		props.Playhead = props.Time / c.Duration
	}
	if !c.paused {
		c.frame++
	}
	return props
}

func (c *Clock) Paused() bool { return c.paused }

// TogglePause flips the paused state and returns the new state
func (c *Clock) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}
