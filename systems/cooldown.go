package systems

import "time"

// Cooldown gates spawn requests in time. Clock values are durations since game start.
//
// States: Idle and OnCooldown. TryStart moves Idle to OnCooldown; Poll, called once
// per frame, moves OnCooldown back to Idle once the clock reaches the end timestamp.
type Cooldown struct {
	active   bool
	start    time.Duration
	end      time.Duration
	duration time.Duration
}

// TryStart begins a cooldown of the given duration at now.
// Returns false without changing anything if a cooldown is already running.
// The duration is fixed here; later speed upgrades do not shorten it.
func (c *Cooldown) TryStart(now, duration time.Duration) bool {
	if c.Active(now) {
		return false
	}
	c.active = true
	c.start = now
	c.duration = duration
	c.end = now + duration
	return true
}

// Poll evaluates the expiry transition. Returns true exactly once per cooldown,
// on the frame the scheduler becomes Idle.
func (c *Cooldown) Poll(now time.Duration) bool {
	if c.active && now >= c.end {
		c.active = false
		return true
	}
	return false
}

// Active reports whether now is before the end timestamp of the last cooldown.
func (c *Cooldown) Active(now time.Duration) bool {
	return c.active && now < c.end
}

// Fraction returns the elapsed share of the running cooldown in [0,1]; 1 when idle.
func (c *Cooldown) Fraction(now time.Duration) float64 {
	if !c.Active(now) || c.duration <= 0 {
		return 1
	}
	f := float64(now-c.start) / float64(c.duration)
	if f < 0 {
		return 0
	}
	return f
}

// Remaining returns the time left on the running cooldown; 0 when idle.
func (c *Cooldown) Remaining(now time.Duration) time.Duration {
	if !c.Active(now) {
		return 0
	}
	return c.end - now
}

// Duration returns the length fixed when the current or last cooldown started.
func (c *Cooldown) Duration() time.Duration {
	return c.duration
}
