package timing

import "github.com/milk9111/platformer/engine"

// Clock is a frame-driven scheduler for deferred callbacks. Nothing runs
// until Update is called, so callbacks always re-enter from the tick.
type Clock struct {
	now    float64
	timers []*Timer
}

// NewClock returns a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Timer is a handle to a scheduled callback.
type Timer struct {
	due       float64
	period    float64
	fn        func()
	cancelled bool
	fired     bool
}

// Cancel stops the timer. Cancelling a fired or cancelled timer is a no-op.
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Active reports whether the timer can still fire.
func (t *Timer) Active() bool {
	if t == nil {
		return false
	}
	return !t.cancelled && !(t.fired && t.period == 0)
}

// Now returns the accumulated time in milliseconds.
func (c *Clock) Now() float64 {
	if c == nil {
		return 0
	}
	return c.now
}

// After schedules fn once, ms milliseconds from now.
func (c *Clock) After(ms float64, fn func()) engine.Timer {
	return c.schedule(ms, 0, fn)
}

// Every schedules fn every ms milliseconds until cancelled.
func (c *Clock) Every(ms float64, fn func()) engine.Timer {
	if ms <= 0 {
		ms = 1
	}
	return c.schedule(ms, ms, fn)
}

func (c *Clock) schedule(ms, period float64, fn func()) *Timer {
	if ms < 0 {
		ms = 0
	}
	t := &Timer{due: c.now + ms, period: period, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Update advances time and runs every due callback. Timers scheduled by a
// callback are first considered on the next Update.
func (c *Clock) Update(deltaMs float64) {
	if c == nil {
		return
	}
	c.now += deltaMs
	current := c.timers
	c.timers = nil

	keep := current[:0]
	for _, t := range current {
		for !t.cancelled && t.due <= c.now {
			t.fired = true
			if t.fn != nil {
				t.fn()
			}
			if t.period == 0 {
				break
			}
			t.due += t.period
		}
		if t.Active() {
			keep = append(keep, t)
		}
	}
	c.timers = append(keep, c.timers...)
}

// Pending returns the number of live timers.
func (c *Clock) Pending() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, t := range c.timers {
		if t.Active() {
			n++
		}
	}
	return n
}

// Reset drops every timer without running it.
func (c *Clock) Reset() {
	if c == nil {
		return
	}
	for _, t := range c.timers {
		t.cancelled = true
	}
	c.timers = nil
}
