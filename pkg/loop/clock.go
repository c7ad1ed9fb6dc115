package loop

import (
	"sync"
	"time"
)

// Clock abstracts time for the loop's timers. Production code uses
// RealClock; tests use FakeClock to step time deterministically.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules fn to run after d. The returned Timer can stop
	// the callback if it has not fired yet.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from firing.
	Stop() bool
}

// RealClock delegates to the time package.
type RealClock struct{}

// Now returns the current wall time.
func (RealClock) Now() time.Time { return time.Now() }

// AfterFunc schedules fn on a real timer.
func (RealClock) AfterFunc(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTimer struct {
	t *time.Timer
}

func (r realTimer) Stop() bool { return r.t.Stop() }

// FakeClock is a manually-advanced clock for tests. Timers fire only when
// Advance or Set moves time past their deadline.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

// NewFakeClock creates a fake clock starting at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Unix(1000000, 0)}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers a timer firing when the clock passes now+d.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, when: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and fires due timers in deadline order.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	c.fireDue()
}

// Set jumps the clock to a specific time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
	c.fireDue()
}

func (c *FakeClock) fireDue() {
	for {
		c.mu.Lock()
		var due *fakeTimer
		idx := -1
		for i, t := range c.timers {
			if t.stopped || t.when.After(c.now) {
				continue
			}
			if due == nil || t.when.Before(due.when) {
				due = t
				idx = i
			}
		}
		if due == nil {
			// Drop fired/stopped timers.
			live := c.timers[:0]
			for _, t := range c.timers {
				if !t.stopped && !t.fired {
					live = append(live, t)
				}
			}
			c.timers = live
			c.mu.Unlock()
			return
		}
		due.fired = true
		c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
		c.mu.Unlock()

		due.fn()
	}
}

// PendingTimers returns the number of live timers, for test assertions.
func (c *FakeClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type fakeTimer struct {
	clock   *FakeClock
	when    time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
