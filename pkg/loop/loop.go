// Package loop provides the single-threaded scheduler the runtime runs on.
//
// All rendering, hook bodies, event handlers and timer callbacks execute on
// the loop, one at a time. Tasks run in FIFO order; the microtask queue
// drains completely after each task; frame callbacks run once the task and
// microtask queues are empty. External goroutines hand work to the loop via
// Dispatch, which serializes it with everything else.
package loop

import (
	"sync"
	"time"
)

// Loop is the scheduler. The zero value is not usable; create one with New.
type Loop struct {
	mu       sync.Mutex
	tasks    []func()
	micro    []func()
	frames   []func()
	draining bool
	clock    Clock
}

// New creates a loop over the given clock. A nil clock means RealClock.
func New(clock Clock) *Loop {
	if clock == nil {
		clock = RealClock{}
	}
	return &Loop{clock: clock}
}

// Clock returns the loop's clock.
func (l *Loop) Clock() Clock { return l.clock }

// Now returns the loop clock's current time.
func (l *Loop) Now() time.Time { return l.clock.Now() }

// Dispatch runs fn on the loop. If the loop is idle the call drains the
// queue synchronously on the calling goroutine; if work is already running
// (including a Dispatch from inside a task) fn is queued and runs when the
// current task finishes.
func (l *Loop) Dispatch(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	if l.draining {
		l.mu.Unlock()
		return
	}
	l.draining = true
	l.mu.Unlock()
	l.drain()
}

// Microtask queues fn to run when the current task completes. Outside a
// task it runs immediately.
func (l *Loop) Microtask(fn func()) {
	l.mu.Lock()
	l.micro = append(l.micro, fn)
	if l.draining {
		l.mu.Unlock()
		return
	}
	l.draining = true
	l.mu.Unlock()
	l.drain()
}

// RequestFrame queues fn to run after the task and microtask queues drain.
// Frame callbacks registered during the same cycle run together, which is
// what coalesces batched state updates into a single render.
func (l *Loop) RequestFrame(fn func()) {
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	if l.draining {
		l.mu.Unlock()
		return
	}
	l.draining = true
	l.mu.Unlock()
	l.drain()
}

// After schedules fn to run on the loop after d. The returned function
// cancels the timer if it has not fired.
func (l *Loop) After(d time.Duration, fn func()) (cancel func()) {
	t := l.clock.AfterFunc(d, func() {
		l.Dispatch(fn)
	})
	return func() { t.Stop() }
}

// drain runs queued work until everything settles: each task is followed by
// a full microtask drain, and frames fire once both queues are empty.
func (l *Loop) drain() {
	for {
		l.mu.Lock()
		var fn func()
		switch {
		case len(l.micro) > 0:
			fn = l.micro[0]
			l.micro = l.micro[1:]
		case len(l.tasks) > 0:
			fn = l.tasks[0]
			l.tasks = l.tasks[1:]
		case len(l.frames) > 0:
			// Take the whole frame batch; callbacks queued by a frame
			// callback run in the next cycle.
			batch := l.frames
			l.frames = nil
			l.mu.Unlock()
			for _, f := range batch {
				f()
			}
			continue
		default:
			l.draining = false
			l.mu.Unlock()
			return
		}
		l.mu.Unlock()
		fn()
	}
}
