package runtime

import (
	"time"
)

type throttleCell[T any] struct {
	committed  T
	pending    T
	hasPending bool
	lastCommit time.Time
	cancel     func()
	ran        bool
}

// UseThrottle returns a trailing-edge throttled copy of value: it commits a
// new value immediately when at least delay has passed since the last
// commit, and otherwise holds the latest value until the delay window
// closes. At most one commit happens per window no matter how often the
// input changes.
func UseThrottle[T any](value T, delay time.Duration) T {
	s := mustScope()
	l := s.app.loop
	cell := s.slot(hookThrottle, func() any { return &throttleCell[T]{} }).(*throttleCell[T])

	if !cell.ran {
		cell.ran = true
		cell.committed = value
		cell.lastCommit = l.Now()
		s.onCleanup(func() {
			if cell.cancel != nil {
				cell.cancel()
			}
		})
		return cell.committed
	}

	if identical(value, cell.committed) && !cell.hasPending {
		return cell.committed
	}

	now := l.Now()
	if elapsed := now.Sub(cell.lastCommit); elapsed >= delay {
		cell.committed = value
		cell.lastCommit = now
		cell.hasPending = false
		if cell.cancel != nil {
			cell.cancel()
			cell.cancel = nil
		}
		return cell.committed
	}

	cell.pending = value
	cell.hasPending = true
	if cell.cancel == nil {
		wait := delay - now.Sub(cell.lastCommit)
		cell.cancel = l.After(wait, func() {
			cell.cancel = nil
			if s.disposed || !cell.hasPending {
				return
			}
			cell.committed = cell.pending
			cell.hasPending = false
			cell.lastCommit = l.Now()
			s.app.invalidate(s)
		})
	}
	return cell.committed
}

type debounceCell[T any] struct {
	committed T
	cancel    func()
	last      T
	ran       bool
}

// UseDebounce returns a debounced copy of value: the committed value only
// catches up once the input has been stable for delay. Every change resets
// the timer, so a stream of rapid changes commits exactly once, with the
// final value.
func UseDebounce[T any](value T, delay time.Duration) T {
	s := mustScope()
	l := s.app.loop
	cell := s.slot(hookDebounce, func() any { return &debounceCell[T]{} }).(*debounceCell[T])

	if !cell.ran {
		cell.ran = true
		cell.committed = value
		cell.last = value
		s.onCleanup(func() {
			if cell.cancel != nil {
				cell.cancel()
			}
		})
		return cell.committed
	}

	if identical(value, cell.last) {
		return cell.committed
	}
	cell.last = value

	if cell.cancel != nil {
		cell.cancel()
	}
	pending := value
	cell.cancel = l.After(delay, func() {
		cell.cancel = nil
		if s.disposed {
			return
		}
		cell.committed = pending
		s.app.invalidate(s)
	})
	return cell.committed
}
