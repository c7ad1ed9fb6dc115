package runtime

import (
	"context"
	"fmt"
)

// Async is the observable state of a UseAsync fetch.
type Async[T any] struct {
	Loading bool
	Data    T
	Err     error
}

type asyncCell[T any] struct {
	deps   []any
	state  Async[T]
	fetchID uint64
	cancel context.CancelFunc
	ran    bool
}

// UseAsync runs fetch on a separate goroutine and re-renders the component
// when it settles. The fetch restarts whenever a dependency changes; each
// start bumps a fetch id and cancels the previous context, and a resolution
// carrying a stale id is dropped, so an earlier slow fetch can never
// overwrite a later one. Resolutions arriving after unmount are discarded.
func UseAsync[T any](fetch func(ctx context.Context) (T, error), deps []any) Async[T] {
	s := mustScope()
	cell := s.slot(hookAsync, func() any { return &asyncCell[T]{} }).(*asyncCell[T])

	if cell.ran && !depsChanged(cell.deps, deps) {
		return cell.state
	}
	cell.deps = deps

	if !cell.ran {
		cell.ran = true
		s.onCleanup(func() {
			if cell.cancel != nil {
				cell.cancel()
			}
		})
	}

	if cell.cancel != nil {
		cell.cancel()
	}

	cell.fetchID++
	id := cell.fetchID
	ctx, cancel := context.WithCancel(context.Background())
	cell.cancel = cancel

	cell.state = Async[T]{Loading: true, Data: cell.state.Data}

	go func() {
		data, err := safeFetch(fetch, ctx)
		s.app.loop.Dispatch(func() {
			// Drop stale or orphaned resolutions.
			if s.disposed || id != cell.fetchID {
				return
			}
			cell.state = Async[T]{Data: data, Err: err}
			s.app.invalidate(s)
		})
	}()

	return cell.state
}

func safeFetch[T any](fetch func(ctx context.Context) (T, error), ctx context.Context) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("veld: async fetch panicked: %v", r)
		}
	}()
	return fetch(ctx)
}
