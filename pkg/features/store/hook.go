package store

import (
	"github.com/veld-dev/veld/pkg/runtime"
)

// UseStore subscribes the current component to a store and returns the
// current state together with the store's dispatcher. The component
// re-renders on every dispatch that changes state; the subscription is
// removed when the component unmounts.
func UseStore[S any](s *Store[S]) (S, Dispatch) {
	state, set := runtime.UseState(s.GetState())

	runtime.UseEffect(func() runtime.Cleanup {
		unsub := s.Subscribe(func(next S) {
			set(next)
		})
		return runtime.Cleanup(unsub)
	}, []any{s})

	return state, s.Dispatch
}
