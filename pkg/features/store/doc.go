// Package store provides a reducer-based state container.
//
// State changes only through dispatched actions: a reducer computes the
// next state, middleware wraps dispatch for cross-cutting concerns, and
// subscribers are notified after every change.
//
// Usage:
//
//	counter := store.New(func(n int, a store.Action) int {
//	    switch a.Type {
//	    case "increment":
//	        return n + 1
//	    }
//	    return n
//	}, 0)
//
//	unsub := counter.Subscribe(func(n int) { ... })
//	counter.Dispatch(store.NewAction("increment", nil))
//
// Components bridge store state into renders with UseStore, which
// returns the state and the dispatcher, subscribes on mount, and
// unsubscribes on unmount.
package store
