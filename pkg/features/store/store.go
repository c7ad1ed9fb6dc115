package store

import (
	"errors"
	"sync"
)

// ErrEmptyActionType is returned by Dispatch for an action with no type.
var ErrEmptyActionType = errors.New("store: action type must not be empty")

// Action describes a state change. Type identifies the change; Payload
// carries its data.
type Action struct {
	Type    string
	Payload any
}

// NewAction builds an action.
func NewAction(typ string, payload any) Action {
	return Action{Type: typ, Payload: payload}
}

// Reducer computes the next state from the current state and an action.
// Reducers must not mutate the state they receive.
type Reducer[S any] func(state S, action Action) S

// Dispatch sends an action through the store.
type Dispatch func(Action) error

// Middleware wraps dispatch. It receives the store and the next dispatcher
// in the chain and returns its replacement.
type Middleware[S any] func(s *Store[S], next Dispatch) Dispatch

// Store holds application state changed only through dispatched actions.
// It is safe for concurrent use.
type Store[S any] struct {
	mu      sync.Mutex
	state   S
	reducer Reducer[S]

	dispatch Dispatch

	subs    map[int]func(S)
	nextSub int
}

// New creates a store. Middleware composes right to left, so the first
// middleware listed sees every action first.
func New[S any](reducer Reducer[S], initial S, middleware ...Middleware[S]) *Store[S] {
	if reducer == nil {
		panic("store: reducer is required")
	}
	s := &Store[S]{
		state:   initial,
		reducer: reducer,
		subs:    make(map[int]func(S)),
	}

	d := s.apply
	for i := len(middleware) - 1; i >= 0; i-- {
		d = middleware[i](s, d)
	}
	s.dispatch = d
	return s
}

// GetState returns the current state.
func (s *Store[S]) GetState() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch runs an action through the middleware chain and the reducer,
// then notifies subscribers. Actions without a type are rejected before
// any middleware runs.
func (s *Store[S]) Dispatch(action Action) error {
	if action.Type == "" {
		return ErrEmptyActionType
	}
	return s.dispatch(action)
}

// apply is the innermost dispatcher: reduce, then notify.
func (s *Store[S]) apply(action Action) error {
	s.mu.Lock()
	s.state = s.reducer(s.state, action)
	next := s.state
	listeners := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return nil
}

// Subscribe registers a listener called after every state change. The
// returned function removes it; calling it twice is harmless.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// CombineReducers builds a reducer over a keyed state map. Every action
// goes to every slice reducer; each owns the state under its key.
func CombineReducers(reducers map[string]Reducer[any]) Reducer[map[string]any] {
	return func(state map[string]any, action Action) map[string]any {
		next := make(map[string]any, len(reducers))
		for key, reduce := range reducers {
			next[key] = reduce(state[key], action)
		}
		return next
	}
}
