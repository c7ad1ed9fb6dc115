package runtime

import (
	"github.com/veld-dev/veld/pkg/loop"
)

// Setter updates a state slot and re-renders the owning component. A call
// with a value reference-equal to the stored one stores nothing and skips
// the re-render. A setter invoked while a render is already executing
// queues the re-render on a microtask instead of nesting. Setters on a
// disposed scope are no-ops.
type Setter[T any] func(T)

type stateCell struct {
	value any
}

// UseState declares a state slot on the current component. The slot is
// identified by call order: the Nth UseState call in a component always
// addresses the Nth slot. It returns the current value and a setter.
func UseState[T any](initial T) (T, Setter[T]) {
	s := mustScope()
	cell := s.slot(hookState, func() any {
		return &stateCell{value: initial}
	}).(*stateCell)

	set := func(v T) {
		if s.disposed {
			return
		}
		if identical(cell.value, v) {
			return
		}
		cell.value = v
		s.app.invalidate(s)
	}
	return cell.value.(T), set
}

// UseReducer is UseState driven by an update function: the setter applies
// fn to the current value.
func UseReducer[T any](initial T) (T, func(func(T) T)) {
	value, set := UseState(initial)
	s := mustScope()
	cell := s.slots[s.slotIdx-1].(*stateCell)
	update := func(fn func(T) T) {
		set(fn(cell.value.(T)))
	}
	return value, update
}

// Ref is a mutable box that survives re-renders without triggering them.
type Ref[T any] struct {
	Current T
}

// UseRef returns a stable mutable reference for the current slot. Writing
// Current never causes a re-render.
func UseRef[T any](initial T) *Ref[T] {
	s := mustScope()
	return s.slot(hookRef, func() any {
		return &Ref[T]{Current: initial}
	}).(*Ref[T])
}

type memoCell struct {
	deps  []any
	value any
	ran   bool
}

// UseMemo caches a computed value, recomputing eagerly whenever a
// dependency changes by reference identity. The returned value is always
// current for this render; there is no one-render lag.
func UseMemo[T any](compute func() T, deps []any) T {
	s := mustScope()
	cell := s.slot(hookMemo, func() any { return &memoCell{} }).(*memoCell)

	if !cell.ran || depsChanged(cell.deps, deps) {
		cell.value = compute()
		cell.deps = deps
		cell.ran = true
	}
	return cell.value.(T)
}

// UseCallback returns a stable function identity until a dependency
// changes. Useful when a child's props should not churn every render.
func UseCallback[T any](fn T, deps []any) T {
	return UseMemo(func() T { return fn }, deps)
}

// Cleanup tears down what an effect set up. Effects may return nil.
type Cleanup func()

type effectCell struct {
	deps    []any
	cleanup Cleanup
	ran     bool
	hooked  bool
}

// UseEffect runs fn synchronously at hook-call time when the dependency
// list changes (always on the first render). The previous cleanup, if any,
// runs first. The final cleanup runs when the component unmounts. An empty
// non-nil deps list runs the effect exactly once; a nil list runs it every
// render.
func UseEffect(fn func() Cleanup, deps []any) {
	s := mustScope()
	cell := s.slot(hookEffect, func() any { return &effectCell{} }).(*effectCell)
	runEffect(s, cell, fn, deps, false)
}

// UseLayoutEffect is UseEffect with the body deferred until the render
// commits: it runs after the new nodes are in the document, before control
// returns to whoever triggered the render.
func UseLayoutEffect(fn func() Cleanup, deps []any) {
	s := mustScope()
	cell := s.slot(hookLayoutEffect, func() any { return &effectCell{} }).(*effectCell)
	runEffect(s, cell, fn, deps, true)
}

func runEffect(s *Scope, cell *effectCell, fn func() Cleanup, deps []any, deferred bool) {
	if !cell.hooked {
		cell.hooked = true
		s.onCleanup(func() {
			if cell.cleanup != nil {
				cell.cleanup()
				cell.cleanup = nil
			}
		})
	}

	if cell.ran && !depsChanged(cell.deps, deps) {
		return
	}
	cell.deps = deps
	cell.ran = true

	fire := func() {
		if s.disposed {
			return
		}
		if cell.cleanup != nil {
			cell.cleanup()
			cell.cleanup = nil
		}
		cell.cleanup = fn()
	}

	if deferred {
		s.app.deferPostRender(fire)
	} else {
		fire()
	}
}

// UseLoop returns the loop the current component runs on.
func UseLoop() *loop.Loop {
	return mustScope().app.loop
}

// UseScope exposes the current scope. Intended for infrastructure such as
// the lifecycle wrapper; application code normally has no use for it.
func UseScope() *Scope {
	return mustScope()
}

// OnCleanup registers fn to run when the current component unmounts.
func OnCleanup(fn func()) {
	mustScope().onCleanup(fn)
}

// UseInvalidate returns a function that re-renders the current component.
// Infrastructure for components whose state lives outside the slot table,
// such as the lifecycle wrapper; after unmount it is a no-op.
func UseInvalidate() func() {
	s := mustScope()
	return func() {
		if s.disposed {
			return
		}
		s.app.invalidate(s)
	}
}
