// Package veld provides the public API for the Veld UI library.
//
// This is the recommended import for most applications:
//
//	import "github.com/veld-dev/veld"
//
// Usage:
//
//	app := veld.NewApp()
//	root, err := app.Mount(Counter, doc.GetElementByID("app"))
//
//	func Counter(veld.Props) *veld.VNode {
//	    count, setCount := veld.UseState(0)
//	    return Div(
//	        Button(OnClick(func() { setCount(count + 1) }), Textf("%d", count)),
//	    )
//	}
package veld

import (
	"context"
	"time"

	"github.com/veld-dev/veld/pkg/cache"
	"github.com/veld-dev/veld/pkg/dom"
	"github.com/veld-dev/veld/pkg/features/store"
	"github.com/veld-dev/veld/pkg/loop"
	"github.com/veld-dev/veld/pkg/router"
	"github.com/veld-dev/veld/pkg/runtime"
	"github.com/veld-dev/veld/pkg/vdom"
)

// =============================================================================
// Virtual DOM (re-export from pkg/vdom)
// =============================================================================

// VNode represents a virtual DOM node.
type VNode = vdom.VNode

// Props holds attributes, event handlers, and component inputs.
type Props = vdom.Props

// Component is anything that can render to a VNode.
type Component = vdom.Component

// ComponentFunc is a render function taking props.
type ComponentFunc = vdom.ComponentFunc

// VKind is the node type discriminator.
type VKind = vdom.VKind

// VKind constants
const (
	KindElement   = vdom.KindElement
	KindText      = vdom.KindText
	KindFragment  = vdom.KindFragment
	KindComponent = vdom.KindComponent
	KindRaw       = vdom.KindRaw
)

// CreateElement builds a virtual node from a tag name, component
// function, or Component value.
var CreateElement = vdom.CreateElement

// MustCreateElement is CreateElement that panics on invalid input.
var MustCreateElement = vdom.MustCreateElement

// Text creates a text node.
var Text = vdom.Text

// Textf creates a formatted text node.
var Textf = vdom.Textf

// Fragment groups children without a wrapping element.
var Fragment = vdom.Fragment

// =============================================================================
// Runtime (re-export from pkg/runtime)
// =============================================================================

// App drives rendering for mounted component trees.
type App = runtime.App

// Root is a mounted component tree.
type Root = runtime.Root

// Scope tracks one component instance's hook state.
type Scope = runtime.Scope

// Setter updates a UseState slot and schedules a re-render.
type Setter[T any] = runtime.Setter[T]

// Cleanup undoes an effect.
type Cleanup = runtime.Cleanup

// Ref is a mutable box that survives re-renders.
type Ref[T any] = runtime.Ref[T]

// Async is the state of an async fetch.
type Async[T any] = runtime.Async[T]

// NewApp creates an App running on a real-time loop.
func NewApp() *App {
	return runtime.NewApp(loop.New(loop.RealClock{}))
}

// NewAppWithLoop creates an App on a caller-controlled loop, which tests
// use with a fake clock.
func NewAppWithLoop(l *loop.Loop) *App {
	return runtime.NewApp(l)
}

// SetErrorHandler installs a global handler for render errors.
var SetErrorHandler = runtime.SetErrorHandler

// Runtime errors.
var (
	ErrNoScope          = runtime.ErrNoScope
	ErrInvalidContainer = runtime.ErrInvalidContainer
	ErrInvalidComponent = runtime.ErrInvalidComponent
	ErrScopeDisposed    = runtime.ErrScopeDisposed
)

// =============================================================================
// Hooks (re-export from pkg/runtime)
// =============================================================================

// UseState returns a state slot's value and its setter.
func UseState[T any](initial T) (T, Setter[T]) {
	return runtime.UseState(initial)
}

// UseReducer returns a state slot updated through a function of the
// previous value.
func UseReducer[T any](initial T) (T, func(func(T) T)) {
	return runtime.UseReducer(initial)
}

// UseRef returns a mutable reference that does not trigger re-renders.
func UseRef[T any](initial T) *Ref[T] {
	return runtime.UseRef(initial)
}

// UseMemo recomputes a value only when deps change.
func UseMemo[T any](compute func() T, deps []any) T {
	return runtime.UseMemo(compute, deps)
}

// UseCallback memoizes a function value on deps.
func UseCallback[T any](fn T, deps []any) T {
	return runtime.UseCallback(fn, deps)
}

// UseEffect runs fn after render when deps change.
var UseEffect = runtime.UseEffect

// UseLayoutEffect runs fn synchronously during render commit.
var UseLayoutEffect = runtime.UseLayoutEffect

// UseAsync runs fetch when deps change and re-renders as it settles.
func UseAsync[T any](fetch func(ctx context.Context) (T, error), deps []any) Async[T] {
	return runtime.UseAsync(fetch, deps)
}

// UseThrottle limits how often a changing value propagates.
func UseThrottle[T any](value T, delay time.Duration) T {
	return runtime.UseThrottle(value, delay)
}

// UseDebounce delays a changing value until it settles.
func UseDebounce[T any](value T, delay time.Duration) T {
	return runtime.UseDebounce(value, delay)
}

// UseCache returns a component-scoped LRU cache.
func UseCache[K comparable, V any](maxSize int) *cache.LRU[K, V] {
	return runtime.UseCache[K, V](maxSize)
}

// OnCleanup registers a function to run when the component unmounts.
var OnCleanup = runtime.OnCleanup

// =============================================================================
// Context API (re-export from pkg/runtime)
// =============================================================================

// Context carries a value down the component tree.
type Context[T any] = runtime.Context[T]

// CreateContext creates a typed context with a default value.
func CreateContext[T any](def T, name ...string) *Context[T] {
	return runtime.CreateContext(def, name...)
}

// UseContext reads the nearest provided value for a context.
func UseContext[T any](c *Context[T]) T {
	return runtime.UseContext(c)
}

// =============================================================================
// Router (re-export from pkg/router)
// =============================================================================

// Router matches paths to components and swaps the mounted tree.
type Router = router.Router

// Params are captured route segments.
type Params = router.Params

// History abstracts the navigation stack.
type History = router.History

// NewRouter creates a router over an app and document.
var NewRouter = router.New

// =============================================================================
// Store (re-export from pkg/features/store)
// =============================================================================

// Store holds application state updated through dispatched actions.
type Store[S any] = store.Store[S]

// Action describes a state change.
type Action = store.Action

// Reducer computes the next state from an action.
type Reducer[S any] = store.Reducer[S]

// NewStore creates a store with optional middleware.
func NewStore[S any](reducer Reducer[S], initial S, middleware ...store.Middleware[S]) *Store[S] {
	return store.New(reducer, initial, middleware...)
}

// UseStore subscribes the component to a store, returning the current
// state and the store's dispatcher.
func UseStore[S any](s *Store[S]) (S, store.Dispatch) {
	return store.UseStore(s)
}

// =============================================================================
// DOM and cache
// =============================================================================

// Document is the in-memory document tree.
type Document = dom.Document

// Element is a live DOM element.
type Element = dom.Element

// NewDocument creates an empty document with a body.
var NewDocument = dom.NewDocument

// NewCache creates a standalone LRU cache.
func NewCache[K comparable, V any](maxSize int) *cache.LRU[K, V] {
	return cache.New[K, V](maxSize)
}
