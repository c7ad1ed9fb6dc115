package runtime

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/veld-dev/veld/pkg/dom"
	"github.com/veld-dev/veld/pkg/vdom"
)

// DebugMode enables dev-time validation such as hook order checking.
// Violations panic with a descriptive message instead of silently handing a
// hook another hook's slot.
var DebugMode = true

// hookKind identifies the hook behind a slot, for order validation.
type hookKind uint8

const (
	hookState hookKind = iota + 1
	hookRef
	hookMemo
	hookEffect
	hookLayoutEffect
	hookAsync
	hookThrottle
	hookDebounce
	hookContext
	hookCache
)

func (h hookKind) String() string {
	switch h {
	case hookState:
		return "UseState"
	case hookRef:
		return "UseRef"
	case hookMemo:
		return "UseMemo"
	case hookEffect:
		return "UseEffect"
	case hookLayoutEffect:
		return "UseLayoutEffect"
	case hookAsync:
		return "UseAsync"
	case hookThrottle:
		return "UseThrottle"
	case hookDebounce:
		return "UseDebounce"
	case hookContext:
		return "UseContext"
	case hookCache:
		return "UseCache"
	default:
		return "Unknown"
	}
}

var scopeIDCounter atomic.Uint64

// Scope is the per-component instance the hooks runtime hangs state off.
// Each mounted component gets one; it survives re-renders and is disposed
// when the component unmounts. Scopes form a hierarchy mirroring the
// component tree, and child scopes are reused across parent re-renders by
// render-order position plus component identity, so child hook state
// survives a parent update.
type Scope struct {
	id     uint64
	app    *App
	parent *Scope

	// Component identity for child reuse.
	fn    vdom.ComponentFunc
	comp  vdom.Component
	props vdom.Props

	// Slot table, indexed by hook call order.
	slots   []any
	slotIdx int

	// Hook order validation (DebugMode only).
	hookOrder []hookKind
	hookIdx   int
	renders   int

	// Persistent child scopes in render order.
	children    []*Scope
	childCursor int

	// cleanups run in reverse order on dispose.
	cleanups []func()

	// values holds context provider values set by this scope.
	values map[any]any

	// nodes are the materialized root nodes of the last render. Never
	// empty while mounted: an empty render leaves a text anchor.
	nodes []dom.Node

	disposed      bool
	renderQueued  bool
	mountNotified bool
}

func newScope(app *App, parent *Scope, v *vdom.VNode) *Scope {
	s := &Scope{
		id:     scopeIDCounter.Add(1),
		app:    app,
		parent: parent,
	}
	if v != nil {
		s.fn = v.Fn
		s.comp = v.Comp
		s.props = v.Props
	}
	return s
}

// ID returns the scope's unique id.
func (s *Scope) ID() uint64 { return s.id }

// Parent returns the parent scope, nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// IsDisposed reports whether the scope has been unmounted.
func (s *Scope) IsDisposed() bool { return s.disposed }

// App returns the owning application.
func (s *Scope) App() *App { return s.app }

// startRender resets the slot cursor. Hook identity is call order, so every
// render must walk the table from the top.
func (s *Scope) startRender() {
	s.slotIdx = 0
	s.childCursor = 0
	s.values = nil // providers re-provide on every render
	if DebugMode {
		s.hookIdx = 0
	}
}

// endRender validates that the render used the same number of hooks as the
// first one.
func (s *Scope) endRender() {
	if !DebugMode {
		return
	}
	if s.renders == 0 {
		s.renders = 1
	} else if s.hookIdx < len(s.hookOrder) {
		panic(fmt.Sprintf("veld: hook order changed in %s: expected %d hooks, got %d",
			s.name(), len(s.hookOrder), s.hookIdx))
	}
}

// finishChildren disposes children the render did not claim again
// (conditionally rendered components that disappeared). Runs after the
// output tree is materialized, since children are claimed during build.
func (s *Scope) finishChildren() {
	for _, c := range s.children[s.childCursor:] {
		c.dispose()
	}
	s.children = s.children[:s.childCursor]
}

// trackHook validates call order against the first render.
func (s *Scope) trackHook(k hookKind) {
	if !DebugMode {
		return
	}
	if s.renders == 0 {
		s.hookOrder = append(s.hookOrder, k)
	} else {
		if s.hookIdx >= len(s.hookOrder) {
			panic(fmt.Sprintf("veld: hook order changed in %s: extra %s at index %d",
				s.name(), k, s.hookIdx))
		}
		if expected := s.hookOrder[s.hookIdx]; expected != k {
			panic(fmt.Sprintf("veld: hook order changed in %s at index %d: expected %s, got %s",
				s.name(), s.hookIdx, expected, k))
		}
	}
	s.hookIdx++
}

// slot returns the stored cell for the current hook call, advancing the
// cursor. On the first render it stores the value produced by init.
func (s *Scope) slot(k hookKind, init func() any) any {
	s.trackHook(k)
	idx := s.slotIdx
	s.slotIdx++

	if idx < len(s.slots) {
		return s.slots[idx]
	}
	cell := init()
	s.slots = append(s.slots, cell)
	return cell
}

// onCleanup registers fn to run at dispose. On a disposed scope it runs
// immediately.
func (s *Scope) onCleanup(fn func()) {
	if s.disposed {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

// claimChild reuses or creates the child scope for a component node at the
// current render position. A different component at the same position
// disposes the old scope and starts fresh.
func (s *Scope) claimChild(v *vdom.VNode) *Scope {
	idx := s.childCursor
	s.childCursor++

	if idx < len(s.children) {
		c := s.children[idx]
		if c.sameIdentity(v) {
			c.props = v.Props
			return c
		}
		c.dispose()
		nc := newScope(s.app, s, v)
		s.children[idx] = nc
		return nc
	}

	nc := newScope(s.app, s, v)
	s.children = append(s.children, nc)
	return nc
}

// sameIdentity reports whether the node is the same component this scope
// was created for: same function pointer, or the same component value.
func (s *Scope) sameIdentity(v *vdom.VNode) bool {
	if v.Fn != nil {
		return s.fn != nil && funcPtr(s.fn) == funcPtr(v.Fn)
	}
	if v.Comp != nil {
		return s.comp != nil && identical(s.comp, v.Comp)
	}
	return false
}

func funcPtr(fn vdom.ComponentFunc) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// dispose unmounts the scope: children first (reverse order), then cleanup
// functions in reverse registration order. Idempotent.
func (s *Scope) dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	if w, ok := s.comp.(WillUnmount); ok {
		w.WillUnmount()
	}

	for i := len(s.children) - 1; i >= 0; i-- {
		s.children[i].dispose()
	}
	s.children = nil

	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
	s.slots = nil
	s.values = nil
}

func (s *Scope) name() string {
	switch {
	case s.comp != nil:
		return fmt.Sprintf("%T", s.comp)
	case s.fn != nil:
		return "component func"
	default:
		return "root"
	}
}

// Mounted is implemented by components that want a callback after their
// nodes are attached to the document.
type Mounted interface {
	DidMount()
}

// WillUnmount is implemented by components that want a callback right
// before their scope is disposed.
type WillUnmount interface {
	WillUnmount()
}
