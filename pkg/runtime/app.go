package runtime

import (
	"fmt"
	"strings"

	"github.com/veld-dev/veld/pkg/dom"
	"github.com/veld-dev/veld/pkg/loop"
	"github.com/veld-dev/veld/pkg/vdom"
)

// App ties the renderer to a loop. All mounts and re-renders of an App run
// on its loop, one at a time.
type App struct {
	loop *loop.Loop

	// renderDepth > 0 while a render is executing. Setter calls arriving
	// during a render queue a microtask re-render instead of nesting.
	renderDepth int

	// pendingMounts collects scopes created during the current render pass
	// whose components want a DidMount callback once attached.
	pendingMounts []*Scope

	// postRender holds deferred layout effect bodies; queued holds scopes
	// whose setters fired mid-render. Both flush when the outermost render
	// commits.
	postRender []func()
	queued     []*Scope
}

// NewApp creates an App on the given loop. A nil loop gets a fresh
// real-clock loop.
func NewApp(l *loop.Loop) *App {
	if l == nil {
		l = loop.New(nil)
	}
	return &App{loop: l}
}

// Loop returns the app's scheduler.
func (app *App) Loop() *loop.Loop { return app.loop }

// Root is a mounted component tree. Unmount disposes its scopes and removes
// its nodes.
type Root struct {
	app       *App
	scope     *Scope
	container *dom.Element
}

// Scope returns the root component scope.
func (r *Root) Scope() *Scope { return r.scope }

// Unmount disposes the tree and removes its nodes from the container.
func (r *Root) Unmount() {
	r.app.loop.Dispatch(func() {
		for _, n := range r.scope.nodes {
			r.container.RemoveChild(n)
		}
		r.scope.dispose()
	})
}

// Mount renders a component into a container element, replacing the
// container's children. Accepted component shapes: a ComponentFunc (or bare
// func(Props) *VNode), a func() *VNode, a vdom.Component, or a pre-built
// *vdom.VNode.
//
// A nil container fails before any document mutation. Every later failure,
// including a panic during the first render, is caught, reported, and
// leaves the container showing a visible error indicator instead of a
// partially built tree; the error is also returned.
func (app *App) Mount(component any, container *dom.Element) (*Root, error) {
	if container == nil {
		return nil, ErrInvalidContainer
	}

	node, err := componentNode(component)
	if err != nil {
		app.showMountFailure(container, err)
		return nil, err
	}

	var root *Root
	var mountErr error
	app.loop.Dispatch(func() {
		scope := newScope(app, nil, node)
		app.renderDepth++
		nodes, rerr := app.runComponent(scope, node)
		app.renderDepth--
		if rerr != nil {
			scope.dispose()
			app.pendingMounts = nil
			app.postRender = nil
			app.queued = nil
			app.showMountFailure(container, rerr)
			mountErr = rerr
			return
		}

		container.Clear()
		for _, n := range nodes {
			container.AppendChild(n)
		}
		scope.nodes = nodes
		app.afterRender()

		root = &Root{app: app, scope: scope, container: container}
	})
	if mountErr != nil {
		return nil, mountErr
	}
	return root, nil
}

// showMountFailure swaps the container's contents for the fallback error
// indicator and reports the error.
func (app *App) showMountFailure(container *dom.Element, err error) {
	reportError(err)
	container.Clear()
	container.AppendChild(ErrorIndicator(err))
}

// ErrorIndicator builds the fallback element shown when a mount fails.
func ErrorIndicator(err error) *dom.Element {
	el := dom.NewElement("div")
	el.SetAttribute("class", "veld-error")
	el.SetAttribute("role", "alert")
	el.AppendChild(dom.NewText(fmt.Sprintf("render failed: %v", err)))
	return el
}

// componentNode normalizes the accepted component shapes into a component
// VNode.
func componentNode(component any) (*vdom.VNode, error) {
	switch c := component.(type) {
	case vdom.ComponentFunc:
		return &vdom.VNode{Kind: vdom.KindComponent, Fn: c}, nil
	case func(vdom.Props) *vdom.VNode:
		return &vdom.VNode{Kind: vdom.KindComponent, Fn: c}, nil
	case func() *vdom.VNode:
		return &vdom.VNode{Kind: vdom.KindComponent, Fn: func(vdom.Props) *vdom.VNode { return c() }}, nil
	case vdom.Component:
		return &vdom.VNode{Kind: vdom.KindComponent, Comp: c}, nil
	case *vdom.VNode:
		if c == nil {
			return nil, ErrInvalidComponent
		}
		if c.Kind == vdom.KindComponent {
			return c, nil
		}
		// A plain element tree mounts through a trivial component.
		return &vdom.VNode{Kind: vdom.KindComponent, Fn: func(vdom.Props) *vdom.VNode { return c }}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidComponent, component)
	}
}

// runComponent executes the component function inside its scope and
// materializes the output. A panic anywhere in the subtree, including a
// DebugMode hook order violation, surfaces as a *RenderError naming the
// component that failed.
func (app *App) runComponent(s *Scope, v *vdom.VNode) (nodes []dom.Node, err error) {
	if v != nil {
		s.fn = v.Fn
		s.comp = v.Comp
		s.props = v.Props
	}

	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(*RenderError); ok {
				err = re
				return
			}
			err = &RenderError{Node: s.name(), Cause: r, Stack: captureStack()}
		}
	}()

	s.startRender()
	prev := setCurrentScope(s)
	var out *vdom.VNode
	func() {
		defer func() { setCurrentScope(prev) }()
		if s.fn != nil {
			out = s.fn(s.props)
		} else if s.comp != nil {
			out = s.comp.Render()
		}
		s.endRender()
	}()

	nodes = app.build(out, s)
	s.finishChildren()
	if len(nodes) == 0 {
		// Keep an anchor so a later re-render knows where to splice.
		nodes = []dom.Node{dom.NewText("")}
	}

	if !s.mountNotified {
		if _, ok := s.comp.(Mounted); ok {
			app.pendingMounts = append(app.pendingMounts, s)
		}
		s.mountNotified = true
	}
	return nodes, nil
}

// build materializes a virtual subtree into detached document nodes.
// Component nodes claim child scopes from owner; a child render error
// panics upward to the nearest runComponent recover.
func (app *App) build(v *vdom.VNode, owner *Scope) []dom.Node {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case vdom.KindText:
		return []dom.Node{dom.NewText(v.Text)}

	case vdom.KindRaw:
		return []dom.Node{dom.NewRawHTML(v.Text)}

	case vdom.KindFragment:
		var out []dom.Node
		for _, c := range v.Children {
			out = append(out, app.build(c, owner)...)
		}
		return out

	case vdom.KindElement:
		el := dom.NewElement(v.Tag)
		app.applyProps(el, v.Props)
		for _, c := range v.Children {
			for _, n := range app.build(c, owner) {
				el.AppendChild(n)
			}
		}
		return []dom.Node{el}

	case vdom.KindComponent:
		child := owner.claimChild(v)
		nodes, err := app.runComponent(child, v)
		if err != nil {
			panic(err)
		}
		child.nodes = nodes
		return nodes

	default:
		panic(fmt.Sprintf("veld: unknown node kind %d", v.Kind))
	}
}

// applyProps writes attributes and wires event listeners.
// className and htmlFor normalize to their attribute names; the key prop
// and underscore-prefixed props never reach the document.
func (app *App) applyProps(el *dom.Element, props vdom.Props) {
	for key, value := range props {
		if key == "key" || strings.HasPrefix(key, "_") {
			continue
		}

		if strings.HasPrefix(key, "on") && isHandler(value) {
			eventName := strings.ToLower(key[2:])
			handler := value
			el.AddEventListener(eventName, func(ev *dom.Event) {
				app.loop.Dispatch(func() { invokeHandler(handler, ev) })
			})
			continue
		}

		switch key {
		case "className":
			key = "class"
		case "htmlFor":
			key = "for"
		}

		if b, ok := value.(bool); ok && dom.IsBooleanAttr(key) {
			el.SetBoolAttribute(key, b)
			continue
		}
		el.SetAttribute(key, attrToString(value))
	}
}

func isHandler(value any) bool {
	switch value.(type) {
	case func(), func(*dom.Event):
		return true
	default:
		return strings.HasPrefix(fmt.Sprintf("%T", value), "func")
	}
}

func invokeHandler(handler any, ev *dom.Event) {
	switch h := handler.(type) {
	case func():
		h()
	case func(*dom.Event):
		h(ev)
	case func(string):
		h(ev.Value)
	default:
		reportError(fmt.Errorf("veld: unsupported handler type %T", handler))
	}
}

func attrToString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// invalidate re-renders a single scope synchronously, splicing the new
// nodes over the old ones in place. A setter firing while a render is
// already executing queues the scope instead of nesting; queued scopes
// flush once the outermost render commits.
func (app *App) invalidate(s *Scope) {
	if s.disposed {
		return
	}
	if app.renderDepth > 0 {
		if s.renderQueued {
			return
		}
		s.renderQueued = true
		app.queued = append(app.queued, s)
		return
	}

	app.renderDepth++
	nodes, err := app.runComponent(s, nil)
	app.renderDepth--
	if err != nil {
		// Keep the previous tree on screen; surface the failure.
		app.pendingMounts = nil
		app.postRender = nil
		app.afterRender()
		reportError(err)
		return
	}

	app.splice(s, nodes)
	app.afterRender()
}

// deferPostRender queues fn to run after the outermost render commits.
func (app *App) deferPostRender(fn func()) {
	app.postRender = append(app.postRender, fn)
}

// afterRender runs the post-commit work in order: DidMount notifications,
// deferred layout effects, then re-renders queued by mid-render setters.
func (app *App) afterRender() {
	if app.renderDepth > 0 {
		return
	}
	app.notifyMounts()

	for len(app.postRender) > 0 {
		q := app.postRender
		app.postRender = nil
		for _, fn := range q {
			fn()
		}
	}

	for len(app.queued) > 0 {
		next := app.queued[0]
		app.queued = app.queued[1:]
		next.renderQueued = false
		app.invalidate(next)
	}
}

// splice swaps a scope's rendered nodes for new ones at the same position.
func (app *App) splice(s *Scope, nodes []dom.Node) {
	if len(s.nodes) == 0 {
		s.nodes = nodes
		return
	}
	parent := s.nodes[0].Parent()
	if parent == nil {
		// Detached (old subtree already discarded by an ancestor render).
		s.nodes = nodes
		return
	}
	idx := parent.IndexOf(s.nodes[0])
	for _, old := range s.nodes {
		parent.RemoveChild(old)
	}
	for i, n := range nodes {
		parent.InsertChildAt(idx+i, n)
	}
	s.nodes = nodes
}

func (app *App) notifyMounts() {
	pending := app.pendingMounts
	app.pendingMounts = nil
	for _, s := range pending {
		if s.disposed {
			continue
		}
		if m, ok := s.comp.(Mounted); ok {
			m.DidMount()
		}
	}
}
