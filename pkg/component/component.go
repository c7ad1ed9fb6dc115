// Package component provides a lifecycle wrapper: an object-oriented
// alternative to function components with explicit mount/unmount phases and
// batched state application. State updates queue on SetState and apply
// together on the next frame, producing a single re-render.
package component

import (
	"errors"
	"fmt"

	"github.com/veld-dev/veld/pkg/dom"
	"github.com/veld-dev/veld/pkg/loop"
	"github.com/veld-dev/veld/pkg/runtime"
	"github.com/veld-dev/veld/pkg/vdom"
)

// ErrUnmounted is returned by SetState when the component is not mounted.
// Updates against a detached component are rejected, never silently queued.
var ErrUnmounted = errors.New("component: SetState on unmounted component")

// State is the wrapper's state bag. Map updates merge into it key by key.
type State map[string]any

// Updater computes the next state from the previous one.
type Updater func(State) State

// Config describes a wrapped component.
type Config struct {
	// Render produces the component's tree from its current state.
	Render func(State) *vdom.VNode

	// InitialState seeds the state bag. May be nil.
	InitialState State

	// OnMount runs after the component's nodes are attached.
	OnMount func()

	// OnUnmount runs right before the component is disposed.
	OnUnmount func()
}

// Component is a mountable component with managed state. It implements
// vdom.Component, so it can be embedded in a virtual tree or passed to
// App.Mount directly.
type Component struct {
	cfg   Config
	state State

	pending     []any // State merges and Updaters, applied in call order
	frameQueued bool

	mounted    bool
	loop       *loop.Loop
	invalidate func()
	root       *runtime.Root
}

// New creates a wrapper from its configuration. A nil Render panics: the
// wrapper has nothing to show without it.
func New(cfg Config) *Component {
	if cfg.Render == nil {
		panic("component: Config.Render is required")
	}
	state := State{}
	for k, v := range cfg.InitialState {
		state[k] = v
	}
	return &Component{cfg: cfg, state: state}
}

// Render implements vdom.Component. It runs inside the runtime and captures
// what SetState needs: the loop for frame scheduling and the scope
// invalidator.
func (c *Component) Render() *vdom.VNode {
	c.loop = runtime.UseLoop()
	c.invalidate = runtime.UseInvalidate()
	return c.cfg.Render(c.snapshot())
}

// DidMount marks the component live and runs the post-mount hook.
func (c *Component) DidMount() {
	c.mounted = true
	if c.cfg.OnMount != nil {
		c.cfg.OnMount()
	}
}

// WillUnmount runs the pre-unmount hook and marks the component detached.
func (c *Component) WillUnmount() {
	if c.cfg.OnUnmount != nil {
		c.cfg.OnUnmount()
	}
	c.mounted = false
	c.pending = nil
	c.frameQueued = false
}

// Mount attaches the component to a container. Mounting an already-mounted
// component is a no-op.
func (c *Component) Mount(app *runtime.App, container *dom.Element) error {
	if c.mounted {
		return nil
	}
	root, err := app.Mount(c, container)
	if err != nil {
		return err
	}
	c.root = root
	return nil
}

// Unmount detaches a component mounted via Mount.
func (c *Component) Unmount() {
	if c.root != nil {
		c.root.Unmount()
		c.root = nil
	}
}

// IsMounted reports whether the component is currently attached.
func (c *Component) IsMounted() bool { return c.mounted }

// SetState queues a state update: either a State map merged key-by-key, or
// an Updater computing the next state. Updates before the next frame
// coalesce into one re-render, applied in call order.
func (c *Component) SetState(update any) error {
	if !c.mounted {
		return ErrUnmounted
	}
	switch update.(type) {
	case State, map[string]any, Updater, func(State) State:
	default:
		return fmt.Errorf("component: unsupported SetState argument %T", update)
	}

	c.pending = append(c.pending, update)
	if !c.frameQueued {
		c.frameQueued = true
		c.loop.RequestFrame(c.flush)
	}
	return nil
}

// State returns a copy of the current state bag.
func (c *Component) State() State { return c.snapshot() }

func (c *Component) snapshot() State {
	out := State{}
	for k, v := range c.state {
		out[k] = v
	}
	return out
}

func (c *Component) flush() {
	c.frameQueued = false
	if !c.mounted {
		return
	}
	pending := c.pending
	c.pending = nil

	for _, update := range pending {
		switch u := update.(type) {
		case State:
			c.merge(u)
		case map[string]any:
			c.merge(u)
		case Updater:
			c.state = u(c.snapshot())
		case func(State) State:
			c.state = u(c.snapshot())
		}
	}
	c.invalidate()
}

func (c *Component) merge(update map[string]any) {
	if c.state == nil {
		c.state = State{}
	}
	for k, v := range update {
		c.state[k] = v
	}
}
