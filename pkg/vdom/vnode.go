package vdom

import (
	"fmt"
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without a wrapper element
	KindComponent              // Nested component invocation
	KindRaw                    // Pre-rendered markup, emitted unescaped
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode describes a piece of UI. It is a plain value: construction never
// touches the document, materialization happens in the runtime.
//
// A VNode is one of five variants, discriminated by Kind:
//
//   - KindElement: Tag, Props and Children are set.
//   - KindText: Text is set.
//   - KindFragment: only Children is set.
//   - KindComponent: exactly one of Fn or Comp is set, plus Props.
//   - KindRaw: Text holds markup written out without escaping.
type VNode struct {
	Kind     VKind
	Tag      string   // Element tag name ("div", "button", ...)
	Props    Props    // Attributes and event handlers
	Children []*VNode // Child nodes, eagerly flattened
	Key      string   // Position-independent identity hint
	Text     string   // For KindText

	// Component payload, exactly one set for KindComponent.
	Fn   ComponentFunc
	Comp Component
}

// Props holds attributes and event handlers. Keys starting with "on" carry
// handlers; everything else renders as an attribute.
type Props map[string]any

// ComponentFunc is a function component. It runs during render and returns
// the subtree to materialize. Hooks may only be called while it executes.
type ComponentFunc func(Props) *VNode

// Component is anything that can render itself to a virtual node.
type Component interface {
	Render() *VNode
}

// FuncComponent adapts a niladic render function to the Component interface.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler pairs an event name with its handler function.
type EventHandler struct {
	Event   string // "onclick", "oninput", ...
	Handler any
}

// IsInteractive returns true if this node has event handlers attached.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if strings.HasPrefix(key, "on") {
			return true
		}
	}
	return false
}

// WithKey returns the node with its key set. Keys give list items a stable
// identity across re-renders.
func (v *VNode) WithKey(key string) *VNode {
	if v != nil {
		v.Key = key
	}
	return v
}

// String describes the node for error messages.
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindElement:
		return fmt.Sprintf("<%s>", v.Tag)
	case KindText:
		return fmt.Sprintf("text %q", truncate(v.Text, 24))
	case KindFragment:
		return fmt.Sprintf("fragment(%d)", len(v.Children))
	case KindComponent:
		if v.Fn != nil {
			return "component(func)"
		}
		return fmt.Sprintf("component(%T)", v.Comp)
	case KindRaw:
		return fmt.Sprintf("raw %q", truncate(v.Text, 24))
	}
	return "unknown"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
