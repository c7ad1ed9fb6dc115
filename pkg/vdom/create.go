package vdom

import (
	"fmt"
)

// ErrInvalidNodeType reports a CreateElement call whose first argument is
// neither a tag name nor a component.
type ErrInvalidNodeType struct {
	Value any
}

func (e *ErrInvalidNodeType) Error() string {
	return fmt.Sprintf("vdom: invalid node type %T (want tag string, ComponentFunc or Component)", e.Value)
}

// CreateElement builds a virtual node from a type, props and children.
//
// typ is a tag name ("div"), a ComponentFunc, a func(Props) *VNode, or a
// Component value. Children are flattened eagerly and recursively: nested
// []any and []*VNode slices unroll in place, nils disappear, and strings
// and other primitives become text nodes. The children slice of the result
// is always flat.
func CreateElement(typ any, props Props, children ...any) (*VNode, error) {
	flat := flattenChildren(children)

	switch t := typ.(type) {
	case string:
		return &VNode{
			Kind:     KindElement,
			Tag:      t,
			Props:    props,
			Children: flat,
		}, nil
	case ComponentFunc:
		return &VNode{Kind: KindComponent, Fn: t, Props: props, Children: flat}, nil
	case func(Props) *VNode:
		return &VNode{Kind: KindComponent, Fn: t, Props: props, Children: flat}, nil
	case Component:
		return &VNode{Kind: KindComponent, Comp: t, Props: props, Children: flat}, nil
	case nil:
		return nil, &ErrInvalidNodeType{Value: nil}
	default:
		return nil, &ErrInvalidNodeType{Value: typ}
	}
}

// MustCreateElement is CreateElement that panics on an invalid type.
// Intended for statically-known trees where the type cannot be wrong.
func MustCreateElement(typ any, props Props, children ...any) *VNode {
	n, err := CreateElement(typ, props, children...)
	if err != nil {
		panic(err)
	}
	return n
}

// flattenChildren normalizes an arbitrary child list into a flat []*VNode.
// Flattening happens at construction time so renderers never see nesting.
func flattenChildren(children []any) []*VNode {
	if len(children) == 0 {
		return nil
	}
	out := make([]*VNode, 0, len(children))
	for _, child := range children {
		out = appendChild(out, child)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func appendChild(out []*VNode, child any) []*VNode {
	switch c := child.(type) {
	case nil:
		return out
	case *VNode:
		if c == nil {
			return out
		}
		return append(out, c)
	case VNode:
		cc := c
		return append(out, &cc)
	case []*VNode:
		for _, n := range c {
			out = appendChild(out, n)
		}
		return out
	case []any:
		for _, n := range c {
			out = appendChild(out, n)
		}
		return out
	case string:
		return append(out, &VNode{Kind: KindText, Text: c})
	case ComponentFunc:
		return append(out, &VNode{Kind: KindComponent, Fn: c})
	case func(Props) *VNode:
		return append(out, &VNode{Kind: KindComponent, Fn: c})
	case Component:
		return append(out, &VNode{Kind: KindComponent, Comp: c})
	case fmt.Stringer:
		return append(out, &VNode{Kind: KindText, Text: c.String()})
	default:
		// Numbers, bools and anything else stringify to text.
		return append(out, &VNode{Kind: KindText, Text: fmt.Sprintf("%v", c)})
	}
}
