package dom

import (
	"fmt"
	"strings"
)

// Node is a materialized document node: an *Element, a *Text, a
// *RawHTML, or a *Fragment used for batched insertion.
type Node interface {
	Parent() *Element
	setParent(*Element)
	writeHTML(sb *strings.Builder)
}

// Text is a text node.
type Text struct {
	Data   string
	parent *Element
}

// NewText creates a text node.
func NewText(data string) *Text {
	return &Text{Data: data}
}

// Parent returns the parent element, or nil for a detached node.
func (t *Text) Parent() *Element { return t.parent }

func (t *Text) setParent(p *Element) { t.parent = p }

// RawHTML is a node carrying pre-rendered markup. Serialization writes
// it verbatim, with no escaping.
type RawHTML struct {
	Markup string
	parent *Element
}

// NewRawHTML creates a raw markup node.
func NewRawHTML(markup string) *RawHTML {
	return &RawHTML{Markup: markup}
}

// Parent returns the parent element, or nil for a detached node.
func (r *RawHTML) Parent() *Element { return r.parent }

func (r *RawHTML) setParent(p *Element) { r.parent = p }

// Element is an element node with attributes, listeners and children.
type Element struct {
	TagName string

	parent    *Element
	attrs     map[string]string
	boolAttrs map[string]bool
	listeners map[string][]Listener
	children  []Node
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{TagName: tag}
}

// Parent returns the parent element, or nil for a detached element.
func (e *Element) Parent() *Element { return e.parent }

func (e *Element) setParent(p *Element) { e.parent = p }

// SetAttribute sets a string attribute.
func (e *Element) SetAttribute(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// SetBoolAttribute sets or clears a boolean attribute (disabled, checked, ...).
func (e *Element) SetBoolAttribute(name string, present bool) {
	if !present {
		delete(e.boolAttrs, name)
		return
	}
	if e.boolAttrs == nil {
		e.boolAttrs = make(map[string]bool)
	}
	e.boolAttrs[name] = true
}

// Attribute returns an attribute value and whether it is set.
func (e *Element) Attribute(name string) (string, bool) {
	if e.boolAttrs[name] {
		return "", true
	}
	v, ok := e.attrs[name]
	return v, ok
}

// RemoveAttribute removes an attribute of either kind.
func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
	delete(e.boolAttrs, name)
}

// ID returns the element's id attribute.
func (e *Element) ID() string { return e.attrs["id"] }

// Children returns the child list. The slice is shared; callers must not
// mutate it directly.
func (e *Element) Children() []Node { return e.children }

// ChildCount returns the number of children.
func (e *Element) ChildCount() int { return len(e.children) }

// AppendChild appends a node, detaching it from any previous parent.
// Appending a *Fragment moves the fragment's children in one pass.
func (e *Element) AppendChild(n Node) {
	if frag, ok := n.(*Fragment); ok {
		for _, c := range frag.take() {
			e.AppendChild(c)
		}
		return
	}
	detach(n)
	n.setParent(e)
	e.children = append(e.children, n)
}

// InsertChildAt inserts a node at index i, clamped to the child list bounds.
func (e *Element) InsertChildAt(i int, n Node) {
	if frag, ok := n.(*Fragment); ok {
		for _, c := range frag.take() {
			e.InsertChildAt(i, c)
			i++
		}
		return
	}
	detach(n)
	n.setParent(e)
	if i < 0 {
		i = 0
	}
	if i > len(e.children) {
		i = len(e.children)
	}
	e.children = append(e.children, nil)
	copy(e.children[i+1:], e.children[i:])
	e.children[i] = n
}

// RemoveChild removes a direct child. It returns false if n is not a child.
func (e *Element) RemoveChild(n Node) bool {
	i := e.IndexOf(n)
	if i < 0 {
		return false
	}
	e.RemoveChildAt(i)
	return true
}

// RemoveChildAt removes and returns the child at index i.
func (e *Element) RemoveChildAt(i int) Node {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	n := e.children[i]
	e.children = append(e.children[:i], e.children[i+1:]...)
	n.setParent(nil)
	return n
}

// ReplaceChild swaps old for new in place. It returns an error if old is not
// a child of e.
func (e *Element) ReplaceChild(newNode, old Node) error {
	i := e.IndexOf(old)
	if i < 0 {
		return fmt.Errorf("dom: replace: node is not a child of <%s>", e.TagName)
	}
	detach(newNode)
	old.setParent(nil)
	newNode.setParent(e)
	e.children[i] = newNode
	return nil
}

// IndexOf returns the index of a direct child, or -1.
func (e *Element) IndexOf(n Node) int {
	for i, c := range e.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Clear removes all children.
func (e *Element) Clear() {
	for _, c := range e.children {
		c.setParent(nil)
	}
	e.children = nil
}

// TextContent returns the concatenated text of the subtree.
func (e *Element) TextContent() string {
	var sb strings.Builder
	collectText(e, &sb)
	return sb.String()
}

func collectText(n Node, sb *strings.Builder) {
	switch v := n.(type) {
	case *Text:
		sb.WriteString(v.Data)
	case *Element:
		for _, c := range v.children {
			collectText(c, sb)
		}
	}
}

func detach(n Node) {
	if p := n.Parent(); p != nil {
		p.RemoveChild(n)
	}
}

// Fragment batches nodes for a single insertion. Appending a fragment to an
// element moves its children and leaves the fragment empty.
type Fragment struct {
	children []Node
}

// NewFragment creates an empty fragment.
func NewFragment() *Fragment { return &Fragment{} }

// Append adds a node to the fragment.
func (f *Fragment) Append(n Node) {
	if inner, ok := n.(*Fragment); ok {
		f.children = append(f.children, inner.take()...)
		return
	}
	detach(n)
	f.children = append(f.children, n)
}

// Len returns the number of nodes currently held.
func (f *Fragment) Len() int { return len(f.children) }

// Parent always returns nil; fragments are never attached.
func (f *Fragment) Parent() *Element { return nil }

func (f *Fragment) setParent(*Element) {}

func (f *Fragment) take() []Node {
	c := f.children
	f.children = nil
	return c
}

// Document is a node tree root with id lookup.
type Document struct {
	root *Element
}

// NewDocument creates a document with a <body> root.
func NewDocument() *Document {
	return &Document{root: NewElement("body")}
}

// Body returns the document root element.
func (d *Document) Body() *Element { return d.root }

// GetElementByID finds the first element in the tree with the given id.
func (d *Document) GetElementByID(id string) *Element {
	return findByID(d.root, id)
}

func findByID(e *Element, id string) *Element {
	if e.ID() == id {
		return e
	}
	for _, c := range e.children {
		if child, ok := c.(*Element); ok {
			if found := findByID(child, id); found != nil {
				return found
			}
		}
	}
	return nil
}
