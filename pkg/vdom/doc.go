// Package vdom provides the virtual node model.
//
// Virtual nodes are plain values built with CreateElement or the element
// factory functions (Div, Span, Button, ...). Construction never touches a
// document; the runtime materializes trees into real nodes at mount and on
// re-render. Child lists are flattened eagerly at construction, so consumers
// always see a flat Children slice with no nils.
package vdom
