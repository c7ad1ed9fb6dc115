package runtime

// contextKey gives each Context handle a unique identity. Comparing handle
// pointers, not names, keeps two contexts with the same label distinct.
type contextKey struct {
	name string
}

// Context is a typed handle for passing a value down the component tree
// without threading it through props. Values are scoped to the providing
// component's subtree; siblings see the default.
type Context[T any] struct {
	key *contextKey
	def T
}

// CreateContext creates a context handle with a default value. The optional
// name only improves error and debug output.
func CreateContext[T any](def T, name ...string) *Context[T] {
	n := "context"
	if len(name) > 0 {
		n = name[0]
	}
	return &Context[T]{key: &contextKey{name: n}, def: def}
}

// Provide makes value visible to this component's subtree for the current
// render. It is a hook: call it during render, before the children that
// consume it are built.
func (c *Context[T]) Provide(value T) {
	s := mustScope()
	if s.values == nil {
		s.values = make(map[any]any)
	}
	s.values[c.key] = value
}

// Use reads the nearest provided value, walking up the scope chain. With no
// provider in the ancestry it returns the context's default.
func (c *Context[T]) Use() T {
	s := mustScope()
	s.trackHook(hookContext)
	for cur := s; cur != nil; cur = cur.parent {
		if cur.values != nil {
			if v, ok := cur.values[c.key]; ok {
				return v.(T)
			}
		}
	}
	return c.def
}

// UseContext is the free-function spelling of Context.Use.
func UseContext[T any](c *Context[T]) T {
	return c.Use()
}
