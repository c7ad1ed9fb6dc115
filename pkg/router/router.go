package router

import (
	"fmt"
	"log"
	"os"

	"github.com/veld-dev/veld/pkg/dom"
	"github.com/veld-dev/veld/pkg/runtime"
	"github.com/veld-dev/veld/pkg/vdom"
)

var logger = log.New(os.Stderr, "veld: ", log.LstdFlags)

// Router maps paths to components and drives mounting through the runtime.
// A navigation runs idle -> matching -> mounting -> idle; overlapping
// Navigate calls queue and run in FIFO order, never concurrently.
type Router struct {
	app     *runtime.App
	doc     *dom.Document
	history History

	routes    []*route
	lazyCache map[string]any // pattern -> resolved component

	onError ErrorHandler

	root    *dom.Element
	current *runtime.Root

	navigating bool
	pending    []navRequest
}

type navRequest struct {
	path string
	push bool
}

// New creates a router over the given runtime and document. A nil history
// gets an in-memory one.
func New(app *runtime.App, doc *dom.Document, history History) *Router {
	if history == nil {
		history = NewMemoryHistory()
	}
	return &Router{
		app:       app,
		doc:       doc,
		history:   history,
		lazyCache: make(map[string]any),
	}
}

// AddRoute registers a component for a path pattern. Patterns may contain
// :name segments, which capture exactly one path segment. The pattern "*"
// registers the wildcard fallback.
func (r *Router) AddRoute(path string, component any) {
	kind := routeStatic
	if path == "*" {
		kind = routeWildcard
	}
	r.routes = append(r.routes, &route{
		pattern:   path,
		segments:  splitPath(path),
		kind:      kind,
		component: component,
	})
}

// AddNestedRoute registers a child route under a parent pattern. The child
// matches at parent's path joined with its own.
func (r *Router) AddNestedRoute(parent, child string, component any) {
	r.AddRoute(joinPaths(parent, child), component)
}

// AddRouteWithPrefetch registers a route whose data is fetched once, here
// at registration. The routed component receives the result as props:
// "data", "error", and a "load" function that refetches on demand.
func (r *Router) AddRouteWithPrefetch(path string, component any, fetch Prefetch) {
	rt := &route{
		pattern:   path,
		segments:  splitPath(path),
		kind:      routePrefetch,
		component: component,
		fetch:     fetch,
	}
	rt.data, rt.err = safeFetch(fetch)
	r.routes = append(r.routes, rt)
}

// AddLazyRoute registers a route whose component is produced by loader.
// The loader runs at most once; its result is cached across navigations.
func (r *Router) AddLazyRoute(path string, loader Loader) {
	r.routes = append(r.routes, &route{
		pattern:  path,
		segments: splitPath(path),
		kind:     routeLazy,
		loader:   loader,
	})
}

// SetErrorHandler installs the handler for routing errors. A nil handler
// restores the stderr fallback.
func (r *Router) SetErrorHandler(fn ErrorHandler) {
	r.onError = fn
}

// History returns the router's navigation stack.
func (r *Router) History() History { return r.history }

// Start binds the router to the element with the given id and performs the
// initial navigation. A missing root element is fatal.
func (r *Router) Start(rootID string) error {
	root := r.doc.GetElementByID(rootID)
	if root == nil {
		return fmt.Errorf("router: root element %q not found", rootID)
	}
	r.root = root

	if r.history.Current() == "" {
		r.history.Replace("/")
	}
	r.enqueue(navRequest{path: r.history.Current(), push: false})
	return nil
}

// Navigate pushes a history entry and mounts the matching route. Calls made
// while a navigation is in flight are queued and run in order.
func (r *Router) Navigate(path string) {
	r.enqueue(navRequest{path: path, push: true})
}

// Back moves one history entry back and mounts its route.
func (r *Router) Back() {
	if path, ok := r.history.Back(); ok {
		r.enqueue(navRequest{path: path, push: false})
	}
}

// Forward moves one history entry forward and mounts its route.
func (r *Router) Forward() {
	if path, ok := r.history.Forward(); ok {
		r.enqueue(navRequest{path: path, push: false})
	}
}

func (r *Router) enqueue(req navRequest) {
	r.pending = append(r.pending, req)
	if r.navigating {
		return
	}
	r.navigating = true
	for len(r.pending) > 0 {
		next := r.pending[0]
		r.pending = r.pending[1:]
		r.perform(next)
	}
	r.navigating = false
}

func (r *Router) perform(req navRequest) {
	if req.push {
		r.history.Push(req.path)
	}

	rt, params := r.match(req.path)
	if rt == nil {
		r.reportError(&NotFoundError{Path: req.path})
		return
	}

	component, props, err := r.resolve(rt, params)
	if err != nil {
		r.reportError(err)
		return
	}

	node, err := vdom.CreateElement(component, props)
	if err != nil {
		r.reportError(fmt.Errorf("router: route %q: %w", rt.pattern, err))
		return
	}
	r.mount(rt, node)
}

// resolve produces the component and props for a matched route, running a
// lazy loader on first use.
func (r *Router) resolve(rt *route, params Params) (any, vdom.Props, error) {
	props := vdom.Props{"params": params}

	switch rt.kind {
	case routeLazy:
		component, ok := r.lazyCache[rt.pattern]
		if !ok {
			loaded, err := safeLoad(rt.loader)
			if err != nil {
				return nil, nil, fmt.Errorf("router: lazy route %q: %w", rt.pattern, err)
			}
			r.lazyCache[rt.pattern] = loaded
			component = loaded
		}
		return component, props, nil

	case routePrefetch:
		props["data"] = rt.data
		props["error"] = rt.err
		props["load"] = func() (any, error) {
			rt.data, rt.err = safeFetch(rt.fetch)
			return rt.data, rt.err
		}
		return rt.component, props, nil

	default:
		return rt.component, props, nil
	}
}

// mount swaps the routed component into the root. When the mount fails the
// previous content goes back, so the page is never left blank.
func (r *Router) mount(rt *route, node *vdom.VNode) {
	snapshot := append([]dom.Node(nil), r.root.Children()...)

	if r.current != nil {
		r.current.Unmount()
		r.current = nil
	}

	mounted, err := r.app.Mount(node, r.root)
	if err != nil {
		r.reportError(fmt.Errorf("router: mounting %q: %w", rt.pattern, err))
		r.root.Clear()
		for _, n := range snapshot {
			r.root.AppendChild(n)
		}
		return
	}
	r.current = mounted
}

// reportError routes an error through the installed handler, falling back
// to stderr. A panicking handler is caught and logged, never propagated.
func (r *Router) reportError(err error) {
	handler := r.onError
	if handler == nil {
		logger.Printf("routing error: %v", err)
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			logger.Printf("error handler panicked: %v (handling: %v)", rec, err)
		}
	}()
	handler(err)
}

func safeLoad(loader Loader) (component any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("loader panicked: %v", rec)
		}
	}()
	return loader()
}

func safeFetch(fetch Prefetch) (data any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("prefetch panicked: %v", rec)
		}
	}()
	return fetch()
}
