package router

import (
	"fmt"
)

// Params are the values captured from :name segments of the matched
// pattern. Wildcard matches carry the full path under "path".
type Params map[string]string

// Loader resolves a lazy route's component. It runs at most once per
// route; the resolved component is cached for every later navigation.
type Loader func() (any, error)

// Prefetch fetches a route's data. It runs once when the route is
// registered, not per navigation.
type Prefetch func() (any, error)

// ErrorHandler receives routing errors: unmatched paths, failed lazy
// loaders and mount failures. The router guards every call, so a handler
// that panics is logged and contained.
type ErrorHandler func(error)

// NotFoundError reports a navigation that matched no registered route.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("router: no route found for %q", e.Path)
}

type routeKind int

const (
	routeStatic routeKind = iota
	routePrefetch
	routeLazy
	routeWildcard
)

// route is the stored configuration for one registered pattern.
type route struct {
	pattern  string
	segments []string
	kind     routeKind

	component any    // static and prefetch routes
	loader    Loader // lazy routes

	// prefetch result, populated at registration
	fetch Prefetch
	data  any
	err   error
}
