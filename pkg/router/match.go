package router

import (
	"strings"
)

// splitPath breaks a path into segments. "/" and "" both yield no segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// joinPaths composes a nested route's full pattern from its parent's.
func joinPaths(parent, child string) string {
	p := strings.TrimRight(parent, "/")
	c := strings.TrimLeft(child, "/")
	if c == "" {
		if p == "" {
			return "/"
		}
		return p
	}
	return p + "/" + c
}

// match resolves a path against the route table. Exact pattern matches win
// first; then registered patterns are tried in insertion order, with :name
// segments capturing a single segment and the segment counts required to be
// equal; a wildcard route, if registered, catches everything else.
func (r *Router) match(path string) (*route, Params) {
	for _, rt := range r.routes {
		if rt.kind != routeWildcard && rt.pattern == path {
			return rt, Params{}
		}
	}

	segs := splitPath(path)
	for _, rt := range r.routes {
		if rt.kind == routeWildcard {
			continue
		}
		if params, ok := matchSegments(rt.segments, segs); ok {
			return rt, params
		}
	}

	for _, rt := range r.routes {
		if rt.kind == routeWildcard {
			return rt, Params{"path": path}
		}
	}
	return nil, nil
}

func matchSegments(pattern, segs []string) (Params, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := Params{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}
