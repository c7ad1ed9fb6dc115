// Package middleware provides HTTP middleware for the veld dev server.
//
// Two middlewares are available:
//
//   - Prometheus: request counter, duration histogram, in-flight gauge and
//     response size histogram, exposed through a /metrics endpoint.
//   - OpenTelemetry: one span per request via the global tracer provider.
//
// Both follow the functional options pattern:
//
//	mux.Use(middleware.Prometheus(middleware.WithNamespace("myapp")))
//	mux.Use(middleware.OpenTelemetry(middleware.WithTracerName("myapp")))
package middleware
