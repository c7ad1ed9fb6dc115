// Package router implements client-side navigation for veld applications.
//
// The router keeps an ordered route table. A navigation matches its path
// against the table (exact pattern first, then insertion-order structural
// matching with :name parameter segments, then the wildcard fallback) and
// mounts the winning component into the router's root element through the
// runtime.
//
// Route kinds:
//   - static: a component mounted as-is
//   - lazy: a loader resolved at most once, cached across navigations
//   - prefetch: data fetched once at registration and injected as props
//
// # Usage
//
//	r := router.New(app, doc, nil)
//	r.AddRoute("/", pages.Home)
//	r.AddRoute("/user/:id", pages.User)
//	r.AddLazyRoute("/settings", loadSettings)
//	r.AddRoute("*", pages.NotFound)
//	if err := r.Start("app"); err != nil {
//		log.Fatal(err)
//	}
//	r.Navigate("/user/42") // params = {id: "42"}
//
// Routed components receive the captured parameters under the "params"
// prop. Routing errors go through the handler set with SetErrorHandler;
// the handler itself is guarded, so its panics are logged, not propagated.
package router
