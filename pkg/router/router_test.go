package router

import (
	"errors"
	"strings"
	"testing"

	"github.com/veld-dev/veld/pkg/dom"
	"github.com/veld-dev/veld/pkg/loop"
	"github.com/veld-dev/veld/pkg/runtime"
	"github.com/veld-dev/veld/pkg/vdom"
)

func newTestRouter(t *testing.T) (*Router, *dom.Element) {
	t.Helper()
	doc := dom.NewDocument()
	root := dom.NewElement("div")
	root.SetAttribute("id", "app")
	doc.Body().AppendChild(root)

	app := runtime.NewApp(loop.New(loop.NewFakeClock()))
	return New(app, doc, nil), root
}

func page(text string) vdom.ComponentFunc {
	return func(vdom.Props) *vdom.VNode {
		return vdom.Div(vdom.Text(text))
	}
}

func TestStaticRouteMounts(t *testing.T) {
	r, root := newTestRouter(t)
	r.AddRoute("/", page("home"))
	r.AddRoute("/about", page("about"))

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !strings.Contains(root.InnerHTML(), "home") {
		t.Errorf("start should mount the root route, got %q", root.InnerHTML())
	}

	r.Navigate("/about")
	if !strings.Contains(root.InnerHTML(), "about") {
		t.Errorf("navigation should swap the mounted page, got %q", root.InnerHTML())
	}
	if r.History().Current() != "/about" {
		t.Errorf("history should record the navigation, got %q", r.History().Current())
	}
}

func TestStartMissingRootFails(t *testing.T) {
	r, _ := newTestRouter(t)
	r.AddRoute("/", page("home"))
	if err := r.Start("nope"); err == nil {
		t.Error("starting without the root element must fail")
	}
}

func TestParamRouteCapturesSegments(t *testing.T) {
	r, root := newTestRouter(t)

	var got Params
	r.AddRoute("/", page("home"))
	r.AddRoute("/user/:id", func(p vdom.Props) *vdom.VNode {
		got = p["params"].(Params)
		return vdom.Div(vdom.Textf("user %s", got["id"]))
	})

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.Navigate("/user/42")

	if got["id"] != "42" {
		t.Errorf("expected id=42, got %v", got)
	}
	if !strings.Contains(root.InnerHTML(), "user 42") {
		t.Errorf("expected rendered param, got %q", root.InnerHTML())
	}
}

func TestSegmentCountMustMatch(t *testing.T) {
	r, _ := newTestRouter(t)
	r.AddRoute("/", page("home"))
	r.AddRoute("/user/:id", page("user"))

	var reported error
	r.SetErrorHandler(func(err error) { reported = err })

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.Navigate("/user/42/extra")

	var nf *NotFoundError
	if !errors.As(reported, &nf) {
		t.Fatalf("expected NotFoundError, got %v", reported)
	}
	if nf.Path != "/user/42/extra" {
		t.Errorf("error should name the path, got %q", nf.Path)
	}
}

func TestExactMatchBeatsEarlierPattern(t *testing.T) {
	r, root := newTestRouter(t)
	r.AddRoute("/a/:x", page("pattern"))
	r.AddRoute("/a/b", page("exact"))

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	var reported error
	r.SetErrorHandler(func(err error) { reported = err })

	r.Navigate("/a/b")
	if reported != nil {
		t.Fatalf("unexpected routing error: %v", reported)
	}
	if !strings.Contains(root.InnerHTML(), "exact") {
		t.Errorf("exact pattern should win over an earlier param route, got %q", root.InnerHTML())
	}
}

func TestInsertionOrderFirstMatchWins(t *testing.T) {
	r, root := newTestRouter(t)
	r.AddRoute("/p/:x", page("first"))
	r.AddRoute("/p/:y", page("second"))

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.Navigate("/p/1")
	if !strings.Contains(root.InnerHTML(), "first") {
		t.Errorf("first registered pattern should win, got %q", root.InnerHTML())
	}
}

func TestWildcardFallback(t *testing.T) {
	r, root := newTestRouter(t)

	var wildPath string
	r.AddRoute("/", page("home"))
	r.AddRoute("*", func(p vdom.Props) *vdom.VNode {
		wildPath = p["params"].(Params)["path"]
		return vdom.Div(vdom.Text("not found"))
	})

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.Navigate("/no/such/page")

	if !strings.Contains(root.InnerHTML(), "not found") {
		t.Errorf("wildcard should catch unmatched paths, got %q", root.InnerHTML())
	}
	if wildPath != "/no/such/page" {
		t.Errorf("wildcard should receive the full path, got %q", wildPath)
	}
}

func TestLazyRouteResolvesOnce(t *testing.T) {
	r, root := newTestRouter(t)

	loads := 0
	r.AddRoute("/", page("home"))
	r.AddLazyRoute("/settings", func() (any, error) {
		loads++
		return page("settings"), nil
	})

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	r.Navigate("/settings")
	r.Navigate("/")
	r.Navigate("/settings")

	if loads != 1 {
		t.Errorf("lazy loader should run once per path, got %d", loads)
	}
	if !strings.Contains(root.InnerHTML(), "settings") {
		t.Errorf("cached component should mount on revisit, got %q", root.InnerHTML())
	}
}

func TestLazyLoaderFailureGoesToErrorHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	boom := errors.New("network down")
	r.AddRoute("/", page("home"))
	r.AddLazyRoute("/late", func() (any, error) { return nil, boom })

	var reported error
	r.SetErrorHandler(func(err error) { reported = err })

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.Navigate("/late")

	if !errors.Is(reported, boom) {
		t.Errorf("loader failure should reach the error handler, got %v", reported)
	}
}

func TestPrefetchRunsOnceAtRegistration(t *testing.T) {
	r, root := newTestRouter(t)

	fetches := 0
	r.AddRoute("/", page("home"))
	r.AddRouteWithPrefetch("/feed", func(p vdom.Props) *vdom.VNode {
		return vdom.Div(vdom.Textf("feed: %v", p["data"]))
	}, func() (any, error) {
		fetches++
		return "cached-items", nil
	})

	if fetches != 1 {
		t.Fatalf("prefetch should run at registration, got %d fetches", fetches)
	}

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.Navigate("/feed")
	r.Navigate("/")
	r.Navigate("/feed")

	if fetches != 1 {
		t.Errorf("navigation must not refetch, got %d fetches", fetches)
	}
	if !strings.Contains(root.InnerHTML(), "feed: cached-items") {
		t.Errorf("prefetched data should arrive as a prop, got %q", root.InnerHTML())
	}
}

func TestPrefetchLoadPropRefetches(t *testing.T) {
	r, _ := newTestRouter(t)

	fetches := 0
	var load func() (any, error)
	r.AddRoute("/", page("home"))
	r.AddRouteWithPrefetch("/feed", func(p vdom.Props) *vdom.VNode {
		load = p["load"].(func() (any, error))
		return vdom.Div()
	}, func() (any, error) {
		fetches++
		return fetches, nil
	})

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.Navigate("/feed")

	data, err := load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if data != 2 || fetches != 2 {
		t.Errorf("load should refetch on demand, got data=%v fetches=%d", data, fetches)
	}
}

func TestMountFailureRestoresPreviousContent(t *testing.T) {
	r, root := newTestRouter(t)

	r.AddRoute("/", page("home"))
	r.AddRoute("/broken", func(vdom.Props) *vdom.VNode {
		panic("boom")
	})

	var reported error
	r.SetErrorHandler(func(err error) { reported = err })
	runtime.SetErrorHandler(func(error) {})
	defer runtime.SetErrorHandler(nil)

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	before := root.InnerHTML()

	r.Navigate("/broken")

	if reported == nil {
		t.Error("mount failure should reach the error handler")
	}
	if root.InnerHTML() != before {
		t.Errorf("previous content should be restored, got %q want %q",
			root.InnerHTML(), before)
	}
}

func TestNavigateDuringNavigationIsQueued(t *testing.T) {
	r, root := newTestRouter(t)

	var order []string
	r.AddRoute("/", page("home"))
	r.AddRoute("/a", func(vdom.Props) *vdom.VNode {
		order = append(order, "a")
		r.Navigate("/b") // in-flight navigation: must queue, not nest
		return vdom.Div(vdom.Text("page a"))
	})
	r.AddRoute("/b", func(vdom.Props) *vdom.VNode {
		order = append(order, "b")
		return vdom.Div(vdom.Text("page b"))
	})

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.Navigate("/a")

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("expected serialized a then b, got %v", order)
	}
	if !strings.Contains(root.InnerHTML(), "page b") {
		t.Errorf("queued navigation should win, got %q", root.InnerHTML())
	}
}

func TestErrorHandlerPanicIsContained(t *testing.T) {
	r, _ := newTestRouter(t)
	r.AddRoute("/", page("home"))
	r.SetErrorHandler(func(error) { panic("handler bug") })

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.Navigate("/missing") // must not panic through
}

func TestNestedRoute(t *testing.T) {
	r, root := newTestRouter(t)

	var got Params
	r.AddRoute("/", page("home"))
	r.AddNestedRoute("/admin", "users/:id", func(p vdom.Props) *vdom.VNode {
		got = p["params"].(Params)
		return vdom.Div(vdom.Text("admin user"))
	})

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.Navigate("/admin/users/7")

	if got["id"] != "7" {
		t.Errorf("nested route should capture params, got %v", got)
	}
	if !strings.Contains(root.InnerHTML(), "admin user") {
		t.Errorf("nested route should mount, got %q", root.InnerHTML())
	}
}

func TestBackAndForward(t *testing.T) {
	r, root := newTestRouter(t)
	r.AddRoute("/", page("home"))
	r.AddRoute("/a", page("page a"))

	if err := r.Start("app"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r.Navigate("/a")

	r.Back()
	if r.History().Current() != "/" {
		t.Errorf("back should move to /, got %q", r.History().Current())
	}
	if !strings.Contains(root.InnerHTML(), "home") {
		t.Errorf("back should remount home, got %q", root.InnerHTML())
	}

	r.Forward()
	if !strings.Contains(root.InnerHTML(), "page a") {
		t.Errorf("forward should remount /a, got %q", root.InnerHTML())
	}
}

func TestMemoryHistoryDropsForwardEntriesOnPush(t *testing.T) {
	h := NewMemoryHistory()
	h.Push("/")
	h.Push("/a")
	h.Push("/b")
	h.Back()
	h.Push("/c")

	if h.Current() != "/c" {
		t.Errorf("expected /c, got %q", h.Current())
	}
	if _, ok := h.Forward(); ok {
		t.Error("push should drop forward entries")
	}
	if h.Len() != 3 {
		t.Errorf("expected stack [/ /a /c], got len %d", h.Len())
	}
}
