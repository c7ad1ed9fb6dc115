package vtest

import (
	"strings"
	"testing"

	"github.com/veld-dev/veld/pkg/dom"
	"github.com/veld-dev/veld/pkg/loop"
	"github.com/veld-dev/veld/pkg/runtime"
)

// Harness bundles what a component test needs: an app on a deterministic
// clock and a detached container to mount into.
type Harness struct {
	App       *runtime.App
	Clock     *loop.FakeClock
	Container *dom.Element
}

// NewHarness creates a test harness. Time only moves when the test calls
// Clock.Advance.
func NewHarness() *Harness {
	clock := loop.NewFakeClock()
	return &Harness{
		App:       runtime.NewApp(loop.New(clock)),
		Clock:     clock,
		Container: dom.NewElement("div"),
	}
}

// Mount mounts a component into the harness container, failing the test on
// error.
func (h *Harness) Mount(t *testing.T, component any) *runtime.Root {
	t.Helper()
	root, err := h.App.Mount(component, h.Container)
	if err != nil {
		t.Fatalf("vtest: mount failed: %v", err)
	}
	return root
}

// HTML returns the serialized contents of the harness container.
func (h *Harness) HTML() string {
	return h.Container.InnerHTML()
}

// RenderToString mounts a component into a throwaway container and returns
// the HTML it produced. Mount failures return "".
//
// Example:
//
//	html := vtest.RenderToString(MyComponent)
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(component any) string {
	app := runtime.NewApp(loop.New(loop.NewFakeClock()))
	container := dom.NewElement("div")
	if _, err := app.Mount(component, container); err != nil {
		return ""
	}
	return container.InnerHTML()
}

// ExpectContains asserts that rendered output contains a substring.
//
// Example:
//
//	vtest.ExpectContains(t, Greeting, "Welcome")
func ExpectContains(t *testing.T, component any, expected string) {
	t.Helper()
	html := RenderToString(component)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain a
// substring.
func ExpectNotContains(t *testing.T, component any, unexpected string) {
	t.Helper()
	html := RenderToString(component)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains an element with the
// given tag.
//
// Example:
//
//	vtest.ExpectElement(t, Toolbar, "button")
func ExpectElement(t *testing.T, component any, tag string) {
	t.Helper()
	html := RenderToString(component)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute with
// the given value.
//
// Example:
//
//	vtest.ExpectAttribute(t, SubmitButton, "class", "btn-primary")
func ExpectAttribute(t *testing.T, component any, attr, value string) {
	t.Helper()
	html := RenderToString(component)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
