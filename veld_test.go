package veld

import (
	"strings"
	"testing"

	"github.com/veld-dev/veld/pkg/loop"
	"github.com/veld-dev/veld/pkg/vdom"
)

func TestMountThroughFacade(t *testing.T) {
	app := NewAppWithLoop(loop.New(loop.NewFakeClock()))
	doc := NewDocument()

	greeting := func(Props) *VNode {
		count, _ := UseState(41)
		return vdom.H1(Textf("count %d", count+1))
	}

	root, err := app.Mount(greeting, doc.Body())
	if err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	defer root.Unmount()

	if html := doc.Body().InnerHTML(); !strings.Contains(html, "count 42") {
		t.Errorf("unexpected render output: %q", html)
	}
}

func TestStoreThroughFacade(t *testing.T) {
	s := NewStore(func(state int, a Action) int {
		if a.Type == "add" {
			return state + a.Payload.(int)
		}
		return state
	}, 0)

	if err := s.Dispatch(Action{Type: "add", Payload: 5}); err != nil {
		t.Fatal(err)
	}
	if got := s.GetState(); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
}

func TestCacheThroughFacade(t *testing.T) {
	c := NewCache[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry should be evicted")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Error("newest entry should survive")
	}
}
