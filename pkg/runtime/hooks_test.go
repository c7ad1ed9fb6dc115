package runtime

import (
	"errors"
	"strings"
	"testing"

	"github.com/veld-dev/veld/pkg/dom"
	"github.com/veld-dev/veld/pkg/loop"
	"github.com/veld-dev/veld/pkg/vdom"
)

func newTestApp() (*App, *loop.FakeClock) {
	clock := loop.NewFakeClock()
	return NewApp(loop.New(clock)), clock
}

func mountForTest(t *testing.T, app *App, fn vdom.ComponentFunc) (*Root, *dom.Element) {
	t.Helper()
	container := dom.NewElement("div")
	root, err := app.Mount(fn, container)
	if err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	return root, container
}

func TestUseStateInitialAndUpdate(t *testing.T) {
	app, _ := newTestApp()

	var setCount Setter[int]
	var sawCount int
	counter := func(props vdom.Props) *vdom.VNode {
		count, set := UseState(0)
		setCount = set
		sawCount = count
		return vdom.Div(vdom.Textf("count: %d", count))
	}

	_, container := mountForTest(t, app, counter)

	if sawCount != 0 {
		t.Errorf("initial state should be 0, got %d", sawCount)
	}
	if !strings.Contains(container.InnerHTML(), "count: 0") {
		t.Errorf("expected rendered count 0, got %q", container.InnerHTML())
	}

	setCount(5)

	if sawCount != 5 {
		t.Errorf("setter should re-render with 5, got %d", sawCount)
	}
	if !strings.Contains(container.InnerHTML(), "count: 5") {
		t.Errorf("dom should show updated count, got %q", container.InnerHTML())
	}
}

func TestStateSlotsAreIndependent(t *testing.T) {
	app, _ := newTestApp()

	var setA Setter[int]
	var setB Setter[string]
	var gotA int
	var gotB string
	comp := func(props vdom.Props) *vdom.VNode {
		a, sa := UseState(1)
		b, sb := UseState("x")
		setA, setB = sa, sb
		gotA, gotB = a, b
		return vdom.Div()
	}

	mountForTest(t, app, comp)

	setA(10)
	if gotA != 10 || gotB != "x" {
		t.Errorf("updating slot 0 must not touch slot 1: a=%d b=%q", gotA, gotB)
	}

	setB("y")
	if gotA != 10 || gotB != "y" {
		t.Errorf("updating slot 1 must not touch slot 0: a=%d b=%q", gotA, gotB)
	}
}

func TestOneRerenderPerSetterCall(t *testing.T) {
	app, _ := newTestApp()

	renders := 0
	var set Setter[int]
	comp := func(props vdom.Props) *vdom.VNode {
		renders++
		_, s := UseState(0)
		set = s
		return vdom.Div()
	}

	mountForTest(t, app, comp)
	if renders != 1 {
		t.Fatalf("expected 1 initial render, got %d", renders)
	}

	set(1)
	set(2)

	if renders != 3 {
		t.Errorf("expected 3 renders (1 mount + 2 setter calls), got %d", renders)
	}
}

func TestSetterSkipsReferenceEqualValue(t *testing.T) {
	app, _ := newTestApp()

	renders := 0
	var set Setter[int]
	comp := func(props vdom.Props) *vdom.VNode {
		renders++
		_, s := UseState(5)
		set = s
		return vdom.Div()
	}

	mountForTest(t, app, comp)

	set(5)
	if renders != 1 {
		t.Errorf("setting the stored value must not re-render, got %d renders", renders)
	}

	set(6)
	set(6)
	if renders != 2 {
		t.Errorf("expected one re-render for the single distinct value, got %d", renders)
	}
}

func TestSetterUsesReferenceNotDeepEquality(t *testing.T) {
	app, _ := newTestApp()

	renders := 0
	var set Setter[[]int]
	var got []int
	comp := func(props vdom.Props) *vdom.VNode {
		renders++
		v, s := UseState([]int{1})
		got = v
		set = s
		return vdom.Div()
	}

	mountForTest(t, app, comp)

	// Same backing array: skipped.
	set(got)
	if renders != 1 {
		t.Errorf("same slice reference must not re-render, got %d renders", renders)
	}

	// Fresh slice with equal contents is a different value.
	set([]int{1})
	if renders != 2 {
		t.Errorf("fresh slice should re-render, got %d renders", renders)
	}
}

func TestSetterDuringRenderIsQueued(t *testing.T) {
	app, _ := newTestApp()

	renders := 0
	comp := func(props vdom.Props) *vdom.VNode {
		renders++
		v, set := UseState(0)
		if v == 0 {
			// Setter during a render must not nest a render inside this one.
			set(1)
		}
		return vdom.Textf("%d", v)
	}

	_, container := mountForTest(t, app, comp)

	if renders != 2 {
		t.Errorf("expected mount render plus one queued re-render, got %d", renders)
	}
	if container.TextContent() != "1" {
		t.Errorf("expected final value 1, got %q", container.TextContent())
	}
}

func TestSetterAfterUnmountIsNoop(t *testing.T) {
	app, _ := newTestApp()

	renders := 0
	var set Setter[int]
	comp := func(props vdom.Props) *vdom.VNode {
		renders++
		_, s := UseState(0)
		set = s
		return vdom.Div()
	}

	root, _ := mountForTest(t, app, comp)
	root.Unmount()

	set(1)
	if renders != 1 {
		t.Errorf("setter after unmount should not render, got %d renders", renders)
	}
}

func TestHookOutsideRenderPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNoScope) {
			t.Errorf("expected ErrNoScope, got %v", r)
		}
	}()
	UseState(0)
}

func TestUseRefStableAndSilent(t *testing.T) {
	app, _ := newTestApp()

	renders := 0
	var refs []*Ref[int]
	var set Setter[int]
	comp := func(props vdom.Props) *vdom.VNode {
		renders++
		r := UseRef(0)
		refs = append(refs, r)
		_, s := UseState(0)
		set = s
		return vdom.Div()
	}

	mountForTest(t, app, comp)

	refs[0].Current = 42 // must not trigger a render
	if renders != 1 {
		t.Errorf("ref write should not render, got %d", renders)
	}

	set(1)
	if refs[1] != refs[0] {
		t.Error("ref identity should be stable across renders")
	}
	if refs[1].Current != 42 {
		t.Errorf("ref value should persist, got %d", refs[1].Current)
	}
}

func TestUseEffectEmptyDepsRunsOnce(t *testing.T) {
	app, _ := newTestApp()

	effectRuns := 0
	var set Setter[int]
	comp := func(props vdom.Props) *vdom.VNode {
		_, s := UseState(0)
		set = s
		UseEffect(func() Cleanup {
			effectRuns++
			return nil
		}, []any{})
		return vdom.Div()
	}

	mountForTest(t, app, comp)
	set(1)
	set(2)

	if effectRuns != 1 {
		t.Errorf("effect with empty deps should run once, ran %d times", effectRuns)
	}
}

func TestUseEffectDepsChangeRunsCleanupFirst(t *testing.T) {
	app, _ := newTestApp()

	var log []string
	var set Setter[int]
	comp := func(props vdom.Props) *vdom.VNode {
		v, s := UseState(0)
		set = s
		UseEffect(func() Cleanup {
			log = append(log, "run")
			return func() { log = append(log, "cleanup") }
		}, []any{v})
		return vdom.Div()
	}

	root, _ := mountForTest(t, app, comp)
	set(1)

	want := []string{"run", "cleanup", "run"}
	if len(log) != len(want) {
		t.Fatalf("got %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("got %v, want %v", log, want)
		}
	}

	root.Unmount()
	if log[len(log)-1] != "cleanup" {
		t.Errorf("unmount should run final cleanup, log %v", log)
	}
}

func TestUseEffectNilDepsRunsEveryRender(t *testing.T) {
	app, _ := newTestApp()

	runs := 0
	var set Setter[int]
	comp := func(props vdom.Props) *vdom.VNode {
		_, s := UseState(0)
		set = s
		UseEffect(func() Cleanup { runs++; return nil }, nil)
		return vdom.Div()
	}

	mountForTest(t, app, comp)
	set(1)

	if runs != 2 {
		t.Errorf("nil deps should re-run per render, ran %d times", runs)
	}
}

func TestUseLayoutEffectRunsAfterRenderBody(t *testing.T) {
	app, _ := newTestApp()

	var order []string
	comp := func(props vdom.Props) *vdom.VNode {
		UseLayoutEffect(func() Cleanup {
			order = append(order, "layout")
			return nil
		}, []any{})
		order = append(order, "render")
		return vdom.Div()
	}

	mountForTest(t, app, comp)

	if len(order) != 2 || order[0] != "render" || order[1] != "layout" {
		t.Errorf("layout effect must run after the render body, got %v", order)
	}
}

func TestUseMemoEagerAndDepGated(t *testing.T) {
	app, _ := newTestApp()

	computes := 0
	var got int
	var set Setter[int]
	var bump Setter[int]
	comp := func(props vdom.Props) *vdom.VNode {
		v, s := UseState(2)
		set = s
		_, b := UseState(0)
		bump = b
		got = UseMemo(func() int {
			computes++
			return v * 10
		}, []any{v})
		return vdom.Div()
	}

	mountForTest(t, app, comp)
	if got != 20 || computes != 1 {
		t.Fatalf("memo should compute eagerly: got=%d computes=%d", got, computes)
	}

	bump(1) // unrelated state: deps unchanged
	if computes != 1 {
		t.Errorf("memo must not recompute when deps are unchanged, computes=%d", computes)
	}

	set(3)
	if got != 30 || computes != 2 {
		t.Errorf("memo should recompute on dep change in the same render: got=%d computes=%d", got, computes)
	}
}

func TestUseCallbackStableIdentity(t *testing.T) {
	app, _ := newTestApp()

	var fns []func() int
	var set Setter[int]
	comp := func(props vdom.Props) *vdom.VNode {
		_, s := UseState(0)
		set = s
		fn := UseCallback(func() int { return 7 }, []any{})
		fns = append(fns, fn)
		return vdom.Div()
	}

	mountForTest(t, app, comp)
	set(1)

	if len(fns) != 2 {
		t.Fatalf("expected 2 renders, got %d", len(fns))
	}
	if !identical(fns[0], fns[1]) {
		t.Error("callback identity should be stable while deps are unchanged")
	}
}

func TestHookOrderChangePanicsInDebugMode(t *testing.T) {
	app, _ := newTestApp()

	var set Setter[int]
	comp := func(props vdom.Props) *vdom.VNode {
		v, s := UseState(0)
		set = s
		if v == 0 {
			UseRef("only sometimes")
		} else {
			UseMemo(func() int { return 1 }, nil)
		}
		return vdom.Div()
	}

	mountForTest(t, app, comp)

	var got error
	SetErrorHandler(func(err error) { got = err })
	defer SetErrorHandler(nil)

	set(1)

	if got == nil {
		t.Fatal("hook order change should surface an error")
	}
	if !strings.Contains(got.Error(), "hook order changed") {
		t.Errorf("expected hook order message, got %v", got)
	}
}

func TestChildStateSurvivesParentRerender(t *testing.T) {
	app, _ := newTestApp()

	var childSet Setter[int]
	var childVal int
	child := func(props vdom.Props) *vdom.VNode {
		v, s := UseState(0)
		childSet = s
		childVal = v
		return vdom.Textf("child=%d", v)
	}

	var parentSet Setter[int]
	parent := func(props vdom.Props) *vdom.VNode {
		v, s := UseState(0)
		parentSet = s
		return vdom.Div(
			vdom.Textf("parent=%d", v),
			vdom.MustCreateElement(vdom.ComponentFunc(child), nil),
		)
	}

	_, container := mountForTest(t, app, parent)

	childSet(7)
	if childVal != 7 {
		t.Fatalf("child state should be 7, got %d", childVal)
	}

	parentSet(1) // parent re-render rebuilds the subtree

	if childVal != 7 {
		t.Errorf("child hook state must survive parent re-render, got %d", childVal)
	}
	html := container.InnerHTML()
	if !strings.Contains(html, "parent=1") || !strings.Contains(html, "child=7") {
		t.Errorf("unexpected dom: %q", html)
	}
}

func TestConditionalChildDisposal(t *testing.T) {
	app, _ := newTestApp()

	cleanups := 0
	child := func(props vdom.Props) *vdom.VNode {
		UseEffect(func() Cleanup {
			return func() { cleanups++ }
		}, []any{})
		return vdom.Text("child")
	}

	var set Setter[bool]
	parent := func(props vdom.Props) *vdom.VNode {
		show, s := UseState(true)
		set = s
		if show {
			return vdom.Div(vdom.MustCreateElement(vdom.ComponentFunc(child), nil))
		}
		return vdom.Div()
	}

	mountForTest(t, app, parent)

	set(false)
	if cleanups != 1 {
		t.Errorf("unclaimed child scope should be disposed, cleanups=%d", cleanups)
	}
}

func TestUseCachePerComponent(t *testing.T) {
	app, _ := newTestApp()

	var set Setter[int]
	var hadA bool
	comp := func(props vdom.Props) *vdom.VNode {
		v, s := UseState(0)
		set = s
		c := UseCache[string, int](2)
		if v == 0 {
			c.Set("a", 1)
		}
		_, hadA = c.Get("a")
		return vdom.Div()
	}

	mountForTest(t, app, comp)
	set(1)

	if !hadA {
		t.Error("cache instance should persist across renders")
	}
}
