package runtime

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/veld-dev/veld/pkg/vdom"
)

func waitFor(t *testing.T, ch <-chan Async[string], pred func(Async[string]) bool) Async[string] {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case st := <-ch:
			if pred(st) {
				return st
			}
		case <-deadline:
			t.Fatal("timed out waiting for async state")
		}
	}
}

func TestUseAsyncResolves(t *testing.T) {
	app, _ := newTestApp()
	states := make(chan Async[string], 16)

	comp := func(vdom.Props) *vdom.VNode {
		st := UseAsync(func(ctx context.Context) (string, error) {
			return "data", nil
		}, []any{})
		states <- st
		return vdom.Div()
	}

	mountForTest(t, app, comp)

	first := <-states
	if !first.Loading {
		t.Error("async should start in loading state")
	}
	done := waitFor(t, states, func(s Async[string]) bool { return !s.Loading })
	if done.Data != "data" || done.Err != nil {
		t.Errorf("expected resolved data, got %+v", done)
	}
}

func TestUseAsyncCapturesError(t *testing.T) {
	app, _ := newTestApp()
	states := make(chan Async[string], 16)
	boom := errors.New("fetch failed")

	comp := func(vdom.Props) *vdom.VNode {
		st := UseAsync(func(ctx context.Context) (string, error) {
			return "", boom
		}, []any{})
		states <- st
		return vdom.Div()
	}

	mountForTest(t, app, comp)

	done := waitFor(t, states, func(s Async[string]) bool { return !s.Loading })
	if !errors.Is(done.Err, boom) {
		t.Errorf("error should land in state, got %v", done.Err)
	}
}

func TestUseAsyncDropsStaleResolution(t *testing.T) {
	app, _ := newTestApp()
	states := make(chan Async[string], 16)

	releaseFirst := make(chan struct{})
	var calls atomic.Int32

	var setDep Setter[int]
	comp := func(vdom.Props) *vdom.VNode {
		dep, s := UseState(0)
		setDep = s
		st := UseAsync(func(ctx context.Context) (string, error) {
			if calls.Add(1) == 1 {
				<-releaseFirst
				return "stale", nil
			}
			return "fresh", nil
		}, []any{dep})
		states <- st
		return vdom.Div()
	}

	mountForTest(t, app, comp)
	<-states // initial loading

	setDep(1) // restarts the fetch while the first is still in flight

	got := waitFor(t, states, func(s Async[string]) bool { return !s.Loading })
	if got.Data != "fresh" {
		t.Fatalf("expected fresh, got %q", got.Data)
	}

	// Let the first fetch resolve late; its result must be dropped.
	close(releaseFirst)
	time.Sleep(50 * time.Millisecond)

	select {
	case late := <-states:
		if late.Data == "stale" {
			t.Error("stale resolution must never overwrite a newer fetch")
		}
	default:
		// No further render: the stale result was dropped outright.
	}
}

func TestUseAsyncAfterUnmountIsDropped(t *testing.T) {
	app, _ := newTestApp()

	release := make(chan struct{})
	committed := make(chan struct{}, 1)

	comp := func(vdom.Props) *vdom.VNode {
		UseAsync(func(ctx context.Context) (string, error) {
			<-release
			select {
			case committed <- struct{}{}:
			default:
			}
			return "late", nil
		}, []any{})
		return vdom.Div()
	}

	renders := 0
	wrapper := func(p vdom.Props) *vdom.VNode {
		renders++
		return comp(p)
	}

	root, _ := mountForTest(t, app, wrapper)
	root.Unmount()

	close(release)
	<-committed
	time.Sleep(50 * time.Millisecond)

	if renders != 1 {
		t.Errorf("resolution after unmount must not render, got %d renders", renders)
	}
}

func TestUseAsyncDepsRestartFetch(t *testing.T) {
	app, _ := newTestApp()
	states := make(chan Async[string], 16)
	var calls atomic.Int32

	var setDep Setter[string]
	comp := func(vdom.Props) *vdom.VNode {
		dep, s := UseState("a")
		setDep = s
		st := UseAsync(func(ctx context.Context) (string, error) {
			calls.Add(1)
			return "for-" + dep, nil
		}, []any{dep})
		states <- st
		return vdom.Div()
	}

	mountForTest(t, app, comp)
	waitFor(t, states, func(s Async[string]) bool { return s.Data == "for-a" })

	setDep("b")
	waitFor(t, states, func(s Async[string]) bool { return s.Data == "for-b" })

	if calls.Load() != 2 {
		t.Errorf("expected 2 fetches, got %d", calls.Load())
	}
}

func TestUseAsyncCancelsPreviousContext(t *testing.T) {
	app, _ := newTestApp()
	states := make(chan Async[string], 16)
	cancelled := make(chan struct{}, 1)

	var setDep Setter[int]
	first := true
	comp := func(vdom.Props) *vdom.VNode {
		dep, s := UseState(0)
		setDep = s
		st := UseAsync(func(ctx context.Context) (string, error) {
			if first {
				first = false
				<-ctx.Done()
				cancelled <- struct{}{}
				return "", ctx.Err()
			}
			return "second", nil
		}, []any{dep})
		states <- st
		return vdom.Div()
	}

	mountForTest(t, app, comp)
	<-states

	setDep(1)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("restarting a fetch should cancel the previous context")
	}
}
