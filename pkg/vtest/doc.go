// Package vtest provides test helpers for veld components.
//
// The quickest path is the assertion helpers, which mount a component into
// a throwaway container and check its serialized HTML:
//
//	func TestGreeting(t *testing.T) {
//	    vtest.ExpectContains(t, Greeting, "Welcome")
//	    vtest.ExpectElement(t, Greeting, "h1")
//	}
//
// Tests that interact with the component after mounting use a Harness,
// which exposes the app, the container and a fake clock:
//
//	h := vtest.NewHarness()
//	h.Mount(t, Counter)
//	h.Clock.Advance(time.Second)
//	if !strings.Contains(h.HTML(), "1s elapsed") { ... }
package vtest
