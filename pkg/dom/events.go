package dom

// Event is a dispatched UI event. Events bubble from the target up through
// its ancestors unless propagation is stopped.
type Event struct {
	Type   string   // "click", "input", ...
	Target *Element // Element the event was dispatched on
	// CurrentTarget is the element whose listener is currently running.
	CurrentTarget *Element
	// Value carries the input value for form events.
	Value string
	// Detail carries arbitrary event payload.
	Detail any

	stopped          bool
	defaultPrevented bool
}

// StopPropagation prevents the event from bubbling further.
func (ev *Event) StopPropagation() { ev.stopped = true }

// PreventDefault marks the default action as cancelled.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// Listener handles a dispatched event.
type Listener func(*Event)

// AddEventListener registers a listener for an event type ("click", not
// "onclick").
func (e *Element) AddEventListener(eventType string, l Listener) {
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], l)
}

// RemoveEventListeners drops all listeners for an event type, or every
// listener when eventType is empty.
func (e *Element) RemoveEventListeners(eventType string) {
	if eventType == "" {
		e.listeners = nil
		return
	}
	delete(e.listeners, eventType)
}

// DispatchEvent fires an event on this element and bubbles it up the parent
// chain. It returns true unless PreventDefault was called.
func (e *Element) DispatchEvent(ev *Event) bool {
	if ev.Target == nil {
		ev.Target = e
	}
	for cur := e; cur != nil; cur = cur.parent {
		ev.CurrentTarget = cur
		for _, l := range cur.listeners[ev.Type] {
			l(ev)
		}
		if ev.stopped {
			break
		}
	}
	return !ev.defaultPrevented
}

// Click is shorthand for dispatching a click event.
func (e *Element) Click() {
	e.DispatchEvent(&Event{Type: "click"})
}

// SetValue sets the element's value attribute and dispatches an input event.
func (e *Element) SetValue(value string) {
	e.SetAttribute("value", value)
	e.DispatchEvent(&Event{Type: "input", Value: value})
}
