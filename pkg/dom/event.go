package dom

// Event is a dispatched event.
type Event struct {
	Type    string
	Bubbles bool
	Target  EventTarget
	// CurrentTarget is the target whose listener is running.
	CurrentTarget EventTarget
	// Detail carries event-specific data, such as the history state for
	// popstate.
	Detail any

	defaultPrevented bool
	stopped          bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ string, bubbles bool) *Event {
	return &Event{Type: typ, Bubbles: bubbles}
}

// PreventDefault marks the event's default action as cancelled.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation stops the event from reaching further ancestors.
func (ev *Event) StopPropagation() { ev.stopped = true }

// EventTarget is anything listeners can be attached to.
type EventTarget interface {
	AddEventListener(typ string, fn func(*Event)) (remove func())
	DispatchEvent(ev *Event) bool
}

type listener struct {
	fn      func(*Event)
	removed bool
}

type eventTarget struct {
	listeners map[string][]*listener
}

// AddEventListener registers fn for events of type typ and returns a
// function that removes it.
func (t *eventTarget) AddEventListener(typ string, fn func(*Event)) func() {
	if t.listeners == nil {
		t.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	t.listeners[typ] = append(t.listeners[typ], l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		ls := t.listeners[typ]
		for i, x := range ls {
			if x == l {
				t.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
	}
}

// ListenerCount returns how many listeners are registered for typ.
func (t *eventTarget) ListenerCount(typ string) int {
	return len(t.listeners[typ])
}

func (t *eventTarget) fire(current EventTarget, ev *Event) {
	ls := t.listeners[ev.Type]
	if len(ls) == 0 {
		return
	}
	snapshot := make([]*listener, len(ls))
	copy(snapshot, ls)
	ev.CurrentTarget = current
	for _, l := range snapshot {
		if !l.removed {
			l.fn(ev)
		}
	}
}
