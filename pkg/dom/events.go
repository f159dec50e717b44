package dom

// Common event types.
const (
	EventRemove   = "remove"
	EventKeyDown  = "keydown"
	EventFocusIn  = "focusin"
	EventFocusOut = "focusout"
	EventClick    = "click"
	EventInput    = "input"
	EventChange   = "change"
)

// Key names carried by keyboard events.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// Event is dispatched to a node and, when Bubbles is set, to its ancestors.
type Event struct {
	Type    string
	Bubbles bool

	// Key is the key name for keyboard events (e.g., "Enter").
	Key string

	// Detail carries event-specific data.
	Detail any

	Target        *Node
	CurrentTarget *Node

	defaultPrevented bool
	stopped          bool
}

// NewEvent creates a non-bubbling event.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// NewKeyEvent creates a bubbling keydown event for key.
func NewKeyEvent(key string) *Event {
	return &Event{Type: EventKeyDown, Key: key, Bubbles: true}
}

// PreventDefault marks the default action as cancelled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// Listener handles an event.
type Listener func(*Event)

type listener struct {
	fn      Listener
	removed bool
}

// AddEventListener registers fn for events of type typ and returns a
// function that unregisters it. Calling the returned function more than
// once is harmless.
func (n *Node) AddEventListener(typ string, fn Listener) (remove func()) {
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	n.listeners[typ] = append(n.listeners[typ], l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		list := n.listeners[typ]
		for i, x := range list {
			if x == l {
				n.listeners[typ] = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(n.listeners[typ]) == 0 {
			delete(n.listeners, typ)
		}
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (n *Node) ListenerCount(typ string) int {
	return len(n.listeners[typ])
}

// DispatchEvent delivers e to n and, if e bubbles, to each ancestor until
// propagation is stopped. It returns false if the default was prevented.
func (n *Node) DispatchEvent(e *Event) bool {
	e.Target = n
	path := []*Node{n}
	if e.Bubbles {
		for p := n.parent; p != nil; p = p.parent {
			path = append(path, p)
		}
	}
	for _, node := range path {
		e.CurrentTarget = node
		list := append([]*listener(nil), node.listeners[e.Type]...)
		for _, l := range list {
			if l.removed {
				continue
			}
			l.fn(e)
		}
		if e.stopped {
			break
		}
	}
	e.CurrentTarget = nil
	return !e.defaultPrevented
}

// Click dispatches a bubbling click event. Clicking a checkbox toggles it
// and clicking a radio checks it before listeners run.
func (n *Node) Click() bool {
	switch n.InputType() {
	case "checkbox":
		n.SetChecked(!n.Checked())
	case "radio":
		n.SetChecked(true)
	}
	return n.DispatchEvent(&Event{Type: EventClick, Bubbles: true})
}
