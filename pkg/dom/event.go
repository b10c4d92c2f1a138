package dom

// Event is a native event delivered to a registered listener.
type Event interface {
	// Type returns the event type, e.g. "click".
	Type() string

	// Target returns the node the event was dispatched to, if known.
	Target() Node

	// Value returns the value carried by the event (the target's value for
	// input and change events), or "".
	Value() string

	// Native returns the host's native event object.
	Native() any
}

type eventObject struct {
	typ    string
	target Node
	value  string
	native any
}

// NewEvent creates an Event. Hosts without a richer native representation
// use it to deliver events to listeners.
func NewEvent(typ string, target Node, value string, native any) Event {
	return &eventObject{typ: typ, target: target, value: value, native: native}
}

func (e *eventObject) Type() string  { return e.typ }
func (e *eventObject) Target() Node  { return e.target }
func (e *eventObject) Value() string { return e.value }
func (e *eventObject) Native() any   { return e.native }
