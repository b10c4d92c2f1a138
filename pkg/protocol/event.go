package protocol

import "fmt"

// Event is a client event addressed to a registered listener.
type Event struct {
	Listener uint32 // Listener ID allocated by the host
	Type     string // Event type, e.g. "click"
	Value    string // Target value for input and change events
}

// EncodeEvent encodes an event to a frame payload.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	EncodeEventTo(e, ev)
	return e.Bytes()
}

// EncodeEventTo encodes an event using e.
func EncodeEventTo(e *Encoder, ev *Event) {
	e.WriteUvarint(uint64(ev.Listener))
	e.WriteString(ev.Type)
	e.WriteString(ev.Value)
}

// DecodeEvent decodes an event from a frame payload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	ev := &Event{}
	var err error
	if ev.Listener, err = d.ReadUint32(); err != nil {
		return nil, fmt.Errorf("protocol: read event listener: %w", err)
	}
	if ev.Type, err = d.ReadString(); err != nil {
		return nil, fmt.Errorf("protocol: read event type: %w", err)
	}
	// Older clients omit the value.
	if !d.EOF() {
		if ev.Value, err = d.ReadString(); err != nil {
			return nil, fmt.Errorf("protocol: read event value: %w", err)
		}
	}
	if !d.EOF() {
		return nil, ErrTrailingBytes
	}
	return ev, nil
}
