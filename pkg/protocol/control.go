package protocol

import (
	"fmt"
	"io"
)

// ControlType identifies the type of control message.
type ControlType uint8

const (
	ControlPing  ControlType = 0x01 // Client/server ping
	ControlPong  ControlType = 0x02 // Response to ping
	ControlClose ControlType = 0x20 // Session close
)

// String returns the string representation of the control type.
func (ct ControlType) String() string {
	switch ct {
	case ControlPing:
		return "Ping"
	case ControlPong:
		return "Pong"
	case ControlClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Control is a control message. Ping and pong echo Timestamp; close
// carries Reason.
type Control struct {
	Type      ControlType
	Timestamp uint64
	Reason    string
}

// EncodeControl encodes a control message to a frame payload.
func EncodeControl(c *Control) []byte {
	e := NewEncoder()
	e.WriteByte(byte(c.Type))
	switch c.Type {
	case ControlPing, ControlPong:
		e.WriteUvarint(c.Timestamp)
	case ControlClose:
		e.WriteString(c.Reason)
	}
	return e.Bytes()
}

// DecodeControl decodes a control message from a frame payload.
func DecodeControl(data []byte) (*Control, error) {
	d := NewDecoder(data)
	t, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	c := &Control{Type: ControlType(t)}
	switch c.Type {
	case ControlPing, ControlPong:
		c.Timestamp, err = d.ReadUvarint()
	case ControlClose:
		c.Reason, err = d.ReadString()
	default:
		return nil, fmt.Errorf("protocol: unknown control type %#x", t)
	}
	if err != nil {
		return nil, fmt.Errorf("protocol: read %s: %w", c.Type, err)
	}
	return c, nil
}

// ErrorMessage is the payload of an error frame.
type ErrorMessage struct {
	Code    uint16
	Message string
}

// Error codes sent to clients.
const (
	ErrCodeBadFrame        uint16 = 0x0001 // Undecodable frame
	ErrCodeUnknownListener uint16 = 0x0002 // Event for a listener that does not exist
)

// Error implements error.
func (em *ErrorMessage) Error() string {
	return fmt.Sprintf("protocol error %#04x: %s", em.Code, em.Message)
}

// EncodeError encodes an error message to a frame payload.
func EncodeError(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteUint16(em.Code)
	e.WriteString(em.Message)
	return e.Bytes()
}

// DecodeError decodes an error message from a frame payload.
func DecodeError(data []byte) (*ErrorMessage, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("protocol: short error frame: %w", io.ErrUnexpectedEOF)
	}
	d := NewDecoder(data[2:])
	msg, err := d.ReadString()
	if err != nil {
		return nil, fmt.Errorf("protocol: read error message: %w", err)
	}
	return &ErrorMessage{Code: uint16(data[0])<<8 | uint16(data[1]), Message: msg}, nil
}
