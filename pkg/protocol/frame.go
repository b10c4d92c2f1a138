package protocol

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	// FrameHeaderSize is the length of the type, flags and length prefix.
	FrameHeaderSize = 4

	// MaxPayloadSize is the largest payload a 16-bit length can carry.
	MaxPayloadSize = 1<<16 - 1
)

// FrameType tags the payload of a frame.
type FrameType uint8

const (
	FrameEvent   FrameType = 0x01 // client to server: one listener event
	FramePatches FrameType = 0x02 // server to client: one patch batch
	FrameControl FrameType = 0x03 // either way: ping, pong, close
	FrameError   FrameType = 0x05 // server to client: rejected input
)

var frameTypeNames = map[FrameType]string{
	FrameEvent:   "Event",
	FramePatches: "Patches",
	FrameControl: "Control",
	FrameError:   "Error",
}

func (ft FrameType) String() string {
	if name, ok := frameTypeNames[ft]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether ft is a known frame type.
func (ft FrameType) Valid() bool {
	_, ok := frameTypeNames[ft]
	return ok
}

// FrameFlags is a bit set carried in the second header byte.
type FrameFlags uint8

// FlagFinal marks the last patches frame of one flush.
const FlagFinal FrameFlags = 0x04

// Has reports whether every bit of flag is set.
func (ff FrameFlags) Has(flag FrameFlags) bool { return ff&flag == flag }

var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is one WebSocket message: a 4-byte header (type, flags, big-endian
// payload length) followed by the payload.
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// NewFrame returns a frame of type ft with no flags.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// AppendEncode appends the encoded frame to buf.
func (f *Frame) AppendEncode(buf []byte) []byte {
	buf = append(buf, byte(f.Type), byte(f.Flags))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(f.Payload)))
	return append(buf, f.Payload...)
}

// Encode returns the encoded frame. Payloads over MaxPayloadSize are
// truncated in the length field; WriteFrame rejects them instead.
func (f *Frame) Encode() []byte {
	return f.AppendEncode(make([]byte, 0, FrameHeaderSize+len(f.Payload)))
}

func parseHeader(h []byte) (*Frame, int, error) {
	f := &Frame{Type: FrameType(h[0]), Flags: FrameFlags(h[1])}
	if !f.Type.Valid() {
		return nil, 0, ErrInvalidFrameType
	}
	return f, int(binary.BigEndian.Uint16(h[2:4])), nil
}

// DecodeFrame parses one frame from data. Bytes past the declared payload
// are ignored; the payload is copied.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	f, n, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	body := data[FrameHeaderSize:]
	if len(body) < n {
		return nil, io.ErrUnexpectedEOF
	}
	f.Payload = append([]byte(nil), body[:n]...)
	return f, nil
}

// ReadFrame reads exactly one frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	var h [FrameHeaderSize]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return nil, err
	}
	f, n, err := parseHeader(h[:])
	if err != nil {
		return nil, err
	}
	f.Payload = make([]byte, n)
	if _, err := io.ReadFull(r, f.Payload); err != nil {
		return nil, err
	}
	return f, nil
}

// WriteFrame writes f to w in one call.
func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxPayloadSize {
		return ErrFrameTooLarge
	}
	_, err := w.Write(f.Encode())
	return err
}
