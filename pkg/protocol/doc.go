// Package protocol implements the binary wire protocol between a remote
// host and its thin client.
//
// The server streams every primitive node operation to the client as a
// patch; the client answers with events addressed to registered listeners.
// There is no markup and no diffing on the wire: a client that applies the
// patches in order holds exactly the tree the server built.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameEvent (0x01): Client → Server listener events
//   - FramePatches (0x02): Server → Client patch batches
//   - FrameControl (0x03): Ping, pong and close
//   - FrameError (0x05): Error message
//
// # Encoding
//
// Integers are protobuf-style varints. Strings are prefixed with their
// varint length. Node and listener handles are the uint32 IDs the remote
// host allocates.
//
// A patch batch:
//
//	[Seq: varint][Count: varint]
//	  [Op: byte][Target: varint][Arg: varint][Text: len-prefixed]?
//
// Text is present only for operations that carry it (SetText, CreateText,
// CreateElement, Listen). An event:
//
//	[Listener: varint][Type: len-prefixed][Value: len-prefixed]
//
// Batches larger than one frame are split with SplitPatches; every frame
// but the last of a flush carries no FlagFinal.
package protocol
