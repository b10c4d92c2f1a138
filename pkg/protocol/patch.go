package protocol

import (
	"fmt"

	"github.com/vango-dev/tether/pkg/dom"
)

// batchHeaderMax is the largest encoding of a batch header: two varints.
const batchHeaderMax = 2 * MaxVarintLen

// PatchBatch is a sequenced run of primitive operations. Batches are applied
// by the client strictly in Seq order.
type PatchBatch struct {
	Seq     uint64
	Patches []dom.Patch
}

// hasText reports whether op carries a text argument on the wire.
func hasText(op dom.PatchOp) bool {
	switch op {
	case dom.PatchSetText, dom.PatchCreateText, dom.PatchCreateElement, dom.PatchListen:
		return true
	}
	return false
}

// EncodePatches encodes a batch to a frame payload.
func EncodePatches(b *PatchBatch) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, b)
	return e.Bytes()
}

// EncodePatchesTo encodes a batch using e.
func EncodePatchesTo(e *Encoder, b *PatchBatch) {
	e.WriteUvarint(b.Seq)
	e.WriteUvarint(uint64(len(b.Patches)))
	for i := range b.Patches {
		encodePatch(e, &b.Patches[i])
	}
}

func encodePatch(e *Encoder, p *dom.Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteUvarint(uint64(p.Target))
	e.WriteUvarint(uint64(p.Arg))
	if hasText(p.Op) {
		e.WriteString(p.Text)
	}
}

// PatchSize returns the encoded size of p in bytes.
func PatchSize(p *dom.Patch) int {
	n := 1 + uvarintLen(uint64(p.Target)) + uvarintLen(uint64(p.Arg))
	if hasText(p.Op) {
		n += uvarintLen(uint64(len(p.Text))) + len(p.Text)
	}
	return n
}

// DecodePatches decodes a batch from a frame payload.
func DecodePatches(data []byte) (*PatchBatch, error) {
	d := NewDecoder(data)
	b, err := DecodePatchesFrom(d)
	if err != nil {
		return nil, err
	}
	if !d.EOF() {
		return nil, ErrTrailingBytes
	}
	return b, nil
}

// DecodePatchesFrom decodes a batch using d.
func DecodePatchesFrom(d *Decoder) (*PatchBatch, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, fmt.Errorf("protocol: read batch seq: %w", err)
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, fmt.Errorf("protocol: read patch count: %w", err)
	}

	b := &PatchBatch{Seq: seq, Patches: make([]dom.Patch, count)}
	for i := range b.Patches {
		if err := decodePatch(d, &b.Patches[i]); err != nil {
			return nil, fmt.Errorf("protocol: patch %d: %w", i, err)
		}
	}
	return b, nil
}

func decodePatch(d *Decoder, p *dom.Patch) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = dom.PatchOp(op)
	if p.Op.String() == "Unknown" {
		return fmt.Errorf("unknown op %#x", op)
	}
	if p.Target, err = d.ReadUint32(); err != nil {
		return err
	}
	if p.Arg, err = d.ReadUint32(); err != nil {
		return err
	}
	if hasText(p.Op) {
		if p.Text, err = d.ReadString(); err != nil {
			return err
		}
	}
	return nil
}

// SplitPatches splits patches into runs whose encoded batch fits in max
// bytes. It fails with ErrFrameTooLarge if a single patch cannot fit.
func SplitPatches(patches []dom.Patch, max int) ([][]dom.Patch, error) {
	var runs [][]dom.Patch
	start, size := 0, batchHeaderMax
	for i := range patches {
		n := PatchSize(&patches[i])
		if batchHeaderMax+n > max {
			return nil, fmt.Errorf("%w: %s patch of %d bytes", ErrFrameTooLarge, patches[i].Op, n)
		}
		if size+n > max {
			runs = append(runs, patches[start:i])
			start, size = i, batchHeaderMax
		}
		size += n
	}
	if start < len(patches) {
		runs = append(runs, patches[start:])
	}
	return runs, nil
}
