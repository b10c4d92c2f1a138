package state

import (
	"sync/atomic"

	"github.com/vango-dev/tether/internal/errors"
)

const (
	modeFree      int32 = 0
	modeExclusive int32 = -1
)

// Cell holds a value behind a runtime-checked access guard. A positive mode
// counts open shared borrows; modeExclusive marks an open exclusive borrow.
//
// Cell is not a lock. Conflicting access never waits: it aborts with E101 or
// E102, because under the single-threaded dispatch contract a conflict can
// only mean a reentrant mutation bug.
type Cell[S any] struct {
	value S
	mode  atomic.Int32
	name  string
}

// NewCell creates a Cell holding v. name identifies the cell in abort
// messages.
func NewCell[S any](name string, v S) *Cell[S] {
	return &Cell[S]{value: v, name: name}
}

// AcquireMut opens an exclusive borrow and returns the value.
func (c *Cell[S]) AcquireMut() *S {
	if !c.mode.CompareAndSwap(modeFree, modeExclusive) {
		panic(errors.New("E101").WithDetailf(
			"exclusive borrow of %s requested while %s", c.name, describe(c.mode.Load())))
	}
	return &c.value
}

// ReleaseMut closes the exclusive borrow opened by AcquireMut.
func (c *Cell[S]) ReleaseMut() {
	c.mode.CompareAndSwap(modeExclusive, modeFree)
}

// Acquire opens a shared borrow and returns the value. Callers must not
// write through the returned pointer.
func (c *Cell[S]) Acquire() *S {
	for {
		m := c.mode.Load()
		if m == modeExclusive {
			panic(errors.New("E102").WithDetailf(
				"shared borrow of %s requested while it is exclusively borrowed", c.name))
		}
		if c.mode.CompareAndSwap(m, m+1) {
			return &c.value
		}
	}
}

// Release closes one shared borrow opened by Acquire.
func (c *Cell[S]) Release() {
	for {
		m := c.mode.Load()
		if m <= modeFree {
			return
		}
		if c.mode.CompareAndSwap(m, m-1) {
			return
		}
	}
}

// With runs fn under an exclusive borrow.
func (c *Cell[S]) With(fn func(*S)) {
	s := c.AcquireMut()
	defer c.ReleaseMut()
	fn(s)
}

// Read runs fn under a shared borrow.
func (c *Cell[S]) Read(fn func(*S)) {
	s := c.Acquire()
	defer c.Release()
	fn(s)
}

// Unchecked returns the value without touching the guard. It is only valid
// where the caller already holds a borrow.
func (c *Cell[S]) Unchecked() *S {
	return &c.value
}

// Borrowed reports whether any borrow is open.
func (c *Cell[S]) Borrowed() bool {
	return c.mode.Load() != modeFree
}

func describe(mode int32) string {
	switch {
	case mode == modeExclusive:
		return "an exclusive borrow is open"
	case mode > 0:
		return "shared borrows are open"
	default:
		return "no borrow is open"
	}
}
