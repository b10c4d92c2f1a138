package view

import (
	"github.com/vango-dev/tether/internal/errors"
	"github.com/vango-dev/tether/pkg/dom"
)

// Product is the mounted, stateful result of View.Build.
type Product interface {
	// El returns the element owning the product's node(s). Products that
	// only represent a listener binding abort with E103.
	El() *dom.Element
}

// View is a description of an interface fragment.
type View interface {
	// Build mounts the description. It is called exactly once per mount
	// position.
	Build(rt *Runtime) Product

	// Update patches p to match the description. It must not call the host
	// when the description equals the one p was last built or updated with.
	Update(p Product)
}

// ListenerProduct is a product that owns a registered native listener.
type ListenerProduct interface {
	Product
	Listener() dom.Listener
}

// Releaser is implemented by products that hold resources beyond their
// nodes: native listeners, fragment bookkeeping or component state.
type Releaser interface {
	Release()
}

// Release tears down p if it implements Releaser.
func Release(p Product) {
	if r, ok := p.(Releaser); ok {
		r.Release()
	}
}

// As asserts that p is a P. A mismatch means a mount position changed view
// type between passes and aborts with E104.
func As[P Product](p Product) P {
	pp, ok := p.(P)
	if !ok {
		var want P
		panic(errors.New("E104").WithDetailf("update expected %T, got %T", want, p))
	}
	return pp
}

// NotAnElement aborts with E103 on behalf of a non-visual product.
func NotAnElement(p Product) *dom.Element {
	panic(errors.New("E103").WithDetailf("%T is a listener binding, not an element", p))
}
