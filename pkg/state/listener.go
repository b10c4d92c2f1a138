package state

import (
	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/view"
)

// slot is the stable-address cell a trampoline reads its payload from.
type slot[F any] struct {
	fn F
}

// ListenerProduct is the product of a bound listener: a native listener
// registered once, and the slot holding the current closure payload.
type ListenerProduct[F any] struct {
	slot     *slot[F]
	listener dom.Listener
	host     dom.Host
	released bool
}

// El implements view.Product. A listener is not an element; calling El
// aborts with E103.
func (p *ListenerProduct[F]) El() *dom.Element {
	return view.NotAnElement(p)
}

// Listener implements view.ListenerProduct.
func (p *ListenerProduct[F]) Listener() dom.Listener {
	return p.listener
}

// Release unregisters the native listener.
func (p *ListenerProduct[F]) Release() {
	if p.released {
		return
	}
	p.released = true
	p.host.ReleaseListener(p.listener)
}

func listen[F any](rt *view.Runtime, fn F, trampoline func(*slot[F]) func(dom.Event)) *ListenerProduct[F] {
	sl := &slot[F]{fn: fn}
	l := rt.Host().NewListener(trampoline(sl))
	rt.Observer().ListenerRegistered()
	return &ListenerProduct[F]{slot: sl, listener: l, host: rt.Host()}
}

// rebind swaps the payload of an existing listener product. The native
// listener is left untouched.
func rebind[F any](p view.Product, fn F, rt *view.Runtime) {
	lp := view.As[*ListenerProduct[F]](p)
	lp.slot.fn = fn
	rt.Observer().ListenerRebound()
}
