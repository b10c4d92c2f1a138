package view

import "github.com/vango-dev/tether/pkg/dom"

// Maybe mounts an optional child. A nil child is represented by a
// placeholder node so the position stays addressable.
type Maybe struct {
	View View
}

// Some returns a Maybe holding v.
func Some(v View) Maybe { return Maybe{View: v} }

// None returns an empty Maybe.
func None() Maybe { return Maybe{} }

// When returns Some(fn()) if cond holds and None otherwise. fn is not called
// when cond is false.
func When(cond bool, fn func() View) Maybe {
	if !cond {
		return Maybe{}
	}
	return Maybe{View: fn()}
}

type maybeProduct struct {
	rt    *Runtime
	child Product
	empty *dom.Element
}

func (p *maybeProduct) El() *dom.Element {
	if p.child != nil {
		return p.child.El()
	}
	return p.empty
}

func (p *maybeProduct) Release() {
	if p.child != nil {
		Release(p.child)
		p.child = nil
	}
}

// Build implements View.
func (m Maybe) Build(rt *Runtime) Product {
	p := &maybeProduct{rt: rt}
	if m.View != nil {
		p.child = m.View.Build(rt)
	} else {
		p.empty = dom.NewEmpty(rt.Host())
	}
	return p
}

// Update implements View.
func (m Maybe) Update(p Product) {
	mp := As[*maybeProduct](p)
	switch {
	case m.View != nil && mp.child != nil:
		m.View.Update(mp.child)
	case m.View != nil:
		child := m.View.Build(mp.rt)
		mp.empty.ReplaceWith(child.El().Anchor())
		mp.child = child
	case mp.child != nil:
		if mp.empty == nil {
			mp.empty = dom.NewEmpty(mp.rt.Host())
		}
		old := mp.child
		old.El().ReplaceWith(mp.empty.Anchor())
		mp.child = nil
		Release(old)
	}
}
