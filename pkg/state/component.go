package state

import (
	"reflect"

	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/view"
)

// Component describes a stateful component. Building it creates the state
// container; later descriptions of the same position leave the state alone
// unless OnProps says otherwise.
type Component[S any] struct {
	name    string
	init    S
	render  func(*Hook[S]) view.View
	onProps func(*S) Then
}

// Stateful describes a component with initial state init.
func Stateful[S any](init S, render func(h *Hook[S]) view.View) *Component[S] {
	return &Component[S]{
		name:   reflect.TypeFor[S]().String(),
		init:   init,
		render: render,
	}
}

// Named sets the name used in logs, metrics and render spans.
func (c *Component[S]) Named(name string) *Component[S] {
	c.name = name
	return c
}

// OnProps sets the function run when the parent re-renders this position.
// It gets exclusive access to the state; returning Render re-renders the
// component.
func (c *Component[S]) OnProps(fn func(s *S) Then) *Component[S] {
	c.onProps = fn
	return c
}

// Build implements view.View.
func (c *Component[S]) Build(rt *view.Runtime) view.Product {
	in := newInner(rt, c.name, c.init, c.render)
	in.mount()
	return &Mounted[S]{inner: in}
}

// Update implements view.View.
func (c *Component[S]) Update(p view.Product) {
	m := view.As[*Mounted[S]](p)
	if c.onProps == nil || m.inner.dead.Load() {
		return
	}
	m.inner.apply(c.onProps)
}

// Mounted is the product of a stateful component.
type Mounted[S any] struct {
	inner *Inner[S]
}

// El implements view.Product. After the component is torn down it returns
// dom.Detached(), so parents may still unmount and release it.
func (m *Mounted[S]) El() *dom.Element {
	if p := m.inner.prod; p != nil {
		return p.El()
	}
	return dom.Detached()
}

// Signal returns a non-owning handle to the component's state.
func (m *Mounted[S]) Signal() Signal[S] {
	return Signal[S]{inner: m.inner}
}

// Release tears down the product tree, listeners included, and then
// destroys the container.
func (m *Mounted[S]) Release() {
	in := m.inner
	if in.dead.Load() {
		return
	}
	if in.prod != nil {
		view.Release(in.prod)
	}
	in.destroy()
}

// Unmount removes the component's nodes from the tree and releases it.
func (m *Mounted[S]) Unmount() {
	in := m.inner
	if in.dead.Load() {
		return
	}
	if in.prod != nil {
		el := in.prod.El()
		el.Unmount()
		el.Release()
	}
	m.Release()
}
