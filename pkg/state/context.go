package state

import (
	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/view"
)

// binder is the type-erased side of a component that a Context needs: it
// turns a payload slot into a trampoline the host can register.
type binder[S any] interface {
	trampoline(sl *slot[Mutator[S]]) func(dom.Event)
	asyncTrampoline(sl *slot[AsyncMutator[S]]) func(dom.Event)
	runtime() *view.Runtime
}

// Context is a copyable binding capability for a component with state S. It
// can be passed to child templates without exposing the container.
type Context[S any] struct {
	b binder[S]
}

// Bind returns a Callback for fn.
func (c Context[S]) Bind(fn Mutator[S]) Callback[S] {
	return Callback[S]{ctx: c, fn: fn}
}

// BindAsync returns an async Callback for fn.
func (c Context[S]) BindAsync(fn AsyncMutator[S]) AsyncCallback[S] {
	return AsyncCallback[S]{ctx: c, fn: fn}
}

// Callback is a mutator bound through a Context. Building it registers a
// native listener; updating it swaps only the captured closure.
type Callback[S any] struct {
	ctx Context[S]
	fn  Mutator[S]
}

// Build implements view.View.
func (cb Callback[S]) Build(rt *view.Runtime) view.Product {
	return listen(rt, cb.fn, cb.ctx.b.trampoline)
}

// Update implements view.View.
func (cb Callback[S]) Update(p view.Product) {
	rebind(p, cb.fn, cb.ctx.b.runtime())
}

// AsyncCallback is an async mutator bound through a Context.
type AsyncCallback[S any] struct {
	ctx Context[S]
	fn  AsyncMutator[S]
}

// Build implements view.View.
func (cb AsyncCallback[S]) Build(rt *view.Runtime) view.Product {
	return listen(rt, cb.fn, cb.ctx.b.asyncTrampoline)
}

// Update implements view.View.
func (cb AsyncCallback[S]) Update(p view.Product) {
	rebind(p, cb.fn, cb.ctx.b.runtime())
}
