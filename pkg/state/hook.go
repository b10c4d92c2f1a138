package state

import (
	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/view"
)

// Hook is the read-only projection of a component's state handed to its
// render function.
type Hook[S any] struct {
	inner *Inner[S]
}

// Get returns a copy of the state. The copy is shallow: slices and maps
// inside S are shared with the container and must not be written through.
// Calling Get from inside a mutator of the same component aborts with E102.
func (h *Hook[S]) Get() S {
	s := h.inner.state.Acquire()
	defer h.inner.state.Release()
	return *s
}

// Read runs fn with a shared borrow of the state, avoiding the copy Get makes.
func (h *Hook[S]) Read(fn func(s *S)) {
	h.inner.state.Read(fn)
}

// Bind captures fn as a listener view. Its lifetime is bounded by the
// component: the listener is released before the container is destroyed.
func (h *Hook[S]) Bind(fn Mutator[S]) Bound[S] {
	return Bound[S]{inner: h.inner, fn: fn}
}

// BindAsync captures fn as a listener view that hands the task fn returns to
// the runtime scheduler. The task mutates through the Signal it receives.
func (h *Hook[S]) BindAsync(fn AsyncMutator[S]) AsyncBound[S] {
	return AsyncBound[S]{inner: h.inner, fn: fn}
}

// Ctx returns the copyable binding capability of this component.
func (h *Hook[S]) Ctx() Context[S] {
	return Context[S]{b: h.inner}
}

// Signal returns a non-owning handle to the component's state.
func (h *Hook[S]) Signal() Signal[S] {
	return Signal[S]{inner: h.inner}
}

// Bound is a mutator bound to a component, usable as a listener view.
type Bound[S any] struct {
	inner *Inner[S]
	fn    Mutator[S]
}

// Build implements view.View by registering a native listener.
func (b Bound[S]) Build(rt *view.Runtime) view.Product {
	return listen(rt, b.fn, b.inner.trampoline)
}

// Update implements view.View by swapping the captured mutator.
func (b Bound[S]) Update(p view.Product) {
	rebind(p, b.fn, b.inner.rt)
}

// AsyncMutator starts asynchronous work in response to an event. It returns
// the task to schedule, or nil when there is nothing to do.
type AsyncMutator[S any] func(sig Signal[S], e dom.Event) view.Task

// AsyncBound is an async mutator bound to a component.
type AsyncBound[S any] struct {
	inner *Inner[S]
	fn    AsyncMutator[S]
}

// Build implements view.View by registering a native listener.
func (b AsyncBound[S]) Build(rt *view.Runtime) view.Product {
	return listen(rt, b.fn, b.inner.asyncTrampoline)
}

// Update implements view.View by swapping the captured mutator.
func (b AsyncBound[S]) Update(p view.Product) {
	rebind(p, b.fn, b.inner.rt)
}
