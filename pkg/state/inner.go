package state

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/view"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Inner is the state container of one mounted component: the state cell,
// the mounted product and the render function that describes it.
type Inner[S any] struct {
	name   string
	state  Cell[S]
	prod   view.Product
	render func(*Hook[S]) view.View
	rt     *view.Runtime
	hook   Hook[S]

	// dead is set once when the component unmounts. Signals and listeners
	// check it before every access.
	dead atomic.Bool
}

func newInner[S any](rt *view.Runtime, name string, init S, render func(*Hook[S]) view.View) *Inner[S] {
	in := &Inner[S]{
		name:   name,
		render: render,
		rt:     rt,
	}
	in.state.value = init
	in.state.name = name
	in.hook.inner = in
	return in
}

// mount runs the first render pass and builds the product.
func (in *Inner[S]) mount() {
	start := time.Now()
	_, span := in.startSpan("build")
	defer span.End()

	in.state.Acquire()
	defer in.state.Release()

	in.prod = in.render(&in.hook).Build(in.rt)
	in.rt.Observer().RenderCompleted(in.name, time.Since(start))
}

// update recomputes the description from current state and patches the
// existing product with it.
func (in *Inner[S]) update() {
	if in.dead.Load() {
		return
	}

	start := time.Now()
	_, span := in.startSpan("update")
	defer span.End()

	in.state.Acquire()
	defer in.state.Release()

	in.render(&in.hook).Update(in.prod)

	d := time.Since(start)
	in.rt.Observer().RenderCompleted(in.name, d)
	in.rt.Logger().Debug("render", "component", in.name, "duration", d)
}

func (in *Inner[S]) startSpan(phase string) (context.Context, trace.Span) {
	return in.rt.Tracer().Start(context.Background(), "tether.render",
		trace.WithAttributes(
			attribute.String("tether.component", in.name),
			attribute.String("tether.phase", phase),
		))
}

// mutate runs fn under an exclusive borrow.
func (in *Inner[S]) mutate(fn func(*S) Then) Then {
	s := in.state.AcquireMut()
	defer in.state.ReleaseMut()
	return fn(s)
}

// apply mutates and, if the decision says so, renders. The exclusive borrow
// is released before the render pass opens its shared borrow; both complete
// before apply returns.
func (in *Inner[S]) apply(fn func(*S) Then) {
	if in.mutate(fn).ShouldRender() {
		in.update()
		return
	}
	in.rt.Observer().RenderSkipped(in.name)
}

// dispatch is the body of every listener trampoline bound to this container.
func (in *Inner[S]) dispatch(fn Mutator[S], e dom.Event) {
	if in.dead.Load() {
		in.dropped("listener")
		return
	}
	in.apply(func(s *S) Then { return fn(s, e) })
}

func (in *Inner[S]) dropped(op string) {
	in.rt.Observer().SignalDropped(op)
	in.rt.Logger().Debug("dropped access to unmounted component", "component", in.name, "op", op)
}

// trampoline implements binder. The returned closure is what the host
// registers; it reads the current mutator from sl on every call.
func (in *Inner[S]) trampoline(sl *slot[Mutator[S]]) func(dom.Event) {
	return func(e dom.Event) {
		in.rt.Executor().Do(func() { in.dispatch(sl.fn, e) })
	}
}

func (in *Inner[S]) asyncTrampoline(sl *slot[AsyncMutator[S]]) func(dom.Event) {
	return func(e dom.Event) {
		in.rt.Executor().Do(func() {
			if in.dead.Load() {
				in.dropped("async listener")
				return
			}
			if task := sl.fn(Signal[S]{inner: in}, e); task != nil {
				in.rt.Scheduler().Spawn(task)
			}
		})
	}
}

func (in *Inner[S]) runtime() *view.Runtime { return in.rt }

// destroy marks the container dead. Outstanding Signals become inert.
func (in *Inner[S]) destroy() {
	if in.dead.Swap(true) {
		return
	}
	in.prod = nil
	if !in.state.Borrowed() {
		var zero S
		in.state.value = zero
	}
	in.rt.Logger().Debug("unmounted", "component", in.name)
}
