// Package state provides stateful components: a state container mounted
// together with its product, and the handles used to read and mutate it.
//
// # Core Types
//
// Stateful mounts a component. Its render function receives a *Hook, the
// read-only view of state used to describe the interface:
//
//	counter := state.Stateful(0, func(h *state.Hook[int]) view.View {
//	    return view.Of(h.Get())
//	})
//
// Hook.Bind turns a mutator into a listener. The mutator runs with exclusive
// access to the state and returns a Then deciding whether to re-render:
//
//	onclick := h.Bind(func(n *int, _ dom.Event) state.Then {
//	    *n++
//	    return state.Render
//	})
//
// Context is a copyable capability handed to child templates. Rebinding a
// Context callback on every render swaps only the captured closure; the
// native listener registered on the first pass is kept:
//
//	ctx := h.Ctx()
//	view.Map(items, func(i int, it Item) view.View {
//	    return itemView(it, ctx.Bind(func(s *State, _ dom.Event) state.Then {
//	        return s.remove(i)
//	    }))
//	})
//
// Signal is a non-owning handle usable after suspension points, e.g. from an
// async task spawned by Hook.BindAsync. Once the component unmounts every
// Signal operation silently becomes a no-op.
//
// # Access Discipline
//
// The runtime is single-threaded and non-reentrant. Every access goes through
// a runtime-checked Cell: overlapping an exclusive borrow with any other
// borrow of the same state aborts with a coded error instead of corrupting
// state. A mutator must therefore never synchronously invoke another mutator
// on the same state, and no borrow is ever held across a suspension: Signal
// methods acquire, mutate, release and return.
package state
