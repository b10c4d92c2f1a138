package state

// Signal is a non-owning, copyable handle to a component's state. It can be
// kept across suspension points: each method validates liveness and acquires
// access only for its own synchronous body. After the component unmounts
// every method is a silent no-op.
//
// Methods run through the runtime's executor, so a Signal may be used from a
// task goroutine; the mutation itself always happens on the UI goroutine.
type Signal[S any] struct {
	inner *Inner[S]
}

// Update applies mutator under exclusive access and renders if it returns
// Render.
//
//	count.Update(func(n *int) state.Then {
//	    if *n >= 10 {
//	        return state.Skip
//	    }
//	    *n++
//	    return state.Render
//	})
func (s Signal[S]) Update(mutator func(*S) Then) {
	s.run("update", func(in *Inner[S]) {
		in.apply(mutator)
	})
}

// UpdateSilent applies mutator under exclusive access and never renders.
func (s Signal[S]) UpdateSilent(mutator func(*S)) {
	s.run("update_silent", func(in *Inner[S]) {
		in.mutate(func(st *S) Then {
			mutator(st)
			return Skip
		})
	})
}

// Set replaces the state and renders.
func (s Signal[S]) Set(v S) {
	s.Update(func(st *S) Then {
		*st = v
		return Render
	})
}

// Alive reports whether the component is still mounted.
func (s Signal[S]) Alive() bool {
	return s.inner != nil && !s.inner.dead.Load()
}

func (s Signal[S]) run(op string, fn func(*Inner[S])) {
	in := s.inner
	if in == nil {
		return
	}
	if in.dead.Load() {
		in.dropped(op)
		return
	}
	in.rt.Executor().Do(func() {
		// The component may have unmounted while waiting for the executor.
		if in.dead.Load() {
			in.dropped(op)
			return
		}
		fn(in)
	})
}
