package main

import (
	"context"
	"time"

	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/state"
	"github.com/vango-dev/tether/pkg/view"
)

const archiveDelay = 500 * time.Millisecond

type todos struct {
	items []string
	busy  bool
}

func todoApp() view.View {
	return state.Stateful(todos{}, func(h *state.Hook[todos]) view.View {
		s := h.Get()
		ctx := h.Ctx()

		rows := view.Map(s.items, func(i int, item string) view.View {
			return view.H("li", view.Text(item)).
				On("click", ctx.Bind(func(t *todos, _ dom.Event) state.Then {
					if i >= len(t.items) {
						return state.Skip
					}
					t.items = append(t.items[:i], t.items[i+1:]...)
					return state.Render
				}))
		})

		return view.H("main",
			view.H("input").On("change", h.Bind(func(t *todos, e dom.Event) state.Then {
				if e.Value() == "" {
					return state.Skip
				}
				t.items = append(t.items, e.Value())
				return state.Render
			})),
			view.H("ul", rows),
			view.H("button", view.Text("archive")).On("click", h.BindAsync(archive)),
			view.When(s.busy, func() view.View { return view.Text("archiving...") }),
			view.H("span", view.Of(len(s.items))),
		)
	}).Named("todos")
}

// archive clears the list after a delay, showing a busy marker meanwhile.
func archive(sig state.Signal[todos], _ dom.Event) view.Task {
	started := false
	sig.Update(func(t *todos) state.Then {
		if t.busy {
			return state.Skip
		}
		t.busy, started = true, true
		return state.Render
	})
	if !started {
		return nil
	}
	return func(ctx context.Context) {
		select {
		case <-time.After(archiveDelay):
		case <-ctx.Done():
			return
		}
		sig.Update(func(t *todos) state.Then {
			t.items = nil
			t.busy = false
			return state.Render
		})
	}
}
