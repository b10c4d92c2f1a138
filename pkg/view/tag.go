package view

import (
	"fmt"

	"github.com/vango-dev/tether/internal/errors"
	"github.com/vango-dev/tether/pkg/dom"
)

// Tag describes an element with a fixed list of children and event
// handlers. It is the hand-written equivalent of what a template compiler
// emits: the shape never changes between passes, so Update walks children
// and handlers by position.
//
//	view.H("button", view.Of(count)).On("click", hook.Bind(increment))
//
// Tag needs a host implementing dom.ElementHost.
type Tag struct {
	name     string
	children []View
	events   []string
	handlers []View
}

// H describes an element named tag with the given children.
func H(tag string, children ...View) *Tag {
	return &Tag{name: tag, children: children}
}

// On attaches a listener view (a state.Bound or state.Callback) for event.
func (t *Tag) On(event string, handler View) *Tag {
	t.events = append(t.events, event)
	t.handlers = append(t.handlers, handler)
	return t
}

type tagProduct struct {
	name     string
	el       *dom.Element
	children []Product
	handlers []Product
}

func (p *tagProduct) El() *dom.Element { return p.el }

func (p *tagProduct) Release() {
	for _, h := range p.handlers {
		Release(h)
	}
	for _, c := range p.children {
		Release(c)
	}
}

// Build implements View.
func (t *Tag) Build(rt *Runtime) Product {
	eh, ok := rt.Host().(dom.ElementHost)
	if !ok {
		panic(fmt.Sprintf("view: host %T cannot create <%s> elements", rt.Host(), t.name))
	}
	node := eh.CreateElement(t.name)
	p := &tagProduct{
		name:     t.name,
		el:       dom.NewElement(eh, node),
		children: make([]Product, len(t.children)),
		handlers: make([]Product, len(t.handlers)),
	}
	for i, c := range t.children {
		p.children[i] = c.Build(rt)
		eh.Append(node, p.children[i].El().Anchor())
	}
	for i, h := range t.handlers {
		hp := h.Build(rt)
		lp, ok := hp.(ListenerProduct)
		if !ok {
			panic(errors.New("E104").WithDetailf("<%s> handler for %q built %T, not a listener", t.name, t.events[i], hp))
		}
		eh.Listen(node, t.events[i], lp.Listener())
		p.handlers[i] = hp
	}
	return p
}

// Update implements View.
func (t *Tag) Update(p Product) {
	tp := As[*tagProduct](p)
	if tp.name != t.name || len(tp.children) != len(t.children) || len(tp.handlers) != len(t.handlers) {
		panic(errors.New("E104").WithDetailf("<%s> with %d children and %d handlers updated as <%s> with %d and %d",
			tp.name, len(tp.children), len(tp.handlers), t.name, len(t.children), len(t.handlers)))
	}
	for i, c := range t.children {
		c.Update(tp.children[i])
	}
	for i, h := range t.handlers {
		h.Update(tp.handlers[i])
	}
}
