package view

import "github.com/vango-dev/tether/pkg/dom"

// List mounts a positional run of children inside a fragment. Children are
// matched by index only: there are no keys and no reordering.
type List []View

// Map builds a List by applying fn to every item.
func Map[T any](items []T, fn func(i int, item T) View) List {
	l := make(List, len(items))
	for i, item := range items {
		l[i] = fn(i, item)
	}
	return l
}

type listProduct struct {
	rt      *Runtime
	frag    *dom.Fragment
	items   []Product
	visible int
}

func (p *listProduct) El() *dom.Element { return p.frag.El() }

func (p *listProduct) Release() {
	for _, item := range p.items {
		Release(item)
	}
	p.items = nil
	p.visible = 0
	p.frag.Release()
}

// Build implements View.
func (l List) Build(rt *Runtime) Product {
	p := &listProduct{
		rt:    rt,
		frag:  dom.NewFragment(rt.Host()),
		items: make([]Product, 0, len(l)),
	}
	for _, v := range l {
		item := v.Build(rt)
		p.frag.Append(item.El().Anchor())
		p.items = append(p.items, item)
	}
	p.visible = len(l)
	return p
}

// Update implements View. Surplus products are unmounted but retained, and
// reused when the list grows again.
func (l List) Update(p Product) {
	lp := As[*listProduct](p)

	for i, v := range l {
		switch {
		case i < lp.visible:
			v.Update(lp.items[i])
		case i < len(lp.items):
			if lp.items[i].El().Kind() == dom.KindDetached {
				lp.items[i] = v.Build(lp.rt)
			} else {
				v.Update(lp.items[i])
			}
			lp.frag.Append(lp.items[i].El().Anchor())
		default:
			item := v.Build(lp.rt)
			lp.frag.Append(item.El().Anchor())
			lp.items = append(lp.items, item)
		}
	}

	for i := len(l); i < lp.visible; i++ {
		lp.items[i].El().Unmount()
	}
	lp.visible = len(l)
}
