//go:build js && wasm

package jsdom

import (
	"fmt"
	"syscall/js"

	"github.com/vango-dev/tether/pkg/dom"
)

// Host is a dom.ElementHost over the browser document.
type Host struct {
	doc js.Value
}

var _ dom.ElementHost = (*Host)(nil)

type fragment struct {
	frag  js.Value
	begin js.Value
	tail  js.Value
}

type listener struct {
	fn       js.Func
	attached []attachment
	released bool
}

type attachment struct {
	target js.Value
	event  string
}

// New creates a Host over the global document.
func New() *Host {
	return &Host{doc: js.Global().Get("document")}
}

// Body returns document.body as a node.
func (h *Host) Body() dom.Node { return h.doc.Get("body") }

// Lookup returns the element with the given id, or nil.
func (h *Host) Lookup(id string) dom.Node {
	v := h.doc.Call("getElementById", id)
	if v.IsNull() {
		return nil
	}
	return v
}

func value(n dom.Node) js.Value {
	switch v := n.(type) {
	case js.Value:
		return v
	case *fragment:
		return v.frag
	default:
		panic(fmt.Sprintf("jsdom: foreign node %T", n))
	}
}

func frag(n dom.Node) *fragment {
	f, ok := n.(*fragment)
	if !ok {
		panic(fmt.Sprintf("jsdom: %T is not a fragment", n))
	}
	return f
}

// gather moves the range begin..tail back into the DocumentFragment. It is
// a no-op when the range already lives there.
func (f *fragment) gather() {
	if f.begin.Get("parentNode").Equal(f.frag) {
		return
	}
	n := f.begin
	for {
		next := n.Get("nextSibling")
		f.frag.Call("appendChild", n)
		if n.Equal(f.tail) {
			return
		}
		n = next
	}
}

// CreateElement implements dom.ElementHost.
func (h *Host) CreateElement(tag string) dom.Node {
	return h.doc.Call("createElement", tag)
}

// CreateText implements dom.Host.
func (h *Host) CreateText(text string) dom.Node {
	return h.doc.Call("createTextNode", text)
}

// CreateEmpty implements dom.Host.
func (h *Host) CreateEmpty() dom.Node {
	return h.doc.Call("createTextNode", "")
}

// CreateFragment implements dom.Host.
func (h *Host) CreateFragment() (dom.Node, dom.Node) {
	f := &fragment{frag: h.doc.Call("createDocumentFragment")}
	tail := h.decorate(f)
	return f, tail
}

// DecorateFragment implements dom.Host. node must be a fragment created by
// this host or a DocumentFragment.
func (h *Host) DecorateFragment(node dom.Node) dom.Node {
	if f, ok := node.(*fragment); ok {
		return h.decorate(f)
	}
	return h.decorate(&fragment{frag: value(node)})
}

func (h *Host) decorate(f *fragment) js.Value {
	f.begin = h.doc.Call("createTextNode", "")
	f.tail = h.doc.Call("createTextNode", "")
	f.frag.Call("prepend", f.begin)
	f.frag.Call("append", f.tail)
	return f.tail
}

// Append implements dom.Host.
func (h *Host) Append(parent, child dom.Node) {
	value(parent).Call("appendChild", value(child))
}

// InsertBefore implements dom.Host.
func (h *Host) InsertBefore(anchor, child dom.Node) {
	a := value(anchor)
	a.Get("parentNode").Call("insertBefore", value(child), a)
}

// Replace implements dom.Host.
func (h *Host) Replace(old, replacement dom.Node) {
	value(old).Call("replaceWith", value(replacement))
}

// ReplaceFragment implements dom.Host.
func (h *Host) ReplaceFragment(node, replacement dom.Node) {
	f := frag(node)
	parent := f.begin.Get("parentNode")
	if parent.IsNull() || parent.Equal(f.frag) {
		return
	}
	parent.Call("insertBefore", value(replacement), f.begin)
	f.gather()
}

// Remove implements dom.Host.
func (h *Host) Remove(node dom.Node) {
	value(node).Call("remove")
}

// RemoveFragment implements dom.Host.
func (h *Host) RemoveFragment(node dom.Node) {
	frag(node).gather()
}

// ReleaseFragment implements dom.Host.
func (h *Host) ReleaseFragment(node dom.Node) {
	f := frag(node)
	f.begin, f.tail = js.Undefined(), js.Undefined()
}

// SetText implements dom.Host.
func (h *Host) SetText(node dom.Node, text string) {
	value(node).Set("textContent", text)
}

// NewListener implements dom.Host. Events carry the target's value
// property, when it has one, as their Value.
func (h *Host) NewListener(fn func(dom.Event)) dom.Listener {
	l := &listener{}
	l.fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		evt := args[0]
		target := evt.Get("target")
		var v string
		if val := target.Get("value"); val.Type() == js.TypeString {
			v = val.String()
		}
		fn(dom.NewEvent(evt.Get("type").String(), target, v, evt))
		return nil
	})
	return l
}

// Listen implements dom.Host.
func (h *Host) Listen(target dom.Node, event string, l dom.Listener) {
	jl, ok := l.(*listener)
	if !ok {
		panic(fmt.Sprintf("jsdom: foreign listener %T", l))
	}
	t := value(target)
	t.Call("addEventListener", event, jl.fn)
	jl.attached = append(jl.attached, attachment{target: t, event: event})
}

// ReleaseListener implements dom.Host.
func (h *Host) ReleaseListener(l dom.Listener) {
	jl, ok := l.(*listener)
	if !ok || jl.released {
		return
	}
	jl.released = true
	for _, a := range jl.attached {
		a.target.Call("removeEventListener", a.event, jl.fn)
	}
	jl.attached = nil
	jl.fn.Release()
}
