package vtest

import (
	"fmt"

	"github.com/vango-dev/tether/pkg/dom"
)

// Host is an in-memory dom.Host that records every primitive call.
type Host struct {
	root    *Node
	nextID  uint32
	patches []dom.Patch

	registered int
	released   int
}

var _ dom.ElementHost = (*Host)(nil)

// NewHost creates a Host with an empty root container.
func NewHost() *Host {
	h := &Host{}
	h.root = h.newNode(kindRoot)
	h.root.Tag = "body"
	return h
}

// Root returns the root container node.
func (h *Host) Root() *Node { return h.root }

// Patches returns a copy of the recorded operations.
func (h *Host) Patches() []dom.Patch {
	return append([]dom.Patch(nil), h.patches...)
}

// Reset clears the recorded operations. The tree is kept.
func (h *Host) Reset() { h.patches = h.patches[:0] }

// Registered returns how many native listeners were ever registered.
func (h *Host) Registered() int { return h.registered }

// LiveListeners returns how many registered listeners have not been released.
func (h *Host) LiveListeners() int { return h.registered - h.released }

// TextContent returns the text content of the root container.
func (h *Host) TextContent() string { return h.root.TextContent() }

// CreateElement implements dom.ElementHost. The returned node is a *Node.
func (h *Host) CreateElement(tag string) dom.Node {
	n := h.newNode(kindElement)
	n.Tag = tag
	h.record(dom.PatchCreateElement, n.ID, 0, tag)
	return n
}

// Dispatch fires every live listener attached to target for event typ and
// returns how many ran.
func (h *Host) Dispatch(target *Node, typ, value string) int {
	ls := append([]*listener(nil), target.listeners[typ]...)
	fired := 0
	for _, l := range ls {
		if l.released {
			continue
		}
		l.fn(dom.NewEvent(typ, target, value, nil))
		fired++
	}
	return fired
}

func (h *Host) newNode(kind nodeKind) *Node {
	h.nextID++
	return &Node{ID: h.nextID, kind: kind}
}

func (h *Host) record(op dom.PatchOp, target, arg uint32, text string) {
	h.patches = append(h.patches, dom.Patch{Op: op, Target: target, Arg: arg, Text: text})
}

func node(n dom.Node) *Node {
	mn, ok := n.(*Node)
	if !ok || mn == nil {
		panic(fmt.Sprintf("vtest: foreign node %T", n))
	}
	return mn
}

func fragment(n dom.Node) *Node {
	f := node(n)
	if f.kind != kindFragment || f.begin == nil {
		panic(fmt.Sprintf("vtest: node %d is not a decorated fragment", f.ID))
	}
	return f
}

// CreateText implements dom.Host.
func (h *Host) CreateText(text string) dom.Node {
	n := h.newNode(kindText)
	n.text = text
	h.record(dom.PatchCreateText, n.ID, 0, text)
	return n
}

// CreateEmpty implements dom.Host.
func (h *Host) CreateEmpty() dom.Node {
	n := h.newNode(kindEmpty)
	h.record(dom.PatchCreateEmpty, n.ID, 0, "")
	return n
}

// CreateFragment implements dom.Host.
func (h *Host) CreateFragment() (dom.Node, dom.Node) {
	f := h.newNode(kindFragment)
	tail := h.decorate(f)
	h.record(dom.PatchCreateFragment, f.ID, tail.ID, "")
	return f, tail
}

// DecorateFragment implements dom.Host.
func (h *Host) DecorateFragment(n dom.Node) dom.Node {
	f := node(n)
	f.kind = kindFragment
	tail := h.decorate(f)
	h.record(dom.PatchDecorateFragment, f.ID, tail.ID, "")
	return tail
}

func (h *Host) decorate(f *Node) *Node {
	f.begin = h.newNode(kindMarker)
	f.tail = h.newNode(kindMarker)
	f.insertAt(0, []*Node{f.begin})
	f.insertAt(len(f.children), []*Node{f.tail})
	return f.tail
}

// Append implements dom.Host.
func (h *Host) Append(parent, child dom.Node) {
	p, c := node(parent), node(child)
	h.record(dom.PatchAppendNode, p.ID, c.ID, "")
	p.insertAt(len(p.children), take(c))
}

// InsertBefore implements dom.Host.
func (h *Host) InsertBefore(anchor, child dom.Node) {
	a, c := node(anchor), node(child)
	h.record(dom.PatchInsertNode, a.ID, c.ID, "")
	p := a.parent
	if p == nil {
		panic(fmt.Sprintf("vtest: anchor %d is detached", a.ID))
	}
	nodes := take(c)
	p.insertAt(p.indexOf(a), nodes)
}

// Replace implements dom.Host.
func (h *Host) Replace(old, replacement dom.Node) {
	o, r := node(old), node(replacement)
	h.record(dom.PatchReplaceNode, o.ID, r.ID, "")
	p := o.parent
	if p == nil {
		return
	}
	nodes := take(r)
	p.insertAt(p.indexOf(o), nodes)
	o.detach()
}

// ReplaceFragment implements dom.Host.
func (h *Host) ReplaceFragment(frag, replacement dom.Node) {
	f, r := fragment(frag), node(replacement)
	h.record(dom.PatchReplaceFragment, f.ID, r.ID, "")
	p := f.begin.parent
	if p == nil || p == f {
		return
	}
	nodes := take(r)
	p.insertAt(p.indexOf(f.begin), nodes)
	gather(f)
}

// Remove implements dom.Host.
func (h *Host) Remove(n dom.Node) {
	mn := node(n)
	h.record(dom.PatchRemoveNode, mn.ID, 0, "")
	mn.detach()
}

// RemoveFragment implements dom.Host.
func (h *Host) RemoveFragment(frag dom.Node) {
	f := fragment(frag)
	h.record(dom.PatchRemoveFragment, f.ID, 0, "")
	gather(f)
}

// ReleaseFragment implements dom.Host.
func (h *Host) ReleaseFragment(frag dom.Node) {
	f := fragment(frag)
	h.record(dom.PatchReleaseFragment, f.ID, 0, "")
	f.released = true
}

// SetText implements dom.Host.
func (h *Host) SetText(n dom.Node, text string) {
	mn := node(n)
	h.record(dom.PatchSetText, mn.ID, 0, text)
	mn.text = text
}

// NewListener implements dom.Host.
func (h *Host) NewListener(fn func(dom.Event)) dom.Listener {
	h.nextID++
	l := &listener{id: h.nextID, fn: fn}
	h.registered++
	h.record(dom.PatchNewListener, l.id, 0, "")
	return l
}

// Listen implements dom.Host.
func (h *Host) Listen(target dom.Node, event string, l dom.Listener) {
	t := node(target)
	ml, ok := l.(*listener)
	if !ok {
		panic(fmt.Sprintf("vtest: foreign listener %T", l))
	}
	h.record(dom.PatchListen, ml.id, t.ID, event)
	if t.listeners == nil {
		t.listeners = make(map[string][]*listener)
	}
	t.listeners[event] = append(t.listeners[event], ml)
}

// ReleaseListener implements dom.Host.
func (h *Host) ReleaseListener(l dom.Listener) {
	ml, ok := l.(*listener)
	if !ok || ml.released {
		return
	}
	ml.released = true
	h.released++
	h.record(dom.PatchReleaseListener, ml.id, 0, "")
}
