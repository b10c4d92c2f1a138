package remote

import (
	"fmt"

	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/protocol"
)

// RootID is the ID of the client's mount container. It exists before the
// first patch.
const RootID NodeID = 1

// NodeID is a node handle of a remote Host.
type NodeID uint32

// ListenerID is a listener handle of a remote Host.
type ListenerID uint32

// Host is a dom.ElementHost that queues every operation for a remote
// client. It is not safe for concurrent use; a Session only touches it from
// its UI loop.
type Host struct {
	nextID    uint32
	pending   []dom.Patch
	listeners map[ListenerID]func(dom.Event)
}

var _ dom.ElementHost = (*Host)(nil)

// NewHost creates a Host whose only node is the root container.
func NewHost() *Host {
	return &Host{
		nextID:    uint32(RootID),
		listeners: make(map[ListenerID]func(dom.Event)),
	}
}

// Root returns the root container.
func (h *Host) Root() dom.Node { return RootID }

// Pending returns the number of queued operations.
func (h *Host) Pending() int { return len(h.pending) }

// Listeners returns the number of registered listeners.
func (h *Host) Listeners() int { return len(h.listeners) }

// Take returns the queued operations and clears the queue.
func (h *Host) Take() []dom.Patch {
	ps := h.pending
	h.pending = nil
	return ps
}

// Dispatch delivers a client event to its listener. It reports whether the
// listener exists.
func (h *Host) Dispatch(ev *protocol.Event) bool {
	fn, ok := h.listeners[ListenerID(ev.Listener)]
	if !ok {
		return false
	}
	fn(dom.NewEvent(ev.Type, nil, ev.Value, ev))
	return true
}

func (h *Host) alloc() uint32 {
	h.nextID++
	return h.nextID
}

func (h *Host) queue(op dom.PatchOp, target, arg uint32, text string) {
	h.pending = append(h.pending, dom.Patch{Op: op, Target: target, Arg: arg, Text: text})
}

func id(n dom.Node) uint32 {
	nid, ok := n.(NodeID)
	if !ok {
		panic(fmt.Sprintf("remote: foreign node %T", n))
	}
	return uint32(nid)
}

// CreateElement implements dom.ElementHost.
func (h *Host) CreateElement(tag string) dom.Node {
	n := h.alloc()
	h.queue(dom.PatchCreateElement, n, 0, tag)
	return NodeID(n)
}

// CreateText implements dom.Host.
func (h *Host) CreateText(text string) dom.Node {
	n := h.alloc()
	h.queue(dom.PatchCreateText, n, 0, text)
	return NodeID(n)
}

// CreateEmpty implements dom.Host.
func (h *Host) CreateEmpty() dom.Node {
	n := h.alloc()
	h.queue(dom.PatchCreateEmpty, n, 0, "")
	return NodeID(n)
}

// CreateFragment implements dom.Host. The client allocates the begin
// marker itself; only the fragment and tail IDs travel.
func (h *Host) CreateFragment() (dom.Node, dom.Node) {
	f, tail := h.alloc(), h.alloc()
	h.queue(dom.PatchCreateFragment, f, tail, "")
	return NodeID(f), NodeID(tail)
}

// DecorateFragment implements dom.Host.
func (h *Host) DecorateFragment(frag dom.Node) dom.Node {
	tail := h.alloc()
	h.queue(dom.PatchDecorateFragment, id(frag), tail, "")
	return NodeID(tail)
}

// Append implements dom.Host.
func (h *Host) Append(parent, child dom.Node) {
	h.queue(dom.PatchAppendNode, id(parent), id(child), "")
}

// InsertBefore implements dom.Host.
func (h *Host) InsertBefore(anchor, child dom.Node) {
	h.queue(dom.PatchInsertNode, id(anchor), id(child), "")
}

// Replace implements dom.Host.
func (h *Host) Replace(old, replacement dom.Node) {
	h.queue(dom.PatchReplaceNode, id(old), id(replacement), "")
}

// ReplaceFragment implements dom.Host.
func (h *Host) ReplaceFragment(frag, replacement dom.Node) {
	h.queue(dom.PatchReplaceFragment, id(frag), id(replacement), "")
}

// Remove implements dom.Host.
func (h *Host) Remove(n dom.Node) {
	h.queue(dom.PatchRemoveNode, id(n), 0, "")
}

// RemoveFragment implements dom.Host.
func (h *Host) RemoveFragment(frag dom.Node) {
	h.queue(dom.PatchRemoveFragment, id(frag), 0, "")
}

// ReleaseFragment implements dom.Host.
func (h *Host) ReleaseFragment(frag dom.Node) {
	h.queue(dom.PatchReleaseFragment, id(frag), 0, "")
}

// SetText implements dom.Host.
func (h *Host) SetText(n dom.Node, text string) {
	h.queue(dom.PatchSetText, id(n), 0, text)
}

// NewListener implements dom.Host.
func (h *Host) NewListener(fn func(dom.Event)) dom.Listener {
	l := ListenerID(h.alloc())
	h.listeners[l] = fn
	h.queue(dom.PatchNewListener, uint32(l), 0, "")
	return l
}

// Listen implements dom.Host.
func (h *Host) Listen(target dom.Node, event string, l dom.Listener) {
	lid, ok := l.(ListenerID)
	if !ok {
		panic(fmt.Sprintf("remote: foreign listener %T", l))
	}
	h.queue(dom.PatchListen, uint32(lid), id(target), event)
}

// ReleaseListener implements dom.Host.
func (h *Host) ReleaseListener(l dom.Listener) {
	lid, ok := l.(ListenerID)
	if !ok {
		return
	}
	if _, live := h.listeners[lid]; !live {
		return
	}
	delete(h.listeners, lid)
	h.queue(dom.PatchReleaseListener, uint32(lid), 0, "")
}
