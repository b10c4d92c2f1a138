package dom

// Node is an opaque handle to a node owned by a Host.
type Node any

// Listener is an opaque handle to a native event listener registered with a Host.
type Listener any

// Host is the primitive node API. Implementations are not required to be
// safe for concurrent use: the runtime calls a Host from a single UI
// goroutine only.
type Host interface {
	// CreateText creates a detached text node.
	CreateText(text string) Node

	// CreateEmpty creates a detached placeholder node that renders nothing.
	CreateEmpty() Node

	// CreateFragment creates a detached fragment holding a begin marker and
	// a tail marker. The fragment node is the anchor; tail is the stable
	// append position.
	CreateFragment() (fragment Node, tail Node)

	// DecorateFragment adds begin/tail markers to an existing fragment node
	// and returns the tail marker.
	DecorateFragment(fragment Node) (tail Node)

	// Append appends child (or the contents of a fragment) to parent.
	Append(parent, child Node)

	// InsertBefore inserts child (or the contents of a fragment) before anchor.
	InsertBefore(anchor, child Node)

	// Replace swaps old for replacement in the live tree.
	Replace(old, replacement Node)

	// ReplaceFragment swaps the whole range of fragment for replacement.
	// The range, markers included, is gathered back into the fragment node.
	ReplaceFragment(fragment, replacement Node)

	// Remove detaches node from its parent.
	Remove(node Node)

	// RemoveFragment gathers the range of fragment, markers included, back
	// into the fragment node.
	RemoveFragment(fragment Node)

	// ReleaseFragment drops the host-side bookkeeping of a fragment.
	ReleaseFragment(fragment Node)

	// SetText rewrites the content of a text node.
	SetText(node Node, text string)

	// NewListener registers a native listener that calls fn on every event.
	NewListener(fn func(Event)) Listener

	// Listen attaches a registered listener to target for events of type event.
	Listen(target Node, event string, l Listener)

	// ReleaseListener unregisters a native listener.
	ReleaseListener(l Listener)
}

// ElementHost is a Host that can also create tagged element nodes. Compiled
// templates usually clone prebuilt markup instead; view.Tag needs this.
type ElementHost interface {
	Host

	// CreateElement creates a detached element node.
	CreateElement(tag string) Node
}
