package dom

// Kind tags an Element as a single node or a fragment range.
type Kind uint8

const (
	KindElement Kind = iota
	KindFragment
	KindDetached
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindFragment:
		return "Fragment"
	case KindDetached:
		return "Detached"
	}
	return "Element"
}

// Element owns a single mounted node or a fragment range.
type Element struct {
	host     Host
	kind     Kind
	node     Node
	released bool
}

// Detached returns the element of a torn-down product. It has no host and
// no anchor; every operation on it is a no-op.
func Detached() *Element {
	return &Element{kind: KindDetached, released: true}
}

// NewElement wraps an existing node as a single element.
func NewElement(h Host, node Node) *Element {
	return &Element{host: h, kind: KindElement, node: node}
}

// NewText creates a text node element.
func NewText(h Host, text string) *Element {
	return NewElement(h, h.CreateText(text))
}

// NewEmpty creates a placeholder element.
func NewEmpty(h Host) *Element {
	return NewElement(h, h.CreateEmpty())
}

// Kind returns the element kind.
func (e *Element) Kind() Kind { return e.kind }

// Host returns the host owning the element's node.
func (e *Element) Host() Host { return e.host }

// Anchor returns the node a parent uses to insert this element.
func (e *Element) Anchor() Node { return e.node }

// SetText rewrites the content of a text node element.
func (e *Element) SetText(text string) {
	if e.kind == KindDetached {
		return
	}
	e.host.SetText(e.node, text)
}

// ReplaceWith swaps this element, or its whole fragment range, for replacement.
func (e *Element) ReplaceWith(replacement Node) {
	switch e.kind {
	case KindDetached:
	case KindFragment:
		e.host.ReplaceFragment(e.node, replacement)
	default:
		e.host.Replace(e.node, replacement)
	}
}

// Unmount removes this element, or its whole fragment range, from the tree.
func (e *Element) Unmount() {
	switch e.kind {
	case KindDetached:
	case KindFragment:
		e.host.RemoveFragment(e.node)
	default:
		e.host.Remove(e.node)
	}
}

// Release frees host-side bookkeeping held for fragment elements. It is safe
// to call more than once and is a no-op for single elements.
func (e *Element) Release() {
	if e.kind != KindFragment || e.released {
		return
	}
	e.released = true
	e.host.ReleaseFragment(e.node)
}

// Fragment is an Element bounded by a persistent tail anchor.
type Fragment struct {
	Element
	tail Node
}

// NewFragment creates a detached fragment with begin and tail markers.
func NewFragment(h Host) *Fragment {
	node, tail := h.CreateFragment()
	return &Fragment{
		Element: Element{host: h, kind: KindFragment, node: node},
		tail:    tail,
	}
}

// WrapFragment decorates an existing fragment node with markers.
func WrapFragment(h Host, node Node) *Fragment {
	tail := h.DecorateFragment(node)
	return &Fragment{
		Element: Element{host: h, kind: KindFragment, node: node},
		tail:    tail,
	}
}

// Append inserts child before the tail anchor.
func (f *Fragment) Append(child Node) {
	f.host.InsertBefore(f.tail, child)
}

// Tail returns the tail anchor. It stays in the range for the fragment's
// whole lifetime.
func (f *Fragment) Tail() Node { return f.tail }

// El returns the fragment as an Element.
func (f *Fragment) El() *Element { return &f.Element }
