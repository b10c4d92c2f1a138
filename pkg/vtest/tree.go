package vtest

import (
	"fmt"
	"strings"

	"github.com/vango-dev/tether/pkg/dom"
)

type nodeKind uint8

const (
	kindRoot nodeKind = iota
	kindElement
	kindText
	kindEmpty
	kindMarker
	kindFragment
)

// Node is a node of the in-memory tree.
type Node struct {
	ID  uint32
	Tag string

	kind     nodeKind
	text     string
	parent   *Node
	children []*Node

	// begin and tail delimit a fragment's range, wherever it lives.
	begin, tail *Node
	released    bool

	listeners map[string][]*listener
}

type listener struct {
	id       uint32
	fn       func(dom.Event)
	released bool
}

// Parent returns the node's parent, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the node's children.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Text returns the content of a text node.
func (n *Node) Text() string { return n.text }

// IsMarker reports whether the node is a fragment begin/tail marker.
func (n *Node) IsMarker() bool { return n.kind == kindMarker }

// Released reports whether a fragment's bookkeeping was released.
func (n *Node) Released() bool { return n.released }

// TextContent concatenates the text of every text node below n.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	if n.kind == kindText {
		b.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		c.writeText(b)
	}
}

// String renders the subtree in a compact debug form.
func (n *Node) String() string {
	var b strings.Builder
	n.writeDebug(&b)
	return b.String()
}

func (n *Node) writeDebug(b *strings.Builder) {
	switch n.kind {
	case kindText:
		fmt.Fprintf(b, "%q", n.text)
		return
	case kindEmpty:
		b.WriteString("<!>")
		return
	case kindMarker:
		b.WriteString("|")
		return
	}
	tag := n.Tag
	if n.kind == kindFragment {
		tag = "#fragment"
	}
	b.WriteString("<" + tag + ">")
	for _, c := range n.children {
		c.writeDebug(b)
	}
	b.WriteString("</" + tag + ">")
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) insertAt(idx int, nodes []*Node) {
	for _, c := range nodes {
		c.parent = n
	}
	tail := append([]*Node(nil), n.children[idx:]...)
	n.children = append(append(n.children[:idx], nodes...), tail...)
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

// take returns the nodes to insert for child: the contents of a fragment
// node, or child itself detached from its current parent.
func take(child *Node) []*Node {
	if child.kind == kindFragment {
		nodes := child.children
		child.children = nil
		return nodes
	}
	child.detach()
	return []*Node{child}
}

// gather moves a fragment's live range, markers included, back into the
// fragment node. It is a no-op when the range already lives there.
func gather(f *Node) {
	p := f.begin.parent
	if p == nil || p == f {
		return
	}
	start := p.indexOf(f.begin)
	end := p.indexOf(f.tail)
	if start < 0 || end < start {
		panic(fmt.Sprintf("vtest: fragment %d range is corrupt", f.ID))
	}
	rng := append([]*Node(nil), p.children[start:end+1]...)
	p.children = append(p.children[:start], p.children[end+1:]...)
	f.insertAt(len(f.children), rng)
}
