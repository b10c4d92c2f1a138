// Package dom defines the primitive node API the runtime mounts into and the
// Element/Fragment handles that own mounted nodes.
//
// The runtime never touches a document directly. Everything it needs is the
// small capability set described by Host: create text, placeholder and
// fragment nodes, insert, replace and remove nodes or fragment ranges, rewrite
// text, and register native listeners. Any backend exposing those primitives
// is a valid host: the browser (package jsdom), a remote thin client (package
// remote) or the in-memory recorder used in tests (package vtest).
//
// # Elements and Fragments
//
// An Element exclusively owns one node handle and is tagged by kind, because
// replacing or unmounting a single node differs from replacing or unmounting
// a fragment range:
//
//	el := dom.NewText(host, "hello")
//	el.SetText("world")
//	el.ReplaceWith(other.Anchor())
//
// A Fragment is an Element bounded by a persistent tail anchor. Children are
// appended before the tail, so the range stays addressable even when every
// child has been removed:
//
//	frag := dom.NewFragment(host)
//	frag.Append(child.Anchor())
//	child.Unmount()
//	frag.Append(next.Anchor()) // tail is still there
//
// Fragment elements hold bookkeeping inside the host; Release must run on
// every destruction path.
package dom
