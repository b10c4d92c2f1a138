// Package vtest provides an in-memory recording host for testing views and
// stateful components.
//
// Host implements dom.Host over a small node tree. Every primitive call is
// recorded as a dom.Patch, so tests can assert both on the resulting tree and
// on exactly which operations an update performed.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.NewHost()
//	    rt := view.NewRuntime(h)
//	    p := view.Of(1).Build(rt)
//	    h.Append(h.Root(), p.El().Anchor())
//
//	    h.Reset()
//	    view.Of(1).Update(p)
//	    vtest.ExpectNoPatches(t, h)
//
//	    view.Of(2).Update(p)
//	    vtest.ExpectText(t, h, "2")
//	}
//
// # Events
//
// Listeners attached with Host.Listen can be fired with Dispatch:
//
//	btn := h.CreateElement("button").(*vtest.Node)
//	h.Listen(btn, "click", p.(view.ListenerProduct).Listener())
//	h.Dispatch(btn, "click", "")
package vtest
