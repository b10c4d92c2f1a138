package dom_test

import (
	"testing"

	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/vtest"
)

func TestTextElement(t *testing.T) {
	h := vtest.NewHost()
	el := dom.NewText(h, "hello")
	h.Append(h.Root(), el.Anchor())

	if el.Kind() != dom.KindElement {
		t.Errorf("expected %s, got %s", dom.KindElement, el.Kind())
	}
	el.SetText("world")
	vtest.ExpectText(t, h, "world")

	el.Unmount()
	vtest.ExpectText(t, h, "")
}

func TestElementReplaceWith(t *testing.T) {
	h := vtest.NewHost()
	el := dom.NewEmpty(h)
	h.Append(h.Root(), el.Anchor())

	next := dom.NewText(h, "filled")
	el.ReplaceWith(next.Anchor())
	vtest.ExpectText(t, h, "filled")

	if el.Anchor().(*vtest.Node).Parent() != nil {
		t.Error("replaced node still attached")
	}
}

func TestFragmentAnchorStability(t *testing.T) {
	h := vtest.NewHost()
	frag := dom.NewFragment(h)
	h.Append(h.Root(), frag.Anchor())

	const n = 5
	children := make([]*dom.Element, n)
	for i := range children {
		children[i] = dom.NewText(h, "x")
		frag.Append(children[i].Anchor())
	}
	vtest.ExpectText(t, h, "xxxxx")

	for _, c := range children {
		c.Unmount()
	}
	vtest.ExpectText(t, h, "")

	tail := frag.Tail().(*vtest.Node)
	if tail.Parent() != h.Root() {
		t.Fatal("tail anchor was removed with the children")
	}

	frag.Append(dom.NewText(h, "again").Anchor())
	vtest.ExpectText(t, h, "again")
}

func TestFragmentReplaceAndUnmount(t *testing.T) {
	h := vtest.NewHost()
	h.Append(h.Root(), dom.NewText(h, "[").Anchor())
	frag := dom.NewFragment(h)
	frag.Append(dom.NewText(h, "a").Anchor())
	frag.Append(dom.NewText(h, "b").Anchor())
	h.Append(h.Root(), frag.Anchor())
	h.Append(h.Root(), dom.NewText(h, "]").Anchor())
	vtest.ExpectText(t, h, "[ab]")

	el := frag.El()
	if el.Kind() != dom.KindFragment {
		t.Fatalf("expected %s, got %s", dom.KindFragment, el.Kind())
	}

	el.ReplaceWith(dom.NewText(h, "-").Anchor())
	vtest.ExpectText(t, h, "[-]")

	node := frag.Anchor().(*vtest.Node)
	if got := node.TextContent(); got != "ab" {
		t.Errorf("expected range gathered into fragment, got %q", got)
	}

	h.Reset()
	el.Release()
	el.Release()
	vtest.ExpectOps(t, h, dom.PatchReleaseFragment)
}

func TestWrapFragment(t *testing.T) {
	h := vtest.NewHost()
	node := h.CreateElement("div")
	h.Append(h.Root(), node)

	frag := dom.WrapFragment(h, node)
	frag.Append(dom.NewText(h, "inside").Anchor())
	vtest.ExpectText(t, h, "inside")

	h.Reset()
	frag.Release()
	vtest.ExpectOps(t, h, dom.PatchReleaseFragment)
}

func TestSingleElementReleaseIsNoop(t *testing.T) {
	h := vtest.NewHost()
	el := dom.NewText(h, "x")
	h.Reset()
	el.Release()
	vtest.ExpectNoPatches(t, h)
}

func TestDetachedIsInert(t *testing.T) {
	el := dom.Detached()
	if el.Kind() != dom.KindDetached || el.Kind().String() != "Detached" {
		t.Errorf("expected Detached kind, got %s", el.Kind())
	}
	if el.Anchor() != nil || el.Host() != nil {
		t.Error("detached element should have no anchor or host")
	}
	el.SetText("x")
	el.ReplaceWith(nil)
	el.Unmount()
	el.Release()
}

func TestPatchOpString(t *testing.T) {
	tests := []struct {
		op   dom.PatchOp
		want string
	}{
		{dom.PatchSetText, "SetText"},
		{dom.PatchCreateElement, "CreateElement"},
		{dom.PatchReplaceFragment, "ReplaceFragment"},
		{dom.PatchReleaseListener, "ReleaseListener"},
		{dom.PatchOp(0xFF), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("PatchOp(%#x).String() = %q, want %q", uint8(tt.op), got, tt.want)
		}
	}
}

func TestEvent(t *testing.T) {
	e := dom.NewEvent("input", nil, "abc", 7)
	if e.Type() != "input" || e.Value() != "abc" || e.Native() != 7 || e.Target() != nil {
		t.Errorf("unexpected event fields: %q %q %v %v", e.Type(), e.Value(), e.Native(), e.Target())
	}
}
