package view_test

import (
	"testing"

	"github.com/vango-dev/tether/internal/errors"
	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/view"
	"github.com/vango-dev/tether/pkg/vtest"
)

func expectAbort(t *testing.T, code string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if got := errors.Code(recover()); got != code {
			t.Errorf("expected abort with %s, got %q", code, got)
		}
	}()
	fn()
}

func TestMaybeTransitions(t *testing.T) {
	h := vtest.NewHost()
	p := mount(h, view.None())
	vtest.ExpectText(t, h, "")

	view.Some(view.Text("a")).Update(p)
	vtest.ExpectText(t, h, "a")

	h.Reset()
	view.Some(view.Text("a")).Update(p)
	vtest.ExpectNoPatches(t, h)

	view.Some(view.Text("b")).Update(p)
	vtest.ExpectOps(t, h, dom.PatchSetText)

	h.Reset()
	view.None().Update(p)
	vtest.ExpectText(t, h, "")
	vtest.ExpectOps(t, h, dom.PatchReplaceNode)

	// The placeholder is reused; the child is rebuilt.
	h.Reset()
	view.Some(view.Text("c")).Update(p)
	vtest.ExpectOps(t, h, dom.PatchCreateText, dom.PatchReplaceNode)
	vtest.ExpectText(t, h, "c")
}

func TestWhen(t *testing.T) {
	called := false
	m := view.When(false, func() view.View {
		called = true
		return view.Text("x")
	})
	if called || m.View != nil {
		t.Error("When(false) evaluated its view")
	}
	if view.When(true, func() view.View { return view.Text("x") }).View == nil {
		t.Error("When(true) returned None")
	}
}

func TestListAnchorStability(t *testing.T) {
	h := vtest.NewHost()
	p := mount(h, view.List{view.Text("a"), view.Text("b")})
	vtest.ExpectText(t, h, "ab")

	view.List{}.Update(p)
	vtest.ExpectText(t, h, "")

	children := h.Root().Children()
	if len(children) != 2 || !children[0].IsMarker() || !children[1].IsMarker() {
		t.Fatalf("expected only begin and tail markers, got %s", h.Root())
	}

	h.Reset()
	view.List{view.Text("x"), view.Text("y"), view.Text("z")}.Update(p)
	vtest.ExpectText(t, h, "xyz")
	// Two retained products updated and reinserted, one built.
	vtest.ExpectOps(t, h,
		dom.PatchSetText, dom.PatchInsertNode,
		dom.PatchSetText, dom.PatchInsertNode,
		dom.PatchCreateText, dom.PatchInsertNode,
	)

	h.Reset()
	view.List{view.Text("x"), view.Text("y"), view.Text("z")}.Update(p)
	vtest.ExpectNoPatches(t, h)
}

func TestListUnmountAndRelease(t *testing.T) {
	h := vtest.NewHost()
	p := mount(h, view.Map([]int{1, 2, 3}, func(i, n int) view.View { return view.Of(n * 10) }))
	vtest.ExpectText(t, h, "102030")

	frag := p.El().Anchor().(*vtest.Node)
	p.El().Unmount()
	vtest.ExpectText(t, h, "")
	if got := frag.TextContent(); got != "102030" {
		t.Errorf("expected range gathered into fragment, got %q", got)
	}

	view.Release(p)
	if !frag.Released() {
		t.Error("fragment bookkeeping not released")
	}
}

func TestListInsideMaybe(t *testing.T) {
	h := vtest.NewHost()
	p := mount(h, view.Some(view.List{view.Text("a")}))

	h.Reset()
	view.None().Update(p)
	vtest.ExpectText(t, h, "")
	vtest.ExpectOps(t, h, dom.PatchCreateEmpty, dom.PatchReplaceFragment, dom.PatchReleaseFragment)
}

func TestTag(t *testing.T) {
	h := vtest.NewHost()
	p := mount(h, view.H("p", view.Text("n="), view.Of(1)))
	vtest.ExpectText(t, h, "n=1")

	view.H("p", view.Text("n="), view.Of(2)).Update(p)
	vtest.ExpectOps(t, h, dom.PatchSetText)

	expectAbort(t, "E104", func() { view.H("p", view.Text("n=")).Update(p) })
	expectAbort(t, "E104", func() { view.Text("x").Update(p) })
}

func TestTagRejectsNonListenerHandler(t *testing.T) {
	h := vtest.NewHost()
	expectAbort(t, "E104", func() {
		view.H("button").On("click", view.Text("x")).Build(view.NewRuntime(h))
	})
}
