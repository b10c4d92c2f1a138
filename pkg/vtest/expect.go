package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/tether/pkg/dom"
)

// ExpectText asserts that the root container's text content equals want.
func ExpectText(t *testing.T, h *Host, want string) {
	t.Helper()
	if got := h.TextContent(); got != want {
		t.Errorf("expected text %q, got %q (tree %s)", want, got, truncate(h.root.String(), 500))
	}
}

// ExpectNoPatches asserts that no primitive operation was recorded since the
// last Reset.
func ExpectNoPatches(t *testing.T, h *Host) {
	t.Helper()
	if len(h.patches) != 0 {
		t.Errorf("expected no primitive operations, got %s", formatPatches(h.patches))
	}
}

// ExpectOps asserts the exact sequence of operations recorded since the last
// Reset.
func ExpectOps(t *testing.T, h *Host, ops ...dom.PatchOp) {
	t.Helper()
	if len(h.patches) != len(ops) {
		t.Errorf("expected %d operations, got %s", len(ops), formatPatches(h.patches))
		return
	}
	for i, op := range ops {
		if h.patches[i].Op != op {
			t.Errorf("operation %d: expected %s, got %s", i, op, formatPatches(h.patches))
			return
		}
	}
}

func formatPatches(ps []dom.Patch) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Op.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
