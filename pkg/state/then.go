package state

import "github.com/vango-dev/tether/pkg/dom"

// Then is the decision returned by a mutator.
type Then uint8

const (
	// Skip keeps the mounted product as is.
	Skip Then = iota

	// Render recomputes the description and updates the product.
	Render
)

// ShouldRender reports whether t asks for a render pass.
func (t Then) ShouldRender() bool { return t == Render }

// String returns the string representation of the decision.
func (t Then) String() string {
	if t == Render {
		return "Render"
	}
	return "Skip"
}

// RenderIf converts a boolean into a decision: true renders.
func RenderIf(b bool) Then {
	if b {
		return Render
	}
	return Skip
}

// Mutator mutates state in response to an event.
type Mutator[S any] func(s *S, e dom.Event) Then

// Always adapts a mutator without a decision; it always renders.
func Always[S any](fn func(s *S, e dom.Event)) Mutator[S] {
	return func(s *S, e dom.Event) Then {
		fn(s, e)
		return Render
	}
}

// When adapts a mutator returning a boolean; true renders.
func When[S any](fn func(s *S, e dom.Event) bool) Mutator[S] {
	return func(s *S, e dom.Event) Then {
		return RenderIf(fn(s, e))
	}
}
