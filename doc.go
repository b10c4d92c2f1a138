// Package tether mounts reactive views into a host.
//
// A view is built once into a product and every later render pass updates
// that product in place. State lives in components created with
// state.Stateful; listeners bound through a Hook keep their host identity
// across passes and only swap the function they call.
//
//	counter := state.Stateful(0, func(h *state.Hook[int]) view.View {
//	    return view.H("button", view.Of(h.Get())).
//	        On("click", h.Bind(state.Always(func(n *int, _ dom.Event) { *n++ })))
//	})
//
//	app := tether.Start(host, container, counter, tether.Config{})
//	defer app.Unmount()
//
// Hosts live under pkg/dom: vtest records operations for tests, remote
// streams patches over a WebSocket and jsdom drives a browser document
// when compiled for js/wasm.
//
// LoadConfig builds a Config from tether.json with a slog logger, a
// Prometheus collector and an OpenTelemetry tracer already wired.
package tether
