// Package metrics exports runtime activity as Prometheus metrics.
//
// A Collector implements view.Observer and the session hooks of package
// remote:
//
//	c := metrics.NewCollector(metrics.WithNamespace("myapp"))
//	rt := view.NewRuntime(host, view.WithObserver(c))
//
// Metrics collected (default namespace "tether"):
//   - tether_renders_total: render passes by component
//   - tether_render_duration_seconds: render pass duration by component
//   - tether_render_skips_total: mutations whose mutator returned Skip
//   - tether_listeners_registered_total: native listeners registered
//   - tether_listeners_rebound_total: closure payload swaps on live listeners
//   - tether_signal_dropped_total: accesses to unmounted components by op
//   - tether_patches_sent_total: primitive operations streamed to clients
//   - tether_active_sessions: open remote sessions
//   - tether_websocket_errors_total: remote transport errors by type
package metrics
