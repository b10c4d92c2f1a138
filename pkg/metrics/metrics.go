package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/tether/pkg/view"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "tether").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "tether",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records runtime and session activity.
type Collector struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	skips          *prometheus.CounterVec
	listeners      prometheus.Counter
	rebinds        prometheus.Counter
	dropped        *prometheus.CounterVec
	patchesSent    prometheus.Counter
	activeSessions prometheus.Gauge
	wsErrors       *prometheus.CounterVec
}

var _ view.Observer = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics. Registering
// two collectors with the same namespace in one registry panics, as
// promauto does.
func NewCollector(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component"}),

		skips: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_skips_total",
			Help:        "Total number of mutations that did not request a render",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		listeners: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners_registered_total",
			Help:        "Total number of native listeners registered",
			ConstLabels: config.ConstLabels,
		}),

		rebinds: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners_rebound_total",
			Help:        "Total number of closure swaps on registered listeners",
			ConstLabels: config.ConstLabels,
		}),

		dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signal_dropped_total",
			Help:        "Total number of accesses to unmounted components",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of primitive operations sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open remote sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// RenderCompleted implements view.Observer.
func (c *Collector) RenderCompleted(component string, d time.Duration) {
	c.renders.WithLabelValues(component).Inc()
	c.renderDuration.WithLabelValues(component).Observe(d.Seconds())
}

// RenderSkipped implements view.Observer.
func (c *Collector) RenderSkipped(component string) {
	c.skips.WithLabelValues(component).Inc()
}

// ListenerRegistered implements view.Observer.
func (c *Collector) ListenerRegistered() {
	c.listeners.Inc()
}

// ListenerRebound implements view.Observer.
func (c *Collector) ListenerRebound() {
	c.rebinds.Inc()
}

// SignalDropped implements view.Observer.
func (c *Collector) SignalDropped(op string) {
	c.dropped.WithLabelValues(op).Inc()
}

// PatchesSent records n primitive operations written to a client.
func (c *Collector) PatchesSent(n int) {
	c.patchesSent.Add(float64(n))
}

// SessionOpened records a new remote session.
func (c *Collector) SessionOpened() {
	c.activeSessions.Inc()
}

// SessionClosed records the end of a remote session.
func (c *Collector) SessionClosed() {
	c.activeSessions.Dec()
}

// TransportError records a remote transport error of the given type
// ("read", "write", "decode").
func (c *Collector) TransportError(kind string) {
	c.wsErrors.WithLabelValues(kind).Inc()
}
