package remote

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tether/pkg/protocol"
	"github.com/vango-dev/tether/pkg/view"
)

// Metrics receives session activity. *metrics.Collector implements it.
type Metrics interface {
	SessionOpened()
	SessionClosed()
	PatchesSent(n int)
	TransportError(kind string)
}

// Config configures a Handler.
type Config struct {
	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger

	// Metrics receives session activity. Default: none.
	Metrics Metrics

	// ReadLimit is the largest message accepted from a client.
	// Default: DefaultReadLimit.
	ReadLimit int64

	// WriteTimeout bounds every frame write. Default: DefaultWriteTimeout.
	WriteTimeout time.Duration

	// CheckOrigin validates the Origin header of upgrade requests.
	// Default: same-origin only (gorilla/websocket behavior).
	CheckOrigin func(r *http.Request) bool

	// Tracer starts one span per client event. Default: the global
	// provider's tracer.
	Tracer trace.Tracer

	// EventFilter, if set, selects the events that get a span.
	EventFilter func(ev *protocol.Event) bool

	// AttributeExtractor, if set, adds attributes to every event span.
	AttributeExtractor func(ev *protocol.Event) []attribute.KeyValue

	// RuntimeOptions are applied to every session runtime before the
	// session's own scheduler, executor and logger.
	RuntimeOptions []view.Option
}

// Defaults.
const (
	DefaultReadLimit    = 64 * 1024
	DefaultWriteTimeout = 10 * time.Second
)

// Option configures a Handler.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithReadLimit sets the largest accepted client message.
func WithReadLimit(n int64) Option {
	return func(c *Config) {
		c.ReadLimit = n
	}
}

// WithWriteTimeout sets the frame write timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.WriteTimeout = d
	}
}

// WithCheckOrigin sets the origin check for upgrade requests.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(c *Config) {
		c.CheckOrigin = fn
	}
}

// WithRuntimeOptions adds options applied to every session runtime, e.g.
// view.WithObserver.
func WithRuntimeOptions(opts ...view.Option) Option {
	return func(c *Config) {
		c.RuntimeOptions = append(c.RuntimeOptions, opts...)
	}
}

func defaultConfig() *Config {
	return &Config{
		Logger:       slog.Default(),
		Metrics:      nopMetrics{},
		ReadLimit:    DefaultReadLimit,
		WriteTimeout: DefaultWriteTimeout,
		Tracer:       defaultTracer(),
	}
}

func (c *Config) normalize() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Metrics == nil {
		c.Metrics = nopMetrics{}
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = DefaultReadLimit
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.Tracer == nil {
		c.Tracer = defaultTracer()
	}
}

type nopMetrics struct{}

func (nopMetrics) SessionOpened()        {}
func (nopMetrics) SessionClosed()        {}
func (nopMetrics) PatchesSent(int)       {}
func (nopMetrics) TransportError(string) {}
