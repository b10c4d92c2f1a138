package tether

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/tether/internal/config"
	"github.com/vango-dev/tether/pkg/dom/remote"
	"github.com/vango-dev/tether/pkg/metrics"
	"github.com/vango-dev/tether/pkg/view"
)

// TracerName is the instrumentation name of render spans.
const TracerName = "github.com/vango-dev/tether"

// Config holds the ambient collaborators of a mount. Zero fields fall back
// to the view.Runtime defaults.
type Config struct {
	// Logger is the structured logger.
	Logger *slog.Logger

	// Observer receives render and listener events. *metrics.Collector
	// implements it.
	Observer view.Observer

	// Scheduler runs async tasks. *sched.Queue and *sched.Loop implement it.
	Scheduler view.Scheduler

	// Executor serializes Signal operations. *sched.Loop implements it.
	Executor view.Executor

	// Tracer records render spans.
	Tracer trace.Tracer

	// Collector is set by LoadConfig when metrics are enabled.
	Collector *metrics.Collector

	// Addr is the listen address for remote serving.
	Addr string

	// Remote are the options for remote.NewHandler derived from the file.
	Remote []remote.Option
}

// Options returns the runtime options for c.
func (c Config) Options() []view.Option {
	return []view.Option{
		view.WithLogger(c.Logger),
		view.WithObserver(c.Observer),
		view.WithScheduler(c.Scheduler),
		view.WithExecutor(c.Executor),
		view.WithTracer(c.Tracer),
	}
}

// RemoteOptions returns the handler options for c, with the runtime
// options forwarded to every session.
func (c Config) RemoteOptions() []remote.Option {
	opts := make([]remote.Option, 0, len(c.Remote)+3)
	if c.Logger != nil {
		opts = append(opts, remote.WithLogger(c.Logger))
	}
	if c.Collector != nil {
		opts = append(opts, remote.WithMetrics(c.Collector))
	}
	opts = append(opts, c.Remote...)
	return append(opts, remote.WithRuntimeOptions(
		view.WithObserver(c.Observer),
		view.WithTracer(c.Tracer),
	))
}

// LoadOption adjusts LoadConfig.
type LoadOption func(*loadOptions)

type loadOptions struct {
	out      io.Writer
	registry prometheus.Registerer
}

// WithLogOutput sets where the logger writes. Default: os.Stderr.
func WithLogOutput(w io.Writer) LoadOption {
	return func(o *loadOptions) { o.out = w }
}

// WithRegistry sets the Prometheus registry for the collector.
// Default: prometheus.DefaultRegisterer.
func WithRegistry(r prometheus.Registerer) LoadOption {
	return func(o *loadOptions) { o.registry = r }
}

// LoadConfig reads tether.json from dir and wires the logger, metrics
// collector and tracer it describes. A missing file yields the defaults.
func LoadConfig(dir string, opts ...LoadOption) (Config, error) {
	file, err := config.Load(dir)
	if err != nil {
		return Config{}, err
	}
	return fromFile(file, opts...), nil
}

func fromFile(file *config.Config, opts ...LoadOption) Config {
	lo := loadOptions{out: os.Stderr, registry: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&lo)
	}

	handlerOpts := &slog.HandlerOptions{Level: file.Level(), AddSource: file.Debug}
	var handler slog.Handler
	if file.Log.Format == "json" {
		handler = slog.NewJSONHandler(lo.out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(lo.out, handlerOpts)
	}

	cfg := Config{
		Logger: slog.New(handler),
		Addr:   file.Remote.Addr,
		Remote: []remote.Option{
			remote.WithReadLimit(file.Remote.ReadLimit),
			remote.WithWriteTimeout(file.WriteTimeout()),
		},
	}

	if file.Tracing.Enabled {
		cfg.Tracer = otel.Tracer(TracerName)
	} else {
		cfg.Tracer = noop.NewTracerProvider().Tracer(TracerName)
	}

	if file.Metrics.Enabled {
		cfg.Collector = metrics.NewCollector(
			metrics.WithNamespace(file.Metrics.Namespace),
			metrics.WithSubsystem(file.Metrics.Subsystem),
			metrics.WithRegistry(lo.registry),
		)
		cfg.Observer = cfg.Collector
	}

	if len(file.Remote.AllowedOrigins) > 0 {
		cfg.Remote = append(cfg.Remote, remote.WithCheckOrigin(func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || file.OriginAllowed(origin)
		}))
	}

	return cfg
}
