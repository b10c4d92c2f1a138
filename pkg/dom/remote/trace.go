package remote

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tether/pkg/protocol"
)

const defaultTracerName = "github.com/vango-dev/tether/remote"

// WithTracer sets the tracer for event spans.
// Default: otel.Tracer from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

// WithEventFilter selects which client events get a span. Returning false
// skips tracing for that event.
func WithEventFilter(filter func(ev *protocol.Event) bool) Option {
	return func(c *Config) {
		c.EventFilter = filter
	}
}

// WithAttributeExtractor adds custom attributes to every event span.
func WithAttributeExtractor(fn func(ev *protocol.Event) []attribute.KeyValue) Option {
	return func(c *Config) {
		c.AttributeExtractor = fn
	}
}

func defaultTracer() trace.Tracer {
	return otel.Tracer(defaultTracerName)
}

// traceEvent runs dispatch inside a server span named after the event type.
// dispatch reports whether a listener handled the event.
func (s *Session) traceEvent(ev *protocol.Event, dispatch func() bool) bool {
	cfg := s.config
	if cfg.EventFilter != nil && !cfg.EventFilter(ev) {
		return dispatch()
	}

	attrs := []attribute.KeyValue{
		attribute.String("tether.event_type", ev.Type),
		attribute.Int64("tether.listener", int64(ev.Listener)),
	}
	if cfg.AttributeExtractor != nil {
		attrs = append(attrs, cfg.AttributeExtractor(ev)...)
	}

	_, span := cfg.Tracer.Start(context.Background(),
		fmt.Sprintf("tether.%s", ev.Type),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(time.Now()),
	)
	defer span.End()

	ok := dispatch()
	if ok {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, "unknown listener")
	}
	span.SetAttributes(attribute.Int("tether.patch_count", s.host.Pending()))
	return ok
}
