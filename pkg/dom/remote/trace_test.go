package remote

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/protocol"
)

type recordedSpan struct {
	noop.Span
	name   string
	kind   trace.SpanKind
	attrs  []attribute.KeyValue
	status codes.Code
}

func (s *recordedSpan) SetStatus(c codes.Code, _ string) { s.status = c }

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) {
	s.attrs = append(s.attrs, kv...)
}

func (s *recordedSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

type recordingTracer struct {
	noop.Tracer
	mu    sync.Mutex
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, kind: cfg.SpanKind(), attrs: cfg.Attributes()}
	t.mu.Lock()
	t.spans = append(t.spans, s)
	t.mu.Unlock()
	return ctx, s
}

func (t *recordingTracer) recorded() []*recordedSpan {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*recordedSpan(nil), t.spans...)
}

func TestEventSpans(t *testing.T) {
	tracer := &recordingTracer{}
	srv := httptest.NewServer(NewHandler(counterView,
		WithTracer(tracer),
		WithEventFilter(func(ev *protocol.Event) bool { return ev.Type != "hover" }),
		WithAttributeExtractor(func(*protocol.Event) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	))
	defer srv.Close()
	conn := dial(t, srv)

	var listener uint32
	for _, p := range readPatches(t, conn).Patches {
		if p.Op == dom.PatchNewListener {
			listener = p.Target
		}
	}

	send(t, conn, protocol.FrameEvent, protocol.EncodeEvent(&protocol.Event{Listener: listener, Type: "click"}))
	readPatches(t, conn)

	send(t, conn, protocol.FrameEvent, protocol.EncodeEvent(&protocol.Event{Listener: 777, Type: "click"}))
	readFrame(t, conn)

	send(t, conn, protocol.FrameEvent, protocol.EncodeEvent(&protocol.Event{Listener: 778, Type: "hover"}))
	readFrame(t, conn)

	spans := tracer.recorded()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans (hover filtered), got %d", len(spans))
	}

	ok := spans[0]
	if ok.name != "tether.click" || ok.kind != trace.SpanKindServer {
		t.Errorf("span = %q kind %v", ok.name, ok.kind)
	}
	if ok.status != codes.Ok {
		t.Errorf("status = %v, want Ok", ok.status)
	}
	if v, found := ok.attr("tether.listener"); !found || v.AsInt64() != int64(listener) {
		t.Errorf("tether.listener = %v", v)
	}
	if v, found := ok.attr("test.attr"); !found || v.AsString() != "ok" {
		t.Errorf("test.attr = %v", v)
	}
	if v, found := ok.attr("tether.patch_count"); !found || v.AsInt64() != 1 {
		t.Errorf("tether.patch_count = %v, want 1", v)
	}

	if spans[1].status != codes.Error {
		t.Errorf("unknown listener status = %v, want Error", spans[1].status)
	}
}
