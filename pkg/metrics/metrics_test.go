package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestCollector(t *testing.T, opts ...Option) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewCollector(append([]Option{WithRegistry(reg)}, opts...)...), reg
}

func TestCollectorObserver(t *testing.T) {
	c, _ := newTestCollector(t)

	c.RenderCompleted("counter", 2*time.Millisecond)
	c.RenderCompleted("counter", 3*time.Millisecond)
	c.RenderSkipped("counter")
	c.ListenerRegistered()
	c.ListenerRebound()
	c.ListenerRebound()
	c.SignalDropped("update")

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"renders", testutil.ToFloat64(c.renders.WithLabelValues("counter")), 2},
		{"skips", testutil.ToFloat64(c.skips.WithLabelValues("counter")), 1},
		{"listeners", testutil.ToFloat64(c.listeners), 1},
		{"rebinds", testutil.ToFloat64(c.rebinds), 2},
		{"dropped", testutil.ToFloat64(c.dropped.WithLabelValues("update")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestCollectorSessions(t *testing.T) {
	c, _ := newTestCollector(t)

	c.SessionOpened()
	c.SessionOpened()
	c.SessionClosed()
	c.PatchesSent(12)
	c.TransportError("read")

	if got := testutil.ToFloat64(c.activeSessions); got != 1 {
		t.Errorf("active sessions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.patchesSent); got != 12 {
		t.Errorf("patches sent = %v, want 12", got)
	}
	if got := testutil.ToFloat64(c.wsErrors.WithLabelValues("read")); got != 1 {
		t.Errorf("websocket errors = %v, want 1", got)
	}
}

func TestCollectorNamespace(t *testing.T) {
	c, reg := newTestCollector(t, WithNamespace("app"), WithSubsystem("ui"))
	c.ListenerRegistered()

	expected := `
# HELP app_ui_listeners_registered_total Total number of native listeners registered
# TYPE app_ui_listeners_registered_total counter
app_ui_listeners_registered_total 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "app_ui_listeners_registered_total"); err != nil {
		t.Error(err)
	}
}

func TestCollectorHistogram(t *testing.T) {
	c, reg := newTestCollector(t, WithBuckets([]float64{0.01, 0.1}))
	c.RenderCompleted("list", 50*time.Millisecond)

	if n := testutil.CollectAndCount(c.renderDuration); n != 1 {
		t.Errorf("expected 1 histogram series, got %d", n)
	}
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range mfs {
		if mf.GetName() != "tether_render_duration_seconds" {
			continue
		}
		h := mf.GetMetric()[0].GetHistogram()
		if h.GetSampleCount() != 1 {
			t.Errorf("sample count = %d, want 1", h.GetSampleCount())
		}
		if got := h.GetBucket()[1].GetCumulativeCount(); got != 1 {
			t.Errorf("0.1 bucket count = %d, want 1", got)
		}
		return
	}
	t.Error("render duration histogram not gathered")
}
