package tether

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/dom/remote"
	"github.com/vango-dev/tether/pkg/sched"
	"github.com/vango-dev/tether/pkg/state"
	"github.com/vango-dev/tether/pkg/view"
	"github.com/vango-dev/tether/pkg/vtest"
)

func clicker() *state.Component[int] {
	return state.Stateful(0, func(h *state.Hook[int]) view.View {
		return view.H("button", view.Of(h.Get())).
			On("click", h.Bind(state.Always(func(n *int, _ dom.Event) { *n++ })))
	}).Named("clicker")
}

func TestStartAndUnmount(t *testing.T) {
	h := vtest.NewHost()
	app := Start(h, h.Root(), clicker(), Config{})
	vtest.ExpectText(t, h, "0")

	btn := app.Product().El().Anchor().(*vtest.Node)
	h.Dispatch(btn, "click", "")
	vtest.ExpectText(t, h, "1")

	sig := app.Product().(*state.Mounted[int]).Signal()
	app.Unmount()

	vtest.ExpectText(t, h, "")
	if h.LiveListeners() != 0 {
		t.Errorf("LiveListeners = %d, want 0", h.LiveListeners())
	}
	if sig.Alive() {
		t.Error("signal should be dead after Unmount")
	}
	if app.Product() != nil {
		t.Error("Product should be nil after Unmount")
	}

	h.Reset()
	app.Unmount()
	vtest.ExpectNoPatches(t, h)
}

func TestAppUpdate(t *testing.T) {
	h := vtest.NewHost()
	app := Start(h, h.Root(), view.Of(1), Config{})
	vtest.ExpectText(t, h, "1")

	app.Update(view.Of(5))
	vtest.ExpectText(t, h, "5")

	app.Unmount()
	app.Update(view.Of(9))
	vtest.ExpectText(t, h, "")
}

func TestStartOnLoop(t *testing.T) {
	loop := sched.NewLoop()
	loop.Start()
	defer loop.Stop()

	h := vtest.NewHost()
	app := Start(h, h.Root(), clicker(), Config{Executor: loop, Scheduler: loop})
	if app.Runtime().Executor() != view.Executor(loop) {
		t.Fatal("runtime should use the loop as executor")
	}

	sig := app.Product().(*state.Mounted[int]).Signal()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sig.Update(func(n *int) state.Then {
				*n++
				return state.Render
			})
		}()
	}
	wg.Wait()

	loop.Do(func() {}) // barrier
	vtest.ExpectText(t, h, "10")

	app.Unmount()
	vtest.ExpectText(t, h, "")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	body := `{
  "log": {"level": "debug", "format": "json"},
  "metrics": {"enabled": true, "namespace": "app"},
  "tracing": {"enabled": true},
  "remote": {"addr": ":9999", "readLimit": 1024, "allowedOrigins": ["https://ok.test"]}
}`
	if err := os.WriteFile(filepath.Join(dir, "tether.json"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	reg := prometheus.NewRegistry()
	cfg, err := LoadConfig(dir, WithLogOutput(&out), WithRegistry(reg))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	cfg.Logger.Debug("hello", "n", 1)
	if !strings.Contains(out.String(), `"msg":"hello"`) {
		t.Errorf("expected JSON debug line, got %q", out.String())
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Collector == nil || cfg.Observer == nil {
		t.Fatal("metrics should be wired")
	}
	if cfg.Tracer == nil {
		t.Fatal("tracer should be set")
	}

	h := vtest.NewHost()
	app := Start(h, h.Root(), clicker(), cfg)
	defer app.Unmount()
	if n, err := testutil.GatherAndCount(reg, "app_renders_total"); err != nil || n != 1 {
		t.Errorf("app_renders_total series = %d, err = %v; want 1", n, err)
	}

	var rc remote.Config
	for _, opt := range cfg.RemoteOptions() {
		opt(&rc)
	}
	if rc.ReadLimit != 1024 {
		t.Errorf("ReadLimit = %d, want 1024", rc.ReadLimit)
	}
	if rc.Metrics == nil || rc.Logger == nil {
		t.Error("RemoteOptions should carry the logger and metrics")
	}
	if len(rc.RuntimeOptions) == 0 {
		t.Error("RemoteOptions should forward runtime options")
	}

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "https://ok.test")
	if !rc.CheckOrigin(req) {
		t.Error("listed origin rejected")
	}
	req.Header.Set("Origin", "https://evil.test")
	if rc.CheckOrigin(req) {
		t.Error("unlisted origin accepted")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, err := LoadConfig(t.TempDir(), WithLogOutput(&out), WithRegistry(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug logging should be off by default")
	}
	if cfg.Collector == nil {
		t.Error("metrics are enabled by default")
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}

	var rc remote.Config
	for _, opt := range cfg.RemoteOptions() {
		opt(&rc)
	}
	if rc.CheckOrigin != nil {
		t.Error("no origin list should keep the default same-origin check")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tether.json"), []byte(`{"log": {"level": "loud"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected error for invalid level")
	}
}
