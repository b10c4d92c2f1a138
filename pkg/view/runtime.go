package view

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/tether/internal/gid"
	"github.com/vango-dev/tether/pkg/dom"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for render spans.
const defaultTracerName = "tether"

// Task is a fire-and-forget unit of asynchronous work.
type Task func(ctx context.Context)

// Scheduler advances tasks cooperatively to completion. Spawn must not block.
type Scheduler interface {
	Spawn(task Task)
}

// Executor runs closures on the UI goroutine. Do blocks until fn has run;
// called from the UI goroutine itself it runs fn inline.
type Executor interface {
	Do(fn func())
}

// Observer receives runtime events. Implementations must be cheap; they are
// called on the hot path of every render.
type Observer interface {
	RenderCompleted(component string, d time.Duration)
	RenderSkipped(component string)
	ListenerRegistered()
	ListenerRebound()
	SignalDropped(op string)
}

// Runtime bundles the host of a mount with its ambient collaborators.
type Runtime struct {
	host      dom.Host
	logger    *slog.Logger
	scheduler Scheduler
	executor  Executor
	observer  Observer
	tracer    trace.Tracer
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithScheduler sets the task scheduler used by async bindings.
// Default: one goroutine per task.
func WithScheduler(s Scheduler) Option {
	return func(rt *Runtime) {
		if s != nil {
			rt.scheduler = s
		}
	}
}

// WithExecutor sets the UI executor that listener dispatch and Signal
// bodies run through. Default: a lock admitting one goroutine at a time,
// with nested calls from that goroutine run inline.
func WithExecutor(e Executor) Option {
	return func(rt *Runtime) {
		if e != nil {
			rt.executor = e
		}
	}
}

// WithObserver sets the runtime observer. Default: no-op.
func WithObserver(o Observer) Option {
	return func(rt *Runtime) {
		if o != nil {
			rt.observer = o
		}
	}
}

// WithTracer sets the tracer for render spans.
// Default: otel.Tracer("tether") from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(rt *Runtime) {
		if t != nil {
			rt.tracer = t
		}
	}
}

// NewRuntime creates a Runtime mounting into h.
func NewRuntime(h dom.Host, opts ...Option) *Runtime {
	rt := &Runtime{
		host:      h,
		logger:    slog.Default(),
		scheduler: goScheduler{},
		executor:  &serialExecutor{},
		observer:  nopObserver{},
		tracer:    otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Host returns the primitive node API.
func (rt *Runtime) Host() dom.Host { return rt.host }

// Logger returns the structured logger.
func (rt *Runtime) Logger() *slog.Logger { return rt.logger }

// Scheduler returns the task scheduler.
func (rt *Runtime) Scheduler() Scheduler { return rt.scheduler }

// Executor returns the UI executor.
func (rt *Runtime) Executor() Executor { return rt.executor }

// Observer returns the runtime observer.
func (rt *Runtime) Observer() Observer { return rt.observer }

// Tracer returns the render tracer.
func (rt *Runtime) Tracer() trace.Tracer { return rt.tracer }

type goScheduler struct{}

func (goScheduler) Spawn(task Task) { go task(context.Background()) }

// serialExecutor lets one goroutine at a time run UI work. A goroutine
// already inside Do runs nested calls inline.
type serialExecutor struct {
	mu    sync.Mutex
	owner atomic.Uint64
}

func (s *serialExecutor) Do(fn func()) {
	id := gid.Current()
	if s.owner.Load() == id {
		fn()
		return
	}
	s.mu.Lock()
	s.owner.Store(id)
	defer func() {
		s.owner.Store(0)
		s.mu.Unlock()
	}()
	fn()
}

type nopObserver struct{}

func (nopObserver) RenderCompleted(string, time.Duration) {}
func (nopObserver) RenderSkipped(string)                  {}
func (nopObserver) ListenerRegistered()                   {}
func (nopObserver) ListenerRebound()                      {}
func (nopObserver) SignalDropped(string)                  {}
