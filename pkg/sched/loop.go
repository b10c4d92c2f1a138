package sched

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/tether/internal/gid"
	"github.com/vango-dev/tether/pkg/view"
)

// DefaultQueueSize is the capacity of the Loop's job queue.
const DefaultQueueSize = 256

// Loop runs closures on one dedicated UI goroutine and tasks on their own
// goroutines. It implements both view.Scheduler and view.Executor.
type Loop struct {
	logger *slog.Logger
	after  func()
	jobs   chan func()

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	loopID atomic.Uint64

	startOnce sync.Once
	stopOnce  sync.Once
	tasks     sync.WaitGroup
}

var (
	_ view.Scheduler = (*Loop)(nil)
	_ view.Executor  = (*Loop)(nil)
)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLogger sets the logger for dropped jobs and recovered panics.
func WithLogger(l *slog.Logger) LoopOption {
	return func(lp *Loop) {
		if l != nil {
			lp.logger = l
		}
	}
}

// WithQueueSize sets the job queue capacity. Default: DefaultQueueSize.
func WithQueueSize(n int) LoopOption {
	return func(lp *Loop) {
		if n > 0 {
			lp.jobs = make(chan func(), n)
		}
	}
}

// AfterEach sets a function run on the UI goroutine after every job, e.g.
// to flush the patches the job produced.
func AfterEach(fn func()) LoopOption {
	return func(lp *Loop) {
		lp.after = fn
	}
}

// NewLoop creates a stopped Loop.
func NewLoop(opts ...LoopOption) *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		logger: slog.Default(),
		jobs:   make(chan func(), DefaultQueueSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start starts the UI goroutine. Calling it more than once has no effect.
func (l *Loop) Start() {
	l.startOnce.Do(func() {
		ready := make(chan struct{})
		go l.run(ready)
		<-ready
	})
}

// Stop stops the UI goroutine and cancels the context handed to tasks. Jobs
// still queued are dropped. Stop does not wait for running tasks; use Wait.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.cancel()
	})
	l.startOnce.Do(func() { close(l.done) })
	<-l.done
}

// Wait blocks until every spawned task has returned.
func (l *Loop) Wait() {
	l.tasks.Wait()
}

// Context returns the context handed to tasks. It is canceled by Stop.
func (l *Loop) Context() context.Context {
	return l.ctx
}

func (l *Loop) run(ready chan struct{}) {
	defer close(l.done)
	l.loopID.Store(gid.Current())
	close(ready)

	for {
		select {
		case job := <-l.jobs:
			l.execute(job)
		case <-l.ctx.Done():
			return
		}
	}
}

func (l *Loop) execute(job func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop job panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	if l.after != nil {
		defer l.after()
	}
	job()
}

// OnLoop reports whether the caller runs on the UI goroutine.
func (l *Loop) OnLoop() bool {
	id := l.loopID.Load()
	return id != 0 && id == gid.Current()
}

// Post queues fn to run on the UI goroutine and returns immediately. It
// reports whether fn was queued; jobs posted to a stopped Loop or to a full
// queue are dropped and logged.
func (l *Loop) Post(fn func()) bool {
	if l.ctx.Err() != nil {
		l.logger.Debug("loop stopped, dropping job")
		return false
	}
	select {
	case l.jobs <- fn:
		return true
	case <-l.ctx.Done():
		l.logger.Debug("loop stopped, dropping job")
		return false
	default:
		l.logger.Warn("loop queue full, dropping job")
		return false
	}
}

// Do implements view.Executor. It runs fn on the UI goroutine and waits for
// it to return; on the UI goroutine itself fn runs inline. A panic in fn is
// re-raised on the calling goroutine. Calls on a stopped Loop are dropped.
// The Loop must have been started.
func (l *Loop) Do(fn func()) {
	if l.OnLoop() {
		fn()
		return
	}

	var recovered any
	finished := make(chan struct{})
	job := func() {
		defer close(finished)
		defer func() {
			recovered = recover()
		}()
		fn()
	}

	if l.ctx.Err() != nil {
		l.logger.Debug("loop stopped, dropping job")
		return
	}
	select {
	case l.jobs <- job:
	case <-l.ctx.Done():
		l.logger.Debug("loop stopped, dropping job")
		return
	}

	select {
	case <-finished:
	case <-l.done:
		// Stop may race with a queued job; if it ran, report its outcome.
		select {
		case <-finished:
		default:
			return
		}
	}
	if recovered != nil {
		panic(recovered)
	}
}

// Spawn implements view.Scheduler. The task runs on its own goroutine with
// the Loop's context; a panic is recovered and logged.
func (l *Loop) Spawn(task view.Task) {
	l.tasks.Add(1)
	go func() {
		defer l.tasks.Done()
		defer func() {
			if r := recover(); r != nil {
				l.logger.Error("task panic",
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()))
			}
		}()
		task(l.ctx)
	}()
}
