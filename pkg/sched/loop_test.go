package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoopDoRunsOnLoopGoroutine(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	if l.OnLoop() {
		t.Fatal("test goroutine reported as loop goroutine")
	}

	var onLoop, nested bool
	l.Do(func() {
		onLoop = l.OnLoop()
		// Nested Do must run inline instead of deadlocking.
		l.Do(func() { nested = true })
	})

	if !onLoop {
		t.Error("Do did not run on the loop goroutine")
	}
	if !nested {
		t.Error("nested Do did not run")
	}
}

func TestLoopAfterEach(t *testing.T) {
	var after atomic.Int32
	l := NewLoop(AfterEach(func() { after.Add(1) }))
	l.Start()
	defer l.Stop()

	l.Do(func() {})
	l.Do(func() {})

	if got := after.Load(); got != 2 {
		t.Errorf("expected after hook to run twice, got %d", got)
	}
}

func TestLoopAfterEachRunsWhenJobPanics(t *testing.T) {
	var pending string
	var flushed []string
	l := NewLoop(AfterEach(func() {
		if pending != "" {
			flushed = append(flushed, pending)
			pending = ""
		}
	}))
	l.Start()
	defer l.Stop()

	l.Post(func() {
		pending = "first"
		panic("boom")
	})
	l.Do(func() { pending = "second" })

	var got []string
	l.Do(func() { got = append([]string(nil), flushed...) })

	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("expected separate flushes [first second], got %v", got)
	}
}

func TestLoopPost(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	ran := make(chan bool, 1)
	if !l.Post(func() { ran <- l.OnLoop() }) {
		t.Fatal("Post rejected job on running loop")
	}

	select {
	case onLoop := <-ran:
		if !onLoop {
			t.Error("posted job did not run on the loop goroutine")
		}
	case <-time.After(time.Second):
		t.Fatal("posted job did not run")
	}
}

func TestLoopDoReraisesPanic(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("expected panic %q, got %v", "boom", r)
		}
	}()
	l.Do(func() { panic("boom") })
	t.Error("Do returned after panic")
}

func TestLoopDropsAfterStop(t *testing.T) {
	l := NewLoop()
	l.Start()
	l.Stop()

	ran := false
	l.Do(func() { ran = true })
	if ran {
		t.Error("Do ran after Stop")
	}
	if l.Post(func() { ran = true }) {
		t.Error("Post accepted job after Stop")
	}
}

func TestLoopSpawnRecoversPanic(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	var ctxOK atomic.Bool
	l.Spawn(func(ctx context.Context) { panic("task failed") })
	l.Spawn(func(ctx context.Context) { ctxOK.Store(ctx == l.Context()) })
	l.Wait()

	if !ctxOK.Load() {
		t.Error("task did not receive the loop context")
	}
}

func TestLoopStopCancelsTasks(t *testing.T) {
	l := NewLoop()
	l.Start()

	started := make(chan struct{})
	l.Spawn(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
	})
	<-started
	l.Stop()

	waited := make(chan struct{})
	go func() {
		l.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("task was not canceled by Stop")
	}
}
