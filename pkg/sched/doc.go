// Package sched provides the task scheduler and UI executor collaborators
// of a view.Runtime.
//
// Queue is a deterministic cooperative scheduler: spawned tasks wait in FIFO
// order until Run drains them on the caller's goroutine. It is what tests
// and single-threaded hosts use.
//
//	q := sched.NewQueue()
//	rt := view.NewRuntime(host, view.WithScheduler(q))
//	// ... dispatch events that spawn tasks ...
//	q.Run(ctx)
//
// Loop owns a single UI goroutine. Every mutation of component state runs
// there: events are posted to it, and Signals used from task goroutines
// marshal their synchronous body onto it through Do. Tasks spawned on a
// Loop run on their own goroutines and may block freely.
//
//	loop := sched.NewLoop(sched.WithLogger(logger))
//	loop.Start()
//	defer loop.Stop()
//	rt := view.NewRuntime(host,
//	    view.WithScheduler(loop),
//	    view.WithExecutor(loop),
//	)
package sched
