package sched

import (
	"context"
	"sync"

	"github.com/vango-dev/tether/pkg/view"
)

// Queue is a FIFO cooperative scheduler. Spawn never blocks and never runs
// the task; Run does.
type Queue struct {
	mu    sync.Mutex
	tasks []view.Task
}

var _ view.Scheduler = (*Queue)(nil)

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Spawn implements view.Scheduler.
func (q *Queue) Spawn(task view.Task) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// Len returns the number of tasks waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Run runs queued tasks in order, including tasks spawned while running,
// until the queue is empty or ctx is done. It returns the number of tasks
// run.
func (q *Queue) Run(ctx context.Context) int {
	n := 0
	for ctx.Err() == nil {
		task, ok := q.pop()
		if !ok {
			break
		}
		task(ctx)
		n++
	}
	return n
}

func (q *Queue) pop() (view.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return nil, false
	}
	task := q.tasks[0]
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	return task, true
}
