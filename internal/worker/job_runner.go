// Package worker runs fire-and-forget tasks on a fixed pool of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/fadilmartias/profile-scorer/internal/logging"
)

var (
	ErrQueueFull    = errors.New("job queue is full")
	ErrRunnerClosed = errors.New("job runner is shut down")
)

// Task is a unit of background work. It owns all of its blocking I/O.
type Task func(ctx context.Context) error

// FailureFunc receives every error returned, or panic raised, by a task.
type FailureFunc func(name string, err error)

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// JobRunnerOptions configures a runner. Non-positive Workers and QueueSize
// fall back to 4 and 100; a nil OnFailure logs through Logger.
type JobRunnerOptions struct {
	Workers   int
	QueueSize int
	Logger    *slog.Logger
	OnFailure FailureFunc
}

// Stats is a point-in-time view of the runner, used by the readiness probe.
type Stats struct {
	Workers int  `json:"workers"`
	Queued  int  `json:"queued"`
	Running int  `json:"running"`
	Closed  bool `json:"closed"`
}

type queuedTask struct {
	name string
	run  Task
}

// JobRunner executes scheduled tasks on a bounded pool. The queue is bounded
// too: Schedule rejects work instead of blocking when it is full.
type JobRunner struct {
	tasks     chan queuedTask
	workers   int
	logger    *slog.Logger
	onFailure FailureFunc

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	activeMu sync.Mutex
	active   int
}

func NewJobRunner(opts JobRunnerOptions) *JobRunner {
	if opts.Workers < 1 {
		opts.Workers = 4
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 100
	}
	r := &JobRunner{
		tasks:   make(chan queuedTask, opts.QueueSize),
		workers: opts.Workers,
		logger:  logging.OrDefault(opts.Logger),
	}
	r.onFailure = opts.OnFailure
	if r.onFailure == nil {
		r.onFailure = r.logFailure
	}

	r.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go r.work(i)
	}
	return r
}

// Schedule enqueues a task and returns without waiting for it to run.
func (r *JobRunner) Schedule(name string, task Task) error {
	if task == nil {
		return errors.New("nil task")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return ErrRunnerClosed
	}
	select {
	case r.tasks <- queuedTask{name: name, run: task}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting tasks. Tasks already queued still run. When wait is
// true it blocks until every worker has exited.
func (r *JobRunner) Shutdown(wait bool) {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.tasks)
	}
	r.mu.Unlock()

	if wait {
		r.wg.Wait()
	}
}

func (r *JobRunner) Stats() Stats {
	r.mu.RLock()
	closed := r.closed
	r.mu.RUnlock()

	r.activeMu.Lock()
	active := r.active
	r.activeMu.Unlock()

	return Stats{
		Workers: r.workers,
		Queued:  len(r.tasks),
		Running: active,
		Closed:  closed,
	}
}

func (r *JobRunner) work(idx int) {
	defer r.wg.Done()
	for t := range r.tasks {
		r.setActive(1)
		if err := r.execute(t); err != nil {
			r.onFailure(t.name, err)
		}
		r.setActive(-1)
		r.logger.Debug("task finished", "worker", idx, "task", t.name)
	}
}

// execute runs one task, turning a panic into a PanicError.
func (r *JobRunner) execute(t queuedTask) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()
	return t.run(context.Background())
}

func (r *JobRunner) setActive(delta int) {
	r.activeMu.Lock()
	r.active += delta
	r.activeMu.Unlock()
}

func (r *JobRunner) logFailure(name string, err error) {
	attrs := []any{"task", name, "error", err}
	var panicErr *PanicError
	if errors.As(err, &panicErr) {
		attrs = append(attrs, "stack", string(panicErr.Stack))
	}
	r.logger.Error("job execution failed", attrs...)
}
