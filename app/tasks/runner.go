package tasks

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var _ TaskRunnerInterface = (*Runner)(nil)

// ErrQueueFull is returned by Enqueue when every queue slot is taken.
// Callers translate it into a retry-later response.
var ErrQueueFull = errors.New("task queue is full")

const (
	// queueCapacity bounds how many analysis requests may wait for a
	// worker. Enqueue fails once the queue is full so the API layer can
	// shed load instead of stacking goroutines.
	queueCapacity = 64

	// taskTimeout bounds a single analysis end to end, scrape included.
	taskTimeout = 60 * time.Second
)

// Runner is the worker pool executing analysis tasks. Tasks are not
// retried: the scraper already retries transient fetch failures, and the
// caller is waiting synchronously for the outcome.
type Runner struct {
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewRunner(workerCount int) *Runner {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, queueCapacity),
	}
}

func (r *Runner) Start() {
	for i := 0; i < r.workerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	slog.Debug("Task runner started", "workers", r.workerCount, "queue_capacity", queueCapacity)
}

func (r *Runner) Stop() {
	r.cancel()
	r.wg.Wait()
	close(r.taskQueue)
}

func (r *Runner) Enqueue(task TaskInterface) error {
	select {
	case r.taskQueue <- task:
		return nil
	case <-r.ctx.Done():
		return r.ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (r *Runner) worker(id int) {
	defer r.wg.Done()

	for {
		select {
		case task, ok := <-r.taskQueue:
			if !ok {
				return
			}
			r.executeTask(id, task)

		case <-r.ctx.Done():
			return
		}
	}
}

func (r *Runner) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(r.ctx, taskTimeout)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Worker task execution failed",
			"worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(),
			"subject", task.GetSubject(), "error", err)
		return
	}

	slog.Debug("Task completed",
		"worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(),
		"duration", task.GetDuration().String())
}
