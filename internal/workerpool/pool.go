package workerpool

import (
	"errors"
	"log/slog"
	"sync"
)

var (
	ErrPoolStopped = errors.New("worker pool is stopped")
	ErrQueueFull   = errors.New("worker pool queue is full")
)

type Task func()

// Pool - fixed set of goroutines draining a bounded task queue.
type Pool struct {
	logger *slog.Logger
	tasks  chan Task
	wg     sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func New(logger *slog.Logger, workers, queueSize int) *Pool {
	pool := &Pool{
		logger: logger.With("component", "workerpool"),
		tasks:  make(chan Task, queueSize),
	}

	for id := range max(workers, 1) {
		pool.wg.Add(1)
		go pool.work(id)
	}

	pool.logger.Debug("worker pool started", "workers", max(workers, 1), "queue_size", queueSize)

	return pool
}

func (that *Pool) work(id int) {
	defer that.wg.Done()

	for task := range that.tasks {
		that.run(id, task)
	}
}

func (that *Pool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			that.logger.Error("task panic recovered", "worker_id", id, "panic", r)
		}
	}()

	task()
}

// TrySubmit - queues the task only if there is room right now.
func (that *Pool) TrySubmit(task Task) error {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.stopped {
		return ErrPoolStopped
	}

	select {
	case that.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop - rejects new tasks, runs everything already queued, and waits for the workers.
func (that *Pool) Stop() {
	that.mu.Lock()
	if that.stopped {
		that.mu.Unlock()
		return
	}

	that.stopped = true
	close(that.tasks)
	that.mu.Unlock()

	that.wg.Wait()
	that.logger.Debug("worker pool stopped")
}
