// Package queue holds entrants waiting to be fetched.
//
// The queue is a bounded FIFO drained by a single sequential worker. It never
// blocks: Enqueue fails when full and TryDequeue reports emptiness.
package queue

import (
	"context"
	"sync"

	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Job is one entrant fetch. Sweep is 0 for the first pass and n for the
// n-th retry sweep.
type Job struct {
	Entrant *model.Entrant
	Sweep   int
}

// Queue provides non-blocking enqueue and dequeue semantics.
type Queue interface {
	// Enqueue adds a job. Returns false when the queue is full or closed.
	Enqueue(ctx context.Context, j Job) bool

	// TryDequeue pops the oldest job, if any.
	TryDequeue(ctx context.Context) (Job, bool)

	// Len returns the current number of queued jobs.
	Len(ctx context.Context) int

	// Close rejects further enqueues. Pending jobs can still be dequeued.
	Close() error

	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a job to the tail of the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}
	if ctx.Err() != nil {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	}

	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.jobs))
		return true
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// TryDequeue pops the head of the queue without blocking.
func (q *InMemoryQueue) TryDequeue(ctx context.Context) (Job, bool) {
	if ctx.Err() != nil {
		return Job{}, false
	}
	select {
	case j := <-q.jobs:
		metrics.RecordQueueDequeue()
		metrics.UpdateQueueSize(len(q.jobs))
		return j, true
	default:
		return Job{}, false
	}
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.jobs)
	metrics.UpdateQueueSize(size)
	return size
}

// Close stops the queue from accepting jobs.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
