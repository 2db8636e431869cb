// Package worker drains the entrant queue one job at a time.
package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/pitwall/internal/adapters/mq/queue"
	"github.com/okian/pitwall/pkg/logger"
	"github.com/okian/pitwall/pkg/metrics"
)

const defaultDelay = time.Second

// Handler processes a single job.
type Handler interface {
	Handle(ctx context.Context, j queue.Job) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, j queue.Job) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, j queue.Job) error { return f(ctx, j) }

// Queue defines how the worker receives jobs.
type Queue interface {
	TryDequeue(ctx context.Context) (queue.Job, bool)
}

// Sequential processes jobs strictly one after another. The rate limiter's
// bucket is emptied whenever a job finishes, so the gap between the end of
// one job and the start of the next is at least the configured delay.
type Sequential struct {
	queue   Queue
	handler Handler
	name    string
	every   rate.Limit
	limiter *rate.Limiter
	logger  logger.Logger
}

// NewSequential creates a worker over q.
func NewSequential(q Queue, h Handler, opts ...Option) *Sequential {
	w := &Sequential{
		queue:   q,
		handler: h,
		name:    "worker",
		every:   rate.Every(defaultDelay),
		logger:  logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.limiter = rate.NewLimiter(w.every, 1)
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Drain processes jobs until the queue is empty and returns the jobs whose
// handler failed, in the order they were processed. A cancelled context stops
// the drain between jobs and returns ctx.Err().
func (w *Sequential) Drain(ctx context.Context) ([]queue.Job, error) {
	var failed []queue.Job
	for {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		j, ok := w.queue.TryDequeue(ctx)
		if !ok {
			return failed, ctx.Err()
		}

		waitStart := time.Now()
		if err := w.limiter.Wait(ctx); err != nil {
			// Wait also fails when the deadline would pass before the
			// next token, which is still a cancellation from our side.
			if ctx.Err() != nil {
				return failed, ctx.Err()
			}
			return failed, err
		}
		metrics.RecordWorkerPacingWait(float64(time.Since(waitStart).Milliseconds()))

		if err := w.process(ctx, j); err != nil {
			failed = append(failed, j)
		}
		w.rest(time.Now())
	}
}

// rest starts a fresh bucket and spends its only token at now, so the next
// Wait blocks for a full delay measured from the end of the last job.
func (w *Sequential) rest(now time.Time) {
	if w.every == rate.Inf {
		return
	}
	w.limiter = rate.NewLimiter(w.every, 1)
	w.limiter.ReserveN(now, 1)
}

func (w *Sequential) process(ctx context.Context, j queue.Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	err := w.handler.Handle(ctx, j)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "handler_error")
		id := ""
		if j.Entrant != nil {
			id = j.Entrant.ID
		}
		w.logger.Debug(ctx, "job failed",
			logger.String("entrant", id),
			logger.Int("sweep", j.Sweep),
			logger.Error(err),
		)
	}
	return err
}
