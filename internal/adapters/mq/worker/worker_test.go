package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	queue "github.com/okian/pitwall/internal/adapters/mq/queue"
	worker "github.com/okian/pitwall/internal/adapters/mq/worker"
	model "github.com/okian/pitwall/internal/domain/model"
	logging "github.com/okian/pitwall/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func fill(q *queue.InMemoryQueue, ids ...string) {
	for _, id := range ids {
		q.Enqueue(context.Background(), queue.Job{Entrant: &model.Entrant{ID: id}})
	}
}

func TestSequential_Drain(t *testing.T) {
	convey.Convey("Given a queue of entrants and an unpaced worker", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue()
		fill(q, "a", "b", "c", "d")

		var seen []string
		handler := worker.HandlerFunc(func(_ context.Context, j queue.Job) error {
			seen = append(seen, j.Entrant.ID)
			if j.Entrant.ID == "b" || j.Entrant.ID == "d" {
				return errors.New("transient")
			}
			return nil
		})
		w := worker.NewSequential(q, handler, worker.WithDelay(0), worker.WithName("test"))

		convey.Convey("When the queue is drained", func() {
			failed, err := w.Drain(context.Background())

			convey.Convey("Then every job should be handled in FIFO order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(seen, convey.ShouldResemble, []string{"a", "b", "c", "d"})
				convey.So(q.Len(context.Background()), convey.ShouldEqual, 0)
			})

			convey.Convey("Then failed jobs should be returned in encounter order", func() {
				convey.So(len(failed), convey.ShouldEqual, 2)
				convey.So(failed[0].Entrant.ID, convey.ShouldEqual, "b")
				convey.So(failed[1].Entrant.ID, convey.ShouldEqual, "d")
			})
		})
	})
}

func TestSequential_Pacing(t *testing.T) {
	convey.Convey("Given a worker with a 20ms delay", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue()
		fill(q, "a", "b", "c")

		var stamps []time.Time
		handler := worker.HandlerFunc(func(context.Context, queue.Job) error {
			stamps = append(stamps, time.Now())
			return nil
		})
		w := worker.NewSequential(q, handler, worker.WithDelay(20*time.Millisecond))

		convey.Convey("When three jobs are drained", func() {
			_, err := w.Drain(context.Background())

			convey.Convey("Then consecutive jobs should be spaced by the delay", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(stamps), convey.ShouldEqual, 3)
				convey.So(stamps[2].Sub(stamps[0]).Milliseconds(), convey.ShouldBeGreaterThanOrEqualTo, int64(35))
			})
		})
	})
}

func TestSequential_PacingAfterSlowJob(t *testing.T) {
	convey.Convey("Given a worker whose jobs take longer than its delay", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue()
		fill(q, "a", "b", "c")

		var starts, ends []time.Time
		handler := worker.HandlerFunc(func(context.Context, queue.Job) error {
			starts = append(starts, time.Now())
			time.Sleep(30 * time.Millisecond)
			ends = append(ends, time.Now())
			return nil
		})
		w := worker.NewSequential(q, handler, worker.WithDelay(20*time.Millisecond))

		convey.Convey("When the jobs are drained", func() {
			_, err := w.Drain(context.Background())

			convey.Convey("Then each job should start a full delay after the previous one ended", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(starts), convey.ShouldEqual, 3)
				for i := 1; i < len(starts); i++ {
					convey.So(starts[i].Sub(ends[i-1]), convey.ShouldBeGreaterThanOrEqualTo, 20*time.Millisecond)
				}
			})
		})
	})
}

func TestSequential_Cancel(t *testing.T) {
	convey.Convey("Given a worker whose handler cancels the run", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue()
		fill(q, "a", "b", "c")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		handled := 0
		handler := worker.HandlerFunc(func(context.Context, queue.Job) error {
			handled++
			cancel()
			return nil
		})
		w := worker.NewSequential(q, handler, worker.WithDelay(0))

		convey.Convey("When the queue is drained", func() {
			_, err := w.Drain(ctx)

			convey.Convey("Then the drain should stop with the context error", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
				convey.So(handled, convey.ShouldEqual, 1)
			})
		})
	})
}
