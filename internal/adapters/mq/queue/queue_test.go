package queue

import (
	"context"
	"testing"

	"github.com/okian/pitwall/internal/domain/model"
)

func job(id string) Job {
	return Job{Entrant: &model.Entrant{ID: id}}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, job("101")) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	j, ok := q.TryDequeue(ctx)
	if !ok || j.Entrant.ID != "101" {
		t.Errorf("expected job 101, got %v %v", j.Entrant, ok)
	}

	if _, ok := q.TryDequeue(ctx); ok {
		t.Error("expected empty queue")
	}
}

func TestInMemoryQueue_FIFO(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	ids := []string{"a", "b", "c", "d"}
	for _, id := range ids {
		q.Enqueue(ctx, job(id))
	}
	for _, want := range ids {
		j, ok := q.TryDequeue(ctx)
		if !ok || j.Entrant.ID != want {
			t.Fatalf("expected %s, got %v", want, j.Entrant)
		}
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, job("1")) || !q.Enqueue(ctx, job("2")) {
		t.Error("expected enqueue to succeed")
	}
	if q.Enqueue(ctx, job("3")) {
		t.Error("expected enqueue to fail when full")
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_Cancelled(t *testing.T) {
	q := NewInMemoryQueue()
	ctx, cancel := context.WithCancel(context.Background())
	q.Enqueue(ctx, job("1"))
	cancel()

	if q.Enqueue(ctx, job("2")) {
		t.Error("expected enqueue to fail on cancelled context")
	}
	if _, ok := q.TryDequeue(ctx); ok {
		t.Error("expected dequeue to fail on cancelled context")
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()
	q.Enqueue(ctx, job("1"))

	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}
	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}
	if q.Enqueue(ctx, job("2")) {
		t.Error("expected enqueue to fail after closing")
	}
	if _, ok := q.TryDequeue(ctx); !ok {
		t.Error("expected pending job to drain after close")
	}
	if err := q.Close(); err != nil {
		t.Errorf("expected second close to succeed, got error: %v", err)
	}
}
