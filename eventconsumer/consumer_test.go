package eventconsumer

import (
	"context"
	"errors"
	"testing"

	"github.com/perbu/a2acore/a2a"
	"github.com/perbu/a2acore/eventqueue"
)

func TestConsumeOneSurfacesQueueEmpty(t *testing.T) {
	q, _ := eventqueue.New(eventqueue.DefaultCapacity)
	c := New(q)

	if _, err := c.ConsumeOne(context.Background()); !errors.Is(err, eventqueue.ErrQueueEmpty) {
		t.Errorf("ConsumeOne() error = %v, want ErrQueueEmpty", err)
	}
}

func TestConsumeOneReturnsBufferedEvent(t *testing.T) {
	q, _ := eventqueue.New(eventqueue.DefaultCapacity)
	ctx := context.Background()
	msg := &a2a.Message{MessageID: "m1"}
	if err := q.Enqueue(ctx, msg); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	c := New(q)
	got, err := c.ConsumeOne(ctx)
	if err != nil {
		t.Fatalf("ConsumeOne() error = %v", err)
	}
	if got != a2a.Event(msg) {
		t.Errorf("ConsumeOne() = %#v, want %#v", got, msg)
	}
}

func TestConsumeAllStopsOnTerminalEvent(t *testing.T) {
	q, _ := eventqueue.New(eventqueue.DefaultCapacity)
	ctx := context.Background()

	working := &a2a.Task{ID: "t1", Status: a2a.TaskStatus{State: a2a.TaskStateWorking}}
	done := &a2a.Task{ID: "t1", Status: a2a.TaskStatus{State: a2a.TaskStateCompleted}}
	if err := q.Enqueue(ctx, working); err != nil {
		t.Fatalf("Enqueue(working) error = %v", err)
	}
	if err := q.Enqueue(ctx, done); err != nil {
		t.Fatalf("Enqueue(done) error = %v", err)
	}

	var seen []a2a.Event
	c := New(q)
	err := c.ConsumeAll(ctx, func(e a2a.Event) error {
		seen = append(seen, e)
		return nil
	})
	if err != nil {
		t.Fatalf("ConsumeAll() error = %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("ConsumeAll() observed %d events, want 2", len(seen))
	}
	if seen[0] != a2a.Event(working) || seen[1] != a2a.Event(done) {
		t.Error("ConsumeAll() observed events out of order")
	}
}

func TestConsumeAllReturnsErrClosedWithoutTerminal(t *testing.T) {
	q, _ := eventqueue.New(eventqueue.DefaultCapacity)
	ctx := context.Background()

	working := &a2a.Task{ID: "t1", Status: a2a.TaskStatus{State: a2a.TaskStateWorking}}
	if err := q.Enqueue(ctx, working); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if err := q.Close(false); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	c := New(q)
	err := c.ConsumeAll(ctx, func(a2a.Event) error { return nil })
	if !errors.Is(err, ErrClosed) {
		t.Errorf("ConsumeAll() error = %v, want ErrClosed", err)
	}
}

func TestConsumeAllPropagatesSinkError(t *testing.T) {
	q, _ := eventqueue.New(eventqueue.DefaultCapacity)
	ctx := context.Background()
	if err := q.Enqueue(ctx, &a2a.Message{}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	sinkErr := errors.New("sink failed")
	c := New(q)
	err := c.ConsumeAll(ctx, func(a2a.Event) error { return sinkErr })
	if !errors.Is(err, sinkErr) {
		t.Errorf("ConsumeAll() error = %v, want %v", err, sinkErr)
	}
}
