// Package eventconsumer wraps a single eventqueue.EventQueue and
// converts its close/terminal semantics into a well-formed iteration
// protocol for callers that want a plain "read until done" loop
// instead of juggling Dequeue's sentinels themselves.
package eventconsumer

import (
	"context"
	"errors"

	"github.com/perbu/a2acore/a2a"
	"github.com/perbu/a2acore/eventqueue"
)

// Consumer drives a single EventQueue to completion.
type Consumer struct {
	queue *eventqueue.EventQueue
}

// New wraps queue in a Consumer.
func New(queue *eventqueue.EventQueue) *Consumer {
	return &Consumer{queue: queue}
}

// ConsumeOne performs a single non-blocking dequeue, surfacing
// eventqueue.ErrQueueEmpty to the caller when nothing is buffered.
func (c *Consumer) ConsumeOne(ctx context.Context) (a2a.Event, error) {
	return c.queue.Dequeue(ctx, true)
}

// ConsumeAll repeatedly dequeues (blocking) and invokes onEvent with
// each event, returning when a terminal event has been emitted to
// onEvent, or when the queue is observed empty and closed with no
// terminal event seen — in which case ConsumeAll returns ErrClosed.
// A ctx cancellation or an onEvent error aborts the loop immediately
// and is returned unwrapped; the queue is not closed implicitly.
func (c *Consumer) ConsumeAll(ctx context.Context, onEvent func(a2a.Event) error) error {
	for {
		event, err := c.queue.Dequeue(ctx, false)
		if err != nil {
			if errors.Is(err, eventqueue.ErrQueueEmpty) {
				return ErrClosed
			}
			return err
		}

		if err := onEvent(event); err != nil {
			return err
		}
		if a2a.IsTerminal(event) {
			return nil
		}
	}
}
