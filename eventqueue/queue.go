// Package eventqueue implements the bounded, closable, tappable event
// channel at the center of the event distribution core, and the
// task-indexed registry that owns queue lifetimes.
package eventqueue

import (
	"context"
	"sync"
	"weak"

	"github.com/perbu/a2acore/a2a"
	"github.com/perbu/a2acore/internal/corelog"
)

// DefaultCapacity is the buffer size a Manager uses for the queues it
// creates unless WithQueueBufferSize overrides it. New itself has no
// default: it rejects a non-positive capacity.
const DefaultCapacity = 1024

// EventQueue is a FIFO, bounded, closable channel of a2a.Event with a
// parent/child fan-out topology established by Tap. The zero value is
// not usable; construct with New.
//
// Two mutexes guard the queue: bufMu protects buffer/closed/children
// and is held only for the duration of a single slice operation;
// writeMu serializes the entirety of a single Enqueue call, including
// its recursive fan-out to children, so that concurrent producers
// cannot interleave and break FIFO ordering across the whole subtree.
// bufMu is never held while acquiring a child's locks: fan-out
// snapshots the children set under bufMu, then dispatches to each
// child holding only the parent's writeMu.
type EventQueue struct {
	capacity int

	writeMu sync.Mutex

	bufMu    sync.Mutex
	buffer   []a2a.Event
	closed   bool
	children []weak.Pointer[EventQueue]
	notify   chan struct{}
}

// New creates a root EventQueue with the given capacity. It fails
// with ErrInvalidArgument when capacity is not positive.
func New(capacity int) (*EventQueue, error) {
	if capacity <= 0 {
		return nil, ErrInvalidArgument
	}
	return newQueue(capacity), nil
}

func newQueue(capacity int) *EventQueue {
	return &EventQueue{
		capacity: capacity,
		notify:   make(chan struct{}),
	}
}

// MaxQueueSize returns the queue's configured capacity.
func (q *EventQueue) MaxQueueSize() int {
	return q.capacity
}

// Empty reports whether the buffer currently holds no events.
func (q *EventQueue) Empty() bool {
	q.bufMu.Lock()
	defer q.bufMu.Unlock()
	return len(q.buffer) == 0
}

// Closed reports whether the queue has been closed.
func (q *EventQueue) Closed() bool {
	q.bufMu.Lock()
	defer q.bufMu.Unlock()
	return q.closed
}

// broadcastLocked wakes every goroutine blocked in Enqueue or Dequeue.
// Callers must hold bufMu.
func (q *EventQueue) broadcastLocked() {
	close(q.notify)
	q.notify = make(chan struct{})
}

// Enqueue appends event to the buffer and to every child tapped from
// this queue. If the queue is closed, Enqueue is a silent no-op. If
// the buffer is at capacity, Enqueue blocks the caller until space
// frees up or the queue closes (in which case event is discarded) or
// ctx is done (in which case ctx.Err() is returned).
func (q *EventQueue) Enqueue(ctx context.Context, event a2a.Event) error {
	q.writeMu.Lock()
	defer q.writeMu.Unlock()

	for {
		q.bufMu.Lock()
		if q.closed {
			q.bufMu.Unlock()
			return nil
		}
		if len(q.buffer) < q.capacity {
			q.buffer = append(q.buffer, event)
			children := q.snapshotChildrenLocked()
			q.broadcastLocked()
			q.bufMu.Unlock()

			q.dispatchToChildren(ctx, children, event)
			return nil
		}
		waitCh := q.notify
		q.bufMu.Unlock()

		select {
		case <-waitCh:
			continue
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// snapshotChildrenLocked returns the live children of q. Callers must
// hold bufMu. Dead weak pointers (child already collected) are pruned
// from q.children as a side effect.
func (q *EventQueue) snapshotChildrenLocked() []*EventQueue {
	if len(q.children) == 0 {
		return nil
	}
	live := make([]*EventQueue, 0, len(q.children))
	kept := q.children[:0]
	for _, wp := range q.children {
		if child := wp.Value(); child != nil {
			live = append(live, child)
			kept = append(kept, wp)
		}
	}
	q.children = kept
	return live
}

func (q *EventQueue) dispatchToChildren(ctx context.Context, children []*EventQueue, event a2a.Event) {
	for _, child := range children {
		if err := child.Enqueue(ctx, event); err != nil {
			corelog.Warn(ctx, "eventqueue: fan-out to tapped child aborted", "error", err)
		}
	}
}

// Dequeue removes and returns the head of the buffer. When the
// buffer is empty and noWait is true, it fails immediately with
// ErrQueueEmpty. When noWait is false, it suspends the caller until
// an event is enqueued, the queue closes, or ctx is done; if the
// queue becomes closed while still empty, the caller fails with
// ErrQueueEmpty, the same sentinel as the non-blocking case.
func (q *EventQueue) Dequeue(ctx context.Context, noWait bool) (a2a.Event, error) {
	for {
		q.bufMu.Lock()
		if len(q.buffer) > 0 {
			event := q.buffer[0]
			q.buffer = q.buffer[1:]
			q.broadcastLocked()
			q.bufMu.Unlock()
			return event, nil
		}
		if q.closed || noWait {
			q.bufMu.Unlock()
			return nil, ErrQueueEmpty
		}
		waitCh := q.notify
		q.bufMu.Unlock()

		select {
		case <-waitCh:
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Tap returns a new child EventQueue sharing this queue's capacity.
// Only events enqueued into this queue after Tap returns are mirrored
// into the child; events already buffered are not replayed. If this
// queue is already closed, the returned child is created already
// closed. The parent holds only a weak reference to each child, so a
// child dropped by every subscriber is reclaimable without an
// explicit detach call; a child holds no reference to its parent at
// all, since nothing in this package ever walks child-to-parent.
func (q *EventQueue) Tap() *EventQueue {
	child := newQueue(q.capacity)

	q.bufMu.Lock()
	if q.closed {
		child.closed = true
	} else {
		q.children = append(q.children, weak.Make(child))
	}
	q.bufMu.Unlock()

	return child
}

// Close marks the queue closed. It recursively closes every
// currently-live child. When immediate is true, the buffer is also
// cleared. A second Close is idempotent. Closing a child
// independently never affects its parent.
func (q *EventQueue) Close(immediate bool) error {
	q.bufMu.Lock()
	if q.closed {
		q.bufMu.Unlock()
		return nil
	}
	q.closed = true
	if immediate {
		q.buffer = nil
	}
	children := q.snapshotChildrenLocked()
	q.children = nil
	q.broadcastLocked()
	q.bufMu.Unlock()

	for _, child := range children {
		_ = child.Close(immediate)
	}
	return nil
}

// ClearEvents removes every currently-buffered event and returns the
// count dropped. It does not affect children and does not change the
// closed state.
func (q *EventQueue) ClearEvents() int {
	q.bufMu.Lock()
	n := len(q.buffer)
	q.buffer = nil
	q.broadcastLocked()
	q.bufMu.Unlock()
	return n
}
