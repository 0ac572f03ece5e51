package eventqueue

import "errors"

// ErrInvalidArgument is returned by New when given a non-positive
// capacity.
var ErrInvalidArgument = errors.New("eventqueue: invalid argument")

// ErrQueueEmpty is returned by Dequeue when the buffer is empty,
// whether the caller requested no-wait or the queue closed while the
// caller was blocked waiting for an event.
var ErrQueueEmpty = errors.New("eventqueue: queue empty")

// ErrTaskQueueExists is returned by Manager.Add when task id already
// has a bound root queue.
var ErrTaskQueueExists = errors.New("eventqueue: task queue already exists")

// ErrNoTaskQueue is returned by Manager operations that require an
// existing binding for a task id that has none.
var ErrNoTaskQueue = errors.New("eventqueue: no queue bound for task")
