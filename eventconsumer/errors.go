package eventconsumer

import "errors"

// ErrClosed is returned by ConsumeAll when the underlying queue
// closed before any terminal event was observed — distinct from
// eventqueue.ErrQueueEmpty, which is a single-Dequeue-call outcome
// rather than a stream-level termination condition.
var ErrClosed = errors.New("eventconsumer: queue closed before a terminal event")
