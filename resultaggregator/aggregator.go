// Package resultaggregator reduces a consumed event stream into a
// final Message or Task snapshot, delegating persistent task mutation
// to an injected TaskManager.
package resultaggregator

import (
	"context"
	"errors"

	"github.com/perbu/a2acore/a2a"
	"github.com/perbu/a2acore/callctx"
	"github.com/perbu/a2acore/eventconsumer"
)

// TaskManager is the external collaborator that folds events into
// persisted task state. Implementations create the task on first
// sight, update status, append history, and merge artifacts honoring
// Append/LastChunk. taskstate.Manager is the reference implementation.
type TaskManager interface {
	Process(ctx context.Context, cc *callctx.CallContext, event a2a.Event) error
	GetTask(ctx context.Context, taskID string) (*a2a.Task, error)
}

// Aggregator combines a TaskManager with the running terminal Message
// slot for one call.
type Aggregator struct {
	taskManager TaskManager

	message *a2a.Message
	taskID  string
}

// New constructs an Aggregator over taskManager.
func New(taskManager TaskManager) *Aggregator {
	return &Aggregator{taskManager: taskManager}
}

// ConsumeAndEmit drives consumer.ConsumeAll, and for each event first
// invokes taskManager.Process (so persisted state is updated before
// any external observer sees the event) and then forwards the event
// to sink. Processing happens-before forwarding for every event. It
// returns when the consumer terminates; a TaskManager or sink failure
// aborts the loop and is returned unwrapped without forwarding the
// offending event.
func (a *Aggregator) ConsumeAndEmit(ctx context.Context, cc *callctx.CallContext, consumer *eventconsumer.Consumer, sink func(a2a.Event) error) error {
	return consumer.ConsumeAll(ctx, func(event a2a.Event) error {
		a.observe(event)
		if err := a.taskManager.Process(ctx, cc, event); err != nil {
			return err
		}
		return sink(event)
	})
}

// ConsumeAll drains consumer without re-emitting. For each event, it
// invokes taskManager.Process. If a Message is observed, it is
// remembered as the final result and returned immediately. Otherwise,
// on normal stream termination, it returns taskManager.GetTask for
// the aggregated task id, or nil if no task was ever observed.
func (a *Aggregator) ConsumeAll(ctx context.Context, cc *callctx.CallContext, consumer *eventconsumer.Consumer) (a2a.SendMessageResult, error) {
	var message *a2a.Message

	err := consumer.ConsumeAll(ctx, func(event a2a.Event) error {
		a.observe(event)
		if err := a.taskManager.Process(ctx, cc, event); err != nil {
			return err
		}
		if m, ok := event.(*a2a.Message); ok {
			message = m
			return errStopOnMessage
		}
		return nil
	})
	// eventconsumer.ErrClosed (stream ended without a terminal event)
	// is a lifecycle condition, not a downstream failure: the
	// aggregator falls through to whatever TaskManager snapshot
	// exists rather than propagating it.
	if err != nil && !errors.Is(err, errStopOnMessage) && !errors.Is(err, eventconsumer.ErrClosed) {
		return nil, err
	}

	if message != nil {
		return message, nil
	}
	if a.taskID == "" {
		return nil, nil
	}
	task, err := a.taskManager.GetTask(ctx, a.taskID)
	if err != nil {
		if errors.Is(err, a2a.ErrTaskNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// CurrentResult returns the remembered Message if ConsumeAll or
// ConsumeAndEmit has already observed one, else the TaskManager's
// current Task snapshot for the aggregated task id.
func (a *Aggregator) CurrentResult(ctx context.Context) (a2a.SendMessageResult, error) {
	if a.message != nil {
		return a.message, nil
	}
	if a.taskID == "" {
		return nil, nil
	}
	task, err := a.taskManager.GetTask(ctx, a.taskID)
	if err != nil {
		if errors.Is(err, a2a.ErrTaskNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (a *Aggregator) observe(event a2a.Event) {
	if m, ok := event.(*a2a.Message); ok {
		a.message = m
		return
	}
	if taskID, ok := a2a.TaskIDOf(event); ok {
		a.taskID = taskID
	}
}

// errStopOnMessage is an internal sentinel used to short-circuit
// ConsumeAll's consumer.ConsumeAll loop the moment a Message is
// observed, without requiring eventconsumer to know about
// aggregator-level early termination.
var errStopOnMessage = errors.New("resultaggregator: message observed")
