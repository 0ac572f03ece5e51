package resultaggregator_test

import (
	"context"
	"testing"

	"github.com/perbu/a2acore/a2a"
	"github.com/perbu/a2acore/eventconsumer"
	"github.com/perbu/a2acore/eventqueue"
	"github.com/perbu/a2acore/resultaggregator"
	"github.com/perbu/a2acore/taskstate"
)

// TestFullPipelineProducerToAggregatedTask exercises the full stack a
// streaming RPC adapter would drive: Manager hands out a root queue,
// a producer goroutine emits a realistic event sequence, and the
// aggregator reduces it into the final Task via the real
// taskstate.Manager rather than a test double.
func TestFullPipelineProducerToAggregatedTask(t *testing.T) {
	ctx := context.Background()
	mgr := eventqueue.NewManager()
	root, err := mgr.CreateOrTap("task-1")
	if err != nil {
		t.Fatalf("CreateOrTap() error = %v", err)
	}

	go func() {
		_ = root.Enqueue(ctx, &a2a.TaskStatusUpdateEvent{
			TaskID: "task-1",
			Status: a2a.TaskStatus{State: a2a.TaskStateWorking},
		})
		_ = root.Enqueue(ctx, &a2a.TaskArtifactUpdateEvent{
			TaskID:   "task-1",
			Artifact: a2a.Artifact{ArtifactID: "out", Parts: []a2a.Part{{Text: "partial"}}},
		})
		_ = root.Enqueue(ctx, &a2a.TaskStatusUpdateEvent{
			TaskID: "task-1",
			Status: a2a.TaskStatus{State: a2a.TaskStateCompleted},
			Final:  true,
		})
	}()

	tm := taskstate.NewManager(taskstate.NewMemStore())
	agg := resultaggregator.New(tm)
	result, err := agg.ConsumeAll(ctx, nil, eventconsumer.New(root))
	if err != nil {
		t.Fatalf("ConsumeAll() error = %v", err)
	}

	task, ok := result.(*a2a.Task)
	if !ok {
		t.Fatalf("result = %#v (%T), want *a2a.Task", result, result)
	}
	if task.Status.State != a2a.TaskStateCompleted {
		t.Errorf("Status.State = %v, want completed", task.Status.State)
	}
	if len(task.Artifacts) != 1 || task.Artifacts[0].ArtifactID != "out" {
		t.Errorf("Artifacts = %+v, want the single merged artifact", task.Artifacts)
	}
}

// TestTappedSubscriberOnlySeesEventsAfterSubscribing mirrors the
// subscribe-or-start path: a late-joining subscriber must not replay
// a status update the agent already emitted before it tapped in.
func TestTappedSubscriberOnlySeesEventsAfterSubscribing(t *testing.T) {
	ctx := context.Background()
	mgr := eventqueue.NewManager()
	root, err := mgr.CreateOrTap("task-2")
	if err != nil {
		t.Fatalf("CreateOrTap() error = %v", err)
	}

	if err := root.Enqueue(ctx, &a2a.TaskStatusUpdateEvent{
		TaskID: "task-2",
		Status: a2a.TaskStatus{State: a2a.TaskStateSubmitted},
	}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	late, err := mgr.CreateOrTap("task-2")
	if err != nil {
		t.Fatalf("CreateOrTap() (late subscriber) error = %v", err)
	}

	final := &a2a.TaskStatusUpdateEvent{
		TaskID: "task-2",
		Status: a2a.TaskStatus{State: a2a.TaskStateCompleted},
		Final:  true,
	}
	if err := root.Enqueue(ctx, final); err != nil {
		t.Fatalf("Enqueue(final) error = %v", err)
	}

	consumer := eventconsumer.New(late)
	var seen []a2a.Event
	err = consumer.ConsumeAll(ctx, func(e a2a.Event) error {
		seen = append(seen, e)
		return nil
	})
	if err != nil {
		t.Fatalf("ConsumeAll() error = %v", err)
	}
	if len(seen) != 1 || seen[0] != a2a.Event(final) {
		t.Errorf("late subscriber observed %#v, want exactly [final]", seen)
	}
}
