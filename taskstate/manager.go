package taskstate

import (
	"context"
	"fmt"

	"github.com/perbu/a2acore/a2a"
	"github.com/perbu/a2acore/callctx"
)

// Manager is the reference resultaggregator.TaskManager
// implementation: it folds each event kind into a Store-backed Task
// snapshot. A *Message never mutates task state; it is handled
// entirely by the aggregator.
type Manager struct {
	store Store
}

// NewManager constructs a Manager backed by store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Process folds event into the task it addresses. cc is accepted to
// satisfy the TaskManager contract but is not interpreted by this
// reference implementation.
func (m *Manager) Process(_ context.Context, _ *callctx.CallContext, event a2a.Event) error {
	switch e := event.(type) {
	case *a2a.Message:
		return nil
	case *a2a.Task:
		m.store.Put(e)
		return nil
	case *a2a.TaskStatusUpdateEvent:
		return m.updateStatus(e)
	case *a2a.TaskArtifactUpdateEvent:
		return m.updateArtifact(e)
	default:
		return fmt.Errorf("taskstate: unrecognized event type %T", event)
	}
}

// GetTask returns the current snapshot for taskID, or
// a2a.ErrTaskNotFound if none has been observed.
func (m *Manager) GetTask(_ context.Context, taskID string) (*a2a.Task, error) {
	task, ok := m.store.Get(taskID)
	if !ok {
		return nil, a2a.ErrTaskNotFound
	}
	return task, nil
}

func (m *Manager) taskOrNew(taskID, contextID string) *a2a.Task {
	if task, ok := m.store.Get(taskID); ok {
		return task
	}
	return &a2a.Task{
		ID:        taskID,
		ContextID: contextID,
		Status:    a2a.TaskStatus{State: a2a.TaskStateSubmitted},
	}
}

// updateStatus appends the task's prior status message to history
// (when non-nil) before applying the new status.
func (m *Manager) updateStatus(e *a2a.TaskStatusUpdateEvent) error {
	task := m.taskOrNew(e.TaskID, e.ContextID)
	if task.Status.Message != nil {
		task.History = append(task.History, task.Status.Message)
	}
	task.Status = e.Status
	m.store.Put(task)
	return nil
}

// updateArtifact merges the incoming artifact into the task's
// artifact list, appending parts when Append is set and the artifact
// already exists, replacing it otherwise.
func (m *Manager) updateArtifact(e *a2a.TaskArtifactUpdateEvent) error {
	task := m.taskOrNew(e.TaskID, e.ContextID)

	for i, existing := range task.Artifacts {
		if existing.ArtifactID != e.Artifact.ArtifactID {
			continue
		}
		if e.Append {
			existing.Parts = append(existing.Parts, e.Artifact.Parts...)
		} else {
			task.Artifacts[i] = artifactCopy(&e.Artifact)
		}
		m.store.Put(task)
		return nil
	}

	task.Artifacts = append(task.Artifacts, artifactCopy(&e.Artifact))
	m.store.Put(task)
	return nil
}

func artifactCopy(a *a2a.Artifact) *a2a.Artifact {
	cp := *a
	cp.Parts = append([]a2a.Part(nil), a.Parts...)
	return &cp
}
