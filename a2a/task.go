package a2a

import "time"

// TaskState is the lifecycle state of a Task.
type TaskState string

const (
	TaskStateSubmitted     TaskState = "submitted"
	TaskStateWorking       TaskState = "working"
	TaskStateCompleted     TaskState = "completed"
	TaskStateCanceled      TaskState = "canceled"
	TaskStateFailed        TaskState = "failed"
	TaskStateRejected      TaskState = "rejected"
	TaskStateInputRequired TaskState = "input_required"
	TaskStateAuthRequired  TaskState = "auth_required"
	TaskStateUnknown       TaskState = "unknown"
)

// Terminal reports whether a task in this state ends the task's
// logical event stream: completed, canceled, failed, rejected,
// input_required, auth_required, and unknown are all terminal (the
// last three still end the stream even though the task itself may
// later resume on a fresh request).
func (s TaskState) Terminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateCanceled, TaskStateFailed,
		TaskStateRejected, TaskStateInputRequired, TaskStateAuthRequired,
		TaskStateUnknown:
		return true
	default:
		return false
	}
}

// TaskStatus is a task's current state plus the message that produced
// it, if any.
type TaskStatus struct {
	State     TaskState  `json:"state"`
	Message   *Message   `json:"message,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Artifact is a named output chunk produced by a task.
type Artifact struct {
	ArtifactID string         `json:"artifactId"`
	Name       string         `json:"name,omitempty"`
	Parts      []Part         `json:"parts"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Task is a full snapshot of a server-side unit of work.
type Task struct {
	ID        string         `json:"id"`
	ContextID string         `json:"contextId,omitempty"`
	Status    TaskStatus     `json:"status"`
	History   []*Message     `json:"history,omitempty"`
	Artifacts []*Artifact    `json:"artifacts,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
