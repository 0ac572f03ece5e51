package a2a

// TaskStatusUpdateEvent carries an incremental status change for a
// task. Final marks the last status update the agent will emit for
// this task — the event stream's terminal signal for this kind.
type TaskStatusUpdateEvent struct {
	TaskID    string     `json:"taskId"`
	ContextID string     `json:"contextId,omitempty"`
	Status    TaskStatus `json:"status"`
	Final     bool       `json:"final"`
}

// TaskArtifactUpdateEvent carries an incremental artifact chunk.
// Append, when true, instructs the TaskManager to append Artifact's
// parts to the existing artifact of the same ArtifactID rather than
// replace it. LastChunk marks the end of that artifact's stream.
type TaskArtifactUpdateEvent struct {
	TaskID    string   `json:"taskId"`
	ContextID string   `json:"contextId,omitempty"`
	Artifact  Artifact `json:"artifact"`
	Append    bool     `json:"append,omitempty"`
	LastChunk bool     `json:"lastChunk,omitempty"`
}
