package a2a

// Role identifies who produced a Message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Part is a single content fragment of a Message or Artifact. The
// transport-level encoding of Part is deliberately out of scope here
// (see spec's type-schema exclusion); Text is sufficient for the core
// to exercise aggregation and merge semantics.
type Part struct {
	Text     string         `json:"text,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Message is a terminal, non-task-addressed event: a direct reply
// from the agent (e.g. a clarification request with no task created
// yet, or an unstructured final answer).
type Message struct {
	MessageID string         `json:"messageId"`
	ContextID string         `json:"contextId,omitempty"`
	TaskID    string         `json:"taskId,omitempty"`
	Role      Role           `json:"role"`
	Parts     []Part         `json:"parts"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
