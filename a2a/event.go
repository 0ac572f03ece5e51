// Package a2a defines the event and task data model shared by the
// event distribution core: the sum type of lifecycle events an agent
// emits, task and message snapshots, and the small dispatch helpers
// callers use instead of type-asserting on concrete event kinds.
package a2a

// Event is the sum type produced by an agent execution and carried
// through an EventQueue. It is implemented only by *Message, *Task,
// *TaskStatusUpdateEvent, and *TaskArtifactUpdateEvent; the unexported
// method prevents other packages from adding new kinds.
type Event interface {
	isEvent()
}

func (*Message) isEvent()                 {}
func (*Task) isEvent()                    {}
func (*TaskStatusUpdateEvent) isEvent()   {}
func (*TaskArtifactUpdateEvent) isEvent() {}

// IsTerminal reports whether event ends a logical event stream:
// every Message, a Task in a terminal TaskState, or a
// TaskStatusUpdateEvent with Final set.
func IsTerminal(event Event) bool {
	switch e := event.(type) {
	case *Message:
		return true
	case *TaskStatusUpdateEvent:
		return e.Final
	case *Task:
		return e.Status.State.Terminal()
	default:
		return false
	}
}

// TaskIDOf extracts the task identifier from a task-bearing event. It
// returns false for *Message, which is not addressed to a task.
func TaskIDOf(event Event) (string, bool) {
	switch e := event.(type) {
	case *Task:
		return e.ID, true
	case *TaskStatusUpdateEvent:
		return e.TaskID, true
	case *TaskArtifactUpdateEvent:
		return e.TaskID, true
	default:
		return "", false
	}
}
