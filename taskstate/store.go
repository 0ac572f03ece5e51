// Package taskstate provides a reference in-memory TaskManager
// collaborator for the event distribution core: it folds the event
// stream into persisted Task snapshots.
package taskstate

import (
	"sync"

	"github.com/perbu/a2acore/a2a"
)

// Store persists Task snapshots keyed by task id. MemStore is the
// provided in-memory implementation; a durable implementation is
// deliberately out of scope for this core.
type Store interface {
	Get(taskID string) (*a2a.Task, bool)
	Put(task *a2a.Task)
}

// MemStore is a goroutine-safe, process-local Store.
type MemStore struct {
	mu    sync.RWMutex
	tasks map[string]*a2a.Task
}

// NewMemStore constructs an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{tasks: make(map[string]*a2a.Task)}
}

// Get returns a copy of the stored task: its History, Artifacts,
// status message and their Parts slices are independent of the
// store, while Metadata maps and the status Timestamp are shared.
func (s *MemStore) Get(taskID string) (*a2a.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, false
	}
	return deepCopyTask(task), true
}

// Put stores a copy of task, made the same way as Get's.
func (s *MemStore) Put(task *a2a.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = deepCopyTask(task)
}

func deepCopyTask(task *a2a.Task) *a2a.Task {
	if task == nil {
		return nil
	}
	cp := *task

	cp.History = make([]*a2a.Message, len(task.History))
	for i, msg := range task.History {
		m := *msg
		m.Parts = append([]a2a.Part(nil), msg.Parts...)
		cp.History[i] = &m
	}

	cp.Artifacts = make([]*a2a.Artifact, len(task.Artifacts))
	for i, artifact := range task.Artifacts {
		art := *artifact
		art.Parts = append([]a2a.Part(nil), artifact.Parts...)
		cp.Artifacts[i] = &art
	}

	if task.Status.Message != nil {
		msg := *task.Status.Message
		msg.Parts = append([]a2a.Part(nil), task.Status.Message.Parts...)
		cp.Status.Message = &msg
	}

	return &cp
}
