package eventqueue

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/perbu/a2acore/internal/config"
)

// DefaultCloseGrace bounds how long CloseAll waits for a queue to
// close before abandoning it, when no grace period is configured.
const DefaultCloseGrace = 5 * time.Second

// Manager is a task-indexed registry of EventQueues: at most one root
// queue per task id. All operations are atomic with respect to
// concurrent callers.
type Manager struct {
	bufferSize int
	closeGrace time.Duration

	mu     sync.Mutex
	queues map[string]*EventQueue
}

// ManagerOption configures a Manager constructed by NewManager.
type ManagerOption func(*Manager)

// WithQueueBufferSize overrides the capacity used for queues this
// Manager creates. The default is DefaultCapacity.
func WithQueueBufferSize(n int) ManagerOption {
	return func(m *Manager) {
		m.bufferSize = n
	}
}

// WithCloseGrace overrides how long CloseAll waits for every bound
// queue to close before giving up. A non-positive value means
// CloseAll waits only on the caller's context.
func WithCloseGrace(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.closeGrace = d
	}
}

// NewManager constructs an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		bufferSize: DefaultCapacity,
		closeGrace: DefaultCloseGrace,
		queues:     make(map[string]*EventQueue),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewManagerFromConfig constructs a Manager using cfg's queue capacity
// and shutdown grace period.
func NewManagerFromConfig(cfg *config.Config, opts ...ManagerOption) *Manager {
	base := []ManagerOption{
		WithQueueBufferSize(cfg.QueueCapacity),
		WithCloseGrace(time.Duration(cfg.CloseGraceSeconds) * time.Second),
	}
	return NewManager(append(base, opts...)...)
}

// Add binds taskID to queue. It fails with ErrTaskQueueExists if
// taskID is already bound.
func (m *Manager) Add(taskID string, queue *EventQueue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.queues[taskID]; exists {
		return ErrTaskQueueExists
	}
	m.queues[taskID] = queue
	return nil
}

// Get returns the queue bound to taskID, or nil if none is bound.
func (m *Manager) Get(taskID string) *EventQueue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queues[taskID]
}

// Tap returns a fresh child of the queue bound to taskID, or nil if
// none is bound. Each call produces a distinct sibling.
func (m *Manager) Tap(taskID string) *EventQueue {
	m.mu.Lock()
	root := m.queues[taskID]
	m.mu.Unlock()
	if root == nil {
		return nil
	}
	return root.Tap()
}

// Close closes the queue bound to taskID with immediate semantics and
// removes the binding. It fails with ErrNoTaskQueue if taskID is
// unbound.
func (m *Manager) Close(taskID string) error {
	m.mu.Lock()
	root, exists := m.queues[taskID]
	if exists {
		delete(m.queues, taskID)
	}
	m.mu.Unlock()
	if !exists {
		return ErrNoTaskQueue
	}
	return root.Close(true)
}

// CreateOrTap returns the queue bound to taskID, creating and binding
// a fresh one if none exists, or a fresh tapped child otherwise. It
// is intended for the subscribe-or-start idempotent path: the first
// caller for a task id gets the root queue, every later caller gets
// its own tapped sibling.
func (m *Manager) CreateOrTap(taskID string) (*EventQueue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if root, exists := m.queues[taskID]; exists {
		return root.Tap(), nil
	}
	root, err := New(m.bufferSize)
	if err != nil {
		return nil, err
	}
	m.queues[taskID] = root
	return root, nil
}

// CloseAll closes every currently-bound queue and clears the
// registry, returning the first error encountered (if any) while
// still attempting every close concurrently. If the Manager has a
// positive close grace period, CloseAll abandons any queue that has
// not finished closing within that period and returns
// context.DeadlineExceeded.
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.Lock()
	roots := make([]*EventQueue, 0, len(m.queues))
	for taskID, root := range m.queues {
		roots = append(roots, root)
		delete(m.queues, taskID)
	}
	m.mu.Unlock()

	if m.closeGrace > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.closeGrace)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, root := range roots {
		root := root
		g.Go(func() error {
			done := make(chan error, 1)
			go func() { done <- root.Close(true) }()
			select {
			case err := <-done:
				return err
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	return g.Wait()
}
