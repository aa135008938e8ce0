package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTaskStore implements store.TaskStore in memory for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	ListByOwnerFn  func(ctx context.Context, ownerID int64) ([]domain.Task, error)
	CreateFn       func(ctx context.Context, task *domain.Task) error
	GetFn          func(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)
	GetForUpdateFn func(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)
	UpdateFn       func(ctx context.Context, task *domain.Task) error
	DeleteFn       func(ctx context.Context, ownerID, taskID int64) error

	// Users, when set, is consulted on Create to reject unknown owners
	// the way the foreign key does.
	Users *MockUserStore

	// WithTxCalls counts calls to WithTx.
	WithTxCalls int

	mu     sync.RWMutex
	tasks  map[int64]*domain.Task
	nextID int64
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new empty mock store
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[int64]*domain.Task),
	}
}

func copyTask(t *domain.Task) *domain.Task {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

// ListByOwner implements the TaskStore interface
func (m *MockTaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []domain.Task{}
	for _, task := range m.tasks {
		if task.OwnerID == ownerID {
			result = append(result, *copyTask(task))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}
	if m.Users != nil {
		if _, err := m.Users.GetByID(ctx, task.OwnerID); err != nil {
			return store.ErrInvalidEntity
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	task.ID = m.nextID
	m.tasks[task.ID] = copyTask(task)
	return nil
}

func (m *MockTaskStore) get(ownerID, taskID int64) (*domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	return copyTask(task), nil
}

// Get implements the TaskStore interface
func (m *MockTaskStore) Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, ownerID, taskID)
	}
	return m.get(ownerID, taskID)
}

// GetForUpdate implements the TaskStore interface. No lock is taken.
func (m *MockTaskStore) GetForUpdate(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, ownerID, taskID)
	}
	return m.get(ownerID, taskID)
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return store.ErrTaskNotFound
	}
	m.tasks[task.ID] = copyTask(task)
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, ownerID, taskID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[taskID]
	if !ok || existing.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, taskID)
	return nil
}

// WithTx implements the TaskStore interface. The mock has no transactional
// isolation, so it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}
