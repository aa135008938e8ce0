package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every method is scoped by owner: a task that exists under a different
// owner behaves exactly like a task that does not exist.
type TaskStore interface {
	// ListByOwner returns all tasks owned by ownerID. Callers must not rely on order.
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error)

	// Create saves a new task and assigns task.ID.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// Get retrieves a task by ID for ownerID.
	// Returns ErrTaskNotFound if absent or not owned.
	Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)

	// GetForUpdate is Get with a row lock held until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)

	// Update writes the mutable fields of task, matching on ID and OwnerID.
	// Returns ErrTaskNotFound if no row matched.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes the task.
	// Returns ErrTaskNotFound if absent or not owned.
	Delete(ctx context.Context, ownerID, taskID int64) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
