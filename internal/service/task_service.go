package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskService provides owner-scoped task operations.
type TaskService interface {
	// List returns all tasks owned by ownerID, possibly empty.
	List(ctx context.Context, ownerID int64) ([]domain.Task, error)

	// Create validates input and stores a new task for ownerID.
	Create(ctx context.Context, ownerID int64, input domain.TaskInput) (*domain.Task, error)

	// Get returns one task. Returns store.ErrTaskNotFound if absent or not owned.
	Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)

	// Update applies the fields present in update atomically.
	// Returns store.ErrTaskNotFound if absent or not owned.
	Update(ctx context.Context, ownerID, taskID int64, update domain.TaskUpdate) (*domain.Task, error)

	// Delete permanently removes a task.
	// Returns store.ErrTaskNotFound if absent or not owned.
	Delete(ctx context.Context, ownerID, taskID int64) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks    store.TaskStore
	db       store.TxBeginner
	timeFunc func() time.Time
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	db store.TxBeginner,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:    tasks,
		db:       db,
		timeFunc: time.Now,
		logger:   logger.With(slog.String("component", "task_service")),
	}, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewServiceError("task", "list", "failed to list tasks", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(
	ctx context.Context,
	ownerID int64,
	input domain.TaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(ownerID, input)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, NewServiceError("task", "create", "failed to save task", err)
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", ownerID))

	return task, nil
}

// Get implements TaskService.Get
func (s *taskServiceImpl) Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, wrapTaskLookupError("get", err)
	}
	return task, nil
}

// Update implements TaskService.Update
// The row is locked for the duration of the read-modify-write so concurrent
// updates to the same task serialize instead of losing writes.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	ownerID, taskID int64,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.tasks.WithTx(tx)

		task, err := txStore.GetForUpdate(ctx, ownerID, taskID)
		if err != nil {
			return err
		}

		if err := task.Apply(update, s.timeFunc()); err != nil {
			return err
		}

		if err := txStore.Update(ctx, task); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, wrapTaskLookupError("update", err)
	}

	log.Debug("task updated",
		slog.Int64("task_id", taskID),
		slog.Int64("owner_id", ownerID))

	return updated, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, ownerID, taskID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, ownerID, taskID); err != nil {
		return wrapTaskLookupError("delete", err)
	}

	log.Debug("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("owner_id", ownerID))

	return nil
}

// wrapTaskLookupError passes not-found through unchanged and wraps everything else.
func wrapTaskLookupError(operation string, err error) error {
	if store.IsNotFoundError(err) {
		return store.ErrTaskNotFound
	}
	return NewServiceError("task", operation, "store operation failed", err)
}
