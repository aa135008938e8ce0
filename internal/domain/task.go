package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Priority is the urgency assigned to a task.
type Priority string

// Possible priority values
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when a task is created without a priority.
const DefaultPriority = PriorityMedium

// MaxTaskTitleLength is the longest title, in characters, a task may carry.
const MaxTaskTitleLength = 200

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Validation errors for Task
var (
	ErrEmptyTaskTitle    = NewValidationError("title", "cannot be empty", nil)
	ErrTaskTitleTooLong  = NewValidationError("title", "must be at most 200 characters", nil)
	ErrInvalidTaskOwner  = NewValidationError("owner_id", "must reference a user", nil)
	ErrInvalidPriority   = NewValidationError("priority", "must be one of low, medium, high", nil)
	ErrNullTaskCompleted = NewValidationError("completed", "cannot be null", nil)
	ErrNullTaskPriority  = NewValidationError("priority", "cannot be null", nil)
	ErrNullTaskTitle     = NewValidationError("title", "cannot be null", nil)
)

// Task is a to-do item owned by a single user. Ownership never changes
// after creation.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	OwnerID     int64      `json:"owner_id"`
}

// TaskInput carries the caller-supplied fields for a new task.
type TaskInput struct {
	Title       string
	Description *string
	Priority    Priority
	DueDate     *time.Time
}

// NewTask builds a task for ownerID from input. An empty priority falls back
// to DefaultPriority. The ID is assigned by the store.
func NewTask(ownerID int64, input TaskInput) (*Task, error) {
	priority := input.Priority
	if priority == "" {
		priority = DefaultPriority
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	task := &Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		Priority:    priority,
		DueDate:     normalizeTime(input.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
		OwnerID:     ownerID,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.OwnerID <= 0 {
		return ErrInvalidTaskOwner
	}
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// TaskUpdate is a partial update. Only fields with Set == true are applied.
// A null Description or DueDate clears the stored value.
type TaskUpdate struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Completed   Optional[bool]      `json:"completed"`
	Priority    Optional[Priority]  `json:"priority"`
	DueDate     Optional[time.Time] `json:"due_date"`
}

// Validate rejects nulls for non-nullable fields and invalid values.
func (u TaskUpdate) Validate() error {
	if u.Title.IsNull() {
		return ErrNullTaskTitle
	}
	if u.Title.Value != nil {
		if err := validateTitle(*u.Title.Value); err != nil {
			return err
		}
	}
	if u.Completed.IsNull() {
		return ErrNullTaskCompleted
	}
	if u.Priority.IsNull() {
		return ErrNullTaskPriority
	}
	if u.Priority.Value != nil && !u.Priority.Value.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// Apply validates u and merges it into t at time now. UpdatedAt always
// moves forward, even when now does not exceed the previous value.
func (t *Task) Apply(u TaskUpdate, now time.Time) error {
	if err := u.Validate(); err != nil {
		return err
	}

	if u.Title.Set {
		t.Title = *u.Title.Value
	}
	if u.Description.Set {
		t.Description = u.Description.Value
	}
	if u.Completed.Set {
		t.Completed = *u.Completed.Value
	}
	if u.Priority.Set {
		t.Priority = *u.Priority.Value
	}
	if u.DueDate.Set {
		t.DueDate = normalizeTime(u.DueDate.Value)
	}

	now = now.UTC().Truncate(time.Microsecond)
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Microsecond)
	}
	t.UpdatedAt = now

	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}
	return nil
}

// normalizeTime converts to UTC so stored and returned values compare equal.
func normalizeTime(ts *time.Time) *time.Time {
	if ts == nil {
		return nil
	}
	utc := ts.UTC()
	return &utc
}
