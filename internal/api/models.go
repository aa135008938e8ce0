package api

import (
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// LoginRequest defines the payload for the login endpoint.
// Email is accepted for compatibility with clients that send the
// registration payload but plays no part in authentication.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse defines the successful response for authentication endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string           `json:"title"       validate:"required,max=200"`
	Description *string          `json:"description"`
	Priority    *domain.Priority `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time       `json:"due_date"`
}

// toInput converts the request to a domain.TaskInput.
func (r CreateTaskRequest) toInput() domain.TaskInput {
	input := domain.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
	}
	if r.Priority != nil {
		input.Priority = *r.Priority
	}
	return input
}

// UpdateTaskRequest defines the payload for a partial task update. A field
// that is absent is left unchanged; an explicit null clears description and
// due_date and is rejected for the other fields.
type UpdateTaskRequest = domain.TaskUpdate

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Completed   bool            `json:"completed"`
	Priority    domain.Priority `json:"priority"`
	DueDate     *time.Time      `json:"due_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	OwnerID     int64           `json:"owner_id"`
}

// taskToResponse converts a domain task to its API representation.
func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		OwnerID:     t.OwnerID,
	}
}

// tasksToResponse converts a slice of tasks, never returning nil.
func tasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskToResponse(&tasks[i]))
	}
	return out
}
