package domain

import (
	"strings"
	"time"
)

// Validation errors for User
var (
	ErrEmptyUsername       = NewValidationError("username", "cannot be empty", nil)
	ErrEmptyEmail          = NewValidationError("email", "cannot be empty", nil)
	ErrEmptyHashedPassword = NewValidationError("hashed_password", "cannot be empty", nil)
)

// User represents a registered account. Tasks are owned by exactly one user.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	IsActive       bool      `json:"is_active"`
}

// NewUser creates an active User with the given identity and an already
// hashed password. The ID is assigned by the store.
func NewUser(username, email, hashedPassword string) (*User, error) {
	user := &User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
		IsActive:       true,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}
