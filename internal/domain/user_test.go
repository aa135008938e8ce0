package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("alice", "a@x.com", "$2a$10$hash")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.CreatedAt.IsZero())

	tests := []struct {
		name     string
		username string
		email    string
		hash     string
		wantErr  error
	}{
		{"missing username", "", "a@x.com", "h", ErrEmptyUsername},
		{"missing email", "alice", " ", "h", ErrEmptyEmail},
		{"missing hash", "alice", "a@x.com", "", ErrEmptyHashedPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewUser(tt.username, tt.email, tt.hash)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	t.Parallel()

	user, err := NewUser("alice", "a@x.com", "super-secret-hash")
	require.NoError(t, err)

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "super-secret-hash")
	assert.NotContains(t, string(data), "hashed_password")
}
