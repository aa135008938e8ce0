package mocks

import (
	"context"
	"strconv"
	"sync"

	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// MockJWTService is a scriptable auth.JWTService. With no functions set it
// issues "token-<userID>" and accepts exactly the tokens it issued.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID int64) (string, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	mu     sync.Mutex
	issued map[string]int64
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements auth.JWTService.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}

	token := "token-" + strconv.FormatInt(userID, 10)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.issued == nil {
		m.issued = make(map[string]int64)
	}
	m.issued[token] = userID
	return token, nil
}

// ValidateToken implements auth.JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}

	m.mu.Lock()
	userID, ok := m.issued[token]
	m.mu.Unlock()
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: userID, Subject: strconv.FormatInt(userID, 10)}, nil
}

// Issued reports how many distinct tokens the default generator produced.
func (m *MockJWTService) Issued() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.issued)
}
