package mocks

import (
	"strings"
	"sync/atomic"

	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// plainPrefix marks hashes produced by MockPasswordHasher.
const plainPrefix = "mock-hash:"

// MockPasswordHasher implements auth.PasswordHasher without any real work
type MockPasswordHasher struct {
	// HashFn allows for custom hashing logic in tests
	HashFn func(password string) (string, error)

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCalls and HashCalls track how many times each method was called
	CompareCalls atomic.Int64
	HashCalls    atomic.Int64
}

// Ensure MockPasswordHasher implements auth.PasswordHasher interface
var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.HashCalls.Add(1)
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return plainPrefix + password, nil
}

// Compare implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCalls.Add(1)
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if !strings.HasPrefix(hashedPassword, plainPrefix) ||
		strings.TrimPrefix(hashedPassword, plainPrefix) != password {
		return auth.ErrPasswordMismatch
	}
	return nil
}
