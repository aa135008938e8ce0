package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// UserLookup resolves a token subject to a stored user.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TokenVerifier validates a bearer token and confirms its subject exists.
type TokenVerifier struct {
	tokens JWTService
	users  UserLookup
}

// NewTokenVerifier creates a TokenVerifier.
func NewTokenVerifier(tokens JWTService, users UserLookup) *TokenVerifier {
	if tokens == nil {
		panic("tokens cannot be nil")
	}
	if users == nil {
		panic("users cannot be nil")
	}
	return &TokenVerifier{tokens: tokens, users: users}
}

// Verify returns the user ID a valid token was issued for.
// It returns ErrInvalidToken, ErrExpiredToken or ErrTokenNotYetValid for a
// token that fails validation, and ErrUnknownUser when the subject is gone.
func (v *TokenVerifier) Verify(ctx context.Context, tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, ErrMissingToken
	}

	claims, err := v.tokens.ValidateToken(ctx, tokenString)
	if err != nil {
		return 0, err
	}

	user, err := v.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return 0, ErrUnknownUser
		}
		return 0, fmt.Errorf("failed to resolve token subject: %w", err)
	}

	return user.ID, nil
}
