package auth

import (
	"errors"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrUnknownUser indicates a well-formed token whose subject no longer exists
	ErrUnknownUser = errors.New("token subject does not exist")

	// ErrPasswordMismatch indicates a password does not match the stored hash
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrUnsupportedHash indicates a stored hash in an unrecognized format
	ErrUnsupportedHash = errors.New("unsupported password hash format")

	// ErrPasswordTooLong indicates a password over bcrypt's 72-byte input limit
	ErrPasswordTooLong = domain.NewValidationError("password", "must be at most 72 bytes", nil)
)
