package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// dummyPassword is hashed once at startup so failed lookups cost a comparison too.
const dummyPassword = "account-does-not-exist"

// UserService provides registration and credential checks.
type UserService interface {
	// Register creates a new active user. Returns store.ErrUsernameExists or
	// store.ErrEmailExists when either is already taken; username is checked first.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Authenticate returns the user whose username and password match.
	// Returns ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetByID retrieves a user by their ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	users     store.UserStore
	hasher    auth.PasswordHasher
	dummyHash string
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy password hash: %w", err)
	}

	return &userServiceImpl{
		users:     users,
		hasher:    hasher,
		dummyHash: dummyHash,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register
func (s *userServiceImpl) Register(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, NewServiceError("user", "register", "failed to check username", err)
	}
	if taken {
		log.Debug("registration rejected: username taken", slog.String("username", username))
		return nil, store.ErrUsernameExists
	}

	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, NewServiceError("user", "register", "failed to check email", err)
	}
	if taken {
		log.Debug("registration rejected: email taken", slog.String("username", username))
		return nil, store.ErrEmailExists
	}

	hashed, err := s.hasher.Hash(password)
	if errors.Is(err, domain.ErrValidation) {
		return nil, err
	}
	if err != nil {
		return nil, NewServiceError("user", "register", "failed to hash password", err)
	}

	user, err := domain.NewUser(username, email, hashed)
	if err != nil {
		return nil, err
	}

	// A concurrent registration can still win the race; the store maps the
	// unique violation to the same errors as the checks above.
	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, NewServiceError("user", "register", "failed to save user", err)
	}

	log.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))

	return user, nil
}

// Authenticate implements UserService.Authenticate
func (s *userServiceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			return nil, NewServiceError("user", "authenticate", "failed to load user", err)
		}
		_ = s.hasher.Compare(s.dummyHash, password)
		log.Debug("authentication failed: unknown username")
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("authentication failed: password mismatch", slog.Int64("user_id", user.ID))
			return nil, ErrInvalidCredentials
		}
		log.Error("stored password hash could not be checked",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID implements UserService.GetByID
func (s *userServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		return nil, NewServiceError("user", "get", "failed to retrieve user", err)
	}
	return user, nil
}
