package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/service/auth"
	"github.com/phrazzld/forum-api/internal/service/authz"
	"github.com/phrazzld/forum-api/internal/store"
)

// UserService provides account self-management. Every mutating operation
// takes the authenticated principal's ID and enforces that users only ever
// modify their own account; a denied request performs no writes at all.
type UserService interface {
	// UpdateUser applies a partial edit to the principal's own account.
	// Blank name and email fields leave the current value untouched. A
	// non-blank password is rehashed before it reaches the store; the
	// plaintext is never persisted.
	// Returns authz.ErrNotOwner if the principal targets another account;
	// store.ErrUserNotFound if the account does not exist;
	// store.ErrEmailExists if the new email is already taken.
	UpdateUser(
		ctx context.Context,
		principalID, userID uuid.UUID,
		name, email, password string,
	) (*domain.User, error)

	// DeleteUser removes the principal's own account.
	// Returns authz.ErrNotOwner if the principal targets another account;
	// store.ErrUserNotFound if the account does not exist.
	DeleteUser(ctx context.Context, principalID, userID uuid.UUID) error
}

// userService is the store-backed implementation of UserService.
type userService struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
}

// Ensure userService implements UserService interface
var _ UserService = (*userService)(nil)

// NewUserService creates a new UserService with the given dependencies.
// If logger is nil, the process default logger is used.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userService{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// UpdateUser implements UserService.UpdateUser. The self-ownership check
// runs before the account is even read, so a denied request touches
// nothing.
func (s *userService) UpdateUser(
	ctx context.Context,
	principalID, userID uuid.UUID,
	name, email, password string,
) (*domain.User, error) {
	if err := authz.AuthorizeOwner(principalID, userID); err != nil {
		s.logger.Debug("user update denied",
			"user_id", userID,
			"principal_id", principalID)
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Alter(name, email)

	if password != "" {
		user.Password = password
		if err := user.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
		hashed, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
		user.Password = ""
	} else if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Debug("user updated", "user_id", user.ID)
	return user, nil
}

// DeleteUser implements UserService.DeleteUser.
func (s *userService) DeleteUser(ctx context.Context, principalID, userID uuid.UUID) error {
	if err := authz.AuthorizeOwner(principalID, userID); err != nil {
		s.logger.Debug("user delete denied",
			"user_id", userID,
			"principal_id", principalID)
		return err
	}

	if err := s.userStore.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}
