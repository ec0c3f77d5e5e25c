package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/travel-order-service/internal/auth"
	"github.com/spec-kit/travel-order-service/internal/domain"
	"github.com/spec-kit/travel-order-service/internal/repository"
	apperrors "github.com/spec-kit/travel-order-service/pkg/util"
)

const msgEmailTaken = "The email has already been taken."

// UserService manages user accounts.
type UserService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	logger *zap.Logger
}

// UserCreateInput describes user registration payload.
type UserCreateInput struct {
	Name     string
	Email    string
	Password string
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, hasher: hasher, logger: logger}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Create hashes the password and stores the account.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapUserWriteError(err)
	}
	s.logger.Info("user created", zap.Int64("user_id", user.ID))
	return user, nil
}

// Get returns a single user.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update applies a partial update, re-hashing the password when provided.
func (s *UserService) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapUserWriteError(err)
	}
	return user, nil
}

// Delete removes a user together with their orders and notifications.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

// mapUserWriteError turns a unique-index race into the same 422 the
// validator reports up front.
func mapUserWriteError(err error) error {
	if errors.Is(err, repository.ErrEmailTaken) {
		return apperrors.NewValidationError(map[string][]string{"email": {msgEmailTaken}})
	}
	return err
}
