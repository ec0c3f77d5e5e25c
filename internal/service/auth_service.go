package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/travel-order-service/internal/auth"
	"github.com/spec-kit/travel-order-service/internal/config"
	"github.com/spec-kit/travel-order-service/internal/domain"
	"github.com/spec-kit/travel-order-service/internal/repository"
	apperrors "github.com/spec-kit/travel-order-service/pkg/util"
)

// Authentication failure messages.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgAdminRequired      = "Access denied. Admin privileges required."
)

// AuthService verifies credentials and issues access tokens.
type AuthService struct {
	users    repository.UserRepository
	hasher   auth.PasswordHasher
	tokenMgr *auth.TokenManager
	registry auth.TokenRegistry
	policy   auth.AdminPolicy
	logger   *zap.Logger
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Registry auth.TokenRegistry
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	s := &AuthService{
		users:    deps.UserRepo,
		hasher:   auth.NewPasswordHasher(cfg.BcryptCost),
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		registry: deps.Registry,
		policy:   auth.NewAdminPolicy(cfg.AdminName),
		logger:   deps.Logger,
	}
	if s.registry == nil {
		s.registry = auth.NewPermissiveRegistry()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Registry exposes the token registry for middleware wiring.
func (s *AuthService) Registry() auth.TokenRegistry {
	return s.registry
}

// Hasher exposes the password hasher shared with the user service.
func (s *AuthService) Hasher() auth.PasswordHasher {
	return s.hasher
}

// VerifyCredentials returns the account matching email and password. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
		}
		return nil, err
	}
	if !s.hasher.Matches(user.PasswordHash, password) {
		return nil, apperrors.NewUnauthorized(MsgInvalidCredentials)
	}
	return user, nil
}

// VerifyAdmin checks credentials of the administrative account and issues a
// bearer token for it.
func (s *AuthService) VerifyAdmin(ctx context.Context, email, password string) (domain.Token, error) {
	user, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return domain.Token{}, err
	}
	if !s.policy.Allows(user) {
		return domain.Token{}, apperrors.NewUnauthorized(MsgAdminRequired)
	}

	token, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return domain.Token{}, err
	}
	if err := s.registry.Register(ctx, token.ID, user.ID, s.tokenMgr.TTL()); err != nil {
		return domain.Token{}, err
	}
	s.logger.Info("access token issued", zap.Int64("user_id", user.ID), zap.Time("expires_at", token.ExpiresAt))
	return token, nil
}

// RevokeToken invalidates an issued token before it expires. With the
// permissive registry this is a no-op and the token stays valid until expiry.
func (s *AuthService) RevokeToken(ctx context.Context, tokenID string) error {
	if err := s.registry.Revoke(ctx, tokenID); err != nil {
		return err
	}
	s.logger.Info("access token revoked", zap.String("token_id", tokenID))
	return nil
}

// EnsureAdmin creates the administrative account when no user holds email.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	admin := &domain.User{Name: s.policy.Name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return false, nil
		}
		return false, err
	}
	s.logger.Info("admin account seeded", zap.Int64("user_id", admin.ID))
	return true, nil
}
