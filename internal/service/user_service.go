package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cookfarm/pantry-service/internal/auth"
	"github.com/cookfarm/pantry-service/internal/config"
	"github.com/cookfarm/pantry-service/internal/domain"
	"github.com/cookfarm/pantry-service/internal/repository"
	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

const invalidCredentials = "invalid email or password"

// UserService coordinates registration, login and logout.
type UserService struct {
	users       repository.UserRepository
	revocations auth.Revocations
	tokenMgr    *auth.TokenManager
	bcryptCost  int
}

// UserDependencies encapsulates collaborators for the user service.
type UserDependencies struct {
	UserRepo    repository.UserRepository
	Revocations auth.Revocations
}

// RegisterInput describes a registration candidate.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult pairs an account with a freshly issued access token.
type AuthResult struct {
	User  *domain.User
	Token auth.IssuedToken
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, deps UserDependencies) *UserService {
	return &UserService{
		users:       deps.UserRepo,
		revocations: deps.Revocations,
		tokenMgr:    auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost:  cfg.BcryptCost,
	}
}

// Register creates a new account. Emails are compared exactly.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, emailTaken(input.Email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	if len(input.Password) > auth.MaxPasswordBytes {
		return nil, passwordTooLong()
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, passwordTooLong()
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, emailTaken(input.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords fail identically.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	return s.issue(user)
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *UserService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := s.revocations.Revoke(ctx, claims.ID, s.tokenMgr.Remaining(claims)); err != nil {
		return err
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *UserService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *UserService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func emailTaken(email string) error {
	return apperrors.NewConflict("email already in use", map[string]any{"email": email})
}

func passwordTooLong() error {
	return apperrors.NewValidationError("password too long", map[string]any{
		"password": fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes),
	})
}
