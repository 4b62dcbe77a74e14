package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/healthbridge/records-api/internal/email"
	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/repository"
	"github.com/healthbridge/records-api/pkg/apperror"
	"github.com/healthbridge/records-api/pkg/auth"
	"github.com/healthbridge/records-api/pkg/security"
)

type Service struct {
	users    repository.UserRepository
	tokens   repository.TokenRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	emailSvc email.Service
}

func NewService(users repository.UserRepository, tokens repository.TokenRepository,
	jwtSvc auth.JWTService, hasher security.PasswordHasher, emailSvc email.Service) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		emailSvc: emailSvc,
	}
}

// MinPasswordLen is the shortest password Register accepts.
const MinPasswordLen = 8

// Register creates a user account. Profiles are created separately, after
// registration, through the identity directory.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if len(req.Password) < MinPasswordLen {
		return nil, apperror.Validation(fmt.Sprintf("password must be at least %d characters", MinPasswordLen))
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, apperror.Validation("username already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Best effort: registration succeeds even if the mail bounces.
	if err := s.emailSvc.SendWelcome(user.Email, user.Username); err != nil {
		log.Warn().Err(err).Str("username", user.Username).Msg("failed to send welcome email")
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	token, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.TokenResponse{AccessToken: token}, nil
}

// Logout denylists the token until its natural expiry.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return apperror.Unauthorized("invalid token")
	}
	if err := s.tokens.Deny(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// ValidateToken verifies the signature and checks the revocation denylist.
func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperror.Unauthorized("invalid token")
	}

	denied, err := s.tokens.IsDenied(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if denied {
		return nil, apperror.Unauthorized("token has been revoked")
	}
	return claims, nil
}
