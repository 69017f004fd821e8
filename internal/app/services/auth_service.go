package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/repositories"
	"github.com/yigit/sims/internal/pkg/apperrors"
	"github.com/yigit/sims/internal/pkg/auth"
	"github.com/yigit/sims/internal/pkg/logger"
	"github.com/yigit/sims/internal/pkg/validation"
)

// PasswordMinLength applies to passwords chosen through the API.
const PasswordMinLength = 6

// LoginResult is a successful login.
type LoginResult struct {
	User  *models.User
	Token *auth.IssuedToken
}

// AuthService authenticates users and manages their credentials. Credentials are
// bcrypt-hashed here, before they are stored in the User Directory.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	HashPassword(password string) (string, error)
}

type authServiceImpl struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	hasher     *auth.PasswordHasher
	revocation auth.RevocationStore
}

// NewAuthService builds an AuthService. revocation may be nil, in which case
// logout only ends the client session.
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	hasher *auth.PasswordHasher,
	revocation auth.RevocationStore,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		hasher:     hasher,
		revocation: revocation,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Check(user.Password, password) {
		logger.Warn().Str("username", username).Msg("Login failed: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, apperrors.ErrAccountInactive
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	logger.Info().Int64("userID", user.ID).Str("username", username).Msg("User logged in")
	return &LoginResult{User: user, Token: token}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.revocation == nil || tokenID == "" {
		return nil
	}
	return s.revocation.Revoke(ctx, tokenID, expiresAt)
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if err := validation.NewStringValidation("newPassword", newPassword).
		WithMinLength(PasswordMinLength).
		Validate(); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Check(user.Password, currentPassword) {
		return apperrors.NewValidationError("currentPassword", "current password is incorrect")
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

func (s *authServiceImpl) HashPassword(password string) (string, error) {
	if err := validation.NewStringValidation("password", password).
		WithMinLength(PasswordMinLength).
		Validate(); err != nil {
		return "", err
	}
	return s.hasher.Hash(password)
}
