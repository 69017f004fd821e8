package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/repositories"
	"github.com/yigit/sims/internal/pkg/apperrors"
	"github.com/yigit/sims/internal/pkg/helpers"
	"github.com/yigit/sims/internal/pkg/logger"
	"github.com/yigit/sims/internal/pkg/validation"
)

// UserService manages the User Directory. Passwords are stored as handed in.
type UserService interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUsersByRole(ctx context.Context, role models.RoleType) ([]*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUser overwrites every field. An empty Password keeps the stored one.
	UpdateUser(ctx context.Context, user *models.User) error
	// UpdateProfile changes the caller-editable contact fields.
	UpdateProfile(ctx context.Context, userID int64, email string, phone *string) (*models.User, error)
	// DeleteUser reports false when there is no such user. A user owning a
	// student record is deleted together with it.
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

type userServiceImpl struct {
	userRepo    repositories.IUserRepository
	studentRepo repositories.IStudentRepository
}

func NewUserService(userRepo repositories.IUserRepository, studentRepo repositories.IStudentRepository) UserService {
	return &userServiceImpl{userRepo: userRepo, studentRepo: studentRepo}
}

func validateUser(user *models.User) error {
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)
	user.Phone = helpers.TrimmedPtr(user.Phone)

	if !user.Role.Valid() {
		return apperrors.NewValidationError("role", "role must be one of Admin, Student, Falculty")
	}
	if user.Status != models.StatusActive && user.Status != models.StatusInactive {
		return apperrors.NewValidationError("status", "status must be Active or Inactive")
	}
	return validation.First(
		validation.NewStringValidation("username", user.Username).
			WithMinLength(validation.UsernameMinLength).
			WithMaxLength(validation.UsernameMaxLength).
			WithPattern(validation.UsernamePattern).
			Validate(),
		validation.NewStringValidation("email", user.Email).
			Optional().
			WithPattern(validation.EmailPattern).
			Validate(),
	)
}

func (s *userServiceImpl) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return apperrors.NewValidationError("user", "user is required")
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}
	if err := validateUser(user); err != nil {
		return err
	}
	if err := validation.NewStringValidation("password", user.Password).Validate(); err != nil {
		return err
	}

	exists, err := s.userRepo.UsernameExists(ctx, user.Username)
	if err != nil {
		return fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return apperrors.NewConflictError("username", "username already exists")
	}

	if user.Email != "" {
		exists, err := s.userRepo.EmailExists(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("error checking email: %w", err)
		}
		if exists {
			return apperrors.NewConflictError("email", "email already exists")
		}
	}

	return s.userRepo.Create(ctx, user)
}

func (s *userServiceImpl) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *userServiceImpl) GetUsersByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role", "unknown role")
	}
	return s.userRepo.GetByRole(ctx, role)
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("id", "user id must be positive")
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
}

func (s *userServiceImpl) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// ensureUnique fails with a conflict when username or a non-empty email belongs
// to a user other than selfID.
func (s *userServiceImpl) ensureUnique(ctx context.Context, selfID int64, username, email string) error {
	if username != "" {
		other, err := s.userRepo.GetByUsername(ctx, username)
		switch {
		case err == nil && other.ID != selfID:
			return apperrors.NewConflictError("username", "username already exists")
		case err != nil && !errors.Is(err, apperrors.ErrResourceNotFound):
			return fmt.Errorf("error checking username: %w", err)
		}
	}
	if email != "" {
		other, err := s.userRepo.GetByEmail(ctx, email)
		switch {
		case err == nil && other.ID != selfID:
			return apperrors.NewConflictError("email", "email already exists")
		case err != nil && !errors.Is(err, apperrors.ErrResourceNotFound):
			return fmt.Errorf("error checking email: %w", err)
		}
	}
	return nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, user *models.User) error {
	if user == nil || user.ID <= 0 {
		return apperrors.NewValidationError("id", "user id must be positive")
	}

	existing, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if user.Status == "" {
		user.Status = existing.Status
	}
	if err := validateUser(user); err != nil {
		return err
	}
	if err := s.ensureUnique(ctx, user.ID, user.Username, user.Email); err != nil {
		return err
	}
	if user.Password == "" {
		user.Password = existing.Password
	}
	user.CreatedAt = existing.CreatedAt

	return s.userRepo.Update(ctx, user)
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, email string, phone *string) (*models.User, error) {
	if userID <= 0 {
		return nil, apperrors.NewValidationError("id", "user id must be positive")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if err := validation.NewStringValidation("email", email).
		Optional().
		WithPattern(validation.EmailPattern).
		Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, userID, "", email); err != nil {
		return nil, err
	}

	user.Email = email
	user.Phone = helpers.TrimmedPtr(phone)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	student, err := s.studentRepo.GetByUserID(ctx, id)
	switch {
	case err == nil:
		logger.Info().Int64("userID", id).Int64("studentID", student.ID).Msg("Deleting user together with owned student")
		return s.studentRepo.DeleteWithUser(ctx, student.ID)
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return false, err
	}

	return s.userRepo.Delete(ctx, id)
}
