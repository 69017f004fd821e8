package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/app/repositories"
	"github.com/yigit/sims/internal/config"
	"github.com/yigit/sims/internal/pkg/auth"
)

// CreateDefaultData makes sure the configured administrator account exists so a
// fresh database can be logged into. An existing account is left untouched.
func CreateDefaultData(
	ctx context.Context,
	cfg *config.Config,
	userRepo repositories.IUserRepository,
	hasher *auth.PasswordHasher,
	lgr zerolog.Logger,
) error {
	username := cfg.Seed.AdminUsername
	if username == "" || cfg.Seed.AdminPassword == "" {
		lgr.Info().Msg("No seed administrator configured, skipping default data")
		return nil
	}

	exists, err := userRepo.UsernameExists(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check seed administrator: %w", err)
	}
	if exists {
		lgr.Debug().Str("username", username).Msg("Seed administrator already present")
		return nil
	}

	hashed, err := hasher.Hash(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed administrator password: %w", err)
	}

	admin := &models.User{
		Username: username,
		Password: hashed,
		Email:    cfg.Seed.AdminEmail,
		Role:     models.RoleAdmin,
		Status:   models.StatusActive,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create seed administrator: %w", err)
	}

	lgr.Info().Str("username", username).Int64("userId", admin.ID).Msg("Seed administrator created")
	return nil
}
