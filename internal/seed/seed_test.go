package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sims/internal/app/models"
	"github.com/yigit/sims/internal/config"
	"github.com/yigit/sims/internal/mocks"
	"github.com/yigit/sims/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func seedConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Seed.AdminUsername = "admin"
	cfg.Seed.AdminPassword = "changeme"
	cfg.Seed.AdminEmail = "admin@sims.local"
	return cfg
}

func TestCreateDefaultData_CreatesAdmin(t *testing.T) {
	repo := new(mocks.UserRepository)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	repo.On("UsernameExists", mock.Anything, "admin").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "admin" &&
			u.Role == models.RoleAdmin &&
			u.Status == models.StatusActive &&
			hasher.Check(u.Password, "changeme")
	})).Return(nil)

	err := CreateDefaultData(context.Background(), seedConfig(), repo, hasher, zerolog.Nop())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateDefaultData_ExistingAdminUntouched(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("UsernameExists", mock.Anything, "admin").Return(true, nil)

	err := CreateDefaultData(context.Background(), seedConfig(), repo, auth.NewPasswordHasher(bcrypt.MinCost), zerolog.Nop())

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateDefaultData_NoPasswordConfigured(t *testing.T) {
	repo := new(mocks.UserRepository)
	cfg := seedConfig()
	cfg.Seed.AdminPassword = ""

	err := CreateDefaultData(context.Background(), cfg, repo, auth.NewPasswordHasher(bcrypt.MinCost), zerolog.Nop())

	require.NoError(t, err)
	repo.AssertNotCalled(t, "UsernameExists", mock.Anything, mock.Anything)
}

func TestCreateDefaultData_LookupFails(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("UsernameExists", mock.Anything, "admin").Return(false, errors.New("db down"))

	err := CreateDefaultData(context.Background(), seedConfig(), repo, auth.NewPasswordHasher(bcrypt.MinCost), zerolog.Nop())

	assert.ErrorContains(t, err, "db down")
}
