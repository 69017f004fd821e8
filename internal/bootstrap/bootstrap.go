package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/sims/internal/app/controllers"
	appMigrations "github.com/yigit/sims/internal/app/migrations"
	appRepos "github.com/yigit/sims/internal/app/repositories"
	appRoutes "github.com/yigit/sims/internal/app/routes"
	appServices "github.com/yigit/sims/internal/app/services"
	"github.com/yigit/sims/internal/config"
	"github.com/yigit/sims/internal/db"
	appMiddleware "github.com/yigit/sims/internal/middleware"
	pkgAuth "github.com/yigit/sims/internal/pkg/auth"
	"github.com/yigit/sims/internal/pkg/helpers"
	"github.com/yigit/sims/internal/pkg/logger"
	"github.com/yigit/sims/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	DB             *db.PostgresDB
	Redis          *redis.Client // nil when token revocation is disabled
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Hasher         *pkgAuth.PasswordHasher
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("SIMS_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL and applies pending migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// SetupRedis returns nil when revocation is disabled in the configuration.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		lgr.Info().Msg("Redis disabled, logged out tokens stay valid until they expire")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return client, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, redisClient *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{DB: database, Redis: redisClient, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.Hasher = pkgAuth.NewPasswordHasher(pkgAuth.DefaultBcryptCost)

	// Keep the interface nil rather than holding a nil *RedisRevocationStore.
	var revocation pkgAuth.RevocationStore
	if redisClient != nil {
		revocation = pkgAuth.NewRedisRevocationStore(redisClient)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, cfg, deps.Repos.UserRepository, deps.Hasher, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.Hasher, revocation)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, revocation)

	svc := deps.Services
	deps.Controllers = &appRoutes.Controllers{
		Auth:        appControllers.NewAuthController(svc.AuthService, svc.UserService, svc.ActivityLogService, lgr),
		Profile:     appControllers.NewProfileController(svc.UserService, svc.AuthService, svc.ActivityLogService),
		User:        appControllers.NewUserController(svc.UserService, svc.AuthService, svc.ActivityLogService),
		Student:     appControllers.NewStudentController(svc.StudentService, svc.AuthService, svc.ActivityLogService),
		Course:      appControllers.NewCourseController(svc.CourseService, svc.ActivityLogService),
		Enrollment:  appControllers.NewEnrollmentController(svc.CourseService, svc.ActivityLogService),
		ActivityLog: appControllers.NewActivityLogController(svc.ActivityLogService),
		Dashboard:   appControllers.NewDashboardController(svc.DashboardService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.EqualFold(cfg.Server.Mode, "production") {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), appMiddleware.Recovery())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
