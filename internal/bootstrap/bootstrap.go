package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/avdeyev/eduboard/internal/app/controllers"
	appMigrations "github.com/avdeyev/eduboard/internal/app/migrations"
	appRepos "github.com/avdeyev/eduboard/internal/app/repositories"
	appRoutes "github.com/avdeyev/eduboard/internal/app/routes"
	appServices "github.com/avdeyev/eduboard/internal/app/services"
	"github.com/avdeyev/eduboard/internal/config"
	"github.com/avdeyev/eduboard/internal/db"
	appMiddleware "github.com/avdeyev/eduboard/internal/middleware"
	pkgAuth "github.com/avdeyev/eduboard/internal/pkg/auth"
	"github.com/avdeyev/eduboard/internal/pkg/helpers"
	"github.com/avdeyev/eduboard/internal/pkg/logger"
	"github.com/avdeyev/eduboard/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	AccessService        *appServices.AccessService
	CurriculumService    *appServices.CurriculumService
	ProgressService      *appServices.ProgressService
	OutstandingService   *appServices.OutstandingService
	StudentRecordService *appServices.StudentRecordService
	DashboardService     *appServices.DashboardService

	AuthController          *appControllers.AuthController
	DashboardController     *appControllers.DashboardController
	CurriculumController    *appControllers.CurriculumController
	StudentRecordController *appControllers.StudentRecordController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		lgr,
	)

	deps.AccessService = appServices.NewAccessService(
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
		deps.Repos.CohortRepository,
		deps.Repos.ProgramRepository,
		cfg.Dashboard,
		lgr,
	)

	deps.CurriculumService = appServices.NewCurriculumService(
		deps.Repos.ProgramRepository,
		deps.Repos.SubjectRepository,
		deps.Repos.InstitutionRepository,
		deps.Repos.CourseRepository,
		deps.Repos.CohortRepository,
		cfg.Dashboard,
		lgr,
	)

	deps.ProgressService = appServices.NewProgressService(
		deps.Repos.ProgramRepository,
		deps.Repos.SubjectRepository,
		deps.Repos.CourseRepository,
		deps.Repos.GradebookRepository,
		deps.Repos.SubmissionRepository,
		cfg.Dashboard,
		lgr,
	)

	deps.OutstandingService = appServices.NewOutstandingService(
		deps.Repos.SubmissionRepository,
		deps.Repos.QuizRepository,
		deps.Repos.ForumRepository,
		cfg.Dashboard,
		lgr,
	)

	deps.StudentRecordService = appServices.NewStudentRecordService(
		deps.Repos.ExternalCreditRepository,
		deps.Repos.StudentInfoRepository,
		deps.Repos.SubjectRepository,
		deps.Repos.UserRepository,
		lgr,
	)

	deps.DashboardService = appServices.NewDashboardService(
		deps.AccessService,
		deps.ProgressService,
		deps.OutstandingService,
		deps.CurriculumService,
		deps.Repos.CategoryRepository,
		deps.Repos.CourseRepository,
		deps.Repos.ExternalCreditRepository,
		deps.Repos.StudentInfoRepository,
		deps.Repos.SubjectRepository,
		cfg.Dashboard,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.DashboardController = appControllers.NewDashboardController(
		deps.DashboardService,
		deps.AccessService,
		deps.CurriculumService,
		deps.OutstandingService,
		lgr,
	)
	deps.CurriculumController = appControllers.NewCurriculumController(
		deps.CurriculumService,
		deps.AccessService,
		lgr,
	)
	deps.StudentRecordController = appControllers.NewStudentRecordController(
		deps.StudentRecordService,
		deps.AccessService,
		lgr,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DashboardController,
		deps.CurriculumController,
		deps.StudentRecordController,
		deps.AuthMiddleware,
	)

	return router
}
