package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	appControllers "github.com/TRK06/feedback-system/internal/app/controllers"
	appMigrations "github.com/TRK06/feedback-system/internal/app/migrations"
	appRepos "github.com/TRK06/feedback-system/internal/app/repositories"
	appRoutes "github.com/TRK06/feedback-system/internal/app/routes"
	appServices "github.com/TRK06/feedback-system/internal/app/services"
	"github.com/TRK06/feedback-system/internal/config"
	"github.com/TRK06/feedback-system/internal/db"
	appMiddleware "github.com/TRK06/feedback-system/internal/middleware"
	pkgAuth "github.com/TRK06/feedback-system/internal/pkg/auth"
	"github.com/TRK06/feedback-system/internal/pkg/helpers"
	"github.com/TRK06/feedback-system/internal/pkg/logger"
	"github.com/TRK06/feedback-system/internal/pkg/metrics"
	"github.com/TRK06/feedback-system/internal/seed"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DefaultConfigPath is used when no config path is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos      *appRepos.Repositories
	Services   *appServices.Services
	JWTService *pkgAuth.JWTService
	Metrics    *metrics.Metrics

	AuthController       *appControllers.AuthController
	FeedbackController   *appControllers.FeedbackController
	SuggestionController *appControllers.SuggestionController
	AdminController      *appControllers.AdminController
	HealthController     *appControllers.HealthController

	SessionGate    *appMiddleware.SessionGate
	AuthMiddleware *appMiddleware.AuthMiddleware
	SessionStore   sessions.Store

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the connection pool
func ConnectDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// SetupDatabase connects, applies pending migrations and seeds default data
// as configured.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	if cfg.Portal.MigrationsOn {
		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool).Up(ctx); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
	}

	if cfg.Portal.SeedDefaults {
		if err := seed.CreateDefaultData(ctx, appRepos.NewRepositories(database.Pool), lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// NewJWTService builds the admin token service from config
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
}

// NewSessionStore builds the signed cookie store carrying student sessions
func NewSessionStore(cfg *config.Config) sessions.Store {
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   helpers.Seconds(helpers.ParseDuration(cfg.Session.MaxAge, 8*time.Hour)),
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.JWTService = NewJWTService(cfg)
	deps.Metrics = metrics.New()
	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, cfg.Portal.Departments, deps.Metrics)

	deps.SessionGate = appMiddleware.NewSessionGate(deps.Services.AuthService)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.SessionStore = NewSessionStore(cfg)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService, logger.WithComponent("auth_controller"))
	deps.FeedbackController = appControllers.NewFeedbackController(
		deps.Services.FeedbackService,
		cfg.Portal.Departments,
		logger.WithComponent("feedback_controller"),
	)
	deps.SuggestionController = appControllers.NewSuggestionController(deps.Services.SuggestionService, logger.WithComponent("suggestion_controller"))
	deps.AdminController = appControllers.NewAdminController(
		deps.Services.AuthService,
		deps.Services.AdminService,
		logger.WithComponent("admin_controller"),
	)
	deps.HealthController = appControllers.NewHealthController(database, logger.WithComponent("health"))

	return deps
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
	router.Use(appMiddleware.Recovery(), appMiddleware.RequestLogger(logger.WithComponent("http"), deps.Metrics))

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Auth:       deps.AuthController,
		Feedback:   deps.FeedbackController,
		Suggestion: deps.SuggestionController,
		Admin:      deps.AdminController,
		Health:     deps.HealthController,
	}, appRoutes.RouterOptions{
		SessionName:    cfg.Session.CookieName,
		SessionStore:   deps.SessionStore,
		SessionGate:    deps.SessionGate,
		AuthMiddleware: deps.AuthMiddleware,
		Metrics:        deps.Metrics.Handler(logger.WithComponent("metrics")),
	})

	return router
}
