package main

import (
	"net/http"
	"os"
	"time"

	"jobtrackr/api/handler"
	apiMiddleware "jobtrackr/api/middleware"
	"jobtrackr/api/routes"
	"jobtrackr/config"
	"jobtrackr/internal/repository"
	"jobtrackr/internal/service"
	"jobtrackr/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	db := config.ConnectionDb(cfg.DatabaseURL)
	if err := config.Migrate(db); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	validate := validator.New()

	jwtManager := utils.JWTManager{
		Secret:          []byte(cfg.JWTSecret),
		Issuer:          cfg.JWTIssuer,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}

	userRepo := repository.NewUserRepository(db)
	revokedRepo := repository.NewRevokedTokenRepository(db)
	resetTokenRepo := repository.NewResetTokenRepository(db)
	settingRepo := repository.NewEmailSettingRepository(db)
	logRepo := repository.NewEmailLogRepository(db)
	jobRepo := repository.NewJobRepository(db)
	learningRepo := repository.NewLearningRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	clock := service.RealClock{}
	passwordHasher := service.BcryptPasswordHasher{}
	resetTokens := service.NewResetTokens(resetTokenRepo, clock, cfg.ResetTokenTTL)
	mailer := service.NewMailer(settingRepo, logRepo, clock, logger)

	authService := service.NewAuthService(
		userRepo,
		revokedRepo,
		resetTokens,
		mailer,
		passwordHasher,
		jwtManager,
		jwtManager,
		clock,
		logger,
		service.AuthConfig{
			AccessTokenTTL:  cfg.AccessTokenTTL,
			RefreshTokenTTL: cfg.RefreshTokenTTL,
			ResetTokenTTL:   cfg.ResetTokenTTL,
			ResetURLBase:    cfg.ResetURLBase,
		},
	)

	authHandler := handler.NewAuthHandler(authService, validate)
	userHandler := handler.NewUserHandler(userRepo, passwordHasher, validate)
	jobHandler := handler.NewJobHandler(jobRepo, validate)
	learningHandler := handler.NewLearningHandler(learningRepo, validate)
	adminHandler := &handler.AdminHandler{
		Users:          userRepo,
		Jobs:           jobRepo,
		Admin:          adminRepo,
		Settings:       settingRepo,
		Logs:           logRepo,
		Mailer:         mailer,
		Validate:       validate,
		OperationToken: cfg.SecretOperationToken,
	}

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager}
	router := routes.NewRouter(app, authHandler, userHandler, jobHandler, learningHandler, adminHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
