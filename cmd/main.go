package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legalplatform/api/handler"
	apiMiddleware "legalplatform/api/middleware"
	"legalplatform/api/routes"
	"legalplatform/config"
	"legalplatform/internal/metrics"
	"legalplatform/internal/repository"
	"legalplatform/internal/service"
	"legalplatform/internal/storage"
	"legalplatform/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("level", cfg.LogLevel).Warn("unknown log level, keeping info")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectionDb(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database")
	}
	if cfg.MigrateOnStart {
		if err := config.Migrate(ctx, db); err != nil {
			logger.WithError(err).Fatal("migrations")
		}
		logger.Info("migrations applied")
	}

	validate := validator.New()
	recorder := metrics.New()

	accessManager := utils.JWTManager{
		Secret:         []byte(cfg.Auth.JWTSecret),
		Issuer:         cfg.Auth.JWTIssuer,
		Audience:       cfg.Auth.JWTAudience,
		AccessTokenTTL: cfg.Auth.JWTTTL,
	}
	accessIssuer := service.JWTAccessIssuer{Manager: &accessManager}

	payloadCipher, err := utils.NewCipher(cfg.Crypto.AESKey)
	if err != nil {
		logger.WithError(err).Fatal("cipher")
	}

	var notifier service.Notifier
	if cfg.Mail.ResendAPIKey != "" {
		sender := service.NewResendEmailSender(cfg.Mail.ResendAPIKey, cfg.Mail.From)
		sender.OtpMinutes = int(cfg.Auth.OTPTTL.Minutes())
		notifier = sender
	} else {
		logger.Warn("RESEND_API_KEY not set, emails are disabled")
	}

	var blobs service.BlobStore
	if s3Config := storageConfig(cfg.Storage); s3Config.Enabled() {
		store, err := storage.NewS3BlobStore(ctx, s3Config)
		if err != nil {
			logger.WithError(err).Fatal("object storage")
		}
		blobs = store
		logger.WithField("bucket", s3Config.Bucket).Info("documents stored in object storage")
	}

	var assistant service.Assistant
	if cfg.Assistant.BaseURL != "" {
		assistant = service.NewHTTPAssistant(cfg.Assistant.BaseURL)
	}

	accountRepo := repository.NewAccountRepository(db)
	lawyerRepo := repository.NewLawyerProfileRepository(db)
	codeRepo := repository.NewOneTimeCodeRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	chatRepo := repository.NewChatRepository(db)
	txManager := repository.NewTxManager(db)

	identityService := service.NewIdentityService(
		accountRepo,
		lawyerRepo,
		codeRepo,
		auditRepo,
		txManager,
		notifier,
		service.BcryptPasswordHasher{Cost: cfg.Auth.BcryptCost},
		accessIssuer,
		utils.NewOTPGenerator(cfg.Auth.OTPTTL),
		service.RealClock{},
		recorder,
		logger,
		service.IdentityConfig{AccessTokenTTL: cfg.Auth.JWTTTL},
	)
	lawyerService := service.NewLawyerService(lawyerRepo, auditRepo, logger)
	contentService := service.NewContentService(
		documentRepo,
		chatRepo,
		payloadCipher,
		blobs,
		assistant,
		service.RealClock{},
		recorder,
		logger,
	)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status":  v.Status,
				"method":  v.Method,
				"uri":     v.URI,
				"ip":      v.RemoteIP,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	router := routes.NewRouter(
		app,
		handler.NewIdentityHandler(identityService, validate),
		handler.NewLawyerHandler(lawyerService, validate),
		handler.NewAdminHandler(identityService, lawyerService, validate),
		handler.NewDocumentHandler(contentService, cfg.MaxUploadBytes),
		handler.NewChatHandler(contentService, validate, cfg.MaxUploadBytes),
		apiMiddleware.AuthMiddleware{JWT: &accessManager},
		recorder,
	)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("server started")
		if err := app.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func storageConfig(cfg config.StorageConfig) storage.S3Config {
	return storage.S3Config{
		Bucket:          cfg.Bucket,
		Region:          cfg.Region,
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
	}
}
