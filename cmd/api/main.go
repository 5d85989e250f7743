package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/remodela-api/internal/application/service"
	"github.com/sangkips/remodela-api/internal/config"
	domainRepo "github.com/sangkips/remodela-api/internal/domain/repository"
	"github.com/sangkips/remodela-api/internal/infrastructure/cache"
	"github.com/sangkips/remodela-api/internal/infrastructure/database"
	"github.com/sangkips/remodela-api/internal/infrastructure/logger"
	"github.com/sangkips/remodela-api/internal/infrastructure/repository"
	"github.com/sangkips/remodela-api/internal/infrastructure/storage"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/request"
	"github.com/sangkips/remodela-api/internal/presentation/http/handler"
	"github.com/sangkips/remodela-api/internal/presentation/http/routes"
	"github.com/sangkips/remodela-api/pkg/email"
	"github.com/sangkips/remodela-api/pkg/oauth"
	"github.com/sangkips/remodela-api/pkg/pdf"
	"github.com/sangkips/remodela-api/pkg/printer"
	"github.com/sangkips/remodela-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl := logger.New(cfg.App.Env, cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = zl.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := request.RegisterValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.Open(&cfg.Database, zl, logger.GormLevel(cfg.Log.GormMode))
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := database.SeedAdmin(ctx, db, cfg.Admin, zl); err != nil {
		zl.Warn("failed to seed admin", zap.Error(err))
	}

	// Initialize repositories
	transactor := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	var idempotencyRepo domainRepo.IdempotencyRepository = repository.NewIdempotencyRepository(db)
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zl.Warn("redis unavailable, keeping idempotency keys in the database", zap.Error(err))
		} else {
			store := cache.NewRedisIdempotencyStore(client, "")
			defer func() { _ = store.Close() }()
			idempotencyRepo = store
		}
	}

	var imageStore storage.ImageStore
	s3Store, err := storage.NewS3ImageStore(ctx, cfg.Storage, zl)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		zl.Info("image uploads disabled, no bucket configured")
	case err != nil:
		zl.Warn("failed to initialize image storage", zap.Error(err))
	default:
		imageStore = s3Store
	}

	company := pdf.Company{
		Name:    cfg.Company.Name,
		LegalID: cfg.Company.LegalID,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
		Address: cfg.Company.Address,
		Website: cfg.Company.Website,
		LogoURL: cfg.Company.LogoURL,
	}
	composer := pdf.NewComposer(company, pdf.NewHTTPImageFetcher(cfg.Documents.ImageFetchTimeout), zl)
	sender := email.NewResendSender(email.Config{
		APIKey:    cfg.Email.ResendAPIKey,
		FromName:  cfg.Email.FromName,
		FromEmail: cfg.Email.FromEmail,
		ReplyTo:   cfg.Email.ReplyTo,
	}, zl)

	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
		StateSecret:        cfg.JWT.Secret,
	})

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	calendar := service.NewCalendar(cfg.App.Location(), time.Now)

	// Initialize services
	quoteService := service.NewQuoteService(transactor, quoteRepo, receiptRepo, sequenceRepo, calendar, cfg.Documents.QuoteValidityDays, zl)
	receiptService := service.NewReceiptService(transactor, quoteRepo, receiptRepo, sequenceRepo, calendar, zl)
	documentService := service.NewDocumentService(quoteService, receiptService, composer, sender, company, zl)
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService, calendar, zl)
	productService := service.NewProductService(productRepo, zl)
	serviceService := service.NewServiceService(serviceRepo, zl)
	projectService := service.NewProjectService(projectRepo, zl)
	uploadService := service.NewUploadService(imageStore, zl)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		zl.Warn("failed to initialize printer", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, receiptService, company, zl)

	sweeper := service.NewExpirySweeper(quoteRepo, idempotencyRepo, calendar, cfg.Documents.ExpirySweepInterval, zl)
	go sweeper.Run(ctx)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService, cfg.OAuth.FrontendSuccessURL, cfg.OAuth.FrontendErrorURL),
		Quote:   handler.NewQuoteHandler(quoteService, documentService),
		Receipt: handler.NewReceiptHandler(receiptService, documentService),
		Product: handler.NewProductHandler(productService),
		Service: handler.NewServiceHandler(serviceService),
		Project: handler.NewProjectHandler(projectService),
		Upload:  handler.NewUploadHandler(uploadService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Log:             zl,
		Done:            ctx.Done(),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
