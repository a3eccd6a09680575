package main

import (
	"context"
	"log"
	"math"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumierestudio/salon-api/internal/application/service"
	"github.com/lumierestudio/salon-api/internal/config"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/infrastructure/database"
	"github.com/lumierestudio/salon-api/internal/infrastructure/repository"
	"github.com/lumierestudio/salon-api/internal/presentation/http/handler"
	"github.com/lumierestudio/salon-api/internal/presentation/http/routes"
	"github.com/lumierestudio/salon-api/pkg/email"
	"github.com/lumierestudio/salon-api/pkg/oauth"
	"github.com/lumierestudio/salon-api/pkg/printer"
	"github.com/lumierestudio/salon-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Salon timezone drives closure day bounds and stats periods
	location, err := time.LoadLocation(cfg.Salon.Timezone)
	if err != nil {
		log.Printf("Warning: invalid timezone %q, falling back to local: %v", cfg.Salon.Timezone, err)
		location = time.Local
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	linkRepo := repository.NewTransactionClientRepository(db)
	closureRepo := repository.NewCashClosureRepository(db)
	clientRepo := repository.NewClientRepository(db)
	historyRepo := repository.NewClientHistoryRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	giftCardRepo := repository.NewGiftCardRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Sweep expired idempotency keys hourly so the table stays small
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: failed to sweep idempotency keys: %v", err)
			}
		}
	}()

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService)
	transactionService := service.NewTransactionService(transactionRepo, linkRepo, clientRepo, historyRepo, auditRepo, cfg.Salon.VATRate)
	closureService := service.NewCashClosureService(
		closureRepo,
		transactionRepo,
		auditRepo,
		userRepo,
		settingsRepo,
		emailService,
		location,
		int64(math.Round(cfg.Salon.DefaultOpeningFloat*100)),
	)
	statsService := service.NewStatsService(analyticsRepo, location)
	clientService := service.NewClientService(clientRepo, historyRepo, cfg.Salon.MinorAgeThreshold)
	catalogService := service.NewCatalogService(serviceRepo, productRepo, categoryRepo)
	giftCardService := service.NewGiftCardService(giftCardRepo, transactionService, auditRepo, cfg.Salon.GiftCardValidityMonths)
	appointmentService := service.NewAppointmentService(appointmentRepo, clientRepo, serviceRepo, location)
	settingsService := service.NewSettingsService(settingsRepo)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, transactionRepo, closureRepo, entity.ReceiptHeader{
		SalonName: cfg.Salon.Name,
		Address:   cfg.Salon.Address,
		Phone:     cfg.Salon.Phone,
		TaxID:     cfg.Salon.TaxID,
	}, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService, googleOAuthService),
		Transaction: handler.NewTransactionHandler(transactionService),
		CashClosure: handler.NewCashClosureHandler(closureService),
		Stats:       handler.NewStatsHandler(statsService),
		Client:      handler.NewClientHandler(clientService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		GiftCard:    handler.NewGiftCardHandler(giftCardService),
		Appointment: handler.NewAppointmentHandler(appointmentService),
		Settings:    handler.NewSettingsHandler(settingsService),
		User:        handler.NewUserHandler(userService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
