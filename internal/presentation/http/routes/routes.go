package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumierestudio/salon-api/internal/config"
	domainRepo "github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/internal/presentation/http/handler"
	"github.com/lumierestudio/salon-api/internal/presentation/http/middleware"
	"github.com/lumierestudio/salon-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Transaction *handler.TransactionHandler
	CashClosure *handler.CashClosureHandler
	Stats       *handler.StatsHandler
	Client      *handler.ClientHandler
	Catalog     *handler.CatalogHandler
	GiftCard    *handler.GiftCardHandler
	Appointment *handler.AppointmentHandler
	Settings    *handler.SettingsHandler
	User        *handler.UserHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	// Transactions (the sales ledger)
	registerTransactionRoutes(protected, h, deps)

	// Cash closures
	registerClosureRoutes(protected, h)

	// Statistics
	registerStatsRoutes(protected, h)

	// Clients
	registerClientRoutes(protected, h)

	// Catalog (services, products, categories)
	registerCatalogRoutes(protected, h)

	// Gift cards
	registerGiftCardRoutes(protected, h, deps)

	// Appointments
	registerAppointmentRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Roles (Admin)
	registerRoleRoutes(protected, h)

	// Permissions (Admin)
	registerPermissionRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	transactions := protected.Group("/transactions")
	transactions.Use(middleware.RequirePermission("manage-transactions"))
	{
		transactions.GET("", h.Transaction.List)
		// Ledger rows are append-only, so creation uses idempotency
		// middleware to prevent duplicates from double-taps at the till
		transactions.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Transaction.Create)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.POST("/:id/refund", h.Transaction.Refund)
		transactions.PUT("/:id/notes", h.Transaction.UpdateNotes)
		transactions.PUT("/:id/photo", h.Transaction.AttachPhoto)
		transactions.POST("/:id/rebuild-history", h.Transaction.RebuildHistory)
	}
}

func registerClosureRoutes(protected *gin.RouterGroup, h *Handlers) {
	closures := protected.Group("/closures")
	closures.Use(middleware.RequirePermission("manage-closures"))
	{
		closures.GET("", h.CashClosure.List)
		closures.POST("", h.CashClosure.Create)
		closures.GET("/preview", h.CashClosure.Preview)
		closures.GET("/date/:date", h.CashClosure.GetByDate)
		closures.GET("/:id", h.CashClosure.Get)
	}
}

func registerStatsRoutes(protected *gin.RouterGroup, h *Handlers) {
	stats := protected.Group("/stats")
	stats.Use(middleware.RequirePermission("view-stats"))
	{
		stats.GET("", h.Stats.Get)
		stats.GET("/export", h.Stats.Export)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	clients.Use(middleware.RequirePermission("manage-clients"))
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
		clients.GET("/:id/history", h.Client.History)
		clients.GET("/:id/appointments", h.Appointment.ListByClient)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	services := protected.Group("/services")
	services.Use(middleware.RequirePermission("manage-catalog"))
	{
		services.GET("", h.Catalog.ListServices)
		services.POST("", h.Catalog.CreateService)
		services.GET("/:id", h.Catalog.GetService)
		services.PUT("/:id", h.Catalog.UpdateService)
		services.DELETE("/:id", h.Catalog.DeleteService)
	}

	products := protected.Group("/products")
	products.Use(middleware.RequirePermission("manage-catalog"))
	{
		products.GET("", h.Catalog.ListProducts)
		products.POST("", h.Catalog.CreateProduct)
		products.GET("/:id", h.Catalog.GetProduct)
		products.PUT("/:id", h.Catalog.UpdateProduct)
		products.DELETE("/:id", h.Catalog.DeleteProduct)
		products.POST("/:id/stock", h.Catalog.AdjustStock)
	}

	categories := protected.Group("/categories")
	categories.Use(middleware.RequirePermission("manage-catalog"))
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.POST("", h.Catalog.CreateCategory)
		categories.PUT("/:id", h.Catalog.UpdateCategory)
		categories.DELETE("/:id", h.Catalog.DeleteCategory)
	}
}

func registerGiftCardRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	giftCards := protected.Group("/gift-cards")
	giftCards.Use(middleware.RequirePermission("manage-giftcards"))
	{
		giftCards.GET("", h.GiftCard.List)
		// Purchasing a gift card writes a ledger row, so it gets the same
		// duplicate protection as transaction creation
		giftCards.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.GiftCard.Purchase)
		giftCards.POST("/redeem", h.GiftCard.Redeem)
		giftCards.GET("/code/:code", h.GiftCard.GetByCode)
		giftCards.GET("/:id", h.GiftCard.Get)
	}
}

func registerAppointmentRoutes(protected *gin.RouterGroup, h *Handlers) {
	appointments := protected.Group("/appointments")
	appointments.Use(middleware.RequirePermission("manage-appointments"))
	{
		appointments.GET("", h.Appointment.ListForDay)
		appointments.POST("", h.Appointment.Create)
		appointments.GET("/:id", h.Appointment.Get)
		appointments.PUT("/:id/status", h.Appointment.UpdateStatus)
		appointments.DELETE("/:id", h.Appointment.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerRoleRoutes(protected *gin.RouterGroup, h *Handlers) {
	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}
}

func registerPermissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt", h.Printer.PrintReceipt)
	}
}
