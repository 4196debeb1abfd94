package routes

import (
	"time"

	"github.com/assistec/assistec-api/internal/config"
	"github.com/assistec/assistec-api/internal/domain/entity"
	domainRepo "github.com/assistec/assistec-api/internal/domain/repository"
	"github.com/assistec/assistec-api/internal/presentation/http/handler"
	"github.com/assistec/assistec-api/internal/presentation/http/middleware"
	"github.com/assistec/assistec-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Sale     *handler.SaleHandler
	Cashier  *handler.CashierHandler
	Report   *handler.ReportHandler
	Settings *handler.SettingsHandler
	Printer  *handler.PrinterHandler
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
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
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

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Retried POSTs on these endpoints must replay the original response
	// instead of posting money twice
	idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Profile
	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Customers
	customers := protected.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	// Catalog
	products := protected.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	// Service orders
	orders := protected.Group("/orders")
	{
		orders.POST("", h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id/status", h.Order.UpdateStatus)
		orders.POST("/:id/settle", idempotency, h.Order.Settle)
	}

	// Sales
	sales := protected.Group("/sales")
	{
		sales.POST("", idempotency, h.Sale.Create)
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/receive", h.Sale.ReceivePayment)
		sales.POST("/:id/refund", idempotency, h.Sale.Refund)
	}

	// Cashier ledger
	cashier := protected.Group("/cashier")
	{
		cashier.POST("/movements", h.Cashier.CreateMovement)
		cashier.GET("/movements", h.Cashier.List)
		cashier.GET("/movements/:id", h.Cashier.GetEntry)
		cashier.GET("/balance", h.Cashier.Balance)
	}

	// Reports
	reports := protected.Group("/reports")
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/by-category", h.Report.ByCategory)
		reports.GET("/dashboard", h.Report.Dashboard)
	}

	// Printing
	printing := protected.Group("/print")
	{
		printing.GET("/status", h.Printer.Status)
		printing.POST("/sales/:id", h.Printer.PrintSale)
		printing.POST("/orders/:id", h.Printer.PrintOrder)
	}

	// Settings (admin only)
	settings := protected.Group("/settings")
	settings.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		settings.GET("/rates", h.Settings.GetRateTable)
		settings.PUT("/rates/cards", h.Settings.ReplaceCardChannels)
		settings.PUT("/rates/pix", h.Settings.ReplacePixChannels)
		settings.GET("/company", h.Settings.GetCompany)
		settings.PUT("/company", h.Settings.UpdateCompany)
		settings.GET("/goal", h.Settings.GetGoal)
		settings.PUT("/goal", h.Settings.SetGoal)
	}

	// Operator accounts (admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		users.POST("", h.Auth.CreateUser)
		users.GET("", h.Auth.ListUsers)
		users.PUT("/:id", h.Auth.UpdateUser)
		users.DELETE("/:id", h.Auth.DeleteUser)
	}
}
