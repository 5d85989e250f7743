package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/remodela-api/internal/config"
	domainRepo "github.com/sangkips/remodela-api/internal/domain/repository"
	"github.com/sangkips/remodela-api/internal/infrastructure/logger"
	"github.com/sangkips/remodela-api/internal/presentation/http/handler"
	"github.com/sangkips/remodela-api/internal/presentation/http/middleware"
	"github.com/sangkips/remodela-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Quote   *handler.QuoteHandler
	Receipt *handler.ReceiptHandler
	Product *handler.ProductHandler
	Service *handler.ServiceHandler
	Project *handler.ProjectHandler
	Upload  *handler.UploadHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Log             *zap.Logger
	// Done stops background cleanup of the rate limiter.
	Done <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(logger.Recovery(deps.Log))
	router.Use(logger.GinMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	limiter := middleware.NewIPRateLimiter(rateLimiterConfig(deps.Cfg.RateLimit), deps.Done)

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h, limiter)
		registerPublicRoutes(v1, h, limiter)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func rateLimiterConfig(cfg config.RateLimitConfig) middleware.RateLimiterConfig {
	out := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		out.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		out.BurstSize = cfg.Requests
	}
	out.CleanupInterval = 5 * time.Minute
	out.EntryTTL = 10 * time.Minute
	return out
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers, limiter *middleware.IPRateLimiter) {
	auth := v1.Group("/auth")
	auth.Use(limiter.Middleware())
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

// registerPublicRoutes exposes the published catalog to the marketing site.
func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers, limiter *middleware.IPRateLimiter) {
	public := v1.Group("/public")
	public.Use(limiter.Middleware())
	{
		public.GET("/products", h.Product.PublicList)
		public.GET("/products/:slug", h.Product.PublicGet)
		public.GET("/services", h.Service.PublicList)
		public.GET("/services/:slug", h.Service.PublicGet)
		public.GET("/projects", h.Project.PublicList)
		public.GET("/projects/:slug", h.Project.PublicGet)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Documents.IdempotencyTTL,
		Log:  deps.Log,
	})

	registerQuoteRoutes(protected, h, idempotent)
	registerReceiptRoutes(protected, h, idempotent)

	registerCatalogRoutes(protected.Group("/products"), h.Product)
	registerCatalogRoutes(protected.Group("/services"), h.Service)
	registerCatalogRoutes(protected.Group("/projects"), h.Project)

	protected.POST("/uploads/images", h.Upload.UploadImage)

	protected.GET("/printer/status", h.Printer.GetStatus)
}

func registerQuoteRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	quotes := protected.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", idempotent, h.Quote.Create)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id", h.Quote.Update)
		quotes.DELETE("/:id", h.Quote.Delete)
		quotes.PATCH("/:id/status", h.Quote.ChangeStatus)
		quotes.POST("/:id/sent", h.Quote.MarkSent)
		quotes.GET("/:id/balance", h.Quote.Balance)
		quotes.GET("/:id/pdf", h.Quote.PDF)
		quotes.POST("/:id/email", h.Quote.Email)
		quotes.GET("/:id/whatsapp", h.Quote.WhatsApp)
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.POST("", idempotent, h.Receipt.Create)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.PUT("/:id", h.Receipt.Update)
		receipts.DELETE("/:id", h.Receipt.Delete)
		receipts.POST("/:id/sent", h.Receipt.MarkSent)
		receipts.GET("/:id/pdf", h.Receipt.PDF)
		receipts.POST("/:id/email", h.Receipt.Email)
		receipts.GET("/:id/whatsapp", h.Receipt.WhatsApp)
		receipts.POST("/:id/print", h.Printer.PrintReceipt)
	}
}

type catalogRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerCatalogRoutes(group *gin.RouterGroup, h catalogRoutes) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}
