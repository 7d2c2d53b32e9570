package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/lincyaw/storefront/internal/application/identity"
	"github.com/lincyaw/storefront/internal/infrastructure/logger"
	"github.com/lincyaw/storefront/internal/interfaces/http/handler"
	"github.com/lincyaw/storefront/internal/interfaces/http/middleware"
)

// maxBodyBytes caps request bodies. Multipart image uploads are the
// largest expected payload.
const maxBodyBytes = 32 << 20

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	System   *handler.SystemHandler
}

// Config carries the router's cross-cutting dependencies
type Config struct {
	Logger      *zap.Logger
	Tokens      identityapp.TokenService
	CORSOrigins []string
}

// Option is a functional option for router configuration
type Option func(*Config)

// WithCORSOrigins sets the allowed CORS origins
func WithCORSOrigins(origins []string) Option {
	return func(c *Config) {
		c.CORSOrigins = origins
	}
}

// New builds the gin engine with the full middleware chain and every
// route mounted. Public catalog reads and the payment callback skip
// authentication; admin routes additionally require the admin flag.
func New(h Handlers, cfg Config, opts ...Option) *gin.Engine {
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	engine.Use(middleware.BodyLimit(maxBodyBytes))

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/products", h.Product.List)
	api.GET("/products/:id", h.Product.Get)
	api.GET("/categories", h.Category.List)
	api.GET("/categories/:id", h.Category.Get)
	api.GET("/categories/:id/products", h.Category.ListProducts)
	api.GET("/payments/callback", h.Payment.Callback)
	api.POST("/payments/verify", h.Payment.Verify)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.Auth(middleware.AuthConfig{Tokens: cfg.Tokens}))
	{
		authed.POST("/auth/refresh", h.Auth.Refresh)
		authed.GET("/auth/profile", h.Auth.GetProfile)
		authed.PUT("/auth/profile", h.Auth.UpdateProfile)

		authed.POST("/products/:id/reviews", h.Product.AddReview)

		authed.GET("/cart", h.Cart.Get)
		authed.DELETE("/cart", h.Cart.Clear)
		authed.POST("/cart/items", h.Cart.AddItem)
		authed.PUT("/cart/items", h.Cart.UpdateItem)
		authed.DELETE("/cart/items", h.Cart.RemoveItem)

		authed.POST("/orders", h.Order.Create)
		authed.GET("/orders", h.Order.ListMine)
		authed.GET("/orders/:id", h.Order.Get)

		authed.POST("/payments/initialize", h.Payment.Initialize)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.Auth(middleware.AuthConfig{Tokens: cfg.Tokens}))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", h.Auth.ListUsers)

		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)
		admin.POST("/products/:id/images", h.Product.UploadImages)

		admin.POST("/categories", h.Category.Create)
		admin.PUT("/categories/:id", h.Category.Update)
		admin.DELETE("/categories/:id", h.Category.Delete)

		admin.GET("/orders", h.Order.ListAll)
		admin.GET("/orders/sales", h.Order.SalesByDate)
		admin.POST("/orders/:id/deliver", h.Order.MarkDelivered)
		admin.POST("/orders/:id/pay", h.Order.MarkPaid)
	}

	return engine
}
