package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/lincyaw/storefront/internal/application/cart"
	catalogapp "github.com/lincyaw/storefront/internal/application/catalog"
	identityapp "github.com/lincyaw/storefront/internal/application/identity"
	orderapp "github.com/lincyaw/storefront/internal/application/order"
	paymentapp "github.com/lincyaw/storefront/internal/application/payment"
	"github.com/lincyaw/storefront/internal/infrastructure/auth"
	"github.com/lincyaw/storefront/internal/infrastructure/cache"
	"github.com/lincyaw/storefront/internal/infrastructure/config"
	"github.com/lincyaw/storefront/internal/infrastructure/logger"
	infrapayment "github.com/lincyaw/storefront/internal/infrastructure/payment"
	"github.com/lincyaw/storefront/internal/infrastructure/persistence"
	"github.com/lincyaw/storefront/internal/infrastructure/storage"
	"github.com/lincyaw/storefront/internal/interfaces/http/handler"
	"github.com/lincyaw/storefront/internal/interfaces/http/middleware"
	"github.com/lincyaw/storefront/internal/interfaces/http/router"
)

//	@title			Storefront API
//	@version		1.0
//	@description	E-commerce storefront backend: catalog, cart, checkout and payments

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	tokens := auth.NewJWTService(cfg.JWT)

	cartStore, err := cache.NewCartStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize cart store", zap.Error(err))
	}
	defer func() {
		if closer, ok := cartStore.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Error("Error closing cart store", zap.Error(err))
			}
		}
	}()

	primaryStore, fallbackStore := buildImageStores(cfg, log)

	gateway, err := infrapayment.NewPaystackAdapter(cfg.Payment)
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}

	imageService := catalogapp.NewImageService(productRepo, primaryStore, fallbackStore, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, userRepo, imageService)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	cartService := cartapp.NewService(cartStore, productRepo, log)
	orderService := orderapp.NewService(orderRepo, productRepo, cartStore, log)
	paymentService := paymentapp.NewService(orderRepo, gateway, log)
	authService := identityapp.NewAuthService(userRepo, tokens, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService, imageService),
		Category: handler.NewCategoryHandler(categoryService, productService),
		Cart:     handler.NewCartHandler(cartService),
		Order:    handler.NewOrderHandler(orderService),
		Payment:  handler.NewPaymentHandler(paymentService),
		System:   handler.NewSystemHandler(db),
	}

	engine := router.New(handlers, router.Config{
		Logger:      log,
		Tokens:      tokens,
		CORSOrigins: cfg.HTTP.CORSAllowOrigins,
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildImageStores wires the product image stores. S3 is the primary
// when configured; the local disk store serves as the fallback, or as
// the primary when no bucket is configured.
func buildImageStores(cfg *config.Config, log *zap.Logger) (primary, fallback catalogapp.ObjectStorageService) {
	local, err := storage.NewLocalObjectStorage(&cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize local image storage", zap.Error(err))
	}

	if cfg.Storage.Provider != "s3" {
		log.Info("Using local image storage", zap.String("dir", cfg.Storage.LocalDir))
		return local, nil
	}

	s3Store, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
	if err != nil {
		log.Warn("S3 storage unavailable, falling back to local", zap.Error(err))
		return local, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3Store.EnsureBucket(ctx); err != nil {
		log.Warn("Could not ensure S3 bucket, falling back to local", zap.Error(err))
		return local, nil
	}

	log.Info("Using S3 image storage", zap.String("bucket", cfg.Storage.Bucket))
	return s3Store, local
}
