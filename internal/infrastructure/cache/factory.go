package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lincyaw/storefront/internal/domain/cart"
	"github.com/lincyaw/storefront/internal/infrastructure/config"
)

// NewCartStore creates the cart store selected by configuration.
// Backend "redis" falls back to the in-memory store when Redis is
// unreachable, so a missing Redis does not take down the storefront.
func NewCartStore(cfg *config.Config, logger *zap.Logger) (cart.Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Cart.Backend {
	case "memory":
		return NewInMemoryCartStore(cfg.Cart.TTL), nil
	case "redis":
		store, err := NewRedisCartStore(cfg.Redis, cfg.Cart.TTL)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory cart store",
				zap.String("addr", cfg.Redis.Addr()),
				zap.Error(err))
			return NewInMemoryCartStore(cfg.Cart.TTL), nil
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cart backend: %s", cfg.Cart.Backend)
	}
}
