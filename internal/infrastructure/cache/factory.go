package cache

import (
	"github.com/tshirtshop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewPriceCache returns a Redis cache when Redis is enabled and reachable,
// and an in-memory cache otherwise
func NewPriceCache(cfg config.RedisConfig, logger *zap.Logger) PriceCache {
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory price cache")
		return NewInMemoryPriceCache()
	}

	redisCache, err := NewRedisPriceCache(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory price cache. "+
			"Instances will not share cached prices.",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryPriceCache()
	}

	logger.Info("using Redis price cache", zap.String("addr", cfg.Addr()))
	return redisCache
}
