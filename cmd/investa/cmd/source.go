package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/investa/finserve/internal/config"
	"github.com/investa/finserve/internal/logging"
	"github.com/investa/finserve/internal/navdata"
)

// newNAVClient builds the feed client from the nav config section.
func newNAVClient(cfg *config.Config, logger *logging.Logger) *navdata.Client {
	opts := []navdata.ClientOption{
		navdata.WithBaseURL(cfg.NAV.BaseURL),
		navdata.WithTimeout(cfg.NAV.GetTimeout()),
		navdata.WithLogger(logger),
	}
	if cfg.NAV.RateLimit > 0 {
		opts = append(opts, navdata.WithRateLimit(cfg.NAV.RateLimit))
	}
	return navdata.NewClient(opts...)
}

// newCachedSource wraps the feed client in the configured cache. The
// returned close func releases the redis connection, if any.
func newCachedSource(ctx context.Context, cfg *config.Config, logger *logging.Logger) (navdata.Source, func() error, error) {
	client := newNAVClient(cfg, logger)

	switch cfg.Cache.Backend {
	case config.CacheRedis:
		cache := navdata.NewRedisCacheWithOptions(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err := cache.Ping(ctx); err != nil {
			cache.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Cache.Redis.Addr, err)
		}
		logger.Info().Str("addr", cfg.Cache.Redis.Addr).Msg("NAV cache: redis")
		return navdata.NewCachedSource(client, cache, cfg.NAV.GetCacheTTL(), logger), cache.Close, nil
	default:
		logger.Info().Msg("NAV cache: memory")
		src := navdata.NewCachedSource(client, navdata.NewMemoryCache(), cfg.NAV.GetCacheTTL(), logger)
		return src, func() error { return nil }, nil
	}
}
