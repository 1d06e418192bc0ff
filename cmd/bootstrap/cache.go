package bootstrap

import (
	"context"
	"log/slog"

	"food-delivery-api/internal/infra/cache"
	"food-delivery-api/internal/pkg/config"
	"food-delivery-api/internal/usecase/queries"
	"food-delivery-api/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRedis,
		fx.Annotate(
			func(client *redis.Client, cfg config.Config) *cache.CatalogCache {
				return cache.NewCatalogCache(client, cfg.Redis.TTL)
			},
			fx.As(new(queries.CatalogCache)),
			fx.As(new(shared.CatalogInvalidator)),
		),
	),
)

// NewRedis returns a nil client when REDIS_ADDR is empty. The cache is best
// effort, so an unreachable server is logged and not fatal.
func NewRedis(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	client := cache.NewRedisClient(cfg.Redis)
	if client == nil {
		logger.Info("catalog cache disabled")
		return nil
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis unreachable, catalog cache will miss", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}
