package redis_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"groundedwarriors/internal/config"
	"groundedwarriors/internal/infra"
	"groundedwarriors/pkg/middleware"
)

var Module = fx.Provide(provideRedis, provideWindowCounter)

// provideRedis returns nil when Redis is not configured or not reachable at
// startup; auth rate limiting is then disabled.
func provideRedis(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) *redis.Client {
	client, err := infra.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, auth rate limiting disabled", zap.Error(err))
		return nil
	}
	if client == nil {
		logger.Info("REDIS_URL not set, auth rate limiting disabled")
		return nil
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client
}

func provideWindowCounter(client *redis.Client) middleware.WindowCounter {
	if client == nil {
		return nil
	}
	return middleware.NewRedisWindowCounter(client)
}
