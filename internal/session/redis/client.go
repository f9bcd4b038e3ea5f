package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/crm-console/internal"
	goredis "github.com/redis/go-redis/v9"
)

// Connect opens a client for cfg. An unreachable server is logged, not
// fatal; lookups then fall through to the backend.
func Connect(ctx context.Context, cfg internal.RedisConfig, logger *slog.Logger) *goredis.Client {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("unable to reach redis", "addr", cfg.Addr, "error", err)
	} else {
		logger.Info("connected to redis", "addr", cfg.Addr)
	}

	return client
}
