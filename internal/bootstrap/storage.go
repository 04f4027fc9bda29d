package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pas-volunteer/planner-backend/config"
	"github.com/pas-volunteer/planner-backend/internal/planner/storage"
)

// OpenStorage connects the configured key-value backend and fails fast when
// it does not answer.
func OpenStorage(ctx context.Context, cfg config.StorageConfig) (storage.Adapter, error) {
	switch cfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return storage.NewRedisAdapter(client), nil

	case "postgres":
		return storage.OpenPostgres(ctx, cfg.PostgresDSN)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
