package cmd

import (
	"log/slog"
	"time"

	"github.com/flowdeck/flowdeck/pkg/modelcaps"
	"github.com/redis/go-redis/v9"
)

// NewModelCatalog builds the model capability catalog. With a redis URL the
// builtin table is wrapped in the redis cache; without one, or when the URL
// does not parse, lookups hit the table directly.
func NewModelCatalog(logger *slog.Logger, redisURL string) modelcaps.Catalog {
	static := modelcaps.NewStaticProvider()

	if redisURL == "" {
		return static
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("Invalid redis URL, model capability cache disabled", "error", err)
		return static
	}

	return modelcaps.NewCachedProvider(static, redis.NewClient(opts), time.Hour, logger)
}

// NewRedisClient connects to the redis instance behind redisURL.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return redis.NewClient(opts), nil
}
