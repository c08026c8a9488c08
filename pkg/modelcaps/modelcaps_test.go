package modelcaps_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/flowdeck/flowdeck/pkg/modelcaps"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider_Lookup(t *testing.T) {
	provider := modelcaps.NewStaticProvider()

	capability, ok, err := provider.Lookup(context.Background(), "gpt-4o")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "openai", capability.Provider)
	assert.True(t, capability.Vision)
	assert.Positive(t, capability.MaxContext)
}

func TestStaticProvider_LookupUnknown(t *testing.T) {
	provider := modelcaps.NewStaticProvider()

	_, ok, err := provider.Lookup(context.Background(), "model-that-never-was")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStaticProvider_Models(t *testing.T) {
	provider := modelcaps.NewStaticProvider()

	models := provider.Models()
	assert.Contains(t, models, "gpt-4o")
	assert.Contains(t, models, "text-embedding-3-small")
	assert.IsIncreasing(t, models)
}

// unreachableRedis returns a client whose every command fails fast, so the
// cache-unavailable path can be exercised without a server.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCachedProvider_FallsThroughWhenCacheUnavailable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := modelcaps.NewCachedProvider(modelcaps.NewStaticProvider(), unreachableRedis(), 0, logger)

	capability, ok, err := provider.Lookup(context.Background(), "claude-sonnet")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "anthropic", capability.Provider)
}

func TestCachedProvider_LookupUnknown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := modelcaps.NewCachedProvider(modelcaps.NewStaticProvider(), unreachableRedis(), 0, logger)

	_, ok, err := provider.Lookup(context.Background(), "model-that-never-was")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachedProvider_Models(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := modelcaps.NewCachedProvider(modelcaps.NewStaticProvider(), unreachableRedis(), 0, logger)

	assert.Equal(t, modelcaps.NewStaticProvider().Models(), provider.Models())
}
