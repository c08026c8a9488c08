package modelcaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "flowdeck:modelcaps:"

// CachedProvider keeps capability lookups in redis so slow upstream
// providers are consulted at most once per TTL. Cache failures fall through
// to the wrapped provider.
type CachedProvider struct {
	upstream Catalog
	client   *redis.Client
	ttl      time.Duration
	logger   *slog.Logger
}

func NewCachedProvider(upstream Catalog, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &CachedProvider{
		upstream: upstream,
		client:   client,
		ttl:      ttl,
		logger:   logger.With("module", "modelcaps"),
	}
}

func (p *CachedProvider) Lookup(ctx context.Context, model string) (*Capability, bool, error) {
	key := cacheKeyPrefix + model

	cached, err := p.client.Get(ctx, key).Bytes()
	if err == nil {
		var capability Capability
		if err := json.Unmarshal(cached, &capability); err == nil {
			return &capability, true, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		p.logger.Warn("Model capability cache read failed", "model", model, "error", err)
	}

	capability, ok, err := p.upstream.Lookup(ctx, model)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up model %s: %w", model, err)
	}

	if !ok {
		return nil, false, nil
	}

	payload, err := json.Marshal(capability)
	if err == nil {
		if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
			p.logger.Warn("Model capability cache write failed", "model", model, "error", err)
		}
	}

	return capability, true, nil
}

// Models lists the upstream catalog. Enumeration is not cached; it is a
// small in-memory read for every shipped provider.
func (p *CachedProvider) Models() []string {
	return p.upstream.Models()
}
