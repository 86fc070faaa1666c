package modelgw

import (
	"context"
	"fmt"
	"log/slog"

	"filings-qa/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedEncoder memoizes question embeddings in a bounded in-process LRU.
// Embeddings are deterministic per model version, so there is no TTL; the
// cache is dropped with the process. Answers are never cached.
type CachedEncoder struct {
	inner domain.VectorEncoder
	cache *lru.Cache[string, []float32]
}

// NewCachedEncoder wraps inner with an LRU of the given size.
func NewCachedEncoder(inner domain.VectorEncoder, size int) (*CachedEncoder, error) {
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding cache: %w", err)
	}
	return &CachedEncoder{inner: inner, cache: cache}, nil
}

func (c *CachedEncoder) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.Get(text); ok {
		slog.Debug("embed_cache_hit", slog.Int("cache_len", c.cache.Len()))
		return vec, nil
	}
	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, vec)
	return vec, nil
}

func (c *CachedEncoder) Version() string {
	return c.inner.Version()
}

var _ domain.VectorEncoder = (*CachedEncoder)(nil)
