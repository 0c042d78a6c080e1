// Package cache provides Redis-backed decorators for expensive lookups.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"mindscan_backend/internal/feature/analysis/domain/entity"
	"mindscan_backend/internal/feature/analysis/usecase"
)

const defaultAnalysisTTL = 24 * time.Hour

// CachingTextAnalyzer wraps a TextAnalyzer so repeated classifications of
// the same text are answered from Redis. Classification is deterministic
// for a given backend, so cached results only age out via TTL.
type CachingTextAnalyzer struct {
	inner     usecase.TextAnalyzer
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TextAnalyzer = (*CachingTextAnalyzer)(nil)

// NewCachingTextAnalyzer wraps inner with a Redis cache. A ttl of zero or
// less falls back to 24 hours, an empty namespace to "analysis". Namespaces
// are kept separate per analyzer backend.
func NewCachingTextAnalyzer(rdb *redis.Client, ttl time.Duration, inner usecase.TextAnalyzer, namespace string) *CachingTextAnalyzer {
	if ttl <= 0 {
		ttl = defaultAnalysisTTL
	}
	if namespace == "" {
		namespace = "analysis"
	}
	return &CachingTextAnalyzer{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// AnalyzeText serves the classification from Redis when possible and asks
// the wrapped analyzer otherwise. Without a Redis client the call passes
// straight through.
func (c *CachingTextAnalyzer) AnalyzeText(ctx context.Context, text string) (*entity.TextAnalysis, error) {
	if c.rdb == nil {
		return c.inner.AnalyzeText(ctx, text)
	}

	key := c.cacheKey(text)
	if hit, ok := c.lookup(ctx, key); ok {
		return hit, nil
	}

	result, err := c.inner.AnalyzeText(ctx, text)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, result)
	return result, nil
}

// lookup returns a cached classification. Entries that fail to decode are
// dropped so the next call refreshes them.
func (c *CachingTextAnalyzer) lookup(ctx context.Context, key string) (*entity.TextAnalysis, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(data) == 0 {
		return nil, false
	}

	var cached entity.TextAnalysis
	if err := json.Unmarshal(data, &cached); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return &cached, true
}

// store writes the classification back, best effort.
func (c *CachingTextAnalyzer) store(ctx context.Context, key string, result *entity.TextAnalysis) {
	if data, err := json.Marshal(result); err == nil {
		_ = c.rdb.Set(ctx, key, data, c.ttl).Err()
	}
}

// cacheKey hashes the text so keys have a fixed length and no characters
// Redis treats specially.
func (c *CachingTextAnalyzer) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return c.namespace + ":" + hex.EncodeToString(sum[:])
}
