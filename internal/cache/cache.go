// Package cache stores trend reports keyed by taxonomy tables and batch content.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

// Cache looks up and stores trend reports.
type Cache interface {
	Get(ctx context.Context, key string) (*types.TrendReport, bool, error)
	Set(ctx context.Context, key string, report *types.TrendReport) error
	Close() error
}

// Key derives the cache key for a batch. Identical batches scored with the
// same taxonomy tables and K map to the same key. The digest identifies the
// table contents; the version only keeps keys readable.
func Key(taxonomyVersion, taxonomyDigest string, topK int, postings []types.RawPosting) (string, error) {
	payload, err := json.Marshal(struct {
		TopK     int                `json:"top_k"`
		Postings []types.RawPosting `json:"postings"`
	}{topK, postings})
	if err != nil {
		return "", fmt.Errorf("failed to encode batch: %w", err)
	}
	sum := sha256.Sum256(payload)
	digest := taxonomyDigest
	if len(digest) > 16 {
		digest = digest[:16]
	}
	return fmt.Sprintf("trends:%s:%s:%s", taxonomyVersion, digest, hex.EncodeToString(sum[:])), nil
}

// RedisCache is a Cache backed by Redis string values with a TTL.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache connects to addr and verifies the connection with PING.
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{rdb: rdb, ttl: ttl}, nil
}

// Get returns the cached report, or false on a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (*types.TrendReport, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var report types.TrendReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, true, nil
}

// Set stores report under key for the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, report *types.TrendReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
