package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	balanceKeyPrefix     = "coldstore:balance"
	defaultBalanceTTL    = 30 * time.Minute
	defaultScanBatchSize = 100
)

// RedisBalanceCache caches derived balance sheets in Redis. Entries are keyed
// by (tenant, fiscal year, log version), so a log write makes old entries
// unreachable and the TTL sweeps them out. Redis failures degrade to cache
// misses; the caller recomputes from the log either way.
type RedisBalanceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisBalanceCacheOption is a functional option for configuring the cache
type RedisBalanceCacheOption func(*RedisBalanceCache)

// WithBalanceTTL sets the entry TTL
func WithBalanceTTL(ttl time.Duration) RedisBalanceCacheOption {
	return func(c *RedisBalanceCache) {
		c.ttl = ttl
	}
}

// WithBalanceCacheLogger sets the logger for the cache
func WithBalanceCacheLogger(logger *zap.Logger) RedisBalanceCacheOption {
	return func(c *RedisBalanceCache) {
		c.logger = logger
	}
}

// NewRedisBalanceCache creates a cache over an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisBalanceCache(client *redis.Client, opts ...RedisBalanceCacheOption) *RedisBalanceCache {
	cache := &RedisBalanceCache{
		client: client,
		ttl:    defaultBalanceTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

func balanceCacheKey(tenantID uuid.UUID, fiscalYear valueobject.FiscalYear, version int64) string {
	return fmt.Sprintf("%s:%s:%d:%d", balanceKeyPrefix, tenantID, int(fiscalYear), version)
}

// Get retrieves a cached balance sheet, if present for this log version
func (c *RedisBalanceCache) Get(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear, version int64) (*ledger.BalanceSheet, bool) {
	key := balanceCacheKey(tenantID, fiscalYear, version)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Failed to get balance sheet from cache",
			zap.String("key", key),
			zap.Error(err))
		return nil, false
	}

	var sheet ledger.BalanceSheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		c.logger.Warn("Failed to unmarshal cached balance sheet",
			zap.String("key", key),
			zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, false
	}
	return &sheet, true
}

// Put stores a balance sheet for this log version
func (c *RedisBalanceCache) Put(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear, version int64, sheet *ledger.BalanceSheet) {
	if sheet == nil {
		return
	}
	key := balanceCacheKey(tenantID, fiscalYear, version)

	data, err := json.Marshal(sheet)
	if err != nil {
		c.logger.Warn("Failed to marshal balance sheet",
			zap.String("key", key),
			zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache balance sheet",
			zap.String("key", key),
			zap.Error(err))
	}
}

// Invalidate removes every cached sheet of the tenant
func (c *RedisBalanceCache) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	pattern := fmt.Sprintf("%s:%s:*", balanceKeyPrefix, tenantID)
	var cursor uint64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			c.logger.Warn("Failed to scan balance cache keys",
				zap.String("pattern", pattern),
				zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warn("Failed to delete balance cache keys", zap.Error(err))
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
