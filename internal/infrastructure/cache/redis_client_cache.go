// Package cache provides Redis-backed caching for client policy records.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mcpfinanceiro/backend/internal/domain/tenant"
)

const defaultClientKeyPrefix = "client:policy:"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisClient creates a Redis client and verifies the connection.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisClientCache is a read-through cache in front of a tenant.ClientRepository.
// Webhook traffic hits the same handful of client records on every message, so
// the policy read path is served from Redis and falls back to the database on
// miss. Writes go straight through and invalidate the cached entry.
type RedisClientCache struct {
	inner     tenant.ClientRepository
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRedisClientCache wraps repo with a Redis read-through cache.
func NewRedisClientCache(repo tenant.ClientRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisClientCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisClientCache{
		inner:     repo,
		client:    client,
		keyPrefix: defaultClientKeyPrefix,
		ttl:       ttl,
		logger:    logger,
	}
}

// FindByID serves the client record from Redis when present, otherwise loads
// it from the inner repository and caches it. Cache errors degrade to the
// database rather than failing the lookup.
func (c *RedisClientCache) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Client, error) {
	key := c.key(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var client tenant.Client
		if jsonErr := json.Unmarshal(data, &client); jsonErr == nil {
			return &client, nil
		}
		// Corrupt entry: drop it and fall through to the database.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("client cache read failed, falling back to database",
			zap.String("client_id", id.String()),
			zap.Error(err))
	}

	client, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(client); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("client cache write failed",
				zap.String("client_id", id.String()),
				zap.Error(err))
		}
	}

	return client, nil
}

// Create passes through to the inner repository.
func (c *RedisClientCache) Create(ctx context.Context, client *tenant.Client) error {
	return c.inner.Create(ctx, client)
}

// UpdateSettings passes through and invalidates the cached entry so the next
// resolution sees the new policy.
func (c *RedisClientCache) UpdateSettings(ctx context.Context, id uuid.UUID, patch *tenant.SettingsPatch) error {
	if err := c.inner.UpdateSettings(ctx, id, patch); err != nil {
		return err
	}
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.logger.Warn("client cache invalidation failed",
			zap.String("client_id", id.String()),
			zap.Error(err))
	}
	return nil
}

func (c *RedisClientCache) key(id uuid.UUID) string {
	return c.keyPrefix + id.String()
}
