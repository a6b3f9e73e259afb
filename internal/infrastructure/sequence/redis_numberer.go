package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisDocumentNumberer issues sequential document codes from per-tenant,
// per-document-type Redis counters. Counters only ever move forward, so a
// crashed operation burns a number instead of reusing one.
type RedisDocumentNumberer struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDocumentNumberer creates a numberer with its own Redis client
func NewRedisDocumentNumberer(cfg RedisConfig) (*RedisDocumentNumberer, error) {
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

	return NewRedisDocumentNumbererWithClient(client, ""), nil
}

// NewRedisDocumentNumbererWithClient creates a numberer over an existing
// client, useful when sharing one client across components
func NewRedisDocumentNumbererWithClient(client *redis.Client, keyPrefix string) *RedisDocumentNumberer {
	if keyPrefix == "" {
		keyPrefix = "sequence:"
	}
	return &RedisDocumentNumberer{client: client, keyPrefix: keyPrefix}
}

// Next returns the next code for a tenant and document type, formatted as
// <TYPE>-<year>-<counter>, e.g. BATCH-2026-000042.
func (n *RedisDocumentNumberer) Next(ctx context.Context, tenantID uuid.UUID, docType string) (string, error) {
	year := time.Now().Year()
	key := fmt.Sprintf("%s%s:%s:%d", n.keyPrefix, tenantID, docType, year)

	seq, err := n.client.Incr(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("failed to increment sequence %s: %w", key, err)
	}
	return fmt.Sprintf("%s-%d-%06d", docType, year, seq), nil
}

// Ping checks the Redis connection
func (n *RedisDocumentNumberer) Ping(ctx context.Context) error {
	return n.client.Ping(ctx).Err()
}

// Close releases the underlying Redis client
func (n *RedisDocumentNumberer) Close() error {
	return n.client.Close()
}
