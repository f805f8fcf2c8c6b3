// Package cache persists store snapshots in Redis so the console comes
// back up with warm collections after a restart. It is strictly fail-open:
// the stores treat every cache error as a miss.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"example.com/backstage/services/console/config"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// SnapshotCache provides snapshot persistence using Redis
type SnapshotCache struct {
	client  *redis.Client
	enabled bool
}

// NewSnapshotCache creates a new Redis snapshot cache
func NewSnapshotCache(cfg config.RedisConfig) (*SnapshotCache, error) {
	if !cfg.Enabled {
		return &SnapshotCache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	return &SnapshotCache{client: client, enabled: true}, nil
}

// Enabled reports whether the cache is backed by a live connection.
func (c *SnapshotCache) Enabled() bool {
	return c != nil && c.enabled
}

// Get retrieves a snapshot from cache
func (c *SnapshotCache) Get(ctx context.Context, key string, value interface{}) error {
	if !c.Enabled() {
		return errors.New("cache is disabled")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return errors.Wrap(err, "key not found in cache")
		}
		return errors.Wrap(err, "failed to get value from Redis")
	}

	if err := json.Unmarshal(data, value); err != nil {
		return errors.Wrap(err, "failed to unmarshal cached snapshot")
	}

	return nil
}

// Set stores a snapshot in cache with optional expiration
func (c *SnapshotCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !c.Enabled() {
		return errors.New("cache is disabled")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to marshal snapshot for caching")
	}

	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return errors.Wrap(err, "failed to set value in Redis")
	}

	return nil
}

// DeliverySnapshotKey is the cache key for the delivery store snapshot.
func DeliverySnapshotKey() string {
	return "console:snapshot:delivery"
}

// InventorySnapshotKey is the cache key for the inventory store snapshot.
func InventorySnapshotKey() string {
	return "console:snapshot:inventory"
}

// VehicleSnapshotKey is the cache key for one person's vehicle snapshot.
func VehicleSnapshotKey(personID int64) string {
	return fmt.Sprintf("console:snapshot:vehicle:%d", personID)
}

// Close closes the Redis connection
func (c *SnapshotCache) Close() error {
	if !c.Enabled() || c.client == nil {
		return nil
	}

	return c.client.Close()
}
