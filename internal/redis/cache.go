package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"quoting/internal/domain"
)

// ConfigCacheStore caches configuration snapshots in Redis so quote
// bursts against the same client do not hit PostgreSQL per order. A
// computation always keeps the snapshot it was handed; the TTL only
// bounds how stale a newly started computation can be.
type ConfigCacheStore struct {
	client *redis.Client
	ttl    time.Duration
}

// ConfigCacheTTL bounds snapshot staleness between synchronization runs.
const ConfigCacheTTL = 60 * time.Second

const configCachePrefix = "cache:config:"

// NewConfigCacheStore creates a new ConfigCacheStore with the default TTL.
func NewConfigCacheStore(client *redis.Client) *ConfigCacheStore {
	return &ConfigCacheStore{client: client, ttl: ConfigCacheTTL}
}

// GetConfiguration retrieves a cached configuration snapshot. A cache
// miss returns (nil, nil).
func (s *ConfigCacheStore) GetConfiguration(ctx context.Context, configID string) (*domain.DeliveryConfiguration, error) {
	data, err := s.client.Get(ctx, configCachePrefix+configID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var cfg domain.DeliveryConfiguration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SetConfiguration caches a configuration snapshot.
func (s *ConfigCacheStore) SetConfiguration(ctx context.Context, cfg *domain.DeliveryConfiguration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, configCachePrefix+cfg.ConfigID, data, s.ttl).Err()
}

// InvalidateConfiguration drops a cached snapshot, used by the
// synchronization side after it rewrites a configuration.
func (s *ConfigCacheStore) InvalidateConfiguration(ctx context.Context, configID string) error {
	return s.client.Del(ctx, configCachePrefix+configID).Err()
}
