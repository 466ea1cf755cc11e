package redis

import (
	"context"

	"quoting/internal/domain"
)

// ConfigCacheInterface defines the interface for configuration snapshot
// caching.
type ConfigCacheInterface interface {
	GetConfiguration(ctx context.Context, configID string) (*domain.DeliveryConfiguration, error)
	SetConfiguration(ctx context.Context, cfg *domain.DeliveryConfiguration) error
	InvalidateConfiguration(ctx context.Context, configID string) error
}

// Ensure concrete types implement interfaces.
var _ ConfigCacheInterface = (*ConfigCacheStore)(nil)
