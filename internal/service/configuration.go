package service

import (
	"context"

	"quoting/internal/domain"
	"quoting/internal/redis"
	"quoting/internal/repository"
)

// ConfigurationService serves read-side configuration lookups for the
// HTTP surface. Writes belong to the external synchronization process.
type ConfigurationService struct {
	configRepo  repository.ConfigurationRepository
	configCache redis.ConfigCacheInterface
}

// NewConfigurationService creates a new ConfigurationService.
func NewConfigurationService(configRepo repository.ConfigurationRepository, configCache redis.ConfigCacheInterface) *ConfigurationService {
	return &ConfigurationService{
		configRepo:  configRepo,
		configCache: configCache,
	}
}

// GetConfiguration retrieves one configuration by config id.
func (s *ConfigurationService) GetConfiguration(ctx context.Context, configID string) (*domain.DeliveryConfiguration, error) {
	if configID == "" {
		return nil, ErrInvalidConfigID
	}

	if s.configCache != nil {
		if cfg, err := s.configCache.GetConfiguration(ctx, configID); err == nil && cfg != nil {
			return cfg, nil
		}
	}

	cfg, err := s.configRepo.GetByConfigID(ctx, configID)
	if err != nil {
		return nil, err
	}

	if s.configCache != nil {
		_ = s.configCache.SetConfiguration(ctx, cfg)
	}

	return cfg, nil
}

// ListActive retrieves all configurations enabled for quoting.
func (s *ConfigurationService) ListActive(ctx context.Context) ([]*domain.DeliveryConfiguration, error) {
	return s.configRepo.GetActive(ctx)
}
