package repository

import (
	"context"

	"quoting/internal/domain"
)

// ConfigurationRepository is the narrow read interface over the
// configuration store. Writes belong to the external synchronization
// process; the quoting side never mutates configurations.
type ConfigurationRepository interface {
	// GetByConfigID retrieves a configuration by its stable config id.
	GetByConfigID(ctx context.Context, configID string) (*domain.DeliveryConfiguration, error)

	// GetActive retrieves all configurations currently enabled for
	// quoting.
	GetActive(ctx context.Context) ([]*domain.DeliveryConfiguration, error)
}
