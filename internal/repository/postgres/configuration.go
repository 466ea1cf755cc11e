package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"quoting/internal/domain"
	"quoting/internal/repository"
)

// ConfigurationRepository is a PostgreSQL implementation of
// repository.ConfigurationRepository. The structured rule sets (tiers,
// discounts, driver pay, tolls, custom settings) persist as JSONB in the
// shape the synchronization process writes.
type ConfigurationRepository struct {
	q Querier
}

// NewConfigurationRepository creates a new PostgreSQL configuration repository.
func NewConfigurationRepository(db *sql.DB) *ConfigurationRepository {
	return &ConfigurationRepository{q: db}
}

const configurationColumns = `
	config_id, client_name, vendor_name, is_active, tier_key,
	pricing_tiers, mileage_rate, distance_threshold, local_radius_miles,
	daily_drive_discounts, driver_pay_settings, bridge_toll_settings,
	custom_settings, notes
`

// GetByConfigID retrieves a configuration by its stable config id.
func (r *ConfigurationRepository) GetByConfigID(ctx context.Context, configID string) (*domain.DeliveryConfiguration, error) {
	query := `SELECT ` + configurationColumns + ` FROM delivery_configurations WHERE config_id = $1`

	cfg, err := scanConfiguration(r.q.QueryRowContext(ctx, query, configID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return cfg, nil
}

// GetActive retrieves all configurations enabled for quoting.
func (r *ConfigurationRepository) GetActive(ctx context.Context) ([]*domain.DeliveryConfiguration, error) {
	query := `SELECT ` + configurationColumns + ` FROM delivery_configurations WHERE is_active = TRUE ORDER BY client_name, vendor_name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*domain.DeliveryConfiguration
	for rows.Next() {
		cfg, err := scanConfiguration(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}

	return configs, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanConfiguration(row scanner) (*domain.DeliveryConfiguration, error) {
	var (
		cfg           domain.DeliveryConfiguration
		tiersJSON     []byte
		discountsJSON []byte
		payJSON       []byte
		tollsJSON     []byte
		customJSON    []byte
		notes         sql.NullString
	)

	err := row.Scan(
		&cfg.ConfigID,
		&cfg.ClientName,
		&cfg.VendorName,
		&cfg.IsActive,
		&cfg.TierKey,
		&tiersJSON,
		&cfg.MileageRate,
		&cfg.DistanceThreshold,
		&cfg.LocalRadiusMiles,
		&discountsJSON,
		&payJSON,
		&tollsJSON,
		&customJSON,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tiersJSON, &cfg.PricingTiers); err != nil {
		return nil, fmt.Errorf("decode pricing_tiers for %s: %w", cfg.ConfigID, err)
	}
	if len(discountsJSON) > 0 {
		if err := json.Unmarshal(discountsJSON, &cfg.DailyDriveDiscounts); err != nil {
			return nil, fmt.Errorf("decode daily_drive_discounts for %s: %w", cfg.ConfigID, err)
		}
	}
	if err := json.Unmarshal(payJSON, &cfg.DriverPaySettings); err != nil {
		return nil, fmt.Errorf("decode driver_pay_settings for %s: %w", cfg.ConfigID, err)
	}
	if len(tollsJSON) > 0 {
		if err := json.Unmarshal(tollsJSON, &cfg.BridgeTollSettings); err != nil {
			return nil, fmt.Errorf("decode bridge_toll_settings for %s: %w", cfg.ConfigID, err)
		}
	}
	if len(customJSON) > 0 {
		if err := json.Unmarshal(customJSON, &cfg.CustomSettings); err != nil {
			return nil, fmt.Errorf("decode custom_settings for %s: %w", cfg.ConfigID, err)
		}
	}
	cfg.Notes = notes.String

	return &cfg, nil
}
