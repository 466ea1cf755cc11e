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

// QuoteRepository is a PostgreSQL implementation of
// repository.QuoteRepository. The table is insert-only; quotes are never
// updated in place.
type QuoteRepository struct {
	q Querier
}

// NewQuoteRepository creates a new PostgreSQL quote repository.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{q: db}
}

// NewQuoteRepositoryWithTx creates a quote repository using a transaction.
func NewQuoteRepositoryWithTx(tx *sql.Tx) *QuoteRepository {
	return &QuoteRepository{q: tx}
}

// Create persists a freshly computed quote.
func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	tierJSON, err := json.Marshal(quote.TierApplied)
	if err != nil {
		return fmt.Errorf("encode tier_applied: %w", err)
	}
	driverTierJSON, err := json.Marshal(quote.DriverTierApplied)
	if err != nil {
		return fmt.Errorf("encode driver_tier_applied: %w", err)
	}
	adjustmentsJSON, err := json.Marshal(quote.Adjustments)
	if err != nil {
		return fmt.Errorf("encode adjustments: %w", err)
	}

	query := `
		INSERT INTO quotes (
			id, config_id, tier_applied, driver_tier_applied,
			base_client_fee, mileage_surcharge_client, discount_applied_client,
			toll_surcharge_client, total_client_fee,
			base_driver_pay, mileage_surcharge_driver, toll_pass_through_driver,
			total_driver_pay, adjustments, computed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = r.q.ExecContext(ctx, query,
		quote.ID,
		quote.ConfigID,
		tierJSON,
		driverTierJSON,
		quote.BaseClientFee,
		quote.MileageSurchargeClient,
		quote.DiscountAppliedClient,
		quote.TollSurchargeClient,
		quote.TotalClientFee,
		quote.BaseDriverPay,
		quote.MileageSurchargeDriver,
		quote.TollPassThroughDriver,
		quote.TotalDriverPay,
		adjustmentsJSON,
		quote.ComputedAt,
	)

	return err
}

const quoteColumns = `
	id, config_id, tier_applied, driver_tier_applied,
	base_client_fee, mileage_surcharge_client, discount_applied_client,
	toll_surcharge_client, total_client_fee,
	base_driver_pay, mileage_surcharge_driver, toll_pass_through_driver,
	total_driver_pay, adjustments, computed_at
`

// GetByID retrieves a stored quote.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	quote, err := scanQuote(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return quote, nil
}

// ListByConfigID retrieves stored quotes for a configuration, newest first.
func (r *QuoteRepository) ListByConfigID(ctx context.Context, configID string, limit int) ([]*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE config_id = $1 ORDER BY computed_at DESC LIMIT $2`

	rows, err := r.q.QueryContext(ctx, query, configID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*domain.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}

	return quotes, rows.Err()
}

func scanQuote(row scanner) (*domain.Quote, error) {
	var (
		quote           domain.Quote
		tierJSON        []byte
		driverTierJSON  []byte
		adjustmentsJSON []byte
	)

	err := row.Scan(
		&quote.ID,
		&quote.ConfigID,
		&tierJSON,
		&driverTierJSON,
		&quote.BaseClientFee,
		&quote.MileageSurchargeClient,
		&quote.DiscountAppliedClient,
		&quote.TollSurchargeClient,
		&quote.TotalClientFee,
		&quote.BaseDriverPay,
		&quote.MileageSurchargeDriver,
		&quote.TollPassThroughDriver,
		&quote.TotalDriverPay,
		&adjustmentsJSON,
		&quote.ComputedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tierJSON, &quote.TierApplied); err != nil {
		return nil, fmt.Errorf("decode tier_applied for %s: %w", quote.ID, err)
	}
	if err := json.Unmarshal(driverTierJSON, &quote.DriverTierApplied); err != nil {
		return nil, fmt.Errorf("decode driver_tier_applied for %s: %w", quote.ID, err)
	}
	if err := json.Unmarshal(adjustmentsJSON, &quote.Adjustments); err != nil {
		return nil, fmt.Errorf("decode adjustments for %s: %w", quote.ID, err)
	}

	return &quote, nil
}
