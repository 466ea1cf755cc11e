package repository

import (
	"context"

	"quoting/internal/domain"
)

// QuoteRepository is the persistence sink for computed quotes. Quotes are
// insert-only: re-quoting an order stores a new row, supporting the audit
// trail.
type QuoteRepository interface {
	// Create persists a freshly computed quote.
	Create(ctx context.Context, quote *domain.Quote) error

	// GetByID retrieves a stored quote.
	GetByID(ctx context.Context, id string) (*domain.Quote, error)

	// ListByConfigID retrieves stored quotes for a configuration, newest
	// first.
	ListByConfigID(ctx context.Context, configID string, limit int) ([]*domain.Quote, error)
}
