package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"quoting/internal/domain"
	"quoting/internal/pricing"
	"quoting/internal/redis"
	"quoting/internal/repository"
)

// batchWorkers bounds the fan-out for batch quoting. Each computation is
// pure, so workers need no coordination beyond the result slot.
const batchWorkers = 8

// QuoteService computes, persists and retrieves quotes. The calculator
// itself stays pure; this service owns the configuration lookup and the
// audit-trail persistence around it.
type QuoteService struct {
	configRepo  repository.ConfigurationRepository
	quoteRepo   repository.QuoteRepository
	configCache redis.ConfigCacheInterface
	calc        *pricing.Calculator
}

// NewQuoteService creates a new QuoteService. configCache may be nil, in
// which case every lookup goes to the repository.
func NewQuoteService(
	configRepo repository.ConfigurationRepository,
	quoteRepo repository.QuoteRepository,
	configCache redis.ConfigCacheInterface,
	calc *pricing.Calculator,
) *QuoteService {
	return &QuoteService{
		configRepo:  configRepo,
		quoteRepo:   quoteRepo,
		configCache: configCache,
		calc:        calc,
	}
}

// CreateQuote computes a quote for the given order facts and persists it
// for audit. Each call produces a fresh quote with its own ID.
func (s *QuoteService) CreateQuote(ctx context.Context, facts domain.OrderFacts) (*domain.Quote, error) {
	quote, err := s.compute(ctx, facts)
	if err != nil {
		return nil, err
	}

	quote.ID = uuid.New().String()

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	return quote, nil
}

// PreviewQuote computes a quote without persisting it.
func (s *QuoteService) PreviewQuote(ctx context.Context, facts domain.OrderFacts) (*domain.Quote, error) {
	return s.compute(ctx, facts)
}

// BatchResult pairs one batch entry's quote with its error; exactly one
// of the two is set.
type BatchResult struct {
	Quote *domain.Quote
	Err   error
}

// PreviewBatch computes quotes for a batch of orders against whatever
// configuration snapshot each order resolves to, fanning out over a
// bounded worker pool. Results hold the input order; entries fail
// independently.
func (s *QuoteService) PreviewBatch(ctx context.Context, orders []domain.OrderFacts) ([]BatchResult, error) {
	if len(orders) == 0 {
		return nil, ErrEmptyBatch
	}

	results := make([]BatchResult, len(orders))

	sem := make(chan struct{}, batchWorkers)
	var wg sync.WaitGroup
	for i := range orders {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			quote, err := s.compute(ctx, orders[i])
			results[i] = BatchResult{Quote: quote, Err: err}
		}(i)
	}
	wg.Wait()

	return results, nil
}

// GetQuote retrieves a stored quote.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	if id == "" {
		return nil, ErrInvalidQuoteID
	}
	return s.quoteRepo.GetByID(ctx, id)
}

// ListQuotes retrieves stored quotes for a configuration, newest first.
func (s *QuoteService) ListQuotes(ctx context.Context, configID string, limit int) ([]*domain.Quote, error) {
	if configID == "" {
		return nil, ErrInvalidConfigID
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.quoteRepo.ListByConfigID(ctx, configID, limit)
}

func (s *QuoteService) compute(ctx context.Context, facts domain.OrderFacts) (*domain.Quote, error) {
	cfg, err := s.getConfiguration(ctx, facts.ConfigID)
	if err != nil {
		return nil, err
	}

	if !cfg.IsActive {
		return nil, ErrConfigurationInactive
	}

	return s.calc.Compute(cfg, facts)
}

// getConfiguration resolves a configuration snapshot, cache first. Cache
// failures fall through to the repository; quoting must not depend on
// Redis being up.
func (s *QuoteService) getConfiguration(ctx context.Context, configID string) (*domain.DeliveryConfiguration, error) {
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
