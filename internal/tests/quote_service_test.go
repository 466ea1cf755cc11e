package tests

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"quoting/internal/domain"
	"quoting/internal/pricing"
	"quoting/internal/repository"
	"quoting/internal/service"
)

func fixedCalculator() *pricing.Calculator {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return pricing.NewCalculatorWithClock(func() time.Time { return at })
}

// ──────────────────────────────────────────────
// 1. QUOTE CREATION
// ──────────────────────────────────────────────

func TestCreateQuote_PersistsWithID(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigurationRepository()
	configRepo.AddConfiguration(activeConfiguration("cfg-1"))
	quoteRepo := NewMockQuoteRepository()

	svc := service.NewQuoteService(configRepo, quoteRepo, nil, fixedCalculator())

	quote, err := svc.CreateQuote(context.Background(), orderFacts("cfg-1"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if quote.ID == "" {
		t.Error("expected quote ID to be set")
	}
	if got := atomic.LoadInt32(&quoteRepo.CreateCallCount); got != 1 {
		t.Errorf("expected 1 create call, got %d", got)
	}
	if quote.ConfigID != "cfg-1" {
		t.Errorf("expected config id cfg-1, got %s", quote.ConfigID)
	}
}

func TestCreateQuote_ReQuoteProducesNewQuote(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigurationRepository()
	configRepo.AddConfiguration(activeConfiguration("cfg-1"))
	quoteRepo := NewMockQuoteRepository()

	svc := service.NewQuoteService(configRepo, quoteRepo, nil, fixedCalculator())

	first, err := svc.CreateQuote(context.Background(), orderFacts("cfg-1"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	second, err := svc.CreateQuote(context.Background(), orderFacts("cfg-1"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if first.ID == second.ID {
		t.Error("expected re-quoting to produce a new quote, not edit in place")
	}
	if quoteRepo.StoredCount() != 2 {
		t.Errorf("expected 2 stored quotes, got %d", quoteRepo.StoredCount())
	}
}

func TestCreateQuote_InactiveConfiguration_Fails(t *testing.T) {
	t.Parallel()

	cfg := activeConfiguration("cfg-1")
	cfg.IsActive = false

	configRepo := NewMockConfigurationRepository()
	configRepo.AddConfiguration(cfg)
	quoteRepo := NewMockQuoteRepository()

	svc := service.NewQuoteService(configRepo, quoteRepo, nil, fixedCalculator())

	_, err := svc.CreateQuote(context.Background(), orderFacts("cfg-1"))
	if !errors.Is(err, service.ErrConfigurationInactive) {
		t.Fatalf("expected ErrConfigurationInactive, got: %v", err)
	}
	if quoteRepo.StoredCount() != 0 {
		t.Error("expected no quote to be persisted")
	}
}

func TestCreateQuote_UnknownConfiguration_Fails(t *testing.T) {
	t.Parallel()

	svc := service.NewQuoteService(NewMockConfigurationRepository(), NewMockQuoteRepository(), nil, fixedCalculator())

	_, err := svc.CreateQuote(context.Background(), orderFacts("cfg-missing"))
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestCreateQuote_CalculatorErrorIsNotPersisted(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigurationRepository()
	configRepo.AddConfiguration(activeConfiguration("cfg-1"))
	quoteRepo := NewMockQuoteRepository()

	svc := service.NewQuoteService(configRepo, quoteRepo, nil, fixedCalculator())

	facts := orderFacts("cfg-1")
	facts.CrossesTolledRoute = true
	facts.RouteTollID = "unknown-bridge"

	_, err := svc.CreateQuote(context.Background(), facts)

	var cfgErr *pricing.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got: %v", err)
	}
	if quoteRepo.StoredCount() != 0 {
		t.Error("expected no partial quote to be persisted")
	}
}

// ──────────────────────────────────────────────
// 2. CONFIGURATION CACHING
// ──────────────────────────────────────────────

func TestCreateQuote_CacheHitSkipsRepository(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigurationRepository()
	cache := NewMockConfigCache()
	_ = cache.SetConfiguration(context.Background(), activeConfiguration("cfg-1"))
	atomic.StoreInt32(&cache.SetCallCount, 0)

	svc := service.NewQuoteService(configRepo, NewMockQuoteRepository(), cache, fixedCalculator())

	_, err := svc.CreateQuote(context.Background(), orderFacts("cfg-1"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got := atomic.LoadInt32(&configRepo.GetByConfigIDCallCount); got != 0 {
		t.Errorf("expected repository to be skipped on cache hit, got %d calls", got)
	}
}

func TestCreateQuote_CacheMissPopulatesCache(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigurationRepository()
	configRepo.AddConfiguration(activeConfiguration("cfg-1"))
	cache := NewMockConfigCache()

	svc := service.NewQuoteService(configRepo, NewMockQuoteRepository(), cache, fixedCalculator())

	_, err := svc.CreateQuote(context.Background(), orderFacts("cfg-1"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got := atomic.LoadInt32(&cache.SetCallCount); got != 1 {
		t.Errorf("expected cache to be populated once, got %d", got)
	}
}

func TestCreateQuote_CacheFailureFallsBackToRepository(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigurationRepository()
	configRepo.AddConfiguration(activeConfiguration("cfg-1"))
	cache := NewMockConfigCache()
	cache.GetError = errors.New("redis down")

	svc := service.NewQuoteService(configRepo, NewMockQuoteRepository(), cache, fixedCalculator())

	_, err := svc.CreateQuote(context.Background(), orderFacts("cfg-1"))
	if err != nil {
		t.Fatalf("expected quoting to survive a cache outage, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 3. PREVIEW & BATCH
// ──────────────────────────────────────────────

func TestPreviewQuote_DoesNotPersist(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigurationRepository()
	configRepo.AddConfiguration(activeConfiguration("cfg-1"))
	quoteRepo := NewMockQuoteRepository()

	svc := service.NewQuoteService(configRepo, quoteRepo, nil, fixedCalculator())

	quote, err := svc.PreviewQuote(context.Background(), orderFacts("cfg-1"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if quote.ID != "" {
		t.Error("expected preview quote to carry no ID")
	}
	if quoteRepo.StoredCount() != 0 {
		t.Error("expected preview not to persist")
	}
}

func TestPreviewBatch_ResultsAlignWithOrders(t *testing.T) {
	t.Parallel()

	configRepo := NewMockConfigurationRepository()
	configRepo.AddConfiguration(activeConfiguration("cfg-1"))

	svc := service.NewQuoteService(configRepo, NewMockQuoteRepository(), nil, fixedCalculator())

	batch := []struct {
		configID string
		wantErr  bool
	}{
		{"cfg-1", false},
		{"cfg-missing", true},
		{"cfg-1", false},
	}

	orders := make([]domain.OrderFacts, len(batch))
	for i, entry := range batch {
		orders[i] = orderFacts(entry.configID)
	}

	results, err := svc.PreviewBatch(context.Background(), orders)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(results) != len(batch) {
		t.Fatalf("expected %d results, got %d", len(batch), len(results))
	}

	for i, entry := range batch {
		if entry.wantErr && results[i].Err == nil {
			t.Errorf("entry %d: expected error", i)
		}
		if !entry.wantErr {
			if results[i].Err != nil {
				t.Errorf("entry %d: expected no error, got: %v", i, results[i].Err)
			}
			if results[i].Quote == nil || results[i].Quote.ConfigID != entry.configID {
				t.Errorf("entry %d: result misaligned with input order", i)
			}
		}
	}
}

func TestPreviewBatch_EmptyBatch_Fails(t *testing.T) {
	t.Parallel()

	svc := service.NewQuoteService(NewMockConfigurationRepository(), NewMockQuoteRepository(), nil, fixedCalculator())

	_, err := svc.PreviewBatch(context.Background(), nil)
	if !errors.Is(err, service.ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got: %v", err)
	}
}
