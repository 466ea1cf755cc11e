package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"quoting/internal/domain"
	"quoting/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK CONFIGURATION REPOSITORY
// ──────────────────────────────────────────────

// MockConfigurationRepository is a mock implementation of ConfigurationRepository.
type MockConfigurationRepository struct {
	mu      sync.RWMutex
	configs map[string]*domain.DeliveryConfiguration

	// Counters for verification
	GetByConfigIDCallCount int32

	// Error injection
	GetByConfigIDError error
}

// NewMockConfigurationRepository creates a new mock configuration repository.
func NewMockConfigurationRepository() *MockConfigurationRepository {
	return &MockConfigurationRepository{
		configs: make(map[string]*domain.DeliveryConfiguration),
	}
}

// AddConfiguration adds a configuration to the mock repository.
func (m *MockConfigurationRepository) AddConfiguration(cfg *domain.DeliveryConfiguration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs[cfg.ConfigID] = cfg
}

func (m *MockConfigurationRepository) GetByConfigID(ctx context.Context, configID string) (*domain.DeliveryConfiguration, error) {
	atomic.AddInt32(&m.GetByConfigIDCallCount, 1)
	if m.GetByConfigIDError != nil {
		return nil, m.GetByConfigIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.configs[configID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cfg, nil
}

func (m *MockConfigurationRepository) GetActive(ctx context.Context) ([]*domain.DeliveryConfiguration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var active []*domain.DeliveryConfiguration
	for _, cfg := range m.configs {
		if cfg.IsActive {
			active = append(active, cfg)
		}
	}
	return active, nil
}

// ──────────────────────────────────────────────
// MOCK QUOTE REPOSITORY
// ──────────────────────────────────────────────

// MockQuoteRepository is a mock implementation of QuoteRepository.
type MockQuoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]*domain.Quote

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockQuoteRepository creates a new mock quote repository.
func NewMockQuoteRepository() *MockQuoteRepository {
	return &MockQuoteRepository{
		quotes: make(map[string]*domain.Quote),
	}
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[quote.ID] = quote
	return nil
}

func (m *MockQuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	quote, ok := m.quotes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return quote, nil
}

func (m *MockQuoteRepository) ListByConfigID(ctx context.Context, configID string, limit int) ([]*domain.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var quotes []*domain.Quote
	for _, quote := range m.quotes {
		if quote.ConfigID == configID && len(quotes) < limit {
			quotes = append(quotes, quote)
		}
	}
	return quotes, nil
}

// StoredCount returns the number of persisted quotes.
func (m *MockQuoteRepository) StoredCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.quotes)
}

// ──────────────────────────────────────────────
// MOCK CONFIG CACHE
// ──────────────────────────────────────────────

// MockConfigCache is an in-memory mock of the Redis configuration cache.
type MockConfigCache struct {
	mu      sync.RWMutex
	configs map[string]*domain.DeliveryConfiguration

	// Counters for verification
	GetCallCount int32
	SetCallCount int32

	// Error injection
	GetError error
	SetError error
}

// NewMockConfigCache creates a new mock configuration cache.
func NewMockConfigCache() *MockConfigCache {
	return &MockConfigCache{
		configs: make(map[string]*domain.DeliveryConfiguration),
	}
}

func (m *MockConfigCache) GetConfiguration(ctx context.Context, configID string) (*domain.DeliveryConfiguration, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configs[configID], nil
}

func (m *MockConfigCache) SetConfiguration(ctx context.Context, cfg *domain.DeliveryConfiguration) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs[cfg.ConfigID] = cfg
	return nil
}

func (m *MockConfigCache) InvalidateConfiguration(ctx context.Context, configID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.configs, configID)
	return nil
}

// ──────────────────────────────────────────────
// FIXTURES
// ──────────────────────────────────────────────

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustDecimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// activeConfiguration returns a minimal valid configuration for the
// given config id.
func activeConfiguration(configID string) *domain.DeliveryConfiguration {
	return &domain.DeliveryConfiguration{
		ConfigID:   configID,
		ClientName: "Test Client",
		VendorName: "Test Vendor",
		IsActive:   true,
		TierKey:    domain.TierKeyHeadcount,
		PricingTiers: []domain.PricingTier{
			{MinSize: mustDecimal("0"), RegularRate: mustDecimal("50.00"), Within10Miles: mustDecimal("50.00")},
		},
		MileageRate:       mustDecimal("2.00"),
		DistanceThreshold: mustDecimal("10"),
		DailyDriveDiscounts: []domain.DriveDiscountRule{
			{MinDailyDrives: 5, DiscountFraction: mustDecimalPtr("0.10")},
		},
		DriverPaySettings: domain.DriverPaySettings{
			PayTiers: []domain.PricingTier{
				{MinSize: mustDecimal("0"), RegularRate: mustDecimal("30.00"), Within10Miles: mustDecimal("30.00")},
			},
			MileageRate:       mustDecimal("1.25"),
			DistanceThreshold: mustDecimal("10"),
		},
		BridgeTollSettings: domain.BridgeTollSettings{
			Tolls: []domain.BridgeToll{
				{TollID: "bay-bridge", Amount: mustDecimal("8.00")},
			},
		},
	}
}

func orderFacts(configID string) domain.OrderFacts {
	return domain.OrderFacts{
		ConfigID:                 configID,
		DistanceMiles:            mustDecimal("5"),
		TierValue:                mustDecimal("10"),
		DailyDriveCountForDriver: 1,
	}
}
