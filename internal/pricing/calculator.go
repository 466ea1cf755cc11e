package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"quoting/internal/domain"
)

// Calculator turns a configuration snapshot and order facts into a Quote.
// It is stateless and performs no I/O; a single Calculator may be shared
// by any number of goroutines.
type Calculator struct {
	now func() time.Time
}

// NewCalculator creates a Calculator stamping quotes with the wall clock.
func NewCalculator() *Calculator {
	return NewCalculatorWithClock(time.Now)
}

// NewCalculatorWithClock creates a Calculator with an injected clock.
// With a fixed clock, repeated computations over the same inputs yield
// identical quotes.
func NewCalculatorWithClock(now func() time.Time) *Calculator {
	return &Calculator{now: now}
}

// Compute produces a Quote for the given configuration snapshot and order
// facts. Invalid facts return an *InputError before any pricing logic
// runs; inconsistent configurations return a *ConfigurationError. A
// returned Quote is complete: no partial quote accompanies an error.
func (c *Calculator) Compute(cfg *domain.DeliveryConfiguration, facts domain.OrderFacts) (*domain.Quote, error) {
	if err := validateFacts(cfg, facts); err != nil {
		return nil, err
	}

	if err := validateConfiguration(cfg); err != nil {
		return nil, err
	}

	local := facts.DistanceMiles.LessThanOrEqual(cfg.LocalRadius())

	client := clientSchedule(cfg)
	driver := driverSchedule(cfg)

	clientTier := client.resolveTier(facts.TierValue, local)
	driverTier := driver.resolveTier(facts.TierValue, local)

	mileageClient := client.mileageSurcharge(facts.DistanceMiles)
	mileageDriver := driver.mileageSurcharge(facts.DistanceMiles)

	discount, err := resolveDiscount(cfg, facts, clientTier.base)
	if err != nil {
		return nil, err
	}

	toll, err := resolveToll(cfg, facts)
	if err != nil {
		return nil, err
	}

	adjustments := domain.Adjustments{
		ClampedTier:    clientTier.clamped || driverTier.clamped,
		DiscountCapped: discount.capped,
	}

	totalClient := clientTier.base.Add(mileageClient).Add(toll.client).Sub(discount.amount)
	if totalClient.IsNegative() {
		totalClient = decimal.Zero
		adjustments.ClientTotalFloored = true
	}

	totalDriver := driverTier.base.Add(mileageDriver).Add(toll.driver)
	if totalDriver.IsNegative() {
		totalDriver = decimal.Zero
		adjustments.DriverTotalFloored = true
	}

	return &domain.Quote{
		ConfigID:          cfg.ConfigID,
		TierApplied:       clientTier.applied,
		DriverTierApplied: driverTier.applied,

		BaseClientFee:          clientTier.base,
		MileageSurchargeClient: mileageClient,
		DiscountAppliedClient:  discount.amount,
		TollSurchargeClient:    toll.client,
		TotalClientFee:         totalClient,

		BaseDriverPay:          driverTier.base,
		MileageSurchargeDriver: mileageDriver,
		TollPassThroughDriver:  toll.driver,
		TotalDriverPay:         totalDriver,

		Adjustments: adjustments,
		ComputedAt:  c.now().UTC(),
	}, nil
}
