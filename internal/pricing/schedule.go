package pricing

import (
	"github.com/shopspring/decimal"

	"quoting/internal/domain"
)

// schedule is the tier/mileage rule set for one side of the calculation.
// The client fee and the driver pay are two instances of the same
// schedule logic with independent parameters, which keeps the two sides
// in formula parity.
type schedule struct {
	tiers             []domain.PricingTier
	mileageRate       decimal.Decimal
	distanceThreshold decimal.Decimal
}

func clientSchedule(cfg *domain.DeliveryConfiguration) schedule {
	return schedule{
		tiers:             cfg.PricingTiers,
		mileageRate:       cfg.MileageRate,
		distanceThreshold: cfg.DistanceThreshold,
	}
}

func driverSchedule(cfg *domain.DeliveryConfiguration) schedule {
	return schedule{
		tiers:             cfg.DriverPaySettings.PayTiers,
		mileageRate:       cfg.DriverPaySettings.MileageRate,
		distanceThreshold: cfg.DriverPaySettings.DistanceThreshold,
	}
}

// tierResult carries the selected tier and its base amount.
type tierResult struct {
	applied domain.AppliedTier
	base    decimal.Decimal
	clamped bool
}

// resolveTier selects the tier containing tierValue. A value outside all
// tiers clamps to the nearest tier instead of rejecting the order; the
// caller records the clamp for audit. Local orders take the tier's
// Within10Miles rate.
func (s schedule) resolveTier(tierValue decimal.Decimal, local bool) tierResult {
	index := -1
	for i := range s.tiers {
		if s.tiers[i].Contains(tierValue) {
			index = i
			break
		}
	}

	clamped := false
	if index < 0 {
		clamped = true
		if tierValue.LessThan(s.tiers[0].MinSize) {
			index = 0
		} else {
			index = len(s.tiers) - 1
		}
	}

	tier := s.tiers[index]
	rate := tier.RegularRate
	if local {
		rate = tier.Within10Miles
	}
	rate = roundMoney(rate)

	return tierResult{
		applied: domain.AppliedTier{
			Index:         index,
			MinSize:       tier.MinSize,
			MaxSize:       tier.MaxSize,
			RateApplied:   rate,
			LocalRateUsed: local,
		},
		base:    rate,
		clamped: clamped,
	}
}

// mileageSurcharge charges mileageRate per mile beyond distanceThreshold.
// Rounding happens here, per line item, not at the final total.
func (s schedule) mileageSurcharge(distanceMiles decimal.Decimal) decimal.Decimal {
	overage := distanceMiles.Sub(s.distanceThreshold)
	if !overage.IsPositive() {
		return decimal.Zero
	}
	return roundMoney(overage.Mul(s.mileageRate))
}

// roundMoney rounds to currency precision, two decimal places half-up.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
