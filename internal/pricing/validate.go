package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"quoting/internal/domain"
)

// validateFacts rejects invalid OrderFacts before any pricing logic runs.
func validateFacts(cfg *domain.DeliveryConfiguration, facts domain.OrderFacts) error {
	if facts.ConfigID == "" {
		return inputErr("configId", "must not be empty")
	}

	if facts.ConfigID != cfg.ConfigID {
		return inputErr("configId", "does not match the supplied configuration")
	}

	if facts.DistanceMiles.IsNegative() {
		return inputErr("distanceMiles", "must not be negative")
	}

	if facts.TierValue.IsNegative() {
		return inputErr("orderHeadcountOrSubtotal", "must not be negative")
	}

	if facts.DailyDriveCountForDriver < 1 {
		return inputErr("dailyDriveCountForDriver", "must be at least 1")
	}

	return nil
}

// validateConfiguration checks the structural invariants the calculator
// relies on: contiguous non-overlapping tiers, non-negative rates, and
// well-formed discount and toll entries. It never repairs anything.
func validateConfiguration(cfg *domain.DeliveryConfiguration) error {
	if cfg.ConfigID == "" {
		return configErr("", "configId", "must not be empty")
	}

	if cfg.MileageRate.IsNegative() {
		return configErr(cfg.ConfigID, "mileageRate", "must not be negative")
	}

	if cfg.DistanceThreshold.IsNegative() {
		return configErr(cfg.ConfigID, "distanceThreshold", "must not be negative")
	}

	if cfg.LocalRadiusMiles.IsNegative() {
		return configErr(cfg.ConfigID, "localRadiusMiles", "must not be negative")
	}

	if err := validateTiers(cfg.ConfigID, "pricingTiers", cfg.PricingTiers); err != nil {
		return err
	}

	if err := validateDiscounts(cfg.ConfigID, cfg.DailyDriveDiscounts); err != nil {
		return err
	}

	pay := cfg.DriverPaySettings
	if pay.MileageRate.IsNegative() {
		return configErr(cfg.ConfigID, "driverPaySettings.mileageRate", "must not be negative")
	}
	if pay.DistanceThreshold.IsNegative() {
		return configErr(cfg.ConfigID, "driverPaySettings.distanceThreshold", "must not be negative")
	}
	if err := validateTiers(cfg.ConfigID, "driverPaySettings.payTiers", pay.PayTiers); err != nil {
		return err
	}

	return validateTolls(cfg.ConfigID, cfg.BridgeTollSettings)
}

func validateTiers(configID, field string, tiers []domain.PricingTier) error {
	if len(tiers) == 0 {
		return configErr(configID, field, "must not be empty")
	}

	for i, tier := range tiers {
		at := fmt.Sprintf("%s[%d]", field, i)

		if tier.RegularRate.IsNegative() {
			return configErr(configID, at+".regularRate", "must not be negative")
		}
		if tier.Within10Miles.IsNegative() {
			return configErr(configID, at+".within10Miles", "must not be negative")
		}
		if tier.MinSize.IsNegative() {
			return configErr(configID, at+".minSize", "must not be negative")
		}

		if tier.MaxSize != nil {
			if !tier.MaxSize.GreaterThan(tier.MinSize) {
				return configErr(configID, at+".maxSize", "must be greater than minSize")
			}
			// Interior tiers must be contiguous with the next one.
			if i+1 < len(tiers) && !tiers[i+1].MinSize.Equal(*tier.MaxSize) {
				return configErr(configID, at+".maxSize", "tiers must be contiguous")
			}
		} else if i+1 < len(tiers) {
			return configErr(configID, at+".maxSize", "only the last tier may be unbounded")
		}
	}

	return nil
}

func validateDiscounts(configID string, rules []domain.DriveDiscountRule) error {
	prev := 0
	for i, rule := range rules {
		at := fmt.Sprintf("dailyDriveDiscounts[%d]", i)

		if rule.MinDailyDrives < 1 {
			return configErr(configID, at+".minDailyDrives", "must be at least 1")
		}
		if rule.MinDailyDrives <= prev {
			return configErr(configID, at+".minDailyDrives", "rules must be strictly ascending")
		}
		prev = rule.MinDailyDrives

		if (rule.DiscountFraction == nil) == (rule.DiscountAmount == nil) {
			return configErr(configID, at, "exactly one of discountFraction and discountAmount must be set")
		}
		if rule.DiscountFraction != nil {
			if rule.DiscountFraction.IsNegative() || rule.DiscountFraction.GreaterThan(decimal.NewFromInt(1)) {
				return configErr(configID, at+".discountFraction", "must be between 0 and 1")
			}
		}
		if rule.DiscountAmount != nil && rule.DiscountAmount.IsNegative() {
			return configErr(configID, at+".discountAmount", "must not be negative")
		}
	}

	return nil
}

func validateTolls(configID string, settings domain.BridgeTollSettings) error {
	seen := make(map[string]bool, len(settings.Tolls))
	for i, toll := range settings.Tolls {
		at := fmt.Sprintf("bridgeTollSettings.tolls[%d]", i)

		if toll.TollID == "" {
			return configErr(configID, at+".tollId", "must not be empty")
		}
		if seen[toll.TollID] {
			return configErr(configID, at+".tollId", "duplicate toll id "+toll.TollID)
		}
		seen[toll.TollID] = true

		if toll.Amount.IsNegative() {
			return configErr(configID, at+".amount", "must not be negative")
		}
	}

	return nil
}
