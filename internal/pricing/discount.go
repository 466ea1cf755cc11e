package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"quoting/internal/domain"
)

// discountResult is the client-side discount for one order. Driver pay is
// never discounted; the daily-drive discount is a client incentive only.
type discountResult struct {
	amount decimal.Decimal
	capped bool
}

// resolveDiscount picks the discount for the client base fee. An explicit
// discountOverride in customSettings wins over the daily-drive rules;
// otherwise the highest-threshold rule satisfied by the driver's daily
// drive count applies. At most one discount applies per order.
func resolveDiscount(cfg *domain.DeliveryConfiguration, facts domain.OrderFacts, baseClientFee decimal.Decimal) (discountResult, error) {
	override, err := cfg.CustomSettings.DiscountOverride()
	if err != nil {
		return discountResult{}, configErr(cfg.ConfigID, "customSettings.discountOverride", "malformed: "+err.Error())
	}

	if override != nil {
		return applyOverride(cfg.ConfigID, override, baseClientFee)
	}

	rules := cfg.DailyDriveDiscounts
	if len(rules) == 0 {
		return discountResult{}, nil
	}

	// Rules are ascending by minDailyDrives: find the first rule the
	// drive count does not satisfy, then step back one.
	n := sort.Search(len(rules), func(i int) bool {
		return rules[i].MinDailyDrives > facts.DailyDriveCountForDriver
	})
	if n == 0 {
		return discountResult{}, nil
	}

	rule := rules[n-1]
	if rule.DiscountFraction != nil {
		return capDiscount(roundMoney(baseClientFee.Mul(*rule.DiscountFraction)), baseClientFee), nil
	}
	return capDiscount(roundMoney(*rule.DiscountAmount), baseClientFee), nil
}

func applyOverride(configID string, override *domain.DiscountOverride, baseClientFee decimal.Decimal) (discountResult, error) {
	if (override.Fraction == nil) == (override.Amount == nil) {
		return discountResult{}, configErr(configID, "customSettings.discountOverride", "exactly one of fraction and amount must be set")
	}

	if override.Fraction != nil {
		if override.Fraction.IsNegative() || override.Fraction.GreaterThan(decimal.NewFromInt(1)) {
			return discountResult{}, configErr(configID, "customSettings.discountOverride.fraction", "must be between 0 and 1")
		}
		return capDiscount(roundMoney(baseClientFee.Mul(*override.Fraction)), baseClientFee), nil
	}

	if override.Amount.IsNegative() {
		return discountResult{}, configErr(configID, "customSettings.discountOverride.amount", "must not be negative")
	}
	return capDiscount(roundMoney(*override.Amount), baseClientFee), nil
}

// capDiscount keeps the discount from exceeding the base fee it applies
// to (apply-then-floor, never apply-then-negative).
func capDiscount(amount, baseClientFee decimal.Decimal) discountResult {
	if amount.GreaterThan(baseClientFee) {
		return discountResult{amount: baseClientFee, capped: true}
	}
	return discountResult{amount: amount}
}
