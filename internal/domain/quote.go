package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppliedTier records which pricing tier a quote used, on each side of the
// calculation, so the bill can be rendered without re-deriving it.
type AppliedTier struct {
	Index         int              `json:"index"`
	MinSize       decimal.Decimal  `json:"minSize"`
	MaxSize       *decimal.Decimal `json:"maxSize,omitempty"`
	RateApplied   decimal.Decimal  `json:"rateApplied"`
	LocalRateUsed bool             `json:"localRateUsed"`
}

// Adjustments flags the non-fatal arithmetic corrections a computation
// made. Auditing depends on these being set whenever a correction
// happened; they are never errors.
type Adjustments struct {
	ClampedTier        bool `json:"clampedTier,omitempty"`
	DiscountCapped     bool `json:"discountCapped,omitempty"`
	ClientTotalFloored bool `json:"clientTotalFloored,omitempty"`
	DriverTotalFloored bool `json:"driverTotalFloored,omitempty"`
}

// Applied reports whether any adjustment was made.
func (a Adjustments) Applied() bool {
	return a.ClampedTier || a.DiscountCapped || a.ClientTotalFloored || a.DriverTotalFloored
}

// Quote is the immutable result of one pricing computation. Re-quoting an
// order produces a new Quote; existing ones are never edited in place.
type Quote struct {
	ID       string `json:"id,omitempty"`
	ConfigID string `json:"configId"`

	TierApplied       AppliedTier `json:"tierApplied"`
	DriverTierApplied AppliedTier `json:"driverTierApplied"`

	BaseClientFee          decimal.Decimal `json:"baseClientFee"`
	MileageSurchargeClient decimal.Decimal `json:"mileageSurchargeClient"`
	DiscountAppliedClient  decimal.Decimal `json:"discountAppliedClient"`
	TollSurchargeClient    decimal.Decimal `json:"tollSurchargeClient"`
	TotalClientFee         decimal.Decimal `json:"totalClientFee"`

	BaseDriverPay          decimal.Decimal `json:"baseDriverPay"`
	MileageSurchargeDriver decimal.Decimal `json:"mileageSurchargeDriver"`
	TollPassThroughDriver  decimal.Decimal `json:"tollPassThroughDriver"`
	TotalDriverPay         decimal.Decimal `json:"totalDriverPay"`

	Adjustments Adjustments `json:"adjustments"`
	ComputedAt  time.Time   `json:"computedAt"`
}
