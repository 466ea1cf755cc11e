package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TierKey identifies which order attribute a configuration's tier
// boundaries are expressed in.
type TierKey string

const (
	TierKeyHeadcount TierKey = "HEADCOUNT"
	TierKeySubtotal  TierKey = "SUBTOTAL"
)

// DefaultLocalRadiusMiles is used when a configuration does not declare
// its own local radius. The persisted field name "within10Miles" records
// this historical default.
var DefaultLocalRadiusMiles = decimal.NewFromInt(10)

// DeliveryConfiguration holds one client/vendor pairing's pricing and
// driver-pay rules. Instances are produced by the external synchronization
// process and are read-only to the calculator; field names in the JSON
// tags are the synchronization compatibility surface and must not change.
type DeliveryConfiguration struct {
	ConfigID   string `json:"configId"`
	ClientName string `json:"clientName"`
	VendorName string `json:"vendorName"`

	// IsActive excludes a configuration from quoting without deleting it;
	// inactive configurations are retained for audit.
	IsActive bool `json:"isActive"`

	// TierKey declares whether PricingTiers boundaries are headcount or
	// order subtotal; OrderFacts.TierValue must carry the matching
	// quantity.
	TierKey TierKey `json:"tierKey"`

	// PricingTiers is ordered ascending by MinSize, non-overlapping and
	// contiguous.
	PricingTiers []PricingTier `json:"pricingTiers"`

	// MileageRate is charged per mile beyond DistanceThreshold.
	MileageRate       decimal.Decimal `json:"mileageRate"`
	DistanceThreshold decimal.Decimal `json:"distanceThreshold"`

	// LocalRadiusMiles bounds the "local" flat-fee branch; zero means the
	// historical default applies.
	LocalRadiusMiles decimal.Decimal `json:"localRadiusMiles"`

	// DailyDriveDiscounts is ordered ascending by MinDailyDrives.
	DailyDriveDiscounts []DriveDiscountRule `json:"dailyDriveDiscounts"`

	DriverPaySettings  DriverPaySettings  `json:"driverPaySettings"`
	BridgeTollSettings BridgeTollSettings `json:"bridgeTollSettings"`

	// CustomSettings carries configuration-specific overrides, opaque to
	// the generic engine except for the named extension points exposed as
	// methods on CustomSettings.
	CustomSettings CustomSettings `json:"customSettings,omitempty"`

	// Notes never affects computation.
	Notes string `json:"notes,omitempty"`
}

// LocalRadius returns the configured local radius, falling back to the
// default when the configuration leaves it unset.
func (c *DeliveryConfiguration) LocalRadius() decimal.Decimal {
	if c.LocalRadiusMiles.IsPositive() {
		return c.LocalRadiusMiles
	}
	return DefaultLocalRadiusMiles
}

// PricingTier is one bracket of order size with its client fee rates.
// MaxSize nil means the tier is unbounded above; boundaries are
// [MinSize, MaxSize).
type PricingTier struct {
	MinSize decimal.Decimal  `json:"minSize"`
	MaxSize *decimal.Decimal `json:"maxSize,omitempty"`

	// RegularRate is the base client fee for orders in this tier.
	RegularRate decimal.Decimal `json:"regularRate"`

	// Within10Miles is the flat-fee variant applied when the delivery is
	// local. When flat-fee pricing is enabled for a tier it equals
	// RegularRate.
	Within10Miles decimal.Decimal `json:"within10Miles"`
}

// Contains reports whether v falls inside the tier's boundaries.
func (t *PricingTier) Contains(v decimal.Decimal) bool {
	if v.LessThan(t.MinSize) {
		return false
	}
	return t.MaxSize == nil || v.LessThan(*t.MaxSize)
}

// DriveDiscountRule discounts the client fee once a driver has completed
// MinDailyDrives deliveries that day. Exactly one of DiscountFraction and
// DiscountAmount is set.
type DriveDiscountRule struct {
	MinDailyDrives   int              `json:"minDailyDrives"`
	DiscountFraction *decimal.Decimal `json:"discountFraction,omitempty"`
	DiscountAmount   *decimal.Decimal `json:"discountAmount,omitempty"`
}

// DriverPaySettings mirrors the client-side tier/mileage shape for driver
// compensation, independently parameterized so the two sides never share
// amounts, only the resolution formula.
type DriverPaySettings struct {
	PayTiers          []PricingTier   `json:"payTiers"`
	MileageRate       decimal.Decimal `json:"mileageRate"`
	DistanceThreshold decimal.Decimal `json:"distanceThreshold"`

	// TollPassThrough credits the client-side toll amount to driver pay.
	TollPassThrough bool `json:"tollPassThrough"`
}

// BridgeToll is one fixed toll surcharge keyed by route toll id.
type BridgeToll struct {
	TollID string          `json:"tollId"`
	Name   string          `json:"name,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// BridgeTollSettings lists the fixed tolls a configuration recognizes.
type BridgeTollSettings struct {
	Tolls []BridgeToll `json:"tolls,omitempty"`
}

// Find returns the toll matching tollID, or false when none matches.
func (s *BridgeTollSettings) Find(tollID string) (BridgeToll, bool) {
	for _, toll := range s.Tolls {
		if toll.TollID == tollID {
			return toll, true
		}
	}
	return BridgeToll{}, false
}

// CustomSettings holds configuration-specific overrides as raw JSON,
// inspected by the engine only through named extension points.
type CustomSettings map[string]json.RawMessage

// Extension point keys recognized by the engine.
const (
	customKeyDiscountOverride = "discountOverride"
)

// DiscountOverride replaces the daily-drive discount rule for the client
// fee when present in CustomSettings. Exactly one of Fraction and Amount
// is set.
type DiscountOverride struct {
	Fraction *decimal.Decimal `json:"fraction,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Reason   string           `json:"reason,omitempty"`
}

// DiscountOverride decodes the discount override extension point.
// Returns (nil, nil) when the settings do not define one.
func (s CustomSettings) DiscountOverride() (*DiscountOverride, error) {
	raw, ok := s[customKeyDiscountOverride]
	if !ok {
		return nil, nil
	}

	var override DiscountOverride
	if err := json.Unmarshal(raw, &override); err != nil {
		return nil, err
	}

	return &override, nil
}
