package domain

import "github.com/shopspring/decimal"

// OrderFacts is the calculator's order-side input, assembled by the caller
// from an order record. The calculator never reads the order itself.
type OrderFacts struct {
	ConfigID string `json:"configId"`

	DistanceMiles decimal.Decimal `json:"distanceMiles"`

	// TierValue is the order's size in the unit the configuration's
	// TierKey declares (headcount or order subtotal).
	TierValue decimal.Decimal `json:"orderHeadcountOrSubtotal"`

	// DailyDriveCountForDriver includes the delivery being quoted, so it
	// is always at least 1.
	DailyDriveCountForDriver int `json:"dailyDriveCountForDriver"`

	CrossesTolledRoute bool   `json:"crossesTolledRoute"`
	RouteTollID        string `json:"routeTollId,omitempty"`
}
