package pricing

import (
	"github.com/shopspring/decimal"

	"quoting/internal/domain"
)

// tollResult carries the fixed toll charged to the client and the amount
// credited to the driver when the configuration passes tolls through.
type tollResult struct {
	client decimal.Decimal
	driver decimal.Decimal
}

// resolveToll applies the configuration's fixed toll for a flagged
// crossing. A crossing the configuration cannot price is a
// ConfigurationError, never a silent zero: billing must not under-charge
// a known toll crossing. Tolls are never discounted.
func resolveToll(cfg *domain.DeliveryConfiguration, facts domain.OrderFacts) (tollResult, error) {
	if !facts.CrossesTolledRoute {
		return tollResult{}, nil
	}

	tolls := cfg.BridgeTollSettings.Tolls
	if len(tolls) == 0 {
		return tollResult{}, configErr(cfg.ConfigID, "bridgeTollSettings.tolls", "route crosses a tolled route but no tolls are configured")
	}

	var toll domain.BridgeToll
	if facts.RouteTollID == "" {
		// Without a route toll id only a single configured toll can serve
		// as the default.
		if len(tolls) != 1 {
			return tollResult{}, configErr(cfg.ConfigID, "bridgeTollSettings.tolls", "multiple tolls configured but order carries no route toll id")
		}
		toll = tolls[0]
	} else {
		var ok bool
		toll, ok = cfg.BridgeTollSettings.Find(facts.RouteTollID)
		if !ok {
			return tollResult{}, configErr(cfg.ConfigID, "bridgeTollSettings.tolls", "no toll configured for route toll id "+facts.RouteTollID)
		}
	}

	amount := roundMoney(toll.Amount)

	result := tollResult{client: amount}
	if cfg.DriverPaySettings.TollPassThrough {
		result.driver = amount
	}

	return result, nil
}
