package discount

import "github.com/freshkart/freshkart-api/internal/model"

const (
	goldThreshold   = 15
	silverThreshold = 5

	goldPct   = 10.0
	silverPct = 5.0
)

// TierFor maps a customer's delivered-order count to their loyalty tier and
// its percentage discount.
func TierFor(deliveredOrders int) (model.LoyaltyTier, float64) {
	switch {
	case deliveredOrders >= goldThreshold:
		return model.TierGold, goldPct
	case deliveredOrders >= silverThreshold:
		return model.TierSilver, silverPct
	default:
		return model.TierBronze, 0
	}
}
