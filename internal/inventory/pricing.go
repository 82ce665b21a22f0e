package inventory

import (
	"time"

	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/money"
)

// UnitPrice returns the effective unit price of an offer and the original
// price it was discounted from. When no discount is in effect both values
// equal the list price. The valid_until comparison is strict: a discount
// expiring exactly now no longer applies.
func UnitPrice(inv *model.Inventory, now time.Time) (unit, original float64) {
	original = inv.Price
	if inv.HasActiveDiscount(now) {
		return money.Round2(inv.Price * (1 - *inv.DiscountPct/100)), original
	}
	return inv.Price, original
}
