package discount

import (
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/money"
)

// Quote is the outcome of resolving the single order-level discount.
type Quote struct {
	Tier          model.LoyaltyTier  `json:"tier"`
	TierDiscount  float64            `json:"tier_discount"`
	CodeDiscount  float64            `json:"code_discount"`
	FinalDiscount float64            `json:"final_discount"`
	DiscountType  model.DiscountType `json:"discount_type"`
	Percentage    float64            `json:"percentage"`
	AppliedCodeID *string            `json:"applied_code_id"`
}

// Resolve picks the better of the tier and code discounts. The code wins only
// when strictly larger, so ties go to the tier and the two never stack.
func Resolve(tier model.LoyaltyTier, tierPct float64, subtotal float64, codePct float64, codeID *string) Quote {
	tierAmount := money.Round2(subtotal * tierPct / 100)
	codeAmount := money.Round2(subtotal * codePct / 100)

	q := Quote{
		Tier:          tier,
		TierDiscount:  tierAmount,
		CodeDiscount:  codeAmount,
		FinalDiscount: tierAmount,
		DiscountType:  model.DiscountTier,
		Percentage:    tierPct,
	}

	if codeAmount > tierAmount {
		q.FinalDiscount = codeAmount
		q.DiscountType = model.DiscountCode
		q.Percentage = codePct
		q.AppliedCodeID = codeID
	}
	if q.FinalDiscount == 0 {
		q.DiscountType = model.DiscountNone
		q.Percentage = 0
		q.AppliedCodeID = nil
	}
	return q
}
