package order

import "github.com/freshkart/freshkart-api/internal/money"

// AllocateDiscount splits a single order-level discount across retailer
// groups in proportion to each group's share of the discounted subtotal.
// Each share is rounded to 2 decimals and the rounding remainder is assigned
// to the largest group, so the shares always sum exactly to the discount.
func AllocateDiscount(groups []RetailerGroup, globalDiscount float64) []float64 {
	shares := make([]float64, len(groups))
	if len(groups) == 0 || globalDiscount <= 0 {
		return shares
	}

	var total float64
	for _, g := range groups {
		total += g.SubtotalAfter
	}
	if total <= 0 {
		return shares
	}

	var allocated float64
	largest := 0
	for i, g := range groups {
		shares[i] = money.Round2(globalDiscount * g.SubtotalAfter / total)
		allocated += shares[i]
		if g.SubtotalAfter > groups[largest].SubtotalAfter {
			largest = i
		}
	}

	if drift := money.Round2(globalDiscount - allocated); drift != 0 {
		shares[largest] = money.Round2(shares[largest] + drift)
	}
	return shares
}

// ItemDiscountShares distributes a group's discount share over its items by
// subtotal proportion, with the same remainder rule keyed to the largest line.
func ItemDiscountShares(items []PricedItem, share float64) []float64 {
	out := make([]float64, len(items))
	if len(items) == 0 || share <= 0 {
		return out
	}

	var total float64
	for _, it := range items {
		total += it.Subtotal
	}
	if total <= 0 {
		return out
	}

	var allocated float64
	largest := 0
	for i, it := range items {
		out[i] = money.Round2(share * it.Subtotal / total)
		allocated += out[i]
		if it.Subtotal > items[largest].Subtotal {
			largest = i
		}
	}

	if drift := money.Round2(share - allocated); drift != 0 {
		out[largest] = money.Round2(out[largest] + drift)
	}
	return out
}
