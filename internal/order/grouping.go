package order

import "github.com/freshkart/freshkart-api/internal/money"

// PricedItem is one cart line after inventory resolution and per-item
// pricing: it knows which retailer sells it and at what effective price.
type PricedItem struct {
	ProductID     string
	ProductName   string
	InventoryID   string
	RetailerID    string
	Quantity      int
	UnitPrice     float64 // post product-discount
	OriginalPrice float64
	Subtotal      float64 // UnitPrice * Quantity
}

// RetailerGroup is the partition of the cart belonging to one retailer.
type RetailerGroup struct {
	RetailerID     string
	Items          []PricedItem
	SubtotalBefore float64 // original prices
	SubtotalAfter  float64 // post product-discount
	Savings        float64
}

// GroupByRetailer partitions priced items by retailer. Group order is the
// order retailers first appear in the cart, which keeps sub-order numbering
// deterministic. The input is not mutated.
func GroupByRetailer(items []PricedItem) []RetailerGroup {
	index := make(map[string]int, len(items))
	groups := make([]RetailerGroup, 0, len(items))

	for _, it := range items {
		i, ok := index[it.RetailerID]
		if !ok {
			i = len(groups)
			index[it.RetailerID] = i
			groups = append(groups, RetailerGroup{RetailerID: it.RetailerID})
		}
		g := &groups[i]
		g.Items = append(g.Items, it)
		g.SubtotalBefore = money.Round2(g.SubtotalBefore + it.OriginalPrice*float64(it.Quantity))
		g.SubtotalAfter = money.Round2(g.SubtotalAfter + it.Subtotal)
		g.Savings = money.Round2(g.SubtotalBefore - g.SubtotalAfter)
	}

	return groups
}
