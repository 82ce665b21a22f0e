package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshkart/freshkart-api/internal/order"
)

func item(productID, retailerID string, qty int, unit, original float64) order.PricedItem {
	return order.PricedItem{
		ProductID:     productID,
		InventoryID:   "inv-" + productID,
		RetailerID:    retailerID,
		Quantity:      qty,
		UnitPrice:     unit,
		OriginalPrice: original,
		Subtotal:      unit * float64(qty),
	}
}

func TestGroupByRetailerPartitionsAndSums(t *testing.T) {
	items := []order.PricedItem{
		item("apples", "r1", 2, 45, 50),
		item("milk", "r2", 1, 60, 60),
		item("bread", "r1", 1, 40, 40),
	}

	groups := order.GroupByRetailer(items)
	require.Len(t, groups, 2)

	assert.Equal(t, "r1", groups[0].RetailerID)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, 140.0, groups[0].SubtotalBefore)
	assert.Equal(t, 130.0, groups[0].SubtotalAfter)
	assert.Equal(t, 10.0, groups[0].Savings)

	assert.Equal(t, "r2", groups[1].RetailerID)
	assert.Len(t, groups[1].Items, 1)
	assert.Equal(t, 60.0, groups[1].SubtotalAfter)
	assert.Equal(t, 0.0, groups[1].Savings)
}

func TestGroupByRetailerOrderFollowsFirstAppearance(t *testing.T) {
	items := []order.PricedItem{
		item("a", "r3", 1, 10, 10),
		item("b", "r1", 1, 10, 10),
		item("c", "r3", 1, 10, 10),
		item("d", "r2", 1, 10, 10),
	}

	groups := order.GroupByRetailer(items)
	require.Len(t, groups, 3)
	assert.Equal(t, "r3", groups[0].RetailerID)
	assert.Equal(t, "r1", groups[1].RetailerID)
	assert.Equal(t, "r2", groups[2].RetailerID)

	// Same cart, same grouping, every time.
	for i := 0; i < 50; i++ {
		again := order.GroupByRetailer(items)
		assert.Equal(t, groups, again)
	}
}

func TestGroupByRetailerDoesNotMutateInput(t *testing.T) {
	items := []order.PricedItem{
		item("a", "r1", 1, 10, 12),
		item("b", "r2", 2, 20, 20),
	}
	before := make([]order.PricedItem, len(items))
	copy(before, items)

	_ = order.GroupByRetailer(items)
	assert.Equal(t, before, items)
}

func TestGroupByRetailerEmptyCart(t *testing.T) {
	assert.Empty(t, order.GroupByRetailer(nil))
}
