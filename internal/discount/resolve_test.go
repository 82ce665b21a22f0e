package discount_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freshkart/freshkart-api/internal/discount"
	"github.com/freshkart/freshkart-api/internal/model"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		delivered int
		tier      model.LoyaltyTier
		pct       float64
	}{
		{0, model.TierBronze, 0},
		{4, model.TierBronze, 0},
		{5, model.TierSilver, 5},
		{14, model.TierSilver, 5},
		{15, model.TierGold, 10},
		{100, model.TierGold, 10},
	}
	for _, tc := range tests {
		tier, pct := discount.TierFor(tc.delivered)
		assert.Equal(t, tc.tier, tier, "delivered=%d", tc.delivered)
		assert.Equal(t, tc.pct, pct, "delivered=%d", tc.delivered)
	}
}

func TestResolveTierWins(t *testing.T) {
	q := discount.Resolve(model.TierGold, 10, 200, 5, strPtr("code-1"))

	assert.Equal(t, model.DiscountTier, q.DiscountType)
	assert.Equal(t, 20.0, q.FinalDiscount)
	assert.Equal(t, 10.0, q.Percentage)
	assert.Nil(t, q.AppliedCodeID)
}

func TestResolveCodeWinsWhenStrictlyLarger(t *testing.T) {
	q := discount.Resolve(model.TierSilver, 5, 200, 8, strPtr("code-1"))

	assert.Equal(t, model.DiscountCode, q.DiscountType)
	assert.Equal(t, 16.0, q.FinalDiscount)
	assert.Equal(t, 8.0, q.Percentage)
	if assert.NotNil(t, q.AppliedCodeID) {
		assert.Equal(t, "code-1", *q.AppliedCodeID)
	}
}

func TestResolveTieGoesToTier(t *testing.T) {
	q := discount.Resolve(model.TierSilver, 5, 200, 5, strPtr("code-1"))

	assert.Equal(t, model.DiscountTier, q.DiscountType)
	assert.Equal(t, 10.0, q.FinalDiscount)
	assert.Nil(t, q.AppliedCodeID)
}

func TestResolveNeverStacks(t *testing.T) {
	q := discount.Resolve(model.TierGold, 10, 100, 12, strPtr("code-1"))

	// The winner applies alone: 12, never 10+12.
	assert.Equal(t, 12.0, q.FinalDiscount)
	assert.Equal(t, model.DiscountCode, q.DiscountType)
}

func TestResolveNoDiscount(t *testing.T) {
	q := discount.Resolve(model.TierBronze, 0, 150, 0, nil)

	assert.Equal(t, model.DiscountNone, q.DiscountType)
	assert.Equal(t, 0.0, q.FinalDiscount)
	assert.Equal(t, 0.0, q.Percentage)
	assert.Nil(t, q.AppliedCodeID)
}

func strPtr(s string) *string { return &s }
