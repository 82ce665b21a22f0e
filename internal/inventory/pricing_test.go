package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/freshkart/freshkart-api/internal/inventory"
	"github.com/freshkart/freshkart-api/internal/model"
)

func offer(price float64, pct *float64, validUntil *time.Time, active bool) *model.Inventory {
	return &model.Inventory{
		Price:              price,
		DiscountPct:        pct,
		DiscountValidUntil: validUntil,
		DiscountIsActive:   active,
	}
}

func f64(v float64) *float64 { return &v }

func TestUnitPriceNoDiscount(t *testing.T) {
	now := time.Now()
	unit, original := inventory.UnitPrice(offer(50, nil, nil, false), now)
	assert.Equal(t, 50.0, unit)
	assert.Equal(t, 50.0, original)
}

func TestUnitPriceActiveDiscount(t *testing.T) {
	now := time.Now()
	until := now.Add(time.Hour)

	unit, original := inventory.UnitPrice(offer(50, f64(10), &until, true), now)
	assert.Equal(t, 45.0, unit)
	assert.Equal(t, 50.0, original)
}

func TestUnitPriceRoundsToCents(t *testing.T) {
	now := time.Now()
	until := now.Add(time.Hour)

	unit, _ := inventory.UnitPrice(offer(33.33, f64(7), &until, true), now)
	assert.Equal(t, 31.00, unit) // 33.33 * 0.93 = 30.9969
}

func TestUnitPriceExpiryBoundaryIsStrict(t *testing.T) {
	now := time.Now()

	// valid_until exactly now: discount no longer applies.
	at := now
	unit, _ := inventory.UnitPrice(offer(100, f64(20), &at, true), now)
	assert.Equal(t, 100.0, unit)

	// One instant later still valid.
	after := now.Add(time.Nanosecond)
	unit, _ = inventory.UnitPrice(offer(100, f64(20), &after, true), now)
	assert.Equal(t, 80.0, unit)
}

func TestUnitPriceInactiveFlagDisablesDiscount(t *testing.T) {
	now := time.Now()
	until := now.Add(time.Hour)

	unit, _ := inventory.UnitPrice(offer(100, f64(20), &until, false), now)
	assert.Equal(t, 100.0, unit)
}
