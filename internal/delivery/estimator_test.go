package delivery_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshkart/freshkart-api/internal/delivery"
)

func TestEstimateIsDeterministic(t *testing.T) {
	e := delivery.NewStaticEstimator(20, 5, 1)
	ctx := context.Background()

	first, err := e.Estimate(ctx, "r1", "12 Market Road")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := e.Estimate(ctx, "r1", "12 Market Road")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEstimateVariesByRetailer(t *testing.T) {
	e := delivery.NewStaticEstimator(20, 5, 1)
	ctx := context.Background()

	a, _ := e.Estimate(ctx, "r1", "12 Market Road")
	b, _ := e.Estimate(ctx, "r2", "12 Market Road")

	// Both are at least base + one km travel.
	assert.GreaterOrEqual(t, a, 25)
	assert.GreaterOrEqual(t, b, 25)
}

func TestEstimateFloor(t *testing.T) {
	e := delivery.NewStaticEstimator(30, 4, 2)
	mins, err := e.Estimate(context.Background(), "r1", "anywhere")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, mins, 30+2*4)
	assert.LessOrEqual(t, mins, 30+11*4)
}
