package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freshkart/freshkart-api/internal/money"
)

func TestRound2(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{0.125, 0.13}, // exact half rounds away from zero
		{-0.125, -0.13},
		{2.675, 2.67}, // stored just below the half, rounds down
		{30.9969, 31.00},
		{218.499999999, 218.50},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, money.Round2(tc.in), "in=%v", tc.in)
	}
}
