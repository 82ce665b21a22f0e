package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/order"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to model.OrderStatus }{
		{model.OrderPending, model.OrderConfirmed},
		{model.OrderPending, model.OrderCancelled},
		{model.OrderConfirmed, model.OrderProcessing},
		{model.OrderConfirmed, model.OrderCancelled},
		{model.OrderProcessing, model.OrderShipped},
		{model.OrderProcessing, model.OrderCancelled},
		{model.OrderShipped, model.OrderDelivered},
		{model.OrderShipped, model.OrderCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, order.CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to model.OrderStatus }{
		{model.OrderPending, model.OrderProcessing},
		{model.OrderPending, model.OrderShipped},
		{model.OrderPending, model.OrderDelivered},
		{model.OrderConfirmed, model.OrderPending},
		{model.OrderConfirmed, model.OrderDelivered},
		{model.OrderShipped, model.OrderProcessing},
		{model.OrderDelivered, model.OrderCancelled},
		{model.OrderDelivered, model.OrderShipped},
		{model.OrderCancelled, model.OrderPending},
		{model.OrderCancelled, model.OrderConfirmed},
		{model.OrderPending, model.OrderPending},
	}
	for _, tc := range denied {
		assert.False(t, order.CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.OrderStatus
		want     model.OrderStatus
	}{
		{"empty defaults to pending", nil, model.OrderPending},
		{"single pending", []model.OrderStatus{model.OrderPending}, model.OrderPending},
		{"all delivered", []model.OrderStatus{model.OrderDelivered, model.OrderDelivered}, model.OrderDelivered},
		{"all cancelled", []model.OrderStatus{model.OrderCancelled, model.OrderCancelled, model.OrderCancelled}, model.OrderCancelled},
		{
			"least advanced active wins",
			[]model.OrderStatus{model.OrderShipped, model.OrderConfirmed, model.OrderProcessing},
			model.OrderConfirmed,
		},
		{
			"cancelled sub-orders are ignored",
			[]model.OrderStatus{model.OrderCancelled, model.OrderShipped},
			model.OrderShipped,
		},
		{
			"delivered plus active tracks the active one",
			[]model.OrderStatus{model.OrderDelivered, model.OrderProcessing},
			model.OrderProcessing,
		},
		{
			"delivered plus cancelled is delivered",
			[]model.OrderStatus{model.OrderDelivered, model.OrderCancelled},
			model.OrderDelivered,
		},
		{
			"pending dominates everything active",
			[]model.OrderStatus{model.OrderDelivered, model.OrderShipped, model.OrderPending},
			model.OrderPending,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, order.AggregateStatus(tc.statuses))
		})
	}
}

// Brute-forces every combination of up to three sub-order statuses and checks
// the aggregation rules hold on each.
func TestAggregateStatusExhaustive(t *testing.T) {
	all := []model.OrderStatus{
		model.OrderPending, model.OrderConfirmed, model.OrderProcessing,
		model.OrderShipped, model.OrderDelivered, model.OrderCancelled,
	}
	rank := map[model.OrderStatus]int{
		model.OrderPending: 0, model.OrderConfirmed: 1, model.OrderProcessing: 2,
		model.OrderShipped: 3, model.OrderDelivered: 4,
	}

	var combos [][]model.OrderStatus
	for _, a := range all {
		combos = append(combos, []model.OrderStatus{a})
		for _, b := range all {
			combos = append(combos, []model.OrderStatus{a, b})
			for _, c := range all {
				combos = append(combos, []model.OrderStatus{a, b, c})
			}
		}
	}

	for _, statuses := range combos {
		got := order.AggregateStatus(statuses)

		allDelivered, allCancelled := true, true
		active := 0
		for _, s := range statuses {
			if s != model.OrderDelivered {
				allDelivered = false
			}
			if s != model.OrderCancelled {
				allCancelled = false
			}
			if s != model.OrderCancelled {
				active++
			}
		}

		switch {
		case allDelivered:
			assert.Equal(t, model.OrderDelivered, got, "%v", statuses)
		case allCancelled:
			assert.Equal(t, model.OrderCancelled, got, "%v", statuses)
		default:
			// Least advanced among the non-cancelled sub-orders.
			want := model.OrderDelivered
			for _, s := range statuses {
				if s == model.OrderCancelled {
					continue
				}
				if rank[s] < rank[want] {
					want = s
				}
			}
			assert.Equal(t, want, got, "%v", statuses)
			assert.NotEqual(t, model.OrderCancelled, got, "%v", statuses)
			assert.Positive(t, active)
		}
	}
}

func TestAggregatePayment(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.PaymentStatus
		want     model.PaymentStatus
	}{
		{"empty defaults to pending", nil, model.PaymentPending},
		{"all pending", []model.PaymentStatus{model.PaymentPending, model.PaymentPending}, model.PaymentPending},
		{"all completed", []model.PaymentStatus{model.PaymentCompleted, model.PaymentCompleted}, model.PaymentCompleted},
		{"partial completion is processing", []model.PaymentStatus{model.PaymentCompleted, model.PaymentPending}, model.PaymentProcessing},
		{"any cancelled wins", []model.PaymentStatus{model.PaymentCompleted, model.PaymentCancelled}, model.PaymentCancelled},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, order.AggregatePayment(tc.statuses))
		})
	}
}

func TestCanCancelMaster(t *testing.T) {
	assert.True(t, order.CanCancelMaster(model.OrderPending, model.PaymentPending))
	assert.True(t, order.CanCancelMaster(model.OrderConfirmed, model.PaymentFailed))

	assert.False(t, order.CanCancelMaster(model.OrderProcessing, model.PaymentPending))
	assert.False(t, order.CanCancelMaster(model.OrderShipped, model.PaymentPending))
	assert.False(t, order.CanCancelMaster(model.OrderDelivered, model.PaymentPending))
	assert.False(t, order.CanCancelMaster(model.OrderPending, model.PaymentCompleted))
	assert.False(t, order.CanCancelMaster(model.OrderConfirmed, model.PaymentProcessing))
}
