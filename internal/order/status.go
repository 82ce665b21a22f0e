package order

import "github.com/freshkart/freshkart-api/internal/model"

var validNext = map[model.OrderStatus]map[model.OrderStatus]bool{
	model.OrderPending:    {model.OrderConfirmed: true, model.OrderCancelled: true},
	model.OrderConfirmed:  {model.OrderProcessing: true, model.OrderCancelled: true},
	model.OrderProcessing: {model.OrderShipped: true, model.OrderCancelled: true},
	model.OrderShipped:    {model.OrderDelivered: true, model.OrderCancelled: true},
	model.OrderDelivered:  {},
	model.OrderCancelled:  {},
}

func CanTransition(from, to model.OrderStatus) bool {
	return validNext[from][to]
}

// precedence orders active statuses for the "least advanced" rule.
var precedence = map[model.OrderStatus]int{
	model.OrderPending:    0,
	model.OrderConfirmed:  1,
	model.OrderProcessing: 2,
	model.OrderShipped:    3,
	model.OrderDelivered:  4,
}

// AggregateStatus derives the master status from its sub-order statuses.
// All delivered wins, all cancelled wins; otherwise the least advanced
// non-cancelled status, with delivered sub-orders counting only once some
// other sub-order is still active.
func AggregateStatus(statuses []model.OrderStatus) model.OrderStatus {
	if len(statuses) == 0 {
		return model.OrderPending
	}

	allDelivered := true
	allCancelled := true
	for _, s := range statuses {
		if s != model.OrderDelivered {
			allDelivered = false
		}
		if s != model.OrderCancelled {
			allCancelled = false
		}
	}
	if allDelivered {
		return model.OrderDelivered
	}
	if allCancelled {
		return model.OrderCancelled
	}

	least := model.OrderDelivered
	for _, s := range statuses {
		if s == model.OrderCancelled {
			continue
		}
		if precedence[s] < precedence[least] {
			least = s
		}
	}
	return least
}

// AggregatePayment derives the master payment status: fully paid, partially
// paid (processing), cancelled, or still pending.
func AggregatePayment(statuses []model.PaymentStatus) model.PaymentStatus {
	if len(statuses) == 0 {
		return model.PaymentPending
	}

	completed := 0
	for _, s := range statuses {
		switch s {
		case model.PaymentCancelled:
			return model.PaymentCancelled
		case model.PaymentCompleted:
			completed++
		}
	}
	switch completed {
	case len(statuses):
		return model.PaymentCompleted
	case 0:
		return model.PaymentPending
	default:
		return model.PaymentProcessing
	}
}

// CanCancelMaster gates customer-initiated cancellation of the whole order.
func CanCancelMaster(status model.OrderStatus, payment model.PaymentStatus) bool {
	statusOK := status == model.OrderPending || status == model.OrderConfirmed
	paymentOK := payment == model.PaymentPending ||
		payment == model.PaymentFailed ||
		payment == model.PaymentCancelled
	return statusOK && paymentOK
}
