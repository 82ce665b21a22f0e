package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/pkg/broker"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

// Publisher fans order lifecycle events out to Kafka. Every method is
// fire-and-forget: a broker failure is logged and swallowed so it can never
// fail the operation that triggered it.
type Publisher struct {
	producer *broker.KafkaProducer
	logger   logger.ZapLogger
}

func NewPublisher(producer *broker.KafkaProducer, log logger.ZapLogger) *Publisher {
	return &Publisher{producer: producer, logger: log}
}

func (p *Publisher) publish(ctx context.Context, userID, eventType string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal notification payload", zap.Error(err))
		return
	}

	env := Envelope{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		OccurredAt: time.Now(),
		UserID:     userID,
		Payload:    raw,
	}
	value, err := json.Marshal(env)
	if err != nil {
		p.logger.Error("failed to marshal notification envelope", zap.Error(err))
		return
	}

	if err := p.producer.Publish(ctx, []byte(userID), value); err != nil {
		p.logger.Error("failed to publish notification",
			zap.String("event_type", eventType),
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

func (p *Publisher) OrderPlaced(ctx context.Context, o *model.Order) {
	p.publish(ctx, o.CustomerID, EventOrderPlaced, OrderPlacedPayload{
		OrderID:     o.ID,
		TotalAmount: o.TotalAmount,
	})
	for _, sub := range o.SubOrders {
		p.publish(ctx, sub.RetailerID, EventOrderPlaced, OrderPlacedPayload{
			OrderID:     o.ID,
			SubOrderID:  sub.ID,
			TotalAmount: sub.TotalAmount,
		})
	}
}

func (p *Publisher) SubOrderStatusChanged(ctx context.Context, o *model.Order, sub *model.SubOrder) {
	p.publish(ctx, o.CustomerID, EventSubOrderStatus, SubOrderStatusPayload{
		OrderID:    o.ID,
		SubOrderID: sub.ID,
		Status:     string(sub.Status),
	})
}

func (p *Publisher) OrderCancelled(ctx context.Context, o *model.Order) {
	for _, sub := range o.SubOrders {
		p.publish(ctx, sub.RetailerID, EventOrderCancelled, SubOrderStatusPayload{
			OrderID:    o.ID,
			SubOrderID: sub.ID,
			Status:     string(model.OrderCancelled),
		})
	}
}

func (p *Publisher) PriceAlertTriggered(ctx context.Context, alert *model.PriceAlert, currentPrice float64) {
	p.publish(ctx, alert.CustomerID, EventPriceAlertTrigger, PriceAlertPayload{
		AlertID:      alert.ID,
		ProductID:    alert.ProductID,
		TargetPrice:  alert.TargetPrice,
		CurrentPrice: currentPrice,
	})
}
