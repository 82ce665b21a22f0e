package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/notification"
	"github.com/freshkart/freshkart-api/pkg/broker"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

// FeedListener consumes notification events and materializes them as rows
// for the in-app feed.
type FeedListener struct {
	consumer *broker.KafkaConsumer
	repo     notification.Repository
	logger   logger.ZapLogger
}

func NewFeedListener(consumer *broker.KafkaConsumer, repo notification.Repository, log logger.ZapLogger) *FeedListener {
	return &FeedListener{consumer: consumer, repo: repo, logger: log}
}

func (l *FeedListener) Start(ctx context.Context) {
	l.logger.Info("Starting notification feed listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping notification feed listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *FeedListener) processMessage(ctx context.Context, value []byte) {
	var env notification.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		l.logger.Error("Failed to unmarshal notification envelope", zap.Error(err))
		return
	}

	n := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    env.UserID,
		CreatedAt: env.OccurredAt,
	}

	switch env.EventType {
	case notification.EventOrderPlaced:
		var p notification.OrderPlacedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return
		}
		n.Kind = "order_placed"
		n.Title = "Order placed"
		n.Body = "Order " + p.OrderID + " has been placed."
		ref := p.OrderID
		n.RefID = &ref
	case notification.EventSubOrderStatus:
		var p notification.SubOrderStatusPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return
		}
		n.Kind = "order_status"
		n.Title = "Order update"
		n.Body = "Sub-order " + p.SubOrderID + " is now " + p.Status + "."
		ref := p.OrderID
		n.RefID = &ref
	case notification.EventOrderCancelled:
		var p notification.SubOrderStatusPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return
		}
		n.Kind = "order_cancelled"
		n.Title = "Order cancelled"
		n.Body = "Sub-order " + p.SubOrderID + " was cancelled by the customer."
		ref := p.OrderID
		n.RefID = &ref
	case notification.EventPriceAlertTrigger:
		var p notification.PriceAlertPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return
		}
		n.Kind = "price_alert"
		n.Title = "Price drop"
		n.Body = "A product on your watchlist dropped to the price you wanted."
		ref := p.ProductID
		n.RefID = &ref
	default:
		return
	}

	if err := l.repo.Insert(ctx, n); err != nil {
		l.logger.Error("Failed to persist notification",
			zap.String("user_id", n.UserID), zap.Error(err))
	}
}
