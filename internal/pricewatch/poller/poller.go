package poller

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/inventory"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/pricewatch"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

// Poller periodically scans active price alerts against the cheapest live
// retailer offer and fires a notification when the effective price drops to
// or below the target.
type Poller struct {
	repo     pricewatch.Repository
	offers   pricewatch.OfferResolver
	notifier pricewatch.AlertNotifier
	interval time.Duration
	logger   logger.ZapLogger
}

func NewPoller(repo pricewatch.Repository, offers pricewatch.OfferResolver, notifier pricewatch.AlertNotifier, interval time.Duration, log logger.ZapLogger) *Poller {
	return &Poller{
		repo:     repo,
		offers:   offers,
		notifier: notifier,
		interval: interval,
		logger:   log,
	}
}

func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting price alert poller", zap.Duration("interval", p.interval))
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Stopping price alert poller")
			return
		case <-ticker.C:
			p.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass over the active alerts.
func (p *Poller) Sweep(ctx context.Context) {
	alerts, err := p.repo.ListActive(ctx)
	if err != nil {
		p.logger.Error("Failed to list active price alerts", zap.Error(err))
		return
	}

	for i := range alerts {
		p.check(ctx, &alerts[i])
	}
}

func (p *Poller) check(ctx context.Context, alert *model.PriceAlert) {
	offer, err := p.offers.ResolveRetailerOffer(ctx, alert.ProductID)
	if err != nil {
		// A product with no live offer just stays watched.
		if errors.Is(err, errs.ErrProductUnavailable) {
			return
		}
		p.logger.Error("Failed to resolve offer for price alert",
			zap.String("alert_id", alert.ID),
			zap.String("product_id", alert.ProductID),
			zap.Error(err))
		return
	}

	unit, _ := inventory.UnitPrice(offer, time.Now())
	if unit > alert.TargetPrice {
		return
	}

	if err := p.repo.MarkTriggered(ctx, alert.ID); err != nil {
		p.logger.Error("Failed to mark price alert triggered",
			zap.String("alert_id", alert.ID), zap.Error(err))
		return
	}
	p.notifier.PriceAlertTriggered(ctx, alert, unit)
	p.logger.Info("Price alert triggered",
		zap.String("alert_id", alert.ID),
		zap.String("product_id", alert.ProductID),
		zap.Float64("current_price", unit),
		zap.Float64("target_price", alert.TargetPrice))
}
