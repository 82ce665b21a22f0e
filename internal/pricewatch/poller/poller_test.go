package poller_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/pricewatch/poller"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type fakeRepo struct {
	active    []model.PriceAlert
	triggered []string
}

func (r *fakeRepo) Create(context.Context, *model.PriceAlert) error { return nil }
func (r *fakeRepo) GetByID(context.Context, string) (*model.PriceAlert, error) {
	return nil, errs.ErrNotFound
}
func (r *fakeRepo) ListByCustomer(context.Context, string) ([]model.PriceAlert, error) {
	return nil, nil
}
func (r *fakeRepo) Deactivate(context.Context, string) error { return nil }

func (r *fakeRepo) ListActive(context.Context) ([]model.PriceAlert, error) {
	return r.active, nil
}

func (r *fakeRepo) MarkTriggered(_ context.Context, id string) error {
	r.triggered = append(r.triggered, id)
	for i := range r.active {
		if r.active[i].ID == id {
			r.active[i].IsActive = false
		}
	}
	return nil
}

type fakeOffers struct {
	prices map[string]float64 // productID -> effective price
}

func (o *fakeOffers) ResolveRetailerOffer(_ context.Context, productID string) (*model.Inventory, error) {
	price, ok := o.prices[productID]
	if !ok {
		return nil, fmt.Errorf("no offer: %w", errs.ErrProductUnavailable)
	}
	return &model.Inventory{ID: "inv-" + productID, ProductID: productID, Price: price}, nil
}

type fakeNotifier struct {
	fired []string // alert IDs
}

func (n *fakeNotifier) PriceAlertTriggered(_ context.Context, alert *model.PriceAlert, _ float64) {
	n.fired = append(n.fired, alert.ID)
}

func alert(id, productID string, target float64) model.PriceAlert {
	return model.PriceAlert{
		ID:          id,
		CustomerID:  "cust-1",
		ProductID:   productID,
		TargetPrice: target,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
}

func TestSweepTriggersAtOrBelowTarget(t *testing.T) {
	repo := &fakeRepo{active: []model.PriceAlert{
		alert("a1", "atta", 45), // price 40: below target, fires
		alert("a2", "milk", 30), // price 30: at target, fires
		alert("a3", "rice", 90), // price 100: above target, stays armed
	}}
	offers := &fakeOffers{prices: map[string]float64{"atta": 40, "milk": 30, "rice": 100}}
	notifier := &fakeNotifier{}

	p := poller.NewPoller(repo, offers, notifier, time.Hour, logger.NewNop())
	p.Sweep(context.Background())

	assert.ElementsMatch(t, []string{"a1", "a2"}, notifier.fired)
	assert.ElementsMatch(t, []string{"a1", "a2"}, repo.triggered)
}

func TestSweepSkipsProductsWithoutOffers(t *testing.T) {
	repo := &fakeRepo{active: []model.PriceAlert{alert("a1", "ghost", 50)}}
	offers := &fakeOffers{prices: map[string]float64{}}
	notifier := &fakeNotifier{}

	p := poller.NewPoller(repo, offers, notifier, time.Hour, logger.NewNop())
	p.Sweep(context.Background())

	assert.Empty(t, notifier.fired)
	assert.Empty(t, repo.triggered)
}

func TestSweepFiresEachAlertOnce(t *testing.T) {
	repo := &fakeRepo{active: []model.PriceAlert{alert("a1", "atta", 45)}}
	offers := &fakeOffers{prices: map[string]float64{"atta": 40}}
	notifier := &fakeNotifier{}

	p := poller.NewPoller(repo, offers, notifier, time.Hour, logger.NewNop())
	p.Sweep(context.Background())
	// Once triggered the alert is inactive and leaves the scan set.
	repo.active = repo.active[:0]
	p.Sweep(context.Background())

	assert.Equal(t, []string{"a1"}, notifier.fired)
}
