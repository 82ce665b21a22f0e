package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshkart/freshkart-api/internal/discount"
	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/order"
	"github.com/freshkart/freshkart-api/internal/order/dto"
	"github.com/freshkart/freshkart-api/internal/order/usecase"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

// --- fakes ---

type fakeRepo struct {
	users  map[string]*model.User
	orders map[string]*model.Order

	createErr   error
	transitions int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:  map[string]*model.User{},
		orders: map[string]*model.Order{},
	}
}

func (r *fakeRepo) Create(_ context.Context, o *model.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*model.Order, error) {
	return r.orders[id], nil
}

func (r *fakeRepo) GetSubOrder(_ context.Context, subOrderID string) (*model.SubOrder, error) {
	for _, o := range r.orders {
		for i := range o.SubOrders {
			if o.SubOrders[i].ID == subOrderID {
				return &o.SubOrders[i], nil
			}
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListByCustomer(_ context.Context, customerID string, _, _ int) ([]model.Order, int, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListSubOrdersByRetailer(_ context.Context, retailerID string, _, _ int) ([]model.SubOrder, int, error) {
	var out []model.SubOrder
	for _, o := range r.orders {
		for _, sub := range o.SubOrders {
			if sub.RetailerID == retailerID {
				out = append(out, sub)
			}
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) SaveSubOrderTransition(_ context.Context, sub *model.SubOrder, _ *model.SubOrderStatus, masterStatus model.OrderStatus, masterPayment model.PaymentStatus) error {
	r.transitions++
	o := r.orders[sub.OrderID]
	for i := range o.SubOrders {
		if o.SubOrders[i].ID == sub.ID {
			o.SubOrders[i] = *sub
		}
	}
	o.Status = masterStatus
	o.PaymentStatus = masterPayment
	return nil
}

func (r *fakeRepo) SaveCancellation(_ context.Context, o *model.Order, _ []model.SubOrderStatus) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	return r.users[id], nil
}

type fakeStock struct {
	offers map[string]*model.Inventory // productID -> offer

	reserveFailFor string
	reserves       []string // inventory IDs in call order
	releases       []string
	confirms       []string
}

func (s *fakeStock) ResolveRetailerOffer(_ context.Context, productID string) (*model.Inventory, error) {
	offer, ok := s.offers[productID]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, errs.ErrProductUnavailable)
	}
	return offer, nil
}

func (s *fakeStock) Reserve(_ context.Context, inventoryID string, qty int, _ string) error {
	for _, o := range s.offers {
		if o.ID == inventoryID && o.ProductID == s.reserveFailFor {
			return errs.ErrInsufficientStock
		}
	}
	s.reserves = append(s.reserves, inventoryID)
	return nil
}

func (s *fakeStock) Release(_ context.Context, inventoryID string, qty int, _ string) error {
	s.releases = append(s.releases, inventoryID)
	return nil
}

func (s *fakeStock) Confirm(_ context.Context, inventoryID string, qty int, _ string) error {
	s.confirms = append(s.confirms, inventoryID)
	return nil
}

type fakeDiscounts struct {
	quote    discount.Quote
	err      error
	usage    int
	lastCode string
}

func (d *fakeDiscounts) CalculateBestDiscount(_ context.Context, _ string, _ float64, _ *string) (*discount.Quote, error) {
	if d.err != nil {
		return nil, d.err
	}
	q := d.quote
	return &q, nil
}

func (d *fakeDiscounts) RecordUsage(_ context.Context, codeID, _, _ string) error {
	d.usage++
	d.lastCode = codeID
	return nil
}

type fakeCatalog struct {
	products map[string]*model.Product
}

func (c *fakeCatalog) GetProduct(_ context.Context, id string) (*model.Product, error) {
	return c.products[id], nil
}

type fakeNotifier struct {
	placed    int
	changed   int
	cancelled int
}

func (n *fakeNotifier) OrderPlaced(context.Context, *model.Order)                        { n.placed++ }
func (n *fakeNotifier) SubOrderStatusChanged(context.Context, *model.Order, *model.SubOrder) {
	n.changed++
}
func (n *fakeNotifier) OrderCancelled(context.Context, *model.Order) { n.cancelled++ }

type fakeEstimator struct{ err error }

func (e *fakeEstimator) Estimate(context.Context, string, string) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	return 45, nil
}

type fakeCart struct {
	items   []model.CartItem
	cleared int
}

func (c *fakeCart) Get(context.Context, string) ([]model.CartItem, error) {
	return c.items, nil
}

func (c *fakeCart) Clear(context.Context, string) error {
	c.cleared++
	return nil
}

// --- fixture ---

type fixture struct {
	repo      *fakeRepo
	stock     *fakeStock
	discounts *fakeDiscounts
	catalog   *fakeCatalog
	notifier  *fakeNotifier
	estimator *fakeEstimator
	cart      *fakeCart
	uc        order.UseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo:      newFakeRepo(),
		stock:     &fakeStock{offers: map[string]*model.Inventory{}},
		discounts: &fakeDiscounts{},
		catalog:   &fakeCatalog{products: map[string]*model.Product{}},
		notifier:  &fakeNotifier{},
		estimator: &fakeEstimator{},
		cart:      &fakeCart{},
	}
	f.uc = usecase.NewOrderUseCase(f.repo, f.stock, f.discounts, f.catalog, f.notifier, f.estimator, f.cart, logger.NewNop())
	return f
}

func (f *fixture) addCustomer(id string) {
	f.repo.users[id] = &model.User{
		BaseModel: model.BaseModel{ID: id},
		Role:      model.RoleCustomer,
		IsActive:  true,
	}
}

func (f *fixture) addOffer(productID, retailerID string, price float64, discountPct float64) {
	inv := &model.Inventory{
		ID:           "inv-" + productID,
		SellerID:     retailerID,
		SellerRole:   model.RoleRetailer,
		ProductID:    productID,
		CurrentStock: 100,
		Price:        price,
		IsActive:     true,
	}
	if discountPct > 0 {
		until := time.Now().Add(24 * time.Hour)
		inv.DiscountPct = &discountPct
		inv.DiscountValidUntil = &until
		inv.DiscountIsActive = true
	}
	f.stock.offers[productID] = inv
	f.catalog.products[productID] = &model.Product{
		BaseModel: model.BaseModel{ID: productID},
		Name:      productID,
		Unit:      "piece",
		IsActive:  true,
	}
}

// --- CreateOrder ---

func TestCreateOrderSingleRetailer(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1")
	f.addOffer("atta", "r1", 50, 0)

	o, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      "cust-1",
		DeliveryAddress: "12 Market Road",
		Items:           []dto.ItemRequest{{ProductID: "atta", Quantity: 2}},
	})
	require.NoError(t, err)

	require.Len(t, o.SubOrders, 1)
	assert.Equal(t, o.ID+"-R1", o.SubOrders[0].ID)
	assert.Equal(t, "r1", o.SubOrders[0].RetailerID)
	assert.Equal(t, model.OrderPending, o.Status)
	assert.Equal(t, model.PaymentPending, o.PaymentStatus)
	assert.Equal(t, 100.0, o.TotalAmount)
	assert.Equal(t, 1, f.notifier.placed)
	assert.Equal(t, 1, f.cart.cleared)
}

func TestCreateOrderFallsBackToSavedCart(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1")
	f.addOffer("atta", "r1", 50, 0)
	f.cart.items = []model.CartItem{{ProductID: "atta", Quantity: 3}}

	o, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      "cust-1",
		DeliveryAddress: "12 Market Road",
	})
	require.NoError(t, err)

	require.Len(t, o.SubOrders, 1)
	require.Len(t, o.SubOrders[0].Items, 1)
	assert.Equal(t, 3, o.SubOrders[0].Items[0].Quantity)
	assert.Equal(t, 150.0, o.TotalAmount)
	assert.Equal(t, 1, f.cart.cleared)
}

func TestCreateOrderEmptyCartStillRejected(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1")

	_, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      "cust-1",
		DeliveryAddress: "12 Market Road",
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCreateOrderSplitsByRetailer(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1")
	f.addOffer("atta", "r1", 50, 10) // unit 45
	f.addOffer("milk", "r1", 40, 0)
	f.addOffer("rice", "r2", 110, 0)

	o, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      "cust-1",
		DeliveryAddress: "12 Market Road",
		Items: []dto.ItemRequest{
			{ProductID: "atta", Quantity: 2},
			{ProductID: "milk", Quantity: 1},
			{ProductID: "rice", Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, o.SubOrders, 2)
	assert.Equal(t, o.ID+"-R1", o.SubOrders[0].ID)
	assert.Equal(t, o.ID+"-R2", o.SubOrders[1].ID)
	assert.Equal(t, "r1", o.SubOrders[0].RetailerID)
	assert.Equal(t, "r2", o.SubOrders[1].RetailerID)
	assert.Len(t, o.SubOrders[0].Items, 2)
	assert.Len(t, o.SubOrders[1].Items, 1)

	// Sub totals sum to the master total.
	var sum float64
	for _, sub := range o.SubOrders {
		sum += sub.TotalAmount
	}
	assert.Equal(t, o.TotalAmount, sum)
	assert.Equal(t, 240.0, o.SubtotalBeforeDiscounts)
	assert.Equal(t, 230.0, o.SubtotalAfterDiscounts)
	assert.Equal(t, 10.0, o.ProductDiscountSavings)
}

func TestCreateOrderAppliesTierDiscountAcrossSubOrders(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1")
	f.addOffer("atta", "r1", 50, 10)  // 2x -> 90, was 100
	f.addOffer("milk", "r1", 50, 20)  // 40, was 50
	f.addOffer("rice", "r2", 100, 0)  // 100

	f.discounts.quote = discount.Quote{
		Tier:          model.TierSilver,
		TierDiscount:  11.50,
		FinalDiscount: 11.50,
		DiscountType:  model.DiscountTier,
		Percentage:    5,
	}

	o, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      "cust-1",
		DeliveryAddress: "12 Market Road",
		Items: []dto.ItemRequest{
			{ProductID: "atta", Quantity: 2},
			{ProductID: "milk", Quantity: 1},
			{ProductID: "rice", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 250.0, o.SubtotalBeforeDiscounts)
	assert.Equal(t, 230.0, o.SubtotalAfterDiscounts)
	assert.Equal(t, model.DiscountTier, o.AppliedDiscountType)

	require.Len(t, o.SubOrders, 2)
	assert.Equal(t, 6.50, o.SubOrders[0].DiscountShare) // 130/230 of 11.50
	assert.Equal(t, 5.00, o.SubOrders[1].DiscountShare) // 100/230 of 11.50
	assert.Equal(t, 123.50, o.SubOrders[0].TotalAmount)
	assert.Equal(t, 95.00, o.SubOrders[1].TotalAmount)
	assert.Equal(t, 218.50, o.TotalAmount)
}

func TestCreateOrderReleasesReservationsOnFailure(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1")
	f.addOffer("atta", "r1", 50, 0)
	f.addOffer("milk", "r1", 40, 0)
	f.addOffer("rice", "r2", 100, 0)
	f.stock.reserveFailFor = "rice"

	_, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      "cust-1",
		DeliveryAddress: "12 Market Road",
		Items: []dto.ItemRequest{
			{ProductID: "atta", Quantity: 1},
			{ProductID: "milk", Quantity: 1},
			{ProductID: "rice", Quantity: 1},
		},
	})
	require.ErrorIs(t, err, errs.ErrInsufficientStock)

	// The two successful reservations were compensated.
	assert.Equal(t, []string{"inv-atta", "inv-milk"}, f.stock.reserves)
	assert.ElementsMatch(t, []string{"inv-atta", "inv-milk"}, f.stock.releases)
	assert.Empty(t, f.repo.orders)
	assert.Equal(t, 0, f.notifier.placed)
	assert.Equal(t, 0, f.cart.cleared)
}

func TestCreateOrderReleasesReservationsWhenDiscountFails(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1")
	f.addOffer("atta", "r1", 50, 0)
	f.discounts.err = errs.ErrDiscountCodeInvalid

	_, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      "cust-1",
		DeliveryAddress: "12 Market Road",
		Items:           []dto.ItemRequest{{ProductID: "atta", Quantity: 1}},
	})
	require.ErrorIs(t, err, errs.ErrDiscountCodeInvalid)
	assert.ElementsMatch(t, f.stock.reserves, f.stock.releases)
	assert.Empty(t, f.repo.orders)
}

func TestCreateOrderRecordsCodeUsageAfterPersist(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1")
	f.addOffer("atta", "r1", 50, 0)

	codeID := "code-1"
	f.discounts.quote = discount.Quote{
		CodeDiscount:  5,
		FinalDiscount: 5,
		DiscountType:  model.DiscountCode,
		Percentage:    10,
		AppliedCodeID: &codeID,
	}

	_, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      "cust-1",
		DeliveryAddress: "12 Market Road",
		Items:           []dto.ItemRequest{{ProductID: "atta", Quantity: 1}},
		DiscountCodeID:  &codeID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.discounts.usage)
	assert.Equal(t, "code-1", f.discounts.lastCode)
}

func TestCreateOrderRejectsNonCustomer(t *testing.T) {
	f := newFixture()
	f.repo.users["r1"] = &model.User{BaseModel: model.BaseModel{ID: "r1"}, Role: model.RoleRetailer}
	f.addOffer("atta", "r1", 50, 0)

	_, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      "r1",
		DeliveryAddress: "12 Market Road",
		Items:           []dto.ItemRequest{{ProductID: "atta", Quantity: 1}},
	})
	assert.ErrorIs(t, err, errs.ErrCustomerNotFound)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1")

	cases := []*dto.CreateOrderInput{
		{CustomerID: "", DeliveryAddress: "a", Items: []dto.ItemRequest{{ProductID: "p", Quantity: 1}}},
		{CustomerID: "cust-1", DeliveryAddress: "", Items: []dto.ItemRequest{{ProductID: "p", Quantity: 1}}},
		{CustomerID: "cust-1", DeliveryAddress: "a", Items: nil},
		{CustomerID: "cust-1", DeliveryAddress: "a", Items: []dto.ItemRequest{{ProductID: "p", Quantity: 0}}},
		{CustomerID: "cust-1", DeliveryAddress: "a", Items: []dto.ItemRequest{{ProductID: "", Quantity: 1}}},
	}
	for _, input := range cases {
		_, err := f.uc.CreateOrder(context.Background(), input)
		assert.ErrorIs(t, err, errs.ErrValidation)
	}
}

func TestCreateOrderToleratesEstimatorFailure(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1")
	f.addOffer("atta", "r1", 50, 0)
	f.estimator.err = fmt.Errorf("routing service down")

	o, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      "cust-1",
		DeliveryAddress: "12 Market Road",
		Items:           []dto.ItemRequest{{ProductID: "atta", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Nil(t, o.SubOrders[0].EstimatedDeliveryMins)
}

// --- status transitions ---

func placeTwoRetailerOrder(t *testing.T, f *fixture) *model.Order {
	t.Helper()
	f.addCustomer("cust-1")
	f.addOffer("atta", "r1", 50, 0)
	f.addOffer("rice", "r2", 100, 0)

	o, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{
		CustomerID:      "cust-1",
		DeliveryAddress: "12 Market Road",
		Items: []dto.ItemRequest{
			{ProductID: "atta", Quantity: 1},
			{ProductID: "rice", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, o.SubOrders, 2)
	return o
}

func TestUpdateSubOrderStatusConfirmsStock(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)

	updated, err := f.uc.UpdateSubOrderStatus(context.Background(), &dto.UpdateSubOrderStatusInput{
		SubOrderID:  o.SubOrders[0].ID,
		RequesterID: "r1",
		Status:      model.OrderConfirmed,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"inv-atta"}, f.stock.confirms)
	// Master stays pending while the other sub-order is.
	assert.Equal(t, model.OrderPending, updated.Status)
	assert.Equal(t, 1, f.notifier.changed)
}

func TestUpdateSubOrderStatusMasterFollowsLeastAdvanced(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)
	ctx := context.Background()

	_, err := f.uc.UpdateSubOrderStatus(ctx, &dto.UpdateSubOrderStatusInput{
		SubOrderID: o.SubOrders[0].ID, RequesterID: "r1", Status: model.OrderConfirmed,
	})
	require.NoError(t, err)
	updated, err := f.uc.UpdateSubOrderStatus(ctx, &dto.UpdateSubOrderStatusInput{
		SubOrderID: o.SubOrders[1].ID, RequesterID: "r2", Status: model.OrderConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderConfirmed, updated.Status)
}

func TestUpdateSubOrderStatusRejectsInvalidTransition(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)

	_, err := f.uc.UpdateSubOrderStatus(context.Background(), &dto.UpdateSubOrderStatusInput{
		SubOrderID:  o.SubOrders[0].ID,
		RequesterID: "r1",
		Status:      model.OrderShipped,
	})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestUpdateSubOrderStatusRejectsForeignRetailer(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)

	_, err := f.uc.UpdateSubOrderStatus(context.Background(), &dto.UpdateSubOrderStatusInput{
		SubOrderID:  o.SubOrders[0].ID,
		RequesterID: "r2",
		Status:      model.OrderConfirmed,
	})
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestCancelPendingSubOrderReleasesStock(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)

	updated, err := f.uc.UpdateSubOrderStatus(context.Background(), &dto.UpdateSubOrderStatusInput{
		SubOrderID:  o.SubOrders[1].ID,
		RequesterID: "r2",
		Status:      model.OrderCancelled,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"inv-rice"}, f.stock.releases)
	// The surviving sub-order keeps the master active.
	assert.Equal(t, model.OrderPending, updated.Status)
}

func TestAllSubOrdersCancelledCancelsMaster(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)
	ctx := context.Background()

	_, err := f.uc.UpdateSubOrderStatus(ctx, &dto.UpdateSubOrderStatusInput{
		SubOrderID: o.SubOrders[0].ID, RequesterID: "r1", Status: model.OrderCancelled,
	})
	require.NoError(t, err)
	updated, err := f.uc.UpdateSubOrderStatus(ctx, &dto.UpdateSubOrderStatusInput{
		SubOrderID: o.SubOrders[1].ID, RequesterID: "r2", Status: model.OrderCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, updated.Status)
	assert.Equal(t, model.PaymentCancelled, updated.PaymentStatus)
}

// --- payment ---

func TestMarkSubOrderPaidAggregatesMasterPayment(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)
	ctx := context.Background()

	updated, err := f.uc.MarkSubOrderPaid(ctx, o.SubOrders[0].ID, "r1")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentProcessing, updated.PaymentStatus)

	updated, err = f.uc.MarkSubOrderPaid(ctx, o.SubOrders[1].ID, "r2")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, updated.PaymentStatus)
}

func TestMarkSubOrderPaidTwiceConflicts(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)
	ctx := context.Background()

	_, err := f.uc.MarkSubOrderPaid(ctx, o.SubOrders[0].ID, "r1")
	require.NoError(t, err)
	_, err = f.uc.MarkSubOrderPaid(ctx, o.SubOrders[0].ID, "r1")
	assert.ErrorIs(t, err, errs.ErrConflict)
}

// --- cancellation ---

func TestCancelOrderReleasesPendingStock(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)

	cancelled, err := f.uc.CancelOrder(context.Background(), o.ID, "cust-1")
	require.NoError(t, err)

	assert.Equal(t, model.OrderCancelled, cancelled.Status)
	assert.ElementsMatch(t, []string{"inv-atta", "inv-rice"}, f.stock.releases)
	for _, sub := range cancelled.SubOrders {
		assert.Equal(t, model.OrderCancelled, sub.Status)
		assert.Equal(t, model.PaymentCancelled, sub.PaymentStatus)
	}
	assert.Equal(t, 1, f.notifier.cancelled)
}

func TestCancelOrderRejectedAfterProcessing(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)
	ctx := context.Background()

	for _, step := range []model.OrderStatus{model.OrderConfirmed, model.OrderProcessing} {
		_, err := f.uc.UpdateSubOrderStatus(ctx, &dto.UpdateSubOrderStatusInput{
			SubOrderID: o.SubOrders[0].ID, RequesterID: "r1", Status: step,
		})
		require.NoError(t, err)
		_, err = f.uc.UpdateSubOrderStatus(ctx, &dto.UpdateSubOrderStatusInput{
			SubOrderID: o.SubOrders[1].ID, RequesterID: "r2", Status: step,
		})
		require.NoError(t, err)
	}

	_, err := f.uc.CancelOrder(ctx, o.ID, "cust-1")
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestCancelOrderRejectsForeignCustomer(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)

	_, err := f.uc.CancelOrder(context.Background(), o.ID, "cust-2")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

// --- reads ---

func TestGetOrderVisibility(t *testing.T) {
	f := newFixture()
	o := placeTwoRetailerOrder(t, f)
	ctx := context.Background()

	got, err := f.uc.GetOrder(ctx, o.ID, "cust-1", model.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = f.uc.GetOrder(ctx, o.ID, "r1", model.RoleRetailer)
	assert.NoError(t, err)

	_, err = f.uc.GetOrder(ctx, o.ID, "r9", model.RoleRetailer)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = f.uc.GetOrder(ctx, "missing", "cust-1", model.RoleCustomer)
	assert.ErrorIs(t, err, errs.ErrOrderNotFound)
}
