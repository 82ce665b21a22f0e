package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/inventory"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/money"
	"github.com/freshkart/freshkart-api/internal/order"
	"github.com/freshkart/freshkart-api/internal/order/dto"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type orderUseCase struct {
	repo      order.Repository
	stock     order.Inventory
	discounts order.Discounts
	catalog   order.Catalog
	notifier  order.Notifier
	estimator order.Estimator
	cart      order.Cart
	logger    logger.ZapLogger
}

func NewOrderUseCase(
	repo order.Repository,
	stock order.Inventory,
	discounts order.Discounts,
	catalog order.Catalog,
	notifier order.Notifier,
	estimator order.Estimator,
	cart order.Cart,
	log logger.ZapLogger,
) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		stock:     stock,
		discounts: discounts,
		catalog:   catalog,
		notifier:  notifier,
		estimator: estimator,
		cart:      cart,
		logger:    log,
	}
}

type reservation struct {
	inventoryID string
	qty         int
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	// Checkout without inline items falls back to the saved cart.
	if len(input.Items) == 0 && input.CustomerID != "" {
		saved, err := uc.cart.Get(ctx, input.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("load cart: %w", err)
		}
		for _, it := range saved {
			input.Items = append(input.Items, dto.ItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
		}
	}

	if err := validateCreate(input); err != nil {
		return nil, err
	}

	customer, err := uc.repo.GetUser(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Role != model.RoleCustomer {
		return nil, fmt.Errorf("customer %s: %w", input.CustomerID, errs.ErrCustomerNotFound)
	}

	masterID := uuid.New().String()
	now := time.Now()

	// Resolve and reserve sequentially. Reservations made before a failure
	// are released so an aborted checkout never leaks reserved stock.
	var reserved []reservation
	priced, err := uc.priceAndReserve(ctx, input.Items, masterID, now, &reserved)
	if err != nil {
		uc.rollbackReservations(ctx, reserved, masterID)
		return nil, err
	}

	groups := order.GroupByRetailer(priced)

	var subtotalBefore, subtotalAfter float64
	for _, g := range groups {
		subtotalBefore = money.Round2(subtotalBefore + g.SubtotalBefore)
		subtotalAfter = money.Round2(subtotalAfter + g.SubtotalAfter)
	}

	quote, err := uc.discounts.CalculateBestDiscount(ctx, input.CustomerID, subtotalAfter, input.DiscountCodeID)
	if err != nil {
		uc.rollbackReservations(ctx, reserved, masterID)
		return nil, err
	}

	shares := order.AllocateDiscount(groups, quote.FinalDiscount)

	o := &model.Order{
		BaseModel:               model.BaseModel{ID: masterID, CreatedAt: now, UpdatedAt: now},
		CustomerID:              input.CustomerID,
		DeliveryAddress:         input.DeliveryAddress,
		Status:                  model.OrderPending,
		PaymentStatus:           model.PaymentPending,
		SubtotalBeforeDiscounts: subtotalBefore,
		SubtotalAfterDiscounts:  subtotalAfter,
		ProductDiscountSavings:  money.Round2(subtotalBefore - subtotalAfter),
		TierDiscountAmount:      quote.TierDiscount,
		CodeDiscountAmount:      quote.CodeDiscount,
		AppliedDiscountType:     quote.DiscountType,
		AppliedCodeID:           quote.AppliedCodeID,
	}
	if input.Notes != "" {
		notes := input.Notes
		o.Notes = &notes
	}

	o.SubOrders = uc.assembleSubOrders(ctx, masterID, groups, shares, input.DeliveryAddress, now)

	// Master total is recomputed from the sub-order totals so rounding
	// differences surface here instead of being silently absorbed.
	var total float64
	for _, sub := range o.SubOrders {
		total = money.Round2(total + sub.TotalAmount)
	}
	o.TotalAmount = total

	if err := uc.repo.Create(ctx, o); err != nil {
		uc.rollbackReservations(ctx, reserved, masterID)
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if quote.DiscountType == model.DiscountCode && quote.AppliedCodeID != nil {
		if err := uc.discounts.RecordUsage(ctx, *quote.AppliedCodeID, input.CustomerID, masterID); err != nil {
			uc.logger.Error("failed to record code usage", zap.String("order_id", masterID), zap.Error(err))
		}
	}

	if err := uc.cart.Clear(ctx, input.CustomerID); err != nil {
		uc.logger.Warn("failed to clear cart", zap.String("customer_id", input.CustomerID), zap.Error(err))
	}

	uc.notifier.OrderPlaced(ctx, o)

	uc.logger.Info("order created",
		zap.String("order_id", masterID),
		zap.Int("sub_orders", len(o.SubOrders)),
		zap.Float64("total", o.TotalAmount))
	return o, nil
}

func validateCreate(input *dto.CreateOrderInput) error {
	if input.CustomerID == "" {
		return fmt.Errorf("customer id is required: %w", errs.ErrValidation)
	}
	if input.DeliveryAddress == "" {
		return fmt.Errorf("delivery address is required: %w", errs.ErrValidation)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("order needs at least one item: %w", errs.ErrValidation)
	}
	for _, it := range input.Items {
		if it.ProductID == "" || it.Quantity < 1 {
			return fmt.Errorf("item %q qty %d: %w", it.ProductID, it.Quantity, errs.ErrValidation)
		}
	}
	return nil
}

func (uc *orderUseCase) priceAndReserve(ctx context.Context, items []dto.ItemRequest, masterID string, now time.Time, reserved *[]reservation) ([]order.PricedItem, error) {
	priced := make([]order.PricedItem, 0, len(items))
	for _, req := range items {
		offer, err := uc.stock.ResolveRetailerOffer(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}

		product, err := uc.catalog.GetProduct(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, fmt.Errorf("product %s: %w", req.ProductID, errs.ErrProductUnavailable)
		}

		if err := uc.stock.Reserve(ctx, offer.ID, req.Quantity, masterID); err != nil {
			return nil, err
		}
		*reserved = append(*reserved, reservation{inventoryID: offer.ID, qty: req.Quantity})

		unit, original := inventory.UnitPrice(offer, now)
		priced = append(priced, order.PricedItem{
			ProductID:     req.ProductID,
			ProductName:   product.Name,
			InventoryID:   offer.ID,
			RetailerID:    offer.SellerID,
			Quantity:      req.Quantity,
			UnitPrice:     unit,
			OriginalPrice: original,
			Subtotal:      money.Round2(unit * float64(req.Quantity)),
		})
	}
	return priced, nil
}

func (uc *orderUseCase) rollbackReservations(ctx context.Context, reserved []reservation, masterID string) {
	for _, r := range reserved {
		if err := uc.stock.Release(ctx, r.inventoryID, r.qty, masterID); err != nil {
			uc.logger.Error("failed to release reservation during rollback",
				zap.String("inventory_id", r.inventoryID),
				zap.Int("qty", r.qty),
				zap.Error(err))
		}
	}
}

func (uc *orderUseCase) assembleSubOrders(ctx context.Context, masterID string, groups []order.RetailerGroup, shares []float64, address string, now time.Time) []model.SubOrder {
	subs := make([]model.SubOrder, 0, len(groups))
	for i, g := range groups {
		subID := fmt.Sprintf("%s-R%d", masterID, i+1)

		sub := model.SubOrder{
			ID:                      subID,
			OrderID:                 masterID,
			RetailerID:              g.RetailerID,
			Status:                  model.OrderPending,
			PaymentStatus:           model.PaymentPending,
			SubtotalBeforeDiscounts: g.SubtotalBefore,
			SubtotalAfterDiscounts:  g.SubtotalAfter,
			DiscountShare:           shares[i],
			TotalAmount:             money.Round2(g.SubtotalAfter - shares[i]),
			CreatedAt:               now,
			UpdatedAt:               now,
		}

		if mins, err := uc.estimator.Estimate(ctx, g.RetailerID, address); err != nil {
			uc.logger.Warn("delivery estimate unavailable",
				zap.String("retailer_id", g.RetailerID), zap.Error(err))
		} else {
			sub.EstimatedDeliveryMins = &mins
		}

		itemShares := order.ItemDiscountShares(g.Items, shares[i])
		for j, it := range g.Items {
			sub.Items = append(sub.Items, model.OrderItem{
				ID:            uuid.New().String(),
				SubOrderID:    subID,
				ProductID:     it.ProductID,
				InventoryID:   it.InventoryID,
				ProductName:   it.ProductName,
				Quantity:      it.Quantity,
				UnitPrice:     it.UnitPrice,
				OriginalPrice: it.OriginalPrice,
				Subtotal:      it.Subtotal,
				DiscountShare: itemShares[j],
			})
		}

		sub.History = []model.SubOrderStatus{{
			ID:         uuid.New().String(),
			SubOrderID: subID,
			Status:     model.OrderPending,
			CreatedAt:  now,
		}}

		subs = append(subs, sub)
	}
	return subs
}

func (uc *orderUseCase) GetOrder(ctx context.Context, orderID, requesterID string, role model.Role) (*model.Order, error) {
	o, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, errs.ErrOrderNotFound)
	}

	if o.CustomerID == requesterID {
		return o, nil
	}
	if role == model.RoleRetailer {
		for _, sub := range o.SubOrders {
			if sub.RetailerID == requesterID {
				return o, nil
			}
		}
	}
	return nil, fmt.Errorf("order %s: %w", orderID, errs.ErrUnauthorized)
}

func (uc *orderUseCase) ListCustomerOrders(ctx context.Context, customerID string, page, pageSize int) ([]model.Order, int, error) {
	return uc.repo.ListByCustomer(ctx, customerID, page, pageSize)
}

func (uc *orderUseCase) ListRetailerSubOrders(ctx context.Context, retailerID string, page, pageSize int) ([]model.SubOrder, int, error) {
	return uc.repo.ListSubOrdersByRetailer(ctx, retailerID, page, pageSize)
}

func (uc *orderUseCase) UpdateSubOrderStatus(ctx context.Context, input *dto.UpdateSubOrderStatusInput) (*model.Order, error) {
	sub, err := uc.repo.GetSubOrder(ctx, input.SubOrderID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("sub-order %s: %w", input.SubOrderID, errs.ErrOrderNotFound)
	}
	if sub.RetailerID != input.RequesterID {
		return nil, fmt.Errorf("sub-order %s: %w", input.SubOrderID, errs.ErrUnauthorized)
	}
	if !order.CanTransition(sub.Status, input.Status) {
		return nil, fmt.Errorf("cannot move sub-order %s from %s to %s: %w",
			sub.ID, sub.Status, input.Status, errs.ErrConflict)
	}

	o, err := uc.repo.GetByID(ctx, sub.OrderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("order %s: %w", sub.OrderID, errs.ErrOrderNotFound)
	}

	// Stock follows the transition: confirmation finalizes the sale,
	// cancellation of a still-pending sub-order returns the reservation.
	switch input.Status {
	case model.OrderConfirmed:
		for _, it := range sub.Items {
			if err := uc.stock.Confirm(ctx, it.InventoryID, it.Quantity, o.ID); err != nil {
				return nil, fmt.Errorf("confirm stock for %s: %w", it.ProductID, err)
			}
		}
	case model.OrderCancelled:
		if sub.Status == model.OrderPending {
			for _, it := range sub.Items {
				if err := uc.stock.Release(ctx, it.InventoryID, it.Quantity, o.ID); err != nil {
					uc.logger.Error("failed to release stock on cancellation",
						zap.String("inventory_id", it.InventoryID), zap.Error(err))
				}
			}
		}
		sub.PaymentStatus = model.PaymentCancelled
	}

	now := time.Now()
	sub.Status = input.Status
	sub.UpdatedAt = now

	entry := &model.SubOrderStatus{
		ID:         uuid.New().String(),
		SubOrderID: sub.ID,
		Status:     input.Status,
		CreatedAt:  now,
	}
	if input.Note != "" {
		note := input.Note
		entry.Note = &note
	}

	statuses := make([]model.OrderStatus, 0, len(o.SubOrders))
	payments := make([]model.PaymentStatus, 0, len(o.SubOrders))
	for i := range o.SubOrders {
		if o.SubOrders[i].ID == sub.ID {
			o.SubOrders[i].Status = sub.Status
			o.SubOrders[i].PaymentStatus = sub.PaymentStatus
		}
		statuses = append(statuses, o.SubOrders[i].Status)
		payments = append(payments, o.SubOrders[i].PaymentStatus)
	}
	masterStatus := order.AggregateStatus(statuses)
	masterPayment := order.AggregatePayment(payments)

	if err := uc.repo.SaveSubOrderTransition(ctx, sub, entry, masterStatus, masterPayment); err != nil {
		return nil, err
	}

	o.Status = masterStatus
	o.PaymentStatus = masterPayment
	uc.notifier.SubOrderStatusChanged(ctx, o, sub)

	return o, nil
}

func (uc *orderUseCase) MarkSubOrderPaid(ctx context.Context, subOrderID, requesterID string) (*model.Order, error) {
	sub, err := uc.repo.GetSubOrder(ctx, subOrderID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("sub-order %s: %w", subOrderID, errs.ErrOrderNotFound)
	}
	if sub.RetailerID != requesterID {
		return nil, fmt.Errorf("sub-order %s: %w", subOrderID, errs.ErrUnauthorized)
	}
	if sub.PaymentStatus == model.PaymentCompleted {
		return nil, fmt.Errorf("sub-order %s already paid: %w", subOrderID, errs.ErrConflict)
	}
	if sub.Status == model.OrderCancelled {
		return nil, fmt.Errorf("sub-order %s is cancelled: %w", subOrderID, errs.ErrConflict)
	}

	o, err := uc.repo.GetByID(ctx, sub.OrderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub.PaymentStatus = model.PaymentCompleted
	sub.UpdatedAt = now

	payments := make([]model.PaymentStatus, 0, len(o.SubOrders))
	statuses := make([]model.OrderStatus, 0, len(o.SubOrders))
	for i := range o.SubOrders {
		if o.SubOrders[i].ID == sub.ID {
			o.SubOrders[i].PaymentStatus = model.PaymentCompleted
		}
		payments = append(payments, o.SubOrders[i].PaymentStatus)
		statuses = append(statuses, o.SubOrders[i].Status)
	}

	entry := &model.SubOrderStatus{
		ID:         uuid.New().String(),
		SubOrderID: sub.ID,
		Status:     sub.Status,
		CreatedAt:  now,
	}
	note := "payment completed"
	entry.Note = &note

	masterPayment := order.AggregatePayment(payments)
	if err := uc.repo.SaveSubOrderTransition(ctx, sub, entry, order.AggregateStatus(statuses), masterPayment); err != nil {
		return nil, err
	}

	o.PaymentStatus = masterPayment
	return o, nil
}

func (uc *orderUseCase) CancelOrder(ctx context.Context, orderID, customerID string) (*model.Order, error) {
	o, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, errs.ErrOrderNotFound)
	}
	if o.CustomerID != customerID {
		return nil, fmt.Errorf("order %s: %w", orderID, errs.ErrUnauthorized)
	}
	if !order.CanCancelMaster(o.Status, o.PaymentStatus) {
		return nil, fmt.Errorf("order %s in status %s/%s cannot be cancelled: %w",
			orderID, o.Status, o.PaymentStatus, errs.ErrConflict)
	}

	now := time.Now()
	var entries []model.SubOrderStatus
	for i := range o.SubOrders {
		sub := &o.SubOrders[i]
		if sub.Status == model.OrderDelivered || sub.Status == model.OrderCancelled {
			continue
		}

		if sub.Status == model.OrderPending {
			for _, it := range sub.Items {
				if err := uc.stock.Release(ctx, it.InventoryID, it.Quantity, o.ID); err != nil {
					uc.logger.Error("failed to release stock on order cancellation",
						zap.String("inventory_id", it.InventoryID), zap.Error(err))
				}
			}
		}

		sub.Status = model.OrderCancelled
		sub.PaymentStatus = model.PaymentCancelled
		sub.UpdatedAt = now

		note := "cancelled by customer"
		entries = append(entries, model.SubOrderStatus{
			ID:         uuid.New().String(),
			SubOrderID: sub.ID,
			Status:     model.OrderCancelled,
			Note:       &note,
			CreatedAt:  now,
		})
	}

	statuses := make([]model.OrderStatus, 0, len(o.SubOrders))
	payments := make([]model.PaymentStatus, 0, len(o.SubOrders))
	for _, sub := range o.SubOrders {
		statuses = append(statuses, sub.Status)
		payments = append(payments, sub.PaymentStatus)
	}
	o.Status = order.AggregateStatus(statuses)
	o.PaymentStatus = order.AggregatePayment(payments)
	o.UpdatedAt = now

	if err := uc.repo.SaveCancellation(ctx, o, entries); err != nil {
		return nil, err
	}

	uc.notifier.OrderCancelled(ctx, o)
	return o, nil
}
