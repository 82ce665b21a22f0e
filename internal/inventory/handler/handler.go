package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/freshkart-api/internal/auth"
	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/httpx"
	"github.com/freshkart/freshkart-api/internal/inventory"
	"github.com/freshkart/freshkart-api/internal/inventory/dto"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{uc: uc, logger: log}
}

func (h *InventoryHandler) Register(g *echo.Group) {
	g.PUT("/inventory", h.UpsertOffer)
	g.PUT("/inventory/discount", h.SetDiscount)
	g.GET("/inventory", h.ListInventory)
	g.GET("/inventory/movements", h.ListMovements)
}

type upsertOfferRequest struct {
	ProductID    string  `json:"product_id"`
	CurrentStock int     `json:"current_stock"`
	Price        float64 `json:"price"`
	IsActive     bool    `json:"is_active"`
}

func (h *InventoryHandler) UpsertOffer(c echo.Context) error {
	role := auth.Role(c)
	if role != model.RoleRetailer && role != model.RoleWholesaler {
		return httpx.Error(c, errs.ErrUnauthorized)
	}

	var req upsertOfferRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}

	inv, err := h.uc.UpsertOffer(c.Request().Context(), &dto.UpsertOfferInput{
		SellerID:     auth.UserID(c),
		SellerRole:   string(role),
		ProductID:    req.ProductID,
		CurrentStock: req.CurrentStock,
		Price:        req.Price,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

type setDiscountRequest struct {
	ProductID  string    `json:"product_id"`
	Percentage float64   `json:"percentage"`
	ValidUntil time.Time `json:"valid_until"`
	Reason     string    `json:"reason"`
	IsActive   bool      `json:"is_active"`
}

func (h *InventoryHandler) SetDiscount(c echo.Context) error {
	role := auth.Role(c)
	if role != model.RoleRetailer && role != model.RoleWholesaler {
		return httpx.Error(c, errs.ErrUnauthorized)
	}

	var req setDiscountRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}

	inv, err := h.uc.SetDiscount(c.Request().Context(), &dto.SetDiscountInput{
		SellerID:   auth.UserID(c),
		ProductID:  req.ProductID,
		Percentage: req.Percentage,
		ValidUntil: req.ValidUntil,
		Reason:     req.Reason,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *InventoryHandler) ListInventory(c echo.Context) error {
	page, pageSize := httpx.Page(c)
	items, total, err := h.uc.ListSellerInventory(c.Request().Context(), &dto.InventoryFilters{
		SellerID:  auth.UserID(c),
		ProductID: c.QueryParam("product_id"),
		LowStock:  c.QueryParam("low_stock") == "true",
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: items, Total: total})
}

func (h *InventoryHandler) ListMovements(c echo.Context) error {
	page, pageSize := httpx.Page(c)
	items, total, err := h.uc.ListMovements(c.Request().Context(), &dto.MovementFilters{
		SellerID:     auth.UserID(c),
		ProductID:    c.QueryParam("product_id"),
		MovementType: c.QueryParam("movement_type"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: items, Total: total})
}
