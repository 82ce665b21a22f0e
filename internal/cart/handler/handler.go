package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/freshkart-api/internal/auth"
	"github.com/freshkart/freshkart-api/internal/cart"
	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/httpx"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{uc: uc, logger: log}
}

func (h *CartHandler) Register(g *echo.Group) {
	g.GET("/cart", h.Get)
	g.POST("/cart/items", h.AddItem)
	g.PUT("/cart/items/:productId", h.UpdateQuantity)
	g.DELETE("/cart/items/:productId", h.RemoveItem)
	g.DELETE("/cart", h.Clear)
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) Get(c echo.Context) error {
	items, err := h.uc.Get(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: items, Total: len(items)})
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}
	if err := h.uc.AddItem(c.Request().Context(), auth.UserID(c), req.ProductID, req.Quantity); err != nil {
		return httpx.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}
	if err := h.uc.UpdateQuantity(c.Request().Context(), auth.UserID(c), c.Param("productId"), req.Quantity); err != nil {
		return httpx.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	if err := h.uc.RemoveItem(c.Request().Context(), auth.UserID(c), c.Param("productId")); err != nil {
		return httpx.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.uc.Clear(c.Request().Context(), auth.UserID(c)); err != nil {
		return httpx.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
