package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/freshkart-api/internal/auth"
	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/httpx"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/order"
	"github.com/freshkart/freshkart-api/internal/order/dto"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

func (h *OrderHandler) Register(g *echo.Group) {
	g.POST("/orders", h.CreateOrder)
	g.GET("/orders", h.ListOrders)
	g.GET("/orders/:id", h.GetOrder)
	g.POST("/orders/:id/cancel", h.CancelOrder)
	g.GET("/sub-orders", h.ListRetailerSubOrders)
	g.PATCH("/sub-orders/:id/status", h.UpdateSubOrderStatus)
	g.POST("/sub-orders/:id/paid", h.MarkSubOrderPaid)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var input dto.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}
	input.CustomerID = auth.UserID(c)

	o, err := h.uc.CreateOrder(c.Request().Context(), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	o, err := h.uc.GetOrder(c.Request().Context(), c.Param("id"), auth.UserID(c), auth.Role(c))
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	page, pageSize := httpx.Page(c)
	items, total, err := h.uc.ListCustomerOrders(c.Request().Context(), auth.UserID(c), page, pageSize)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: items, Total: total})
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	o, err := h.uc.CancelOrder(c.Request().Context(), c.Param("id"), auth.UserID(c))
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) ListRetailerSubOrders(c echo.Context) error {
	if auth.Role(c) != model.RoleRetailer {
		return httpx.Error(c, errs.ErrUnauthorized)
	}
	page, pageSize := httpx.Page(c)
	items, total, err := h.uc.ListRetailerSubOrders(c.Request().Context(), auth.UserID(c), page, pageSize)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: items, Total: total})
}

func (h *OrderHandler) UpdateSubOrderStatus(c echo.Context) error {
	var input dto.UpdateSubOrderStatusInput
	if err := c.Bind(&input); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}
	input.SubOrderID = c.Param("id")
	input.RequesterID = auth.UserID(c)

	o, err := h.uc.UpdateSubOrderStatus(c.Request().Context(), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) MarkSubOrderPaid(c echo.Context) error {
	o, err := h.uc.MarkSubOrderPaid(c.Request().Context(), c.Param("id"), auth.UserID(c))
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, o)
}
