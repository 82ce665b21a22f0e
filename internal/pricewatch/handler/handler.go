package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/freshkart-api/internal/auth"
	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/httpx"
	"github.com/freshkart/freshkart-api/internal/pricewatch"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type PriceWatchHandler struct {
	uc     pricewatch.UseCase
	logger logger.ZapLogger
}

func NewPriceWatchHandler(uc pricewatch.UseCase, log logger.ZapLogger) *PriceWatchHandler {
	return &PriceWatchHandler{uc: uc, logger: log}
}

func (h *PriceWatchHandler) Register(g *echo.Group) {
	g.POST("/price-alerts", h.Create)
	g.GET("/price-alerts", h.List)
	g.DELETE("/price-alerts/:id", h.Delete)
}

type createAlertRequest struct {
	ProductID   string  `json:"product_id"`
	TargetPrice float64 `json:"target_price"`
}

func (h *PriceWatchHandler) Create(c echo.Context) error {
	var req createAlertRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}

	alert, err := h.uc.CreateAlert(c.Request().Context(), auth.UserID(c), req.ProductID, req.TargetPrice)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusCreated, alert)
}

func (h *PriceWatchHandler) List(c echo.Context) error {
	alerts, err := h.uc.ListAlerts(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: alerts, Total: len(alerts)})
}

func (h *PriceWatchHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteAlert(c.Request().Context(), auth.UserID(c), c.Param("id")); err != nil {
		return httpx.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
