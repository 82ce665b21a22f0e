package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/freshkart-api/internal/auth"
	"github.com/freshkart/freshkart-api/internal/discount"
	"github.com/freshkart/freshkart-api/internal/discount/dto"
	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/httpx"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type DiscountHandler struct {
	uc     discount.UseCase
	logger logger.ZapLogger
}

func NewDiscountHandler(uc discount.UseCase, log logger.ZapLogger) *DiscountHandler {
	return &DiscountHandler{uc: uc, logger: log}
}

func (h *DiscountHandler) Register(g *echo.Group) {
	g.POST("/discount-codes", h.CreateCode)
	g.PATCH("/discount-codes/:id", h.UpdateCode)
	g.GET("/discount-codes", h.ListCodes)
	g.GET("/discounts/quote", h.Quote)
}

func (h *DiscountHandler) CreateCode(c echo.Context) error {
	if auth.Role(c) != model.RoleWholesaler {
		return httpx.Error(c, errs.ErrUnauthorized)
	}

	var input dto.CreateCodeInput
	if err := c.Bind(&input); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}

	code, err := h.uc.CreateCode(c.Request().Context(), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusCreated, code)
}

func (h *DiscountHandler) UpdateCode(c echo.Context) error {
	if auth.Role(c) != model.RoleWholesaler {
		return httpx.Error(c, errs.ErrUnauthorized)
	}

	var input dto.UpdateCodeInput
	if err := c.Bind(&input); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}
	input.ID = c.Param("id")

	code, err := h.uc.UpdateCode(c.Request().Context(), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, code)
}

func (h *DiscountHandler) ListCodes(c echo.Context) error {
	page, pageSize := httpx.Page(c)
	items, total, err := h.uc.ListCodes(c.Request().Context(), c.QueryParam("active") == "true", page, pageSize)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: items, Total: total})
}

type quoteRequest struct {
	Subtotal float64 `query:"subtotal"`
	CodeID   string  `query:"code_id"`
}

// Quote lets the storefront preview the discount before checkout.
func (h *DiscountHandler) Quote(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil || req.Subtotal <= 0 {
		return httpx.Error(c, errs.ErrValidation)
	}

	var codeID *string
	if req.CodeID != "" {
		codeID = &req.CodeID
	}

	quote, err := h.uc.CalculateBestDiscount(c.Request().Context(), auth.UserID(c), req.Subtotal, codeID)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}
