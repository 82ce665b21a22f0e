package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/freshkart-api/internal/auth"
	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/httpx"
	"github.com/freshkart/freshkart-api/internal/review"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type ReviewHandler struct {
	uc     review.UseCase
	logger logger.ZapLogger
}

func NewReviewHandler(uc review.UseCase, log logger.ZapLogger) *ReviewHandler {
	return &ReviewHandler{uc: uc, logger: log}
}

// Register mounts the public listing route.
func (h *ReviewHandler) Register(g *echo.Group) {
	g.GET("/products/:productId/reviews", h.List)
}

// RegisterProtected mounts routes that require an authenticated customer.
func (h *ReviewHandler) RegisterProtected(g *echo.Group) {
	g.POST("/products/:productId/reviews", h.Create)
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}

	rev, err := h.uc.CreateReview(c.Request().Context(), auth.UserID(c), c.Param("productId"), req.Rating, req.Comment)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusCreated, rev)
}

func (h *ReviewHandler) List(c echo.Context) error {
	page, pageSize := httpx.Page(c)
	items, total, err := h.uc.ListProductReviews(c.Request().Context(), c.Param("productId"), page, pageSize)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: items, Total: total})
}
