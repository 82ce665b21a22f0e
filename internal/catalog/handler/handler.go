package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/freshkart-api/internal/auth"
	"github.com/freshkart/freshkart-api/internal/catalog"
	"github.com/freshkart/freshkart-api/internal/catalog/dto"
	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/httpx"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: log}
}

// Register wires the public read endpoints; RegisterProtected the write ones.
func (h *CatalogHandler) Register(g *echo.Group) {
	g.GET("/products", h.ListProducts)
	g.GET("/products/search", h.SearchProducts)
	g.GET("/products/:id", h.GetProduct)
	g.GET("/categories", h.ListCategories)
}

func (h *CatalogHandler) RegisterProtected(g *echo.Group) {
	g.POST("/products", h.CreateProduct)
	g.PATCH("/products/:id", h.UpdateProduct)
	g.POST("/categories", h.CreateCategory)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	p, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	page, pageSize := httpx.Page(c)
	items, total, err := h.uc.ListProducts(c.Request().Context(), &dto.ProductFilters{
		CategoryID: c.QueryParam("category_id"),
		ActiveOnly: c.QueryParam("include_inactive") != "true",
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: items, Total: total})
}

func (h *CatalogHandler) SearchProducts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return httpx.Error(c, errs.ErrValidation)
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	items, err := h.uc.SearchProducts(c.Request().Context(), q, limit)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: items, Total: len(items)})
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	if auth.Role(c) == model.RoleCustomer {
		return httpx.Error(c, errs.ErrUnauthorized)
	}

	var input dto.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	if auth.Role(c) == model.RoleCustomer {
		return httpx.Error(c, errs.ErrUnauthorized)
	}

	var input dto.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}
	input.ID = c.Param("id")

	p, err := h.uc.UpdateProduct(c.Request().Context(), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	items, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: items, Total: len(items)})
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	if auth.Role(c) == model.RoleCustomer {
		return httpx.Error(c, errs.ErrUnauthorized)
	}

	var input dto.CreateCategoryInput
	if err := c.Bind(&input); err != nil {
		return httpx.Error(c, errs.ErrValidation)
	}

	cat, err := h.uc.CreateCategory(c.Request().Context(), &input)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}
