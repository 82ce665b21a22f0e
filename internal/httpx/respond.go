package httpx

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/freshkart-api/internal/errs"
)

// Error renders a domain error with the status the taxonomy assigns it.
func Error(c echo.Context, err error) error {
	return c.JSON(errs.HTTPStatus(err), map[string]string{"error": err.Error()})
}

// Page reads page/page_size query params with sane defaults.
func Page(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}
