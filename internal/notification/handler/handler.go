package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/freshkart-api/internal/auth"
	"github.com/freshkart/freshkart-api/internal/httpx"
	"github.com/freshkart/freshkart-api/internal/notification"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type NotificationHandler struct {
	repo   notification.Repository
	logger logger.ZapLogger
}

func NewNotificationHandler(repo notification.Repository, log logger.ZapLogger) *NotificationHandler {
	return &NotificationHandler{repo: repo, logger: log}
}

func (h *NotificationHandler) Register(g *echo.Group) {
	g.GET("/notifications", h.List)
	g.POST("/notifications/:id/read", h.MarkRead)
}

func (h *NotificationHandler) List(c echo.Context) error {
	page, pageSize := httpx.Page(c)
	items, total, err := h.repo.ListByUser(
		c.Request().Context(), auth.UserID(c), c.QueryParam("unread") == "true", page, pageSize)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, httpx.ListResponse{Items: items, Total: total})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.repo.MarkRead(c.Request().Context(), c.Param("id"), auth.UserID(c)); err != nil {
		return httpx.Error(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
