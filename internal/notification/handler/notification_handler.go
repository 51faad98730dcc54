package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adr1ancosmin/padel-pal/internal/notification/models"
	"github.com/adr1ancosmin/padel-pal/internal/notification/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/notifications")
	g.GET("", h.ListNotifications)
	g.GET("/health", h.Health)
	g.GET("/user/:userId", h.ListByUser)
	g.GET("/booking/:bookingId", h.ListByBooking)
	g.GET("/:id", h.GetNotification)
}

func (h *NotificationHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Notification Service is running!")
}

// ListNotifications returns every notification, or only those with ?status=.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	var status *models.NotificationStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := models.NotificationStatus(strings.ToUpper(raw))
		status = &s
	}

	out, err := h.svc.ListNotifications(c.Request().Context(), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func (h *NotificationHandler) GetNotification(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid notification id")
	}

	n, err := h.svc.GetNotification(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) ListByUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	out, err := h.svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func (h *NotificationHandler) ListByBooking(c echo.Context) error {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	out, err := h.svc.ListByBooking(c.Request().Context(), bookingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func nonNil(ns []models.Notification) []models.Notification {
	if ns == nil {
		return []models.Notification{}
	}
	return ns
}
