package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/adr1ancosmin/padel-pal/internal/court/dto"
	"github.com/adr1ancosmin/padel-pal/internal/court/models"
	"github.com/adr1ancosmin/padel-pal/internal/court/service"
)

type CourtHandler struct {
	svc service.CourtService
}

func NewCourtHandler(svc service.CourtService) *CourtHandler {
	return &CourtHandler{svc: svc}
}

func (h *CourtHandler) RegisterRoutes(e *echo.Echo) {
	courts := e.Group("/api/courts")
	courts.POST("", h.CreateCourt)
	courts.GET("", h.ListCourts)
	courts.GET("/:id", h.GetCourt)
}

func (h *CourtHandler) CreateCourt(c echo.Context) error {
	var req dto.CreateCourtRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ClubName == "" || req.CourtName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "clubName and courtName are required")
	}

	court := &models.Court{
		ClubName:  req.ClubName,
		CourtName: req.CourtName,
		Indoor:    req.Indoor,
	}
	if err := h.svc.CreateCourt(c.Request().Context(), court); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToCourtResponse(court))
}

func (h *CourtHandler) GetCourt(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid court id")
	}

	court, err := h.svc.GetCourt(c.Request().Context(), id)
	switch {
	case errors.Is(err, service.ErrCourtNotFound):
		return c.String(http.StatusBadRequest, "Court not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToCourtResponse(court))
}

func (h *CourtHandler) ListCourts(c echo.Context) error {
	courts, err := h.svc.ListCourts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToCourtResponses(courts))
}
