package handler

import (
	"net/http"
	"strconv"

	"github.com/eventio/ticketing-service/internal/dto"
	"github.com/eventio/ticketing-service/internal/service"
	"github.com/labstack/echo/v4"
)

// AdminHandler exposes the operational surface: live holds and on-demand
// expiry sweeps. Authn/authz sits in front of this service and is out of
// scope here.
type AdminHandler struct {
	reservations service.ReservationService
	sweeper      *service.Sweeper
}

func NewAdminHandler(reservations service.ReservationService, sweeper *service.Sweeper) *AdminHandler {
	return &AdminHandler{reservations: reservations, sweeper: sweeper}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/reservations", h.ListReservations)
	e.DELETE("/api/v1/reservations/cleanup", h.Cleanup)
}

func (h *AdminHandler) ListReservations(c echo.Context) error {
	var eventID *uint
	if s := c.QueryParam("event_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid event_id")
		}
		u := uint(id)
		eventID = &u
	}

	reservations, err := h.reservations.ListActive(c.Request().Context(), eventID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = dto.ToReservationResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) Cleanup(c echo.Context) error {
	released, err := h.sweeper.SweepOnce(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.CleanupResponse{Released: released})
}
