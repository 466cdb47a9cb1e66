package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eventio/ticketing-service/internal/dto"
	"github.com/eventio/ticketing-service/internal/gateway"
	"github.com/eventio/ticketing-service/internal/service"
	"github.com/labstack/echo/v4"
)

type HoldHandler struct {
	svc      service.ReservationService
	capacity service.CapacityService
}

func NewHoldHandler(svc service.ReservationService, capacity service.CapacityService) *HoldHandler {
	return &HoldHandler{svc: svc, capacity: capacity}
}

func (h *HoldHandler) RegisterRoutes(e *echo.Echo) {
	events := e.Group("/api/v1/events")
	events.POST("/:id/holds", h.CreateHold)
	events.GET("/:id/availability", h.GetAvailability)
}

func (h *HoldHandler) CreateHold(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.CreateHoldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ClientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client_id is required")
	}

	result, err := h.svc.CreateHold(c.Request().Context(), service.CreateHoldInput{
		EventID:    uint(eventID),
		ClientID:   req.ClientID,
		Quantity:   req.Quantity,
		TicketTier: req.TicketTier,
	})
	if err != nil {
		var capErr *service.InsufficientCapacityError
		switch {
		case errors.As(err, &capErr):
			return echo.NewHTTPError(http.StatusConflict, dto.InsufficientCapacityResponse{
				Message:   capErr.Error(),
				Available: capErr.Available,
				Requested: capErr.Requested,
			})
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidQuantity),
			errors.Is(err, service.ErrInvalidTier),
			errors.Is(err, service.ErrSaleClosed),
			errors.Is(err, service.ErrFreeEvent),
			errors.Is(err, service.ErrPresaleInactive):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, gateway.ErrUnavailable):
			return echo.NewHTTPError(http.StatusBadGateway, "payment provider unavailable, try again")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToHoldResponse(result))
}

func (h *HoldHandler) GetAvailability(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	available, err := h.capacity.Available(c.Request().Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.AvailabilityResponse{
		EventID:   uint(eventID),
		Available: available,
	})
}
