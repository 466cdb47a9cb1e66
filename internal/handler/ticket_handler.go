package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/eventio/ticketing-service/internal/dto"
	"github.com/eventio/ticketing-service/internal/service"
	"github.com/labstack/echo/v4"
)

type TicketHandler struct {
	tickets  service.TicketService
	payments service.PaymentService
}

func NewTicketHandler(tickets service.TicketService, payments service.PaymentService) *TicketHandler {
	return &TicketHandler{tickets: tickets, payments: payments}
}

func (h *TicketHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/payments/:id/status", h.CheckStatus)
	e.GET("/api/v1/payments", h.ListMyPayments)
	e.GET("/api/v1/tickets/:id", h.GetTicket)
}

// CheckStatus is the polling endpoint the frontend hits after the
// provider redirect: has settlement produced a ticket yet.
func (h *TicketHandler) CheckStatus(c echo.Context) error {
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}
	clientID := c.QueryParam("client_id")
	if clientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client_id is required")
	}

	status, err := h.tickets.CheckStatus(c.Request().Context(), uint(paymentID), clientID)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.TicketStatusResponse{
		HasTicket: status.HasTicket,
		TicketID:  status.TicketID,
	})
}

func (h *TicketHandler) ListMyPayments(c echo.Context) error {
	clientID := c.QueryParam("client_id")
	if clientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client_id is required")
	}

	payments, err := h.payments.ListMyPayments(c.Request().Context(), clientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	resp := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = dto.ToPaymentResponse(p, now)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TicketHandler) GetTicket(c echo.Context) error {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}
	clientID := c.QueryParam("client_id")
	if clientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client_id is required")
	}

	ticket, err := h.tickets.GetTicket(c.Request().Context(), uint(ticketID), clientID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotTicketOwner):
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}
