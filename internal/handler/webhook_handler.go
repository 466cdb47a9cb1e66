package handler

import (
	"net/http"

	"github.com/eventio/ticketing-service/internal/dto"
	"github.com/eventio/ticketing-service/internal/service"
	"github.com/labstack/echo/v4"
)

type WebhookHandler struct {
	svc service.SettlementService
}

func NewWebhookHandler(svc service.SettlementService) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/payments/webhook", h.HandleWebhook)
}

// HandleWebhook receives provider notifications. It responds 200 for
// everything the reconciler absorbed, including garbage, and 500 only on
// unexpected internal failure so the provider retries later.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	// Provider versions disagree on where topic and id live: merge query
	// string and body, query first.
	topic := c.QueryParam("topic")
	if topic == "" {
		topic = c.QueryParam("type")
	}
	id := c.QueryParam("id")
	if id == "" {
		id = c.QueryParam("data.id")
	}

	var req dto.WebhookRequest
	if err := c.Bind(&req); err == nil {
		if topic == "" {
			topic = req.Type
		}
		if id == "" {
			id = req.Data.ID
		}
	}

	secret := c.QueryParam("secret")

	if err := h.svc.HandleNotification(c.Request().Context(), topic, id, secret); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "notification processing failed")
	}
	return c.NoContent(http.StatusOK)
}
