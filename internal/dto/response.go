package dto

import (
	"time"

	"github.com/eventio/ticketing-service/internal/models"
	"github.com/eventio/ticketing-service/internal/service"
)

type HoldResponse struct {
	PaymentRef  uint      `json:"payment_ref"`
	RedirectURL string    `json:"redirect_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type InsufficientCapacityResponse struct {
	Message   string `json:"message"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

type AvailabilityResponse struct {
	EventID   uint `json:"event_id"`
	Available int  `json:"available"`
}

type TicketStatusResponse struct {
	HasTicket bool `json:"has_ticket"`
	TicketID  uint `json:"ticket_id,omitempty"`
}

type PaymentResponse struct {
	ID                   uint                 `json:"id"`
	EventID              uint                 `json:"event_id"`
	Quantity             int                  `json:"quantity"`
	UnitPrice            float64              `json:"unit_price"`
	TicketTier           string               `json:"ticket_tier"`
	Status               models.PaymentStatus `json:"status"`
	CreatedAt            time.Time            `json:"created_at"`
	IsReservationActive  bool                 `json:"is_reservation_active"`
	TimeRemainingMinutes int                  `json:"time_remaining_minutes"`
}

type TicketResponse struct {
	ID         uint                `json:"id"`
	EventID    uint                `json:"event_id"`
	Credential string              `json:"credential"`
	QRData     string              `json:"qr_data"`
	Status     models.TicketStatus `json:"status"`
	IssuedAt   time.Time           `json:"issued_at"`
	Event      *models.Event       `json:"event,omitempty"`
}

type ReservationResponse struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	ClientID  string    `json:"client_id"`
	PaymentID uint      `json:"payment_id"`
	Quantity  int       `json:"quantity"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CleanupResponse struct {
	Released int64 `json:"released"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToHoldResponse(r *service.HoldResult) HoldResponse {
	return HoldResponse{
		PaymentRef:  r.Payment.ID,
		RedirectURL: r.RedirectURL,
		ExpiresAt:   r.Reservation.ExpiresAt,
	}
}

func ToPaymentResponse(p service.PaymentWithHold, now time.Time) PaymentResponse {
	resp := PaymentResponse{
		ID:         p.Payment.ID,
		EventID:    p.Payment.EventID,
		Quantity:   p.Payment.Quantity,
		UnitPrice:  p.Payment.UnitPrice,
		TicketTier: p.Payment.TicketTier,
		Status:     p.Payment.Status,
		CreatedAt:  p.Payment.CreatedAt,
	}
	if p.Reservation != nil && p.Reservation.Active(now) {
		resp.IsReservationActive = true
		resp.TimeRemainingMinutes = int(p.Reservation.ExpiresAt.Sub(now).Minutes())
	}
	return resp
}

func ToTicketResponse(t *models.Ticket) TicketResponse {
	return TicketResponse{
		ID:         t.ID,
		EventID:    t.EventID,
		Credential: t.Credential,
		QRData:     t.QRData,
		Status:     t.Status,
		IssuedAt:   t.IssuedAt,
		Event:      t.Event,
	}
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		ClientID:  r.ClientID,
		PaymentID: r.PaymentID,
		Quantity:  r.Quantity,
		ExpiresAt: r.ExpiresAt,
	}
}
