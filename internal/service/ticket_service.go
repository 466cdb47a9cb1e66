package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/eventio/ticketing-service/internal/models"
	"github.com/eventio/ticketing-service/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketStatusResult struct {
	HasTicket bool
	TicketID  uint
}

type TicketService interface {
	IssueForPayment(ctx context.Context, payment *models.Payment) error
	CheckStatus(ctx context.Context, paymentID uint, clientID string) (*TicketStatusResult, error)
	GetTicket(ctx context.Context, id uint, clientID string) (*models.Ticket, error)
}

type ticketService struct {
	ticketRepo      repository.TicketRepository
	paymentRepo     repository.PaymentRepository
	eventRepo       repository.EventRepository
	reservationRepo repository.ReservationRepository
	publisher       EventPublisher
}

func NewTicketService(
	ticketRepo repository.TicketRepository,
	paymentRepo repository.PaymentRepository,
	eventRepo repository.EventRepository,
	reservationRepo repository.ReservationRepository,
	publisher EventPublisher,
) TicketService {
	return &ticketService{
		ticketRepo:      ticketRepo,
		paymentRepo:     paymentRepo,
		eventRepo:       eventRepo,
		reservationRepo: reservationRepo,
		publisher:       publisher,
	}
}

// IssueForPayment creates the tickets an approved payment is owed.
// Deficit-counted and therefore idempotent: only the gap between
// existing tickets and the paid quantity is created, the sold counter is
// bumped by exactly the number created in this call, and a replayed
// settlement finds no gap and does nothing. The payment row lock
// serializes concurrent passes for the same payment.
func (s *ticketService) IssueForPayment(ctx context.Context, payment *models.Payment) error {
	var issued []models.Ticket

	err := s.paymentRepo.WithTx(ctx, func(tx *gorm.DB) error {
		locked, err := s.paymentRepo.FindByIDForUpdate(ctx, tx, payment.ID)
		if err != nil {
			return fmt.Errorf("lock payment: %w", err)
		}

		existing, err := s.ticketRepo.CountByPaymentID(ctx, tx, locked.ID)
		if err != nil {
			return err
		}
		remaining := locked.Quantity - int(existing)
		if remaining <= 0 {
			return s.confirmReservation(ctx, tx, locked.ID)
		}

		now := time.Now()
		for i := 0; i < remaining; i++ {
			ticket, err := s.createTicket(ctx, tx, locked, now)
			if err != nil {
				return err
			}
			issued = append(issued, *ticket)
		}

		// Increment by what this call actually created, never the full
		// requested quantity.
		if err := s.eventRepo.IncrementTicketsSold(ctx, tx, locked.EventID, len(issued)); err != nil {
			return err
		}

		return s.confirmReservation(ctx, tx, locked.ID)
	})
	if err != nil {
		return err
	}

	if len(issued) > 0 {
		log.Printf("[Ticket] issued %d ticket(s) for payment %d event %d", len(issued), payment.ID, payment.EventID)
		if s.publisher != nil {
			if err := s.publisher.Publish("ticket.issued", issued); err != nil {
				log.Printf("[Ticket] failed to publish ticket.issued for payment %d: %v", payment.ID, err)
			}
		}
	}
	return nil
}

// createTicket generates a fresh credential and retries once on a
// credential collision.
func (s *ticketService) createTicket(ctx context.Context, tx *gorm.DB, payment *models.Payment, now time.Time) (*models.Ticket, error) {
	for attempt := 0; attempt < 2; attempt++ {
		credential := uuid.NewString()
		ticket := &models.Ticket{
			PaymentID:  payment.ID,
			EventID:    payment.EventID,
			ClientID:   payment.ClientID,
			Credential: credential,
			QRData:     encodeQRData(credential, payment.EventID, payment.ClientID, now),
			Status:     models.TicketApproved,
			IssuedAt:   now,
		}
		err := s.ticketRepo.Create(ctx, tx, ticket)
		if err == nil {
			return ticket, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		log.Printf("[Ticket] credential collision for payment %d, regenerating", payment.ID)
	}
	return nil, fmt.Errorf("credential collision persisted for payment %d", payment.ID)
}

func (s *ticketService) confirmReservation(ctx context.Context, tx *gorm.DB, paymentID uint) error {
	reservation, err := s.reservationRepo.FindByPaymentID(ctx, tx, paymentID)
	if err != nil {
		// The hold may have expired before settlement arrived; the sale
		// still stands because capacity was reserved at hold time.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if reservation.Confirmed {
		return nil
	}
	return s.reservationRepo.Confirm(ctx, tx, reservation.ID)
}

// encodeQRData builds the scannable payload: credential, event, buyer
// and issuance time, base64-encoded JSON.
func encodeQRData(credential string, eventID uint, clientID string, issuedAt time.Time) string {
	payload, _ := json.Marshal(map[string]any{
		"ticket":    credential,
		"event_id":  eventID,
		"client_id": clientID,
		"issued_at": issuedAt.UTC().Format(time.RFC3339),
	})
	return base64.StdEncoding.EncodeToString(payload)
}

// CheckStatus backs the frontend polling loop after redirect: has the
// settlement produced a ticket yet.
func (s *ticketService) CheckStatus(ctx context.Context, paymentID uint, clientID string) (*TicketStatusResult, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment.ClientID != clientID {
		return nil, ErrPaymentNotFound
	}

	tickets, err := s.ticketRepo.FindByPaymentID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return &TicketStatusResult{HasTicket: false}, nil
	}
	return &TicketStatusResult{HasTicket: true, TicketID: tickets[0].ID}, nil
}

func (s *ticketService) GetTicket(ctx context.Context, id uint, clientID string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket.ClientID != clientID {
		return nil, ErrNotTicketOwner
	}
	return ticket, nil
}
