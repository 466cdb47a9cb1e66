package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/eventio/ticketing-service/internal/gateway"
	"github.com/eventio/ticketing-service/internal/models"
	"github.com/eventio/ticketing-service/internal/repository"
	"gorm.io/gorm"
)

// EventPublisher is the slice of the AMQP publisher the services use.
// Publish failures are logged, not surfaced: missing a broadcast must
// never fail a settlement that already committed.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// SettlementService consumes provider notifications and applies
// exactly-once transitions to payment, reservation and ticket state.
// Every return of nil means "acknowledge the notification"; a non-nil
// error is the single retry path and leaves the notification un-acked so
// the provider resubmits it.
type SettlementService interface {
	HandleNotification(ctx context.Context, topic, externalPaymentID, secret string) error
}

type settlementService struct {
	paymentRepo     repository.PaymentRepository
	reservationRepo repository.ReservationRepository
	tickets         TicketService
	gw              gateway.PaymentGateway
	publisher       EventPublisher
	webhookSecret   string
}

func NewSettlementService(
	paymentRepo repository.PaymentRepository,
	reservationRepo repository.ReservationRepository,
	tickets TicketService,
	gw gateway.PaymentGateway,
	publisher EventPublisher,
	webhookSecret string,
) SettlementService {
	return &settlementService{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		tickets:         tickets,
		gw:              gw,
		publisher:       publisher,
		webhookSecret:   webhookSecret,
	}
}

func (s *settlementService) HandleNotification(ctx context.Context, topic, externalPaymentID, secret string) error {
	// Verification failures are absorbed silently. Surfacing them as
	// errors would only trigger provider retries for traffic we will
	// never accept.
	if s.webhookSecret != "" && secret != s.webhookSecret {
		log.Printf("[Settlement] notification with bad secret ignored")
		return nil
	}
	if topic != "payment" {
		return nil
	}
	if externalPaymentID == "" {
		return nil
	}

	// The notification only tells us which payment to ask about. Status
	// and amount come from the provider's own record.
	provider, err := s.gw.GetPayment(ctx, externalPaymentID)
	if err != nil {
		return fmt.Errorf("query provider for payment %s: %w", externalPaymentID, err)
	}

	payment, err := s.locatePayment(ctx, provider)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			// Unattributable settlement: logged for manual review, acked
			// so the provider stops retrying it.
			log.Printf("[Settlement] unattributable payment %s (reference %q), ignoring", externalPaymentID, provider.ExternalReference)
			return nil
		}
		return err
	}

	now := time.Now()
	nextStatus, action := reconcile(provider.Status)

	// Mirroring the authoritative record is always safe to repeat.
	payment.ExternalPaymentID = provider.ID
	payment.StatusDetail = provider.StatusDetail
	payment.TransactionAmount = provider.TransactionAmount
	payment.SettledAt = &now
	if nextStatus != models.PaymentPending {
		payment.Status = nextStatus
	}
	if nextStatus == models.PaymentApproved && payment.ApprovedAt == nil {
		payment.ApprovedAt = &now
	}
	if err := s.paymentRepo.Save(ctx, s.paymentRepo.GetDB(), payment); err != nil {
		return fmt.Errorf("persist settlement for payment %d: %w", payment.ID, err)
	}

	switch action {
	case actionIssueTickets:
		if err := s.tickets.IssueForPayment(ctx, payment); err != nil {
			return fmt.Errorf("issue tickets for payment %d: %w", payment.ID, err)
		}
	case actionReleaseHold:
		// Restore capacity now instead of waiting for expiry.
		if err := s.reservationRepo.DeleteByPaymentID(ctx, s.paymentRepo.GetDB(), payment.ID); err != nil {
			return fmt.Errorf("release hold for payment %d: %w", payment.ID, err)
		}
		log.Printf("[Settlement] payment %d settled %s, hold released", payment.ID, payment.Status)
	case actionNone:
		log.Printf("[Settlement] payment %d still %s at provider, waiting", payment.ID, provider.Status)
		return nil
	}

	if s.publisher != nil {
		if err := s.publisher.Publish("payment.settled", payment); err != nil {
			log.Printf("[Settlement] failed to publish payment.settled for payment %d: %v", payment.ID, err)
		}
	}
	return nil
}

// locatePayment resolves the provider record to a local payment. Fast
// path: the external payment id, set on every previously-seen payment.
// Slow path for a first notification: the buyer+event pair embedded in
// the correlation token, picking the most recent pending attempt.
func (s *settlementService) locatePayment(ctx context.Context, provider *gateway.Payment) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByExternalPaymentID(ctx, provider.ID)
	if err == nil {
		return payment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	clientID, eventID, err := parseCorrelationToken(provider.ExternalReference)
	if err != nil {
		return nil, ErrPaymentNotFound
	}

	payment, err = s.paymentRepo.FindLatestPending(ctx, clientID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}
