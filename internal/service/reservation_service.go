package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/eventio/ticketing-service/internal/gateway"
	"github.com/eventio/ticketing-service/internal/models"
	"github.com/eventio/ticketing-service/internal/repository"
	"gorm.io/gorm"
)

type CreateHoldInput struct {
	EventID    uint
	ClientID   string
	Quantity   int
	TicketTier string
}

type HoldResult struct {
	Payment     *models.Payment
	Reservation *models.Reservation
	RedirectURL string
}

type ReservationService interface {
	CreateHold(ctx context.Context, in CreateHoldInput) (*HoldResult, error)
	ListActive(ctx context.Context, eventID *uint) ([]models.Reservation, error)
}

type reservationService struct {
	eventRepo       repository.EventRepository
	paymentRepo     repository.PaymentRepository
	reservationRepo repository.ReservationRepository
	capacity        CapacityService
	gw              gateway.PaymentGateway
	holdDuration    time.Duration
	frontendURL     string
	webhookURL      string
}

func NewReservationService(
	eventRepo repository.EventRepository,
	paymentRepo repository.PaymentRepository,
	reservationRepo repository.ReservationRepository,
	capacity CapacityService,
	gw gateway.PaymentGateway,
	holdDuration time.Duration,
	frontendURL string,
	webhookURL string,
) ReservationService {
	return &reservationService{
		eventRepo:       eventRepo,
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		capacity:        capacity,
		gw:              gw,
		holdDuration:    holdDuration,
		frontendURL:     frontendURL,
		webhookURL:      webhookURL,
	}
}

// CreateHold runs the two-phase hold algorithm: a cheap unlocked
// capacity check before any state is created, then a second check under
// the event row lock right before the reservation is committed. The
// second check closes the window left open by concurrent holds created
// in between; a hold that fails there leaves a pending payment with no
// capacity impact, which settles or rots harmlessly downstream.
func (s *reservationService) CreateHold(ctx context.Context, in CreateHoldInput) (*HoldResult, error) {
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	switch in.TicketTier {
	case "":
		in.TicketTier = models.TierGeneral
	case models.TierGeneral, models.TierPresale:
	default:
		return nil, ErrInvalidTier
	}

	event, err := s.eventRepo.FindByID(ctx, in.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if event.IsFree {
		return nil, ErrFreeEvent
	}
	now := time.Now()
	if now.Before(event.SellStartAt) || now.After(event.SellEndAt) {
		return nil, ErrSaleClosed
	}
	if in.TicketTier == models.TierPresale && !event.PresaleActive {
		return nil, ErrPresaleInactive
	}

	// Phase one: fail fast with no state created.
	available, err := s.capacity.Available(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if available < in.Quantity {
		return nil, &InsufficientCapacityError{Available: available, Requested: in.Quantity}
	}

	payment := &models.Payment{
		ClientID:         in.ClientID,
		EventID:          in.EventID,
		Quantity:         in.Quantity,
		UnitPrice:        event.UnitPrice(in.TicketTier),
		TicketTier:       in.TicketTier,
		Status:           models.PaymentPending,
		CorrelationToken: newCorrelationToken(in.ClientID, in.EventID),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	pref, err := s.gw.CreatePreference(ctx, gateway.CreatePreferenceRequest{
		Items: []gateway.Item{{
			Title:      event.Name,
			Quantity:   in.Quantity,
			UnitPrice:  payment.UnitPrice,
			CurrencyID: "ARS",
		}},
		BackURLs: gateway.BackURLs{
			Success: s.frontendURL + "/success",
			Failure: s.frontendURL + "/failure",
			Pending: s.frontendURL + "/pending",
		},
		NotificationURL:   s.webhookURL,
		AutoReturn:        "approved",
		ExternalReference: payment.CorrelationToken,
		Metadata: map[string]string{
			"client_id": in.ClientID,
			"event_id":  fmt.Sprintf("%d", in.EventID),
		},
	})
	if err != nil {
		// Abort cleanly: a failed hold attempt leaves no trace.
		if delErr := s.paymentRepo.Delete(ctx, payment.ID); delErr != nil {
			log.Printf("[Reservation] failed to delete payment %d after gateway error: %v", payment.ID, delErr)
		}
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	payment.PreferenceID = pref.ID
	if err := s.paymentRepo.Save(ctx, s.paymentRepo.GetDB(), payment); err != nil {
		return nil, fmt.Errorf("store preference id: %w", err)
	}

	var reservation *models.Reservation
	err = s.reservationRepo.WithTx(ctx, func(tx *gorm.DB) error {
		// Phase two: re-check under the event row lock.
		locked, err := s.eventRepo.FindByIDForUpdate(ctx, tx, in.EventID)
		if err != nil {
			return ErrEventNotFound
		}
		available, err := s.capacity.AvailableLocked(ctx, tx, locked)
		if err != nil {
			return err
		}
		if available < in.Quantity {
			// The stale intent is never settled or gets rejected downstream.
			return &InsufficientCapacityError{Available: available, Requested: in.Quantity}
		}

		reservation = &models.Reservation{
			EventID:   in.EventID,
			ClientID:  in.ClientID,
			PaymentID: payment.ID,
			Quantity:  in.Quantity,
			ExpiresAt: time.Now().Add(s.holdDuration),
		}
		return s.reservationRepo.Create(ctx, tx, reservation)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Reservation] hold %d created: event=%d client=%s qty=%d expires=%s",
		reservation.ID, in.EventID, in.ClientID, in.Quantity, reservation.ExpiresAt.Format(time.RFC3339))

	return &HoldResult{
		Payment:     payment,
		Reservation: reservation,
		RedirectURL: pref.InitPoint,
	}, nil
}

func (s *reservationService) ListActive(ctx context.Context, eventID *uint) ([]models.Reservation, error) {
	return s.reservationRepo.FindActive(ctx, eventID, time.Now())
}
