package service

import (
	"context"
	"errors"

	"github.com/eventio/ticketing-service/internal/models"
	"github.com/eventio/ticketing-service/internal/repository"
	"gorm.io/gorm"
)

// PaymentWithHold pairs a payment with its reservation, if one still
// exists. The handler derives hold liveness and remaining minutes from
// the reservation's expiry.
type PaymentWithHold struct {
	Payment     models.Payment
	Reservation *models.Reservation
}

type PaymentService interface {
	ListMyPayments(ctx context.Context, clientID string) ([]PaymentWithHold, error)
}

type paymentService struct {
	paymentRepo     repository.PaymentRepository
	reservationRepo repository.ReservationRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository, reservationRepo repository.ReservationRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, reservationRepo: reservationRepo}
}

func (s *paymentService) ListMyPayments(ctx context.Context, clientID string) ([]PaymentWithHold, error) {
	payments, err := s.paymentRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	result := make([]PaymentWithHold, 0, len(payments))
	for _, p := range payments {
		entry := PaymentWithHold{Payment: p}
		reservation, err := s.reservationRepo.FindByPaymentID(ctx, s.paymentRepo.GetDB(), p.ID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		} else {
			entry.Reservation = reservation
		}
		result = append(result, entry)
	}
	return result, nil
}
