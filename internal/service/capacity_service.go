package service

import (
	"context"
	"time"

	"github.com/eventio/ticketing-service/internal/models"
	"github.com/eventio/ticketing-service/internal/repository"
	"gorm.io/gorm"
)

// CapacityService computes live availability for an event:
// capacity - tickets sold - quantity held by active reservations.
// Pure read; it is queried immediately before each decision point and
// never cached across one.
type CapacityService interface {
	Available(ctx context.Context, eventID uint) (int, error)
	AvailableLocked(ctx context.Context, tx *gorm.DB, event *models.Event) (int, error)
}

type capacityService struct {
	eventRepo       repository.EventRepository
	reservationRepo repository.ReservationRepository
	db              *gorm.DB
}

func NewCapacityService(eventRepo repository.EventRepository, reservationRepo repository.ReservationRepository, db *gorm.DB) CapacityService {
	return &capacityService{
		eventRepo:       eventRepo,
		reservationRepo: reservationRepo,
		db:              db,
	}
}

// Available is the unlocked read used for quotes and the first-phase
// check. Best effort: concurrent holds may land between this read and
// the locked second-phase check.
func (s *capacityService) Available(ctx context.Context, eventID uint) (int, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return 0, ErrEventNotFound
	}
	return s.compute(ctx, s.db, event)
}

// AvailableLocked computes availability inside a transaction that
// already holds the event row lock. This is the second-phase check that
// makes the hold commit safe against concurrent holds.
func (s *capacityService) AvailableLocked(ctx context.Context, tx *gorm.DB, event *models.Event) (int, error) {
	return s.compute(ctx, tx, event)
}

func (s *capacityService) compute(ctx context.Context, tx *gorm.DB, event *models.Event) (int, error) {
	held, err := s.reservationRepo.SumActiveQuantity(ctx, tx, event.ID, time.Now())
	if err != nil {
		return 0, err
	}

	available := event.Capacity - event.TicketsSold - held
	if available < 0 {
		available = 0
	}
	return available, nil
}
