package service

import (
	"context"
	"log"
	"time"

	"github.com/eventio/ticketing-service/internal/repository"
)

// Sweeper releases reservations whose window elapsed without settlement,
// restoring their capacity. It never touches payment or ticket records
// and is safe alongside hold creation and reconciliation: it only
// operates on rows that are already expired.
type Sweeper struct {
	reservationRepo repository.ReservationRepository
	interval        time.Duration
}

func NewSweeper(reservationRepo repository.ReservationRepository, interval time.Duration) *Sweeper {
	return &Sweeper{reservationRepo: reservationRepo, interval: interval}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[Sweeper] stopping")
				return
			case <-ticker.C:
				if _, err := s.SweepOnce(ctx); err != nil {
					log.Printf("[Sweeper] sweep failed: %v", err)
				}
			}
		}
	}()
}

// SweepOnce deletes all expired unconfirmed reservations and returns how
// many were released. Also invoked on demand by the admin cleanup route.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	released, err := s.reservationRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if released > 0 {
		log.Printf("[Sweeper] released %d expired reservation(s)", released)
	}
	return released, nil
}
