package repository

import (
	"context"
	"time"

	"github.com/eventio/ticketing-service/internal/models"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByPaymentID(ctx context.Context, tx *gorm.DB, paymentID uint) (*models.Reservation, error)
	SumActiveQuantity(ctx context.Context, tx *gorm.DB, eventID uint, now time.Time) (int, error)
	Confirm(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByPaymentID(ctx context.Context, tx *gorm.DB, paymentID uint) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	FindActive(ctx context.Context, eventID *uint, now time.Time) ([]models.Reservation, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// WithTx runs fn inside a database transaction.
func (r *reservationRepository) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) FindByPaymentID(ctx context.Context, tx *gorm.DB, paymentID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := tx.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// SumActiveQuantity totals the quantity held by unconfirmed, unexpired
// reservations for an event. Feeds the capacity computation.
func (r *reservationRepository) SumActiveQuantity(ctx context.Context, tx *gorm.DB, eventID uint, now time.Time) (int, error) {
	var total int64
	err := tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("event_id = ? AND confirmed = ? AND expires_at > ?", eventID, false, now).
		Scan(&total).Error
	return int(total), err
}

func (r *reservationRepository) Confirm(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("confirmed", true).Error
}

func (r *reservationRepository) DeleteByPaymentID(ctx context.Context, tx *gorm.DB, paymentID uint) error {
	return tx.WithContext(ctx).
		Where("payment_id = ? AND confirmed = ?", paymentID, false).
		Delete(&models.Reservation{}).Error
}

// DeleteExpired releases every unconfirmed reservation past its window
// and returns how many were removed. Safe to run concurrently with hold
// creation: it only touches already-expired rows.
func (r *reservationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("confirmed = ? AND expires_at < ?", false, now).
		Delete(&models.Reservation{})
	return result.RowsAffected, result.Error
}

func (r *reservationRepository) FindActive(ctx context.Context, eventID *uint, now time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	q := r.db.WithContext(ctx).
		Where("confirmed = ? AND expires_at > ?", false, now)
	if eventID != nil {
		q = q.Where("event_id = ?", *eventID)
	}
	if err := q.Order("expires_at ASC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}
