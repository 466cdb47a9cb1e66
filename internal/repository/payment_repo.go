package repository

import (
	"context"

	"github.com/eventio/ticketing-service/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Payment, error)
	FindByExternalPaymentID(ctx context.Context, externalID string) (*models.Payment, error)
	FindLatestPending(ctx context.Context, clientID string, eventID uint) (*models.Payment, error)
	FindByClientID(ctx context.Context, clientID string) ([]models.Payment, error)
	Save(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	Delete(ctx context.Context, id uint) error
	GetDB() *gorm.DB
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetDB() *gorm.DB {
	return r.db
}

// WithTx runs fn inside a database transaction.
func (r *paymentRepository) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByIDForUpdate locks the payment row, serializing concurrent
// issuance passes for the same payment.
func (r *paymentRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByExternalPaymentID(ctx context.Context, externalID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("external_payment_id = ?", externalID).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindLatestPending is the slow-path settlement lookup: the most recent
// pending payment for a buyer+event pair. Ambiguous when the same buyer
// has two live attempts for one event; the external-payment-id fast path
// takes over as soon as a payment has been seen once.
func (r *paymentRepository) FindLatestPending(ctx context.Context, clientID string, eventID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND event_id = ? AND status = ?", clientID, eventID, models.PaymentPending).
		Order("created_at DESC").
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByClientID(ctx context.Context, clientID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Save(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return tx.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Payment{}, id).Error
}
