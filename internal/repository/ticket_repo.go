package repository

import (
	"context"

	"github.com/eventio/ticketing-service/internal/models"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error
	CountByPaymentID(ctx context.Context, tx *gorm.DB, paymentID uint) (int64, error)
	FindByID(ctx context.Context, id uint) (*models.Ticket, error)
	FindByPaymentID(ctx context.Context, paymentID uint) ([]models.Ticket, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	return tx.WithContext(ctx).Create(ticket).Error
}

// CountByPaymentID drives the deficit-counted issuance guard: tickets are
// only ever created for the gap between this count and the paid quantity.
func (r *ticketRepository) CountByPaymentID(ctx context.Context, tx *gorm.DB, paymentID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("payment_id = ?", paymentID).
		Count(&count).Error
	return count, err
}

func (r *ticketRepository) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).Preload("Event").First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByPaymentID(ctx context.Context, paymentID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("id ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}
