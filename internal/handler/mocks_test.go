package handler

import (
	"context"
	"time"

	"github.com/eventio/ticketing-service/internal/models"
	"github.com/eventio/ticketing-service/internal/service"
	"gorm.io/gorm"
)

// --- Mock ReservationService ---

type mockReservationService struct {
	createHoldFn func(ctx context.Context, in service.CreateHoldInput) (*service.HoldResult, error)
	listActiveFn func(ctx context.Context, eventID *uint) ([]models.Reservation, error)
}

func (m *mockReservationService) CreateHold(ctx context.Context, in service.CreateHoldInput) (*service.HoldResult, error) {
	return m.createHoldFn(ctx, in)
}
func (m *mockReservationService) ListActive(ctx context.Context, eventID *uint) ([]models.Reservation, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx, eventID)
	}
	return nil, nil
}

// --- Mock CapacityService ---

type mockCapacityService struct {
	availableFn func(ctx context.Context, eventID uint) (int, error)
}

func (m *mockCapacityService) Available(ctx context.Context, eventID uint) (int, error) {
	return m.availableFn(ctx, eventID)
}
func (m *mockCapacityService) AvailableLocked(ctx context.Context, tx *gorm.DB, event *models.Event) (int, error) {
	return m.availableFn(ctx, event.ID)
}

// --- Mock SettlementService ---

type mockSettlementService struct {
	handleFn func(ctx context.Context, topic, externalPaymentID, secret string) error
}

func (m *mockSettlementService) HandleNotification(ctx context.Context, topic, externalPaymentID, secret string) error {
	return m.handleFn(ctx, topic, externalPaymentID, secret)
}

// --- Mock TicketService ---

type mockTicketService struct {
	checkStatusFn func(ctx context.Context, paymentID uint, clientID string) (*service.TicketStatusResult, error)
	getTicketFn   func(ctx context.Context, id uint, clientID string) (*models.Ticket, error)
}

func (m *mockTicketService) IssueForPayment(ctx context.Context, payment *models.Payment) error {
	return nil
}
func (m *mockTicketService) CheckStatus(ctx context.Context, paymentID uint, clientID string) (*service.TicketStatusResult, error) {
	return m.checkStatusFn(ctx, paymentID, clientID)
}
func (m *mockTicketService) GetTicket(ctx context.Context, id uint, clientID string) (*models.Ticket, error) {
	return m.getTicketFn(ctx, id, clientID)
}

// --- Mock PaymentService ---

type mockPaymentService struct {
	listFn func(ctx context.Context, clientID string) ([]service.PaymentWithHold, error)
}

func (m *mockPaymentService) ListMyPayments(ctx context.Context, clientID string) ([]service.PaymentWithHold, error) {
	return m.listFn(ctx, clientID)
}

// --- Mock ReservationRepository (for sweeper-backed routes) ---

type mockReservationRepo struct {
	deleteExpiredFn func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockReservationRepo) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
func (m *mockReservationRepo) Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
	return nil
}
func (m *mockReservationRepo) FindByPaymentID(ctx context.Context, tx *gorm.DB, paymentID uint) (*models.Reservation, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockReservationRepo) SumActiveQuantity(ctx context.Context, tx *gorm.DB, eventID uint, now time.Time) (int, error) {
	return 0, nil
}
func (m *mockReservationRepo) Confirm(ctx context.Context, tx *gorm.DB, id uint) error {
	return nil
}
func (m *mockReservationRepo) DeleteByPaymentID(ctx context.Context, tx *gorm.DB, paymentID uint) error {
	return nil
}
func (m *mockReservationRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return m.deleteExpiredFn(ctx, now)
}
func (m *mockReservationRepo) FindActive(ctx context.Context, eventID *uint, now time.Time) ([]models.Reservation, error) {
	return nil, nil
}
