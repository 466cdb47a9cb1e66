package service

import (
	"context"
	"time"

	"github.com/eventio/ticketing-service/internal/gateway"
	"github.com/eventio/ticketing-service/internal/models"
	"gorm.io/gorm"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	findByIDFn  func(ctx context.Context, id uint) (*models.Event, error)
	incrementFn func(ctx context.Context, tx *gorm.DB, id uint, n int) error
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) IncrementTicketsSold(ctx context.Context, tx *gorm.DB, id uint, n int) error {
	if m.incrementFn != nil {
		return m.incrementFn(ctx, tx, id, n)
	}
	return nil
}

// --- Mock ReservationRepository ---

type mockReservationRepo struct {
	createFn          func(ctx context.Context, tx *gorm.DB, r *models.Reservation) error
	findByPaymentFn   func(ctx context.Context, tx *gorm.DB, paymentID uint) (*models.Reservation, error)
	sumActiveFn       func(ctx context.Context, tx *gorm.DB, eventID uint, now time.Time) (int, error)
	confirmFn         func(ctx context.Context, tx *gorm.DB, id uint) error
	deleteByPaymentFn func(ctx context.Context, tx *gorm.DB, paymentID uint) error
	deleteExpiredFn   func(ctx context.Context, now time.Time) (int64, error)
	findActiveFn      func(ctx context.Context, eventID *uint, now time.Time) ([]models.Reservation, error)
}

func (m *mockReservationRepo) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
func (m *mockReservationRepo) Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, r)
	}
	return nil
}
func (m *mockReservationRepo) FindByPaymentID(ctx context.Context, tx *gorm.DB, paymentID uint) (*models.Reservation, error) {
	if m.findByPaymentFn != nil {
		return m.findByPaymentFn(ctx, tx, paymentID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockReservationRepo) SumActiveQuantity(ctx context.Context, tx *gorm.DB, eventID uint, now time.Time) (int, error) {
	if m.sumActiveFn != nil {
		return m.sumActiveFn(ctx, tx, eventID, now)
	}
	return 0, nil
}
func (m *mockReservationRepo) Confirm(ctx context.Context, tx *gorm.DB, id uint) error {
	if m.confirmFn != nil {
		return m.confirmFn(ctx, tx, id)
	}
	return nil
}
func (m *mockReservationRepo) DeleteByPaymentID(ctx context.Context, tx *gorm.DB, paymentID uint) error {
	if m.deleteByPaymentFn != nil {
		return m.deleteByPaymentFn(ctx, tx, paymentID)
	}
	return nil
}
func (m *mockReservationRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return 0, nil
}
func (m *mockReservationRepo) FindActive(ctx context.Context, eventID *uint, now time.Time) ([]models.Reservation, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx, eventID, now)
	}
	return nil, nil
}

// --- Mock PaymentRepository ---

type mockPaymentRepo struct {
	createFn         func(ctx context.Context, p *models.Payment) error
	findByIDFn       func(ctx context.Context, id uint) (*models.Payment, error)
	findByExternalFn func(ctx context.Context, externalID string) (*models.Payment, error)
	findLatestFn     func(ctx context.Context, clientID string, eventID uint) (*models.Payment, error)
	findByClientFn   func(ctx context.Context, clientID string) ([]models.Payment, error)
	saveFn           func(ctx context.Context, tx *gorm.DB, p *models.Payment) error
	deleteFn         func(ctx context.Context, id uint) error
}

func (m *mockPaymentRepo) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
func (m *mockPaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = 1
	return nil
}
func (m *mockPaymentRepo) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockPaymentRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Payment, error) {
	return m.FindByID(ctx, id)
}
func (m *mockPaymentRepo) FindByExternalPaymentID(ctx context.Context, externalID string) (*models.Payment, error) {
	if m.findByExternalFn != nil {
		return m.findByExternalFn(ctx, externalID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockPaymentRepo) FindLatestPending(ctx context.Context, clientID string, eventID uint) (*models.Payment, error) {
	if m.findLatestFn != nil {
		return m.findLatestFn(ctx, clientID, eventID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockPaymentRepo) FindByClientID(ctx context.Context, clientID string) ([]models.Payment, error) {
	if m.findByClientFn != nil {
		return m.findByClientFn(ctx, clientID)
	}
	return nil, nil
}
func (m *mockPaymentRepo) Save(ctx context.Context, tx *gorm.DB, p *models.Payment) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, tx, p)
	}
	return nil
}
func (m *mockPaymentRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
func (m *mockPaymentRepo) GetDB() *gorm.DB { return nil }

// --- Mock TicketRepository ---

type mockTicketRepo struct {
	createFn        func(ctx context.Context, tx *gorm.DB, t *models.Ticket) error
	countFn         func(ctx context.Context, tx *gorm.DB, paymentID uint) (int64, error)
	findByIDFn      func(ctx context.Context, id uint) (*models.Ticket, error)
	findByPaymentFn func(ctx context.Context, paymentID uint) ([]models.Ticket, error)
}

func (m *mockTicketRepo) Create(ctx context.Context, tx *gorm.DB, t *models.Ticket) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, t)
	}
	return nil
}
func (m *mockTicketRepo) CountByPaymentID(ctx context.Context, tx *gorm.DB, paymentID uint) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, tx, paymentID)
	}
	return 0, nil
}
func (m *mockTicketRepo) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockTicketRepo) FindByPaymentID(ctx context.Context, paymentID uint) ([]models.Ticket, error) {
	if m.findByPaymentFn != nil {
		return m.findByPaymentFn(ctx, paymentID)
	}
	return nil, nil
}

// --- Mock PaymentGateway ---

type mockGateway struct {
	createPreferenceFn func(ctx context.Context, req gateway.CreatePreferenceRequest) (*gateway.Preference, error)
	getPaymentFn       func(ctx context.Context, externalPaymentID string) (*gateway.Payment, error)
}

func (m *mockGateway) CreatePreference(ctx context.Context, req gateway.CreatePreferenceRequest) (*gateway.Preference, error) {
	if m.createPreferenceFn != nil {
		return m.createPreferenceFn(ctx, req)
	}
	return &gateway.Preference{ID: "pref-1", InitPoint: "https://provider.test/pay/pref-1"}, nil
}
func (m *mockGateway) GetPayment(ctx context.Context, externalPaymentID string) (*gateway.Payment, error) {
	return m.getPaymentFn(ctx, externalPaymentID)
}

// --- Mock TicketService ---

type mockTicketService struct {
	issueFn func(ctx context.Context, payment *models.Payment) error
}

func (m *mockTicketService) IssueForPayment(ctx context.Context, payment *models.Payment) error {
	if m.issueFn != nil {
		return m.issueFn(ctx, payment)
	}
	return nil
}
func (m *mockTicketService) CheckStatus(ctx context.Context, paymentID uint, clientID string) (*TicketStatusResult, error) {
	return nil, nil
}
func (m *mockTicketService) GetTicket(ctx context.Context, id uint, clientID string) (*models.Ticket, error) {
	return nil, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	publishFn func(routingKey string, payload any) error
	published []string
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.published = append(m.published, routingKey)
	if m.publishFn != nil {
		return m.publishFn(routingKey, payload)
	}
	return nil
}
