package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventio/ticketing-service/internal/models"
	"github.com/eventio/ticketing-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestListReservations_All(t *testing.T) {
	e := echo.New()
	reservations := &mockReservationService{
		listActiveFn: func(ctx context.Context, eventID *uint) ([]models.Reservation, error) {
			assert.Nil(t, eventID)
			return []models.Reservation{
				{ID: 1, EventID: 2, ClientID: "client-1", PaymentID: 7, Quantity: 2, ExpiresAt: time.Now().Add(time.Minute)},
			}, nil
		},
	}

	h := NewAdminHandler(reservations, service.NewSweeper(&mockReservationRepo{}, time.Minute))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListReservations(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"payment_id":7`)
}

func TestListReservations_FilteredByEvent(t *testing.T) {
	e := echo.New()
	reservations := &mockReservationService{
		listActiveFn: func(ctx context.Context, eventID *uint) ([]models.Reservation, error) {
			if assert.NotNil(t, eventID) {
				assert.Equal(t, uint(2), *eventID)
			}
			return nil, nil
		},
	}

	h := NewAdminHandler(reservations, service.NewSweeper(&mockReservationRepo{}, time.Minute))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations?event_id=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListReservations(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListReservations_BadEventID(t *testing.T) {
	e := echo.New()
	h := NewAdminHandler(&mockReservationService{}, service.NewSweeper(&mockReservationRepo{}, time.Minute))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations?event_id=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListReservations(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCleanup_ReportsReleasedCount(t *testing.T) {
	e := echo.New()
	repo := &mockReservationRepo{
		deleteExpiredFn: func(ctx context.Context, now time.Time) (int64, error) {
			return 3, nil
		},
	}

	h := NewAdminHandler(&mockReservationService{}, service.NewSweeper(repo, time.Minute))
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/cleanup", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Cleanup(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"released":3`)
}
