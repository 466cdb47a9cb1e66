package models

import "time"

// Reservation is a time-boxed soft claim on event capacity. It protects
// the quantity of exactly one payment attempt and never represents a
// sale by itself.
type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index:idx_reservation_capacity,priority:1" json:"event_id"`
	ClientID  string    `gorm:"not null" json:"client_id"`
	PaymentID uint      `gorm:"not null;uniqueIndex" json:"payment_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Confirmed bool      `gorm:"not null;default:false;index:idx_reservation_capacity,priority:2" json:"confirmed"`
	ExpiresAt time.Time `gorm:"not null;index:idx_reservation_capacity,priority:3" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// Active reports whether the reservation still holds capacity.
func (r *Reservation) Active(now time.Time) bool {
	return !r.Confirmed && now.Before(r.ExpiresAt)
}
