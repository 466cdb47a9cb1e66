package models

import "time"

// Event is synced from the event catalog service over RabbitMQ.
// Only TicketsSold is mutated locally, and only via atomic increment
// during ticket issuance.
type Event struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	Capacity      int        `gorm:"not null" json:"capacity"`
	TicketsSold   int        `gorm:"not null;default:0" json:"tickets_sold"`
	Price         float64    `gorm:"not null" json:"price"`
	PresalePrice  *float64   `json:"presale_price,omitempty"`
	PresaleActive bool       `gorm:"not null;default:false" json:"presale_active"`
	IsFree        bool       `gorm:"not null;default:false" json:"is_free"`
	SellStartAt   time.Time  `gorm:"not null" json:"sell_start_at"`
	SellEndAt     time.Time  `gorm:"not null" json:"sell_end_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// UnitPrice returns the price a buyer pays right now for the given tier.
func (e *Event) UnitPrice(tier string) float64 {
	if tier == TierPresale && e.PresaleActive && e.PresalePrice != nil {
		return *e.PresalePrice
	}
	return e.Price
}

const (
	TierGeneral = "general"
	TierPresale = "presale"
)
