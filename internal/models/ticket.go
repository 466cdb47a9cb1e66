package models

import "time"

type TicketStatus string

const (
	TicketApproved TicketStatus = "approved"
	TicketUsed     TicketStatus = "used"
	TicketVoid     TicketStatus = "void"
)

// Ticket is an issued entry credential. Created exactly once per payment
// slot by the ticket service; the credential is generated once and never
// rewritten.
type Ticket struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PaymentID uint   `gorm:"not null;index" json:"payment_id"`
	EventID   uint   `gorm:"not null;index" json:"event_id"`
	ClientID  string `gorm:"not null" json:"client_id"`

	Credential string       `gorm:"uniqueIndex;not null" json:"credential"`
	QRData     string       `gorm:"not null" json:"qr_data"`
	Status     TicketStatus `gorm:"type:varchar(20);not null;default:'approved'" json:"status"`

	IssuedAt  time.Time  `gorm:"not null" json:"issued_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
