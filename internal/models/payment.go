package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentApproved  PaymentStatus = "approved"
	PaymentRejected  PaymentStatus = "rejected"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Terminal reports whether no further provider notification can change
// the status.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentApproved || s == PaymentRejected || s == PaymentCancelled
}

// Payment tracks one external payment intent from creation through
// settlement. Status transitions are owned exclusively by the settlement
// service.
type Payment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID string `gorm:"not null;index" json:"client_id"`
	EventID  uint   `gorm:"not null;index" json:"event_id"`

	Quantity   int     `gorm:"not null;default:1" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
	TicketTier string  `gorm:"type:varchar(20);not null;default:'general'" json:"ticket_tier"`

	Status       PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	StatusDetail string        `json:"status_detail,omitempty"`

	// CorrelationToken rides to the provider as external_reference and is
	// echoed back verbatim on settlement. Format: clientID:eventID:uuid.
	CorrelationToken  string  `gorm:"uniqueIndex;not null" json:"correlation_token"`
	PreferenceID      string  `gorm:"index" json:"preference_id,omitempty"`
	ExternalPaymentID string  `gorm:"index" json:"external_payment_id,omitempty"`
	TransactionAmount float64 `json:"transaction_amount,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	SettledAt  *time.Time `json:"settled_at,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
