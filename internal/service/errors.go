package service

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrNotTicketOwner  = errors.New("ticket does not belong to this client")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidTier     = errors.New("unknown ticket tier")
	ErrSaleClosed      = errors.New("ticket sale is not open")
	ErrFreeEvent       = errors.New("free events do not go through payment")
	ErrPresaleInactive = errors.New("presale is not active for this event")
)

// InsufficientCapacityError is returned when a hold cannot be created.
// It carries the two figures the caller needs to render an actionable
// response; no state is mutated when it is returned from the first
// capacity check, and no reservation exists when it is returned from the
// second.
type InsufficientCapacityError struct {
	Available int
	Requested int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: %d requested, %d available", e.Requested, e.Available)
}
