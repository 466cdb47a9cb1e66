package service

import "github.com/eventio/ticketing-service/internal/models"

// settlementAction is the side effect a reconciliation pass must apply
// after mirroring the authoritative status.
type settlementAction int

const (
	actionNone settlementAction = iota
	actionIssueTickets
	actionReleaseHold
)

// reconcile maps the provider's authoritative status onto the local
// payment state machine. Pure function: no store, no provider, so the
// state table is testable in isolation. Issuance stays idempotent on the
// ticket side, so approved always returns actionIssueTickets even when
// the local record is already approved; replays converge to a no-op
// there.
func reconcile(providerStatus string) (models.PaymentStatus, settlementAction) {
	switch providerStatus {
	case "approved":
		return models.PaymentApproved, actionIssueTickets
	case "rejected", "charged_back":
		return models.PaymentRejected, actionReleaseHold
	case "cancelled", "refunded":
		return models.PaymentCancelled, actionReleaseHold
	default:
		// pending, in_process, authorized, anything unknown: wait for a
		// later notification.
		return models.PaymentPending, actionNone
	}
}
