package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// The correlation token is the only reliable join key between the
// provider's ledger and local records. It travels as external_reference
// on the payment intent and comes back verbatim on the authoritative
// payment record. The embedded buyer+event pair feeds the slow-path
// lookup for a first-time notification.
func newCorrelationToken(clientID string, eventID uint) string {
	return fmt.Sprintf("%s:%d:%s", clientID, eventID, uuid.NewString())
}

// Parsing anchors on the right: the trailing uuid and event id have a
// fixed shape, while the buyer id may itself contain the delimiter.
func parseCorrelationToken(token string) (clientID string, eventID uint, err error) {
	parts := strings.Split(token, ":")
	if len(parts) < 3 {
		return "", 0, fmt.Errorf("malformed correlation token %q", token)
	}
	if _, err := uuid.Parse(parts[len(parts)-1]); err != nil {
		return "", 0, fmt.Errorf("malformed correlation token %q", token)
	}
	id, convErr := strconv.ParseUint(parts[len(parts)-2], 10, 64)
	if convErr != nil || id == 0 {
		return "", 0, fmt.Errorf("malformed correlation token %q", token)
	}
	clientID = strings.Join(parts[:len(parts)-2], ":")
	if clientID == "" {
		return "", 0, fmt.Errorf("malformed correlation token %q", token)
	}
	return clientID, uint(id), nil
}
