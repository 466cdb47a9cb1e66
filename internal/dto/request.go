package dto

type CreateHoldRequest struct {
	ClientID   string `json:"client_id"`
	Quantity   int    `json:"quantity"`
	TicketTier string `json:"ticket_tier,omitempty"`
}

// WebhookRequest mirrors the provider's notification body. Some provider
// versions send topic/id in the query string instead; the handler merges
// both.
type WebhookRequest struct {
	Type string `json:"type,omitempty"`
	Data struct {
		ID string `json:"id,omitempty"`
	} `json:"data,omitempty"`
}
