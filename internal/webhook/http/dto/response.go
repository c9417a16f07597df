// Package dto provides data transfer objects for webhook HTTP responses.
package dto

import (
	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
)

// WebhookReceivedResponse acknowledges a verified delivery.
type WebhookReceivedResponse struct {
	Received  bool   `json:"received"`
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Category  string `json:"category"`
}

// MapEventToResponse converts a verified event to its acknowledgement.
func MapEventToResponse(event webhookDomain.Event) WebhookReceivedResponse {
	return WebhookReceivedResponse{
		Received:  true,
		EventID:   event.EventID(),
		EventType: event.EventType(),
		Category:  string(event.Category()),
	}
}
