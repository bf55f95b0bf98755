package models

import (
	"encoding/json"
	"time"
)

// Lead is a prospective customer captured through the pre-registration form.
// Leads are created once and never updated or deleted by this service.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventLog is one append-only audit record: a page view, a CTA click, a lead
// creation, or an external payment event. LeadID is a weak reference; the row
// survives even if the lead it points at is ever removed.
type EventLog struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Source    string          `json:"source"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	LeadID    *string         `json:"lead_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewEventLog is the insert payload for an audit record.
// ID is optional; the store generates one when it is empty. The webhook path
// supplies the external event id so redelivery dedupes on the primary key.
type NewEventLog struct {
	ID      string
	Type    string
	Source  string
	Payload []byte // marshaled JSON, nil for no payload
	LeadID  *string
}

// LeadCreateRequest is the POST /api/leads payload.
type LeadCreateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// WebhookRequest is the POST /api/webhook/payment payload. Data is kept raw:
// it is stored as-is and only decoded when probing for an optional lead_id.
type WebhookRequest struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data,omitempty"`
}
