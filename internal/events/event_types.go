package events

import (
	"time"

	"github.com/spec-kit/ticket-gateway/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubmissionReceived  EventType = "submission_received"
	EventTokenObtained       EventType = "token_obtained"
	EventEnrichmentCompleted EventType = "enrichment_completed"
	EventTicketSubmitted     EventType = "ticket_submitted"
	EventSubmissionFailed    EventType = "submission_failed"
)

// Event represents one step of a submission flow.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	RequestID string         `json:"request_id"`
	Channel   domain.Channel `json:"channel"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   interface{}    `json:"payload,omitempty"`
}

// SubmissionReceivedPayload payload.
type SubmissionReceivedPayload struct {
	Subject      string `json:"subject"`
	DepartmentID string `json:"department_id"`
	HasEmail     bool   `json:"has_email"`
}

// EnrichmentCompletedPayload payload.
type EnrichmentCompletedPayload struct {
	CustomerMatched bool `json:"customer_matched"`
	OrderCount      int  `json:"order_count"`
}

// TicketSubmittedPayload payload.
type TicketSubmittedPayload struct {
	DownstreamStatus int `json:"downstream_status"`
}

// SubmissionFailedPayload payload.
type SubmissionFailedPayload struct {
	Stage string `json:"stage"`
	Error string `json:"error"`
}
