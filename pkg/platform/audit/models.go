// Package audit emits structured events for registry and certificate
// activity. Events are transport-agnostic; the Kafka publisher is one
// sink.
package audit

import "time"

// EventCategory classifies audit events by their primary purpose. This
// enables different retention policies and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal significance: record
	// registrations and certificate issuance.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine activity useful for debugging.
	// These can be sampled or aggregated with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// EventType names an auditable action.
type EventType string

const (
	EventMiddsValidated    EventType = "midds_validated"
	EventRecordRegistered  EventType = "record_registered"
	EventCertificateIssued EventType = "certificate_issued"
	EventChainSubmitted    EventType = "chain_submitted"
)

var eventCategories = map[EventType]EventCategory{
	EventMiddsValidated:    CategoryOperations,
	EventRecordRegistered:  CategoryCompliance,
	EventCertificateIssued: CategoryCompliance,
	EventChainSubmitted:    CategoryCompliance,
}

// Category returns the EventCategory for this event type. Unknown types
// default to CategoryOperations.
func (e EventType) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is emitted from domain logic to capture key actions.
type Event struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	ClientID  string        `json:"client_id,omitempty"`
	Kind      string        `json:"kind,omitempty"`
	RecordID  uint64        `json:"record_id,omitempty"`
	Digest    string        `json:"digest,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	Outcome   string        `json:"outcome,omitempty"`
}
