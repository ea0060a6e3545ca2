// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened in the mentoring domain.
const (
	// Survey events
	EventSurveySubmitted EventType = "mentoring.survey_submitted"

	// Matching events
	EventRecommendationsServed EventType = "mentoring.recommendations_served"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	Version       int       `json:"version"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Survey Events
// ═══════════════════════════════════════════════════════════════════════════

// SurveySubmittedEvent is emitted when a user submits or retakes the
// mentor matching survey. A retake inserts a new record, so consumers
// must treat the latest survey per user as authoritative.
type SurveySubmittedEvent struct {
	BaseEvent
	UserID   string `json:"user_id"`
	SurveyID string `json:"survey_id"`
	Retake   bool   `json:"retake"`
}

// Payload implements Event interface.
func (e SurveySubmittedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":   e.UserID,
		"survey_id": e.SurveyID,
		"retake":    e.Retake,
	}
}

// NewSurveySubmittedEvent creates a new SurveySubmittedEvent.
func NewSurveySubmittedEvent(userID, surveyID string, retake bool) SurveySubmittedEvent {
	return SurveySubmittedEvent{
		BaseEvent: NewBaseEvent(EventSurveySubmitted, userID),
		UserID:    userID,
		SurveyID:  surveyID,
		Retake:    retake,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Bus
// ═══════════════════════════════════════════════════════════════════════════

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventBus publishes domain events to subscribed handlers.
type EventBus interface {
	// Publish sends an event to all subscribed handlers.
	Publish(event Event) error

	// Subscribe registers a handler for a specific event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error

	// Close shuts down the bus and waits for in-flight handlers.
	Close() error
}
