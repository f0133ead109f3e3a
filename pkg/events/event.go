package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TOBACCO_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Catalog mutation event types.
const (
	TobaccoCreated = "TOBACCO_CREATED"
	TobaccoUpdated = "TOBACCO_UPDATED"
	TobaccoDeleted = "TOBACCO_DELETED"
)

// BaseEvent is the plain Event implementation used across the catalog.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewCatalogEvent builds a catalog mutation event. The tobacco name is always
// part of the payload under "name".
func NewCatalogEvent(eventType, name string, data map[string]interface{}) BaseEvent {
	payload := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload["name"] = name
	return BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}
}
