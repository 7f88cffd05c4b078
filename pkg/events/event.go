package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FAVORITE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

const (
	TypeFavoriteCreated  = "FAVORITE_CREATED"
	TypeFavoriteDeleted  = "FAVORITE_DELETED"
	TypeFavoriteEnriched = "FAVORITE_ENRICHED"
	TypeFallbackEngaged  = "FALLBACK_ENGAGED"
)

func NewFavoriteCreated(id uuid.UUID, name string) Event {
	return BaseEvent{
		Type:       TypeFavoriteCreated,
		Data:       map[string]interface{}{"id": id.String(), "name": name},
		OccurredAt: time.Now(),
	}
}

func NewFavoriteDeleted(id uuid.UUID) Event {
	return BaseEvent{
		Type:       TypeFavoriteDeleted,
		Data:       map[string]interface{}{"id": id.String()},
		OccurredAt: time.Now(),
	}
}

func NewFavoriteEnriched(id uuid.UUID, saved bool) Event {
	return BaseEvent{
		Type:       TypeFavoriteEnriched,
		Data:       map[string]interface{}{"id": id.String(), "saved": saved},
		OccurredAt: time.Now(),
	}
}

// NewFallbackEngaged marks the one-way switch from the remote store to the
// local cache for the current session.
func NewFallbackEngaged(reason string) Event {
	return BaseEvent{
		Type:       TypeFallbackEngaged,
		Data:       map[string]interface{}{"reason": reason},
		OccurredAt: time.Now(),
	}
}
