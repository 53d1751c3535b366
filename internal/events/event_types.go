package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserSignedUp      EventType = "user_signed_up"
	EventUserAccessChanged EventType = "user_access_changed"
	EventUserDeleted       EventType = "user_deleted"
	EventAnimalAdded       EventType = "animal_added"
	EventAnimalUpdated     EventType = "animal_updated"
	EventAnimalDeleted     EventType = "animal_deleted"
	EventAssociationAdded  EventType = "association_added"
)

// Actor is the authenticated caller that triggered an event, when known.
type Actor struct {
	UserID string `json:"user_id,omitempty"`
	Access string `json:"access,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subject_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, subjectID string, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserAccessChangedPayload payload.
type UserAccessChangedPayload struct {
	OldAccess string `json:"old_access"`
	NewAccess string `json:"new_access"`
}

// AnimalPayload payload.
type AnimalPayload struct {
	Name    string `json:"name"`
	NumICAD string `json:"num_icad,omitempty"`
}

// AssociationAddedPayload payload.
type AssociationAddedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
