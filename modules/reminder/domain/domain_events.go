package domain

import (
	"time"

	"github.com/google/uuid"
)

type DomainEventType string

const (
	EventCreated   DomainEventType = "event.created"
	EventUpdated   DomainEventType = "event.updated"
	EventDeleted   DomainEventType = "event.deleted"
	EventCompleted DomainEventType = "event.completed"
	EventCancelled DomainEventType = "event.cancelled"
)

// DomainEvent records something that happened to an Event after it was
// persisted.
type DomainEvent struct {
	ID            string          `json:"id"`
	Type          DomainEventType `json:"type"`
	EventID       string          `json:"event_id"`
	UserID        string          `json:"user_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Title         string          `json:"title,omitempty"`
	EventDate     *time.Time      `json:"event_date,omitempty"`
	Status        ReminderStatus  `json:"status,omitempty"`
	UpdatedFields []string        `json:"updated_fields,omitempty"`
}

func newDomainEvent(t DomainEventType, e Event, at time.Time) DomainEvent {
	return DomainEvent{
		ID:         uuid.NewString(),
		Type:       t,
		EventID:    e.ID.String(),
		UserID:     e.UserID,
		OccurredAt: at,
		Status:     e.Status,
	}
}

func NewEventCreated(e Event, at time.Time) DomainEvent {
	de := newDomainEvent(EventCreated, e, at)
	de.Title = e.Title
	date := e.EventDate.Time()
	de.EventDate = &date
	return de
}

func NewEventUpdated(e Event, fields []string, at time.Time) DomainEvent {
	de := newDomainEvent(EventUpdated, e, at)
	de.UpdatedFields = fields
	return de
}

func NewEventDeleted(e Event, at time.Time) DomainEvent {
	return newDomainEvent(EventDeleted, e, at)
}

func NewEventCompleted(e Event, at time.Time) DomainEvent {
	return newDomainEvent(EventCompleted, e, at)
}

func NewEventCancelled(e Event, at time.Time) DomainEvent {
	return newDomainEvent(EventCancelled, e, at)
}
