package domain

import (
	"fmt"
	"time"

	"eventrely-api/core/clock"

	"github.com/google/uuid"
)

// EventID identifies an event. The zero value is not a valid id.
type EventID uuid.UUID

func NewEventID() EventID {
	return EventID(uuid.New())
}

func ParseEventID(s string) (EventID, error) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return EventID{}, fmt.Errorf("%w: %q", ErrInvalidEventID, s)
	}
	return EventID(id), nil
}

func (id EventID) String() string {
	return uuid.UUID(id).String()
}

func (id EventID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// EventDate is the instant an event is scheduled for.
type EventDate struct {
	t time.Time
}

// NewEventDate validates that t is not strictly before now. Dates are kept
// in UTC at microsecond precision, the precision the store keeps.
func NewEventDate(t, now time.Time) (EventDate, error) {
	t = clock.Normalize(t)
	if t.Before(now) {
		return EventDate{}, ErrInvalidEventDate
	}
	return EventDate{t: t}, nil
}

// RestoreEventDate wraps a stored date without validation.
func RestoreEventDate(t time.Time) EventDate {
	return EventDate{t: clock.Normalize(t)}
}

func (d EventDate) Time() time.Time {
	return d.t
}

func (d EventDate) Equal(other EventDate) bool {
	return d.t.Equal(other.t)
}

type ReminderStatus string

const (
	StatusPending   ReminderStatus = "pending"
	StatusCompleted ReminderStatus = "completed"
	StatusCancelled ReminderStatus = "cancelled"
)

func ParseReminderStatus(s string) (ReminderStatus, error) {
	switch status := ReminderStatus(s); status {
	case StatusPending, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s ReminderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s ReminderStatus) String() string {
	return string(s)
}
