package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const TitleMaxLength = 200

// Event is the reminder aggregate. Its methods use value receivers and
// return a new Event; the receiver is never modified.
type Event struct {
	ID          EventID
	UserID      string
	Title       string
	Description *string
	EventDate   EventDate
	Status      ReminderStatus
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEvent creates a pending event. The event date must not be before now.
func NewEvent(id EventID, userID, title string, eventDate time.Time, description *string, now time.Time) (Event, error) {
	date, err := NewEventDate(eventDate, now)
	if err != nil {
		return Event{}, err
	}
	cleanTitle, err := normalizeTitle(title)
	if err != nil {
		return Event{}, err
	}

	return Event{
		ID:          id,
		UserID:      userID,
		Title:       cleanTitle,
		Description: normalizeDescription(description),
		EventDate:   date,
		Status:      StatusPending,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (e Event) Complete(now time.Time) (Event, error) {
	return e.transition(StatusCompleted, now)
}

func (e Event) Cancel(now time.Time) (Event, error) {
	return e.transition(StatusCancelled, now)
}

func (e Event) transition(to ReminderStatus, now time.Time) (Event, error) {
	if e.Status != StatusPending {
		return Event{}, fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, e.Status, to)
	}
	e.Status = to
	return e.touch(now), nil
}

// Changes lists the fields an update replaces; nil fields are left as is.
// An empty Description clears it.
type Changes struct {
	Title       *string
	Description *string
	EventDate   *time.Time
}

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldEventDate   = "event_date"
)

// Update applies changes regardless of status and returns the names of the
// fields that actually changed. The event date is checked against now only
// when it changes. When nothing changes the event is returned as is.
func (e Event) Update(changes Changes, now time.Time) (Event, []string, error) {
	var updated []string

	if changes.EventDate != nil {
		candidate := RestoreEventDate(*changes.EventDate)
		if !candidate.Equal(e.EventDate) {
			date, err := NewEventDate(*changes.EventDate, now)
			if err != nil {
				return Event{}, nil, err
			}
			e.EventDate = date
			updated = append(updated, FieldEventDate)
		}
	}

	if changes.Title != nil {
		title, err := normalizeTitle(*changes.Title)
		if err != nil {
			return Event{}, nil, err
		}
		if title != e.Title {
			e.Title = title
			updated = append(updated, FieldTitle)
		}
	}

	if changes.Description != nil {
		desc := normalizeDescription(changes.Description)
		if !sameDescription(desc, e.Description) {
			e.Description = desc
			updated = append(updated, FieldDescription)
		}
	}

	if len(updated) == 0 {
		return e, nil, nil
	}
	return e.touch(now), updated, nil
}

func (e Event) touch(now time.Time) Event {
	e.UpdatedAt = now
	e.Version++
	return e
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > TitleMaxLength {
		return "", ErrInvalidTitle
	}
	return title, nil
}

func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	d := strings.TrimSpace(*desc)
	if d == "" {
		return nil
	}
	return &d
}

func sameDescription(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
