package service

import (
	"time"

	"eventrely-api/modules/reminder/domain"
)

type CreateEventCommand struct {
	UserID      string
	Title       string
	Description *string
	EventDate   time.Time
}

// UpdateEventCommand replaces the non-nil fields. An empty Description
// clears it.
type UpdateEventCommand struct {
	EventID     domain.EventID
	Title       *string
	Description *string
	EventDate   *time.Time
}

type DeleteEventCommand struct {
	EventID domain.EventID
}

type CompleteEventCommand struct {
	EventID domain.EventID
}

type CancelEventCommand struct {
	EventID domain.EventID
}
