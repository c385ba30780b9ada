package service

import (
	"time"

	"eventrely-api/modules/reminder/domain"
)

type GetEventByIDQuery struct {
	EventID domain.EventID
}

type GetEventsByUserQuery struct {
	UserID string
}

// GetEventsByDateQuery selects the UTC calendar day containing Date.
type GetEventsByDateQuery struct {
	UserID string
	Date   time.Time
}

// GetUpcomingEventsQuery uses the configured default when Limit is 0.
type GetUpcomingEventsQuery struct {
	UserID string
	Limit  int
}
