package dto

import "time"

// ===================== Request DTOs =====================

// CreateEventRequest for creating a new event. Status is not accepted; new
// events always start pending.
type CreateEventRequest struct {
	UserID      string  `json:"user_id" validate:"required,max=255"`
	Title       string  `json:"title" validate:"max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	EventDate   string  `json:"event_date" validate:"required"` // RFC3339, or naive ISO 8601 read as UTC
}

// UpdateEventRequest replaces the fields that are present.
type UpdateEventRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	EventDate   *string `json:"event_date"`
}

// UpcomingQuery binds ?limit=N.
type UpcomingQuery struct {
	Limit string `query:"limit"`
}

// ===================== Response DTOs =====================

type EventResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	EventDate   time.Time `json:"event_date"`
	Status      string    `json:"status"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}
