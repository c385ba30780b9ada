package domain

import "errors"

var (
	ErrInvalidEventDate       = errors.New("event date cannot be in the past")
	ErrInvalidTitle           = errors.New("title must be non-empty and at most 200 characters")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidEventID         = errors.New("invalid event id")
	ErrInvalidStatus          = errors.New("invalid reminder status")
	ErrEventNotFound          = errors.New("event not found")
	ErrConcurrentModification = errors.New("event was modified concurrently")
)
