package mapper

import (
	"fmt"

	"eventrely-api/core/clock"
	"eventrely-api/modules/reminder/domain"
	"eventrely-api/modules/reminder/dto"
	"eventrely-api/modules/reminder/entity"
)

func ToEntity(e domain.Event) *entity.Event {
	return &entity.Event{
		ID:          e.ID.String(),
		UserID:      e.UserID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   clock.Normalize(e.EventDate.Time()),
		Status:      e.Status.String(),
		Version:     e.Version,
		CreatedAt:   clock.Normalize(e.CreatedAt),
		UpdatedAt:   clock.Normalize(e.UpdatedAt),
	}
}

// ToDomain rebuilds an aggregate from a stored row. Stored dates are not
// revalidated against the clock.
func ToDomain(row *entity.Event) (domain.Event, error) {
	id, err := domain.ParseEventID(row.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("row %q: %w", row.ID, err)
	}
	status, err := domain.ParseReminderStatus(row.Status)
	if err != nil {
		return domain.Event{}, fmt.Errorf("row %q: %w", row.ID, err)
	}

	return domain.Event{
		ID:          id,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		EventDate:   domain.RestoreEventDate(clock.Normalize(row.EventDate)),
		Status:      status,
		Version:     row.Version,
		CreatedAt:   clock.Normalize(row.CreatedAt),
		UpdatedAt:   clock.Normalize(row.UpdatedAt),
	}, nil
}

func ToDomainList(rows []entity.Event) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(rows))
	for i := range rows {
		e, err := ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func ToEventResponse(e domain.Event) *dto.EventResponse {
	return &dto.EventResponse{
		ID:          e.ID.String(),
		UserID:      e.UserID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.EventDate.Time(),
		Status:      e.Status.String(),
		Version:     e.Version,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToEventListResponse(events []domain.Event) *dto.EventListResponse {
	resp := &dto.EventListResponse{
		Events: make([]dto.EventResponse, 0, len(events)),
		Total:  len(events),
	}
	for _, e := range events {
		resp.Events = append(resp.Events, *ToEventResponse(e))
	}
	return resp
}
