package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventrely-api/core/clock"
	"eventrely-api/core/database"
	"eventrely-api/core/logger"
	"eventrely-api/modules/reminder/domain"
	"eventrely-api/modules/reminder/entity"
	"eventrely-api/modules/reminder/mapper"
)

// EventRepository persists Event aggregates.
type EventRepository interface {
	// Save inserts a new event (version 1) or updates an existing one,
	// failing with domain.ErrConcurrentModification when the stored version
	// is not the one the change was based on.
	Save(ctx context.Context, event domain.Event) error
	// FindByID returns nil, nil when the event does not exist.
	FindByID(ctx context.Context, id domain.EventID) (*domain.Event, error)
	Delete(ctx context.Context, id domain.EventID) error
	FindByUser(ctx context.Context, userID string) ([]domain.Event, error)
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) ([]domain.Event, error)
	// FindUpcoming returns pending events dated now or later, earliest first.
	FindUpcoming(ctx context.Context, userID string, limit int) ([]domain.Event, error)
}

type eventRepository struct {
	DB    database.IDatabase
	clock clock.Clock
}

func NewEventRepository(db database.IDatabase, clk clock.Clock) EventRepository {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &eventRepository{DB: db, clock: clk}
}

const eventColumns = `id, user_id, title, description, event_date, status, version, created_at, updated_at`

const (
	insertEventQuery = `
		INSERT INTO events (` + eventColumns + `)
		VALUES (:id, :user_id, :title, :description, :event_date, :status, :version, :created_at, :updated_at)`

	updateEventQuery = `
		UPDATE events
		SET title = :title, description = :description, event_date = :event_date,
		    status = :status, version = :version, updated_at = :updated_at
		WHERE id = :id AND version = :version - 1`

	deleteEventQuery = `DELETE FROM events WHERE id = :id`
)

func (r *eventRepository) Save(ctx context.Context, event domain.Event) error {
	row := mapper.ToEntity(event)

	if event.Version <= 1 {
		if _, err := r.DB.NamedExecContext(ctx, insertEventQuery, row); err != nil {
			logger.Error("EventRepository:Save:Insert", "error", err, "event_id", row.ID)
			return err
		}
		return nil
	}

	result, err := r.DB.NamedExecContext(ctx, updateEventQuery, row)
	if err != nil {
		logger.Error("EventRepository:Save:Update", "error", err, "event_id", row.ID)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	exists, err := r.exists(ctx, row.ID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrConcurrentModification
	}
	return domain.ErrEventNotFound
}

func (r *eventRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, r.DB.Rebind(`SELECT COUNT(*) FROM events WHERE id = ?`), id)
	if err != nil {
		logger.Error("EventRepository:exists", "error", err, "event_id", id)
		return false, err
	}
	return count > 0, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	query := r.DB.Rebind(`SELECT ` + eventColumns + ` FROM events WHERE id = ?`)

	var row entity.Event
	err := r.DB.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:FindByID", "error", err, "event_id", id.String())
		return nil, err
	}

	event, err := mapper.ToDomain(&row)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Delete(ctx context.Context, id domain.EventID) error {
	result, err := r.DB.NamedExecContext(ctx, deleteEventQuery, map[string]any{"id": id.String()})
	if err != nil {
		logger.Error("EventRepository:Delete", "error", err, "event_id", id.String())
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) FindByUser(ctx context.Context, userID string) ([]domain.Event, error) {
	query := r.DB.Rebind(`
		SELECT ` + eventColumns + `
		FROM events
		WHERE user_id = ?
		ORDER BY event_date DESC`)

	return r.selectEvents(ctx, "EventRepository:FindByUser", query, userID)
}

func (r *eventRepository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) ([]domain.Event, error) {
	y, m, d := date.UTC().Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	query := r.DB.Rebind(`
		SELECT ` + eventColumns + `
		FROM events
		WHERE user_id = ? AND event_date >= ? AND event_date < ?
		ORDER BY event_date ASC`)

	return r.selectEvents(ctx, "EventRepository:FindByUserAndDate", query, userID, dayStart, dayStart.AddDate(0, 0, 1))
}

func (r *eventRepository) FindUpcoming(ctx context.Context, userID string, limit int) ([]domain.Event, error) {
	query := r.DB.Rebind(`
		SELECT ` + eventColumns + `
		FROM events
		WHERE user_id = ? AND status = ? AND event_date >= ?
		ORDER BY event_date ASC
		LIMIT ?`)

	return r.selectEvents(ctx, "EventRepository:FindUpcoming", query,
		userID, domain.StatusPending.String(), r.clock.Now(), limit)
}

func (r *eventRepository) selectEvents(ctx context.Context, op, query string, args ...any) ([]domain.Event, error) {
	var rows []entity.Event
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.Error(op, "error", err)
		return nil, err
	}
	return mapper.ToDomainList(rows)
}
