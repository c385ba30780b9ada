package service

import (
	"context"
	"time"

	"eventrely-api/core/cache"
	"eventrely-api/core/clock"
	"eventrely-api/core/errors"
	"eventrely-api/core/logger"
	"eventrely-api/core/telemetry"
	"eventrely-api/modules/reminder/domain"
	"eventrely-api/modules/reminder/dto"
	"eventrely-api/modules/reminder/mapper"
	"eventrely-api/modules/reminder/repository"

	"go.opentelemetry.io/otel/attribute"
)

const tracerName = "eventrely-api/modules/reminder/service"

// CommandService applies state-changing intents to events.
type CommandService interface {
	CreateEvent(ctx context.Context, cmd CreateEventCommand) (*dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, cmd UpdateEventCommand) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, cmd DeleteEventCommand) *errors.AppError
	CompleteEvent(ctx context.Context, cmd CompleteEventCommand) (*dto.EventResponse, *errors.AppError)
	CancelEvent(ctx context.Context, cmd CancelEventCommand) (*dto.EventResponse, *errors.AppError)
}

type commandService struct {
	repo      repository.EventRepository
	publisher EventPublisher
	events    eventCache
	clock     clock.Clock
}

// NewCommandService writes every committed event through c, keeping entries
// for cacheTTL.
func NewCommandService(repo repository.EventRepository, publisher EventPublisher, c cache.Cache, cacheTTL time.Duration, clk clock.Clock) CommandService {
	if publisher == nil {
		publisher = NewLogPublisher()
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &commandService{repo: repo, publisher: publisher, events: newEventCache(c, cacheTTL), clock: clk}
}

func (s *commandService) CreateEvent(ctx context.Context, cmd CreateEventCommand) (resp *dto.EventResponse, appErr *errors.AppError) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "CommandService.CreateEvent")
	defer func() { finishSpan(span, appErr) }()

	now := s.clock.Now()
	event, err := domain.NewEvent(domain.NewEventID(), cmd.UserID, cmd.Title, cmd.EventDate, cmd.Description, now)
	if err != nil {
		return nil, toAppError(err, errors.ErrInvalidInput, "invalid event")
	}
	span.SetAttributes(attribute.String("event.id", event.ID.String()))

	resp, err = s.save(ctx, "CreateEvent", event)
	if err != nil {
		return nil, toAppError(err, errors.ErrCreateFailed, "failed to create event")
	}

	s.publish(ctx, domain.NewEventCreated(event, now))
	return resp, nil
}

func (s *commandService) UpdateEvent(ctx context.Context, cmd UpdateEventCommand) (resp *dto.EventResponse, appErr *errors.AppError) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "CommandService.UpdateEvent")
	defer func() { finishSpan(span, appErr) }()
	span.SetAttributes(attribute.String("event.id", cmd.EventID.String()))

	current, appErr := s.load(ctx, cmd.EventID)
	if appErr != nil {
		return nil, appErr
	}
	// Completed and cancelled events are read-only.
	if current.Status.IsTerminal() {
		return nil, errors.NewAppError(errors.ErrInvalidStateTransition,
			"cannot update a "+current.Status.String()+" event", domain.ErrInvalidStateTransition)
	}

	now := s.clock.Now()
	updated, fields, err := current.Update(domain.Changes{
		Title:       cmd.Title,
		Description: cmd.Description,
		EventDate:   cmd.EventDate,
	}, now)
	if err != nil {
		return nil, toAppError(err, errors.ErrInvalidInput, "invalid event")
	}
	if len(fields) == 0 {
		return mapper.ToEventResponse(*current), nil
	}

	resp, err = s.save(ctx, "UpdateEvent", updated)
	if err != nil {
		return nil, toAppError(err, errors.ErrUpdateFailed, "failed to update event")
	}

	s.publish(ctx, domain.NewEventUpdated(updated, fields, now))
	return resp, nil
}

func (s *commandService) DeleteEvent(ctx context.Context, cmd DeleteEventCommand) (appErr *errors.AppError) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "CommandService.DeleteEvent")
	defer func() { finishSpan(span, appErr) }()
	span.SetAttributes(attribute.String("event.id", cmd.EventID.String()))

	current, appErr := s.load(ctx, cmd.EventID)
	if appErr != nil {
		return appErr
	}

	if err := s.repo.Delete(ctx, cmd.EventID); err != nil {
		logger.Error("CommandService:DeleteEvent:Error", "error", err, "event_id", cmd.EventID.String())
		return toAppError(err, errors.ErrDeleteFailed, "failed to delete event")
	}
	s.events.store(ctx, cmd.EventID, cachedEvent{Deleted: true})

	s.publish(ctx, domain.NewEventDeleted(*current, s.clock.Now()))
	return nil
}

func (s *commandService) CompleteEvent(ctx context.Context, cmd CompleteEventCommand) (resp *dto.EventResponse, appErr *errors.AppError) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "CommandService.CompleteEvent")
	defer func() { finishSpan(span, appErr) }()
	span.SetAttributes(attribute.String("event.id", cmd.EventID.String()))

	return s.transition(ctx, "CompleteEvent", cmd.EventID, domain.Event.Complete, domain.NewEventCompleted)
}

func (s *commandService) CancelEvent(ctx context.Context, cmd CancelEventCommand) (resp *dto.EventResponse, appErr *errors.AppError) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "CommandService.CancelEvent")
	defer func() { finishSpan(span, appErr) }()
	span.SetAttributes(attribute.String("event.id", cmd.EventID.String()))

	return s.transition(ctx, "CancelEvent", cmd.EventID, domain.Event.Cancel, domain.NewEventCancelled)
}

func (s *commandService) transition(
	ctx context.Context,
	op string,
	id domain.EventID,
	apply func(domain.Event, time.Time) (domain.Event, error),
	record func(domain.Event, time.Time) domain.DomainEvent,
) (*dto.EventResponse, *errors.AppError) {
	current, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	now := s.clock.Now()
	next, err := apply(*current, now)
	if err != nil {
		return nil, toAppError(err, errors.ErrInvalidStateTransition, "invalid state transition")
	}

	resp, err := s.save(ctx, op, next)
	if err != nil {
		return nil, toAppError(err, errors.ErrUpdateFailed, "failed to update event")
	}

	s.publish(ctx, record(next, now))
	return resp, nil
}

func (s *commandService) load(ctx context.Context, id domain.EventID) (*domain.Event, *errors.AppError) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		logger.Error("CommandService:load:Error", "error", err, "event_id", id.String())
		return nil, toAppError(err, errors.ErrGetFailed, "failed to load event")
	}
	if event == nil {
		return nil, notFound(id)
	}
	return event, nil
}

func (s *commandService) save(ctx context.Context, op string, event domain.Event) (*dto.EventResponse, error) {
	if err := s.repo.Save(ctx, event); err != nil {
		logger.Error("CommandService:"+op+":Error", "error", err, "event_id", event.ID.String())
		return nil, err
	}
	resp := mapper.ToEventResponse(event)
	s.events.store(ctx, event.ID, cachedEvent{Event: resp})
	return resp, nil
}

// publish logs failures instead of returning them.
func (s *commandService) publish(ctx context.Context, event domain.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("CommandService:publish:Error",
			"error", err,
			"type", event.Type,
			"event_id", event.EventID,
		)
	}
}
