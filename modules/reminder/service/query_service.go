package service

import (
	"context"
	"fmt"
	"time"

	"eventrely-api/core/cache"
	"eventrely-api/core/constants"
	"eventrely-api/core/errors"
	"eventrely-api/core/logger"
	"eventrely-api/core/telemetry"
	"eventrely-api/modules/reminder/domain"
	"eventrely-api/modules/reminder/dto"
	"eventrely-api/modules/reminder/mapper"
	"eventrely-api/modules/reminder/repository"

	"go.opentelemetry.io/otel/attribute"
)

// QueryService reads events. It holds no business rules.
type QueryService interface {
	GetEventByID(ctx context.Context, q GetEventByIDQuery) (*dto.EventResponse, *errors.AppError)
	GetEventsByUser(ctx context.Context, q GetEventsByUserQuery) (*dto.EventListResponse, *errors.AppError)
	GetEventsByDate(ctx context.Context, q GetEventsByDateQuery) (*dto.EventListResponse, *errors.AppError)
	GetUpcomingEvents(ctx context.Context, q GetUpcomingEventsQuery) (*dto.EventListResponse, *errors.AppError)
}

type QueryOptions struct {
	DefaultUpcomingLimit int
	MaxUpcomingLimit     int
	CacheTTL             time.Duration
}

type queryService struct {
	repo   repository.EventRepository
	events eventCache
	opts   QueryOptions
}

func NewQueryService(repo repository.EventRepository, c cache.Cache, opts QueryOptions) QueryService {
	if opts.DefaultUpcomingLimit <= 0 {
		opts.DefaultUpcomingLimit = constants.DefaultUpcomingLimit
	}
	if opts.MaxUpcomingLimit <= 0 {
		opts.MaxUpcomingLimit = constants.MaxUpcomingLimit
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = constants.DefaultCacheTTL
	}
	return &queryService{repo: repo, events: newEventCache(c, opts.CacheTTL), opts: opts}
}

func (s *queryService) GetEventByID(ctx context.Context, q GetEventByIDQuery) (resp *dto.EventResponse, appErr *errors.AppError) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "QueryService.GetEventByID")
	defer func() { finishSpan(span, appErr) }()
	span.SetAttributes(attribute.String("event.id", q.EventID.String()))

	if entry, ok := s.events.get(ctx, q.EventID); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		if entry.Deleted {
			return nil, notFound(q.EventID)
		}
		return entry.Event, nil
	}

	event, err := s.repo.FindByID(ctx, q.EventID)
	if err != nil {
		logger.Error("QueryService:GetEventByID:Error", "error", err, "event_id", q.EventID.String())
		return nil, toAppError(err, errors.ErrGetFailed, "failed to get event")
	}
	if event == nil {
		return nil, notFound(q.EventID)
	}

	resp = mapper.ToEventResponse(*event)
	s.events.fill(ctx, q.EventID, resp)
	return resp, nil
}

func (s *queryService) GetEventsByUser(ctx context.Context, q GetEventsByUserQuery) (resp *dto.EventListResponse, appErr *errors.AppError) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "QueryService.GetEventsByUser")
	defer func() { finishSpan(span, appErr) }()

	events, err := s.repo.FindByUser(ctx, q.UserID)
	return s.list(events, err, "GetEventsByUser")
}

func (s *queryService) GetEventsByDate(ctx context.Context, q GetEventsByDateQuery) (resp *dto.EventListResponse, appErr *errors.AppError) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "QueryService.GetEventsByDate")
	defer func() { finishSpan(span, appErr) }()
	span.SetAttributes(attribute.String("date", q.Date.UTC().Format(constants.DateLayout)))

	events, err := s.repo.FindByUserAndDate(ctx, q.UserID, q.Date)
	return s.list(events, err, "GetEventsByDate")
}

func (s *queryService) GetUpcomingEvents(ctx context.Context, q GetUpcomingEventsQuery) (resp *dto.EventListResponse, appErr *errors.AppError) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "QueryService.GetUpcomingEvents")
	defer func() { finishSpan(span, appErr) }()

	limit := q.Limit
	if limit == 0 {
		limit = s.opts.DefaultUpcomingLimit
	}
	if limit < 1 || limit > s.opts.MaxUpcomingLimit {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("limit must be between 1 and %d", s.opts.MaxUpcomingLimit), nil)
	}
	span.SetAttributes(attribute.Int("limit", limit))

	events, err := s.repo.FindUpcoming(ctx, q.UserID, limit)
	return s.list(events, err, "GetUpcomingEvents")
}

func (s *queryService) list(events []domain.Event, err error, op string) (*dto.EventListResponse, *errors.AppError) {
	if err != nil {
		logger.Error("QueryService:"+op+":Error", "error", err)
		return nil, toAppError(err, errors.ErrGetFailed, "failed to get events")
	}
	return mapper.ToEventListResponse(events), nil
}
