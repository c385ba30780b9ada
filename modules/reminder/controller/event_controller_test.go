package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	corecontroller "eventrely-api/core/controller"
	"eventrely-api/core/errors"
	"eventrely-api/modules/reminder/domain"
	"eventrely-api/modules/reminder/dto"
	"eventrely-api/modules/reminder/service"

	"github.com/labstack/echo/v4"
)

type stubCommands struct {
	service.CommandService
	err     *errors.AppError
	lastCmd service.UpdateEventCommand
}

func (s *stubCommands) UpdateEvent(_ context.Context, cmd service.UpdateEventCommand) (*dto.EventResponse, *errors.AppError) {
	s.lastCmd = cmd
	if s.err != nil {
		return nil, s.err
	}
	return &dto.EventResponse{ID: cmd.EventID.String()}, nil
}

type stubQueries struct {
	service.QueryService
	lastLimit int
}

func (s *stubQueries) GetUpcomingEvents(_ context.Context, q service.GetUpcomingEventsQuery) (*dto.EventListResponse, *errors.AppError) {
	s.lastLimit = q.Limit
	return &dto.EventListResponse{Events: []dto.EventResponse{}}, nil
}

func serve(ctrl *EventController, method, path, body string) *httptest.ResponseRecorder {
	e := echo.New()
	e.HTTPErrorHandler = corecontroller.HTTPErrorHandler
	e.PUT("/events/:id", ctrl.UpdateEvent)
	e.GET("/events/user/:user_id/upcoming", ctrl.GetUpcomingEvents)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUpdateEventConflictMapsTo409(t *testing.T) {
	commands := &stubCommands{err: errors.NewAppError(errors.ErrConflict, "event was modified concurrently", domain.ErrConcurrentModification)}
	ctrl := NewEventController(commands, &stubQueries{})
	id := domain.NewEventID()

	rec := serve(ctrl, http.MethodPut, "/events/"+id.String(), `{"title":"x"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	var body corecontroller.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != errors.ErrConflict {
		t.Fatalf("expected CONFLICT, got %s", body.Code)
	}
}

func TestUpdateEventParsesNaiveDateAsUTC(t *testing.T) {
	commands := &stubCommands{}
	ctrl := NewEventController(commands, &stubQueries{})

	rec := serve(ctrl, http.MethodPut, "/events/"+domain.NewEventID().String(), `{"event_date":"2025-12-23T10:00:00"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if commands.lastCmd.EventDate == nil || commands.lastCmd.EventDate.Hour() != 10 || commands.lastCmd.Title != nil {
		t.Fatalf("unexpected command %+v", commands.lastCmd)
	}
}

func TestGetUpcomingEventsLimitParsing(t *testing.T) {
	tests := []struct {
		query      string
		wantStatus int
		wantLimit  int
	}{
		{"", http.StatusOK, 0},
		{"?limit=5", http.StatusOK, 5},
		{"?limit=abc", http.StatusBadRequest, 0},
		{"?limit=0", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			queries := &stubQueries{}
			ctrl := NewEventController(&stubCommands{}, queries)

			rec := serve(ctrl, http.MethodGet, "/events/user/u1/upcoming"+tt.query, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if queries.lastLimit != tt.wantLimit {
				t.Fatalf("expected limit %d, got %d", tt.wantLimit, queries.lastLimit)
			}
		})
	}
}
