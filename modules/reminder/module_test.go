package reminder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventrely-api/core/clock"
	corecontroller "eventrely-api/core/controller"
	"eventrely-api/core/database"
	"eventrely-api/modules/reminder/dto"

	"github.com/labstack/echo/v4"
)

var now = time.Date(2025, 12, 21, 15, 30, 0, 0, time.UTC)

type envelope struct {
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.InitDB(context.Background(), database.DatabaseConfig{
		Driver: "sqlite", Path: ":memory:", AutoMigrate: true,
	})
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	e := echo.New()
	e.HTTPErrorHandler = corecontroller.HTTPErrorHandler
	Init(e, &db, Options{Clock: clock.NewFixed(now)})
	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path, body string) (int, envelope) {
	s.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() == 0 {
		return rec.Code, env
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		s.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func (s *testServer) create(userID, title, date string) dto.EventResponse {
	s.t.Helper()
	body := `{"user_id":"` + userID + `","title":"` + title + `","event_date":"` + date + `"}`
	code, env := s.do(http.MethodPost, "/api/v1/events", body)
	if code != http.StatusCreated {
		s.t.Fatalf("create: expected 201, got %d (%s)", code, env.Message)
	}
	var ev dto.EventResponse
	if err := json.Unmarshal(env.Data, &ev); err != nil {
		s.t.Fatal(err)
	}
	return ev
}

func decodeList(t *testing.T, env envelope) dto.EventListResponse {
	t.Helper()
	var list dto.EventListResponse
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	return list
}

func TestEventLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)

	created := s.create("u1", "Pagar alquiler", "2025-12-22T10:00:00")
	if created.Status != "pending" || created.UserID != "u1" || created.Title != "Pagar alquiler" {
		t.Fatalf("unexpected event %+v", created)
	}
	if !created.EventDate.Equal(time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %s", created.EventDate)
	}

	code, env := s.do(http.MethodGet, "/api/v1/events/"+created.ID, "")
	if code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", code)
	}
	var found dto.EventResponse
	_ = json.Unmarshal(env.Data, &found)
	if found.ID != created.ID || found.Title != created.Title || !found.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("round trip mismatch %+v vs %+v", found, created)
	}

	code, env = s.do(http.MethodPost, "/api/v1/events/"+created.ID+"/complete", "")
	if code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d", code)
	}
	var completed dto.EventResponse
	_ = json.Unmarshal(env.Data, &completed)
	if completed.Status != "completed" {
		t.Fatalf("expected completed, got %s", completed.Status)
	}

	code, env = s.do(http.MethodPost, "/api/v1/events/"+created.ID+"/cancel", "")
	if code != http.StatusBadRequest || env.Code != "INVALID_STATE_TRANSITION" {
		t.Fatalf("cancel after complete: expected 400 INVALID_STATE_TRANSITION, got %d %s", code, env.Code)
	}

	code, env = s.do(http.MethodPut, "/api/v1/events/"+created.ID, `{"title":"changed"}`)
	if code != http.StatusBadRequest || env.Code != "INVALID_STATE_TRANSITION" {
		t.Fatalf("update of completed event: expected 400, got %d %s", code, env.Code)
	}

	code, _ = s.do(http.MethodDelete, "/api/v1/events/"+created.ID, "")
	if code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", code)
	}
	code, env = s.do(http.MethodDelete, "/api/v1/events/"+created.ID, "")
	if code != http.StatusNotFound || env.Code != "NOT_FOUND" {
		t.Fatalf("second delete: expected 404, got %d %s", code, env.Code)
	}
	code, env = s.do(http.MethodGet, "/api/v1/events/"+created.ID, "")
	if code != http.StatusNotFound || env.Code != "NOT_FOUND" {
		t.Fatalf("get after delete: expected 404, got %d %s", code, env.Code)
	}
}

func TestCreateEventRejectsInvalidInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"past date", `{"user_id":"u1","title":"x","event_date":"2020-01-01T00:00"}`, "INVALID_EVENT_DATE"},
		{"empty title", `{"user_id":"u1","title":"","event_date":"2025-12-22T10:00:00Z"}`, "INVALID_TITLE"},
		{"missing user", `{"title":"x","event_date":"2025-12-22T10:00:00Z"}`, "INVALID_INPUT"},
		{"bad date", `{"user_id":"u1","title":"x","event_date":"soon"}`, "INVALID_INPUT"},
		{"bad json", `{"user_id":`, "INVALID_REQUEST_DATA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := s.do(http.MethodPost, "/api/v1/events", tt.body)
			if code != http.StatusBadRequest || env.Code != tt.wantCode {
				t.Fatalf("expected 400 %s, got %d %s", tt.wantCode, code, env.Code)
			}
		})
	}
}

func TestUpdateEventOverHTTP(t *testing.T) {
	s := newTestServer(t)
	ev := s.create("u1", "Pagar alquiler", "2025-12-22T10:00:00Z")

	code, env := s.do(http.MethodPut, "/api/v1/events/"+ev.ID,
		`{"title":"Pagar alquiler - URGENTE","event_date":"2025-12-23T10:00:00","description":"Antes del 23"}`)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", code, env.Message)
	}
	var updated dto.EventResponse
	_ = json.Unmarshal(env.Data, &updated)
	if updated.Title != "Pagar alquiler - URGENTE" || updated.Description == nil || updated.Version != 2 {
		t.Fatalf("unexpected event %+v", updated)
	}

	code, env = s.do(http.MethodPut, "/api/v1/events/"+ev.ID, `{"event_date":"2020-01-01T00:00:00Z"}`)
	if code != http.StatusBadRequest || env.Code != "INVALID_EVENT_DATE" {
		t.Fatalf("expected INVALID_EVENT_DATE, got %d %s", code, env.Code)
	}
}

func TestCreateThenGetKeepsEveryField(t *testing.T) {
	s := newTestServer(t)

	body := `{"user_id":"u1","title":"Pagar alquiler","description":"Recordatorio mensual","event_date":"2025-12-22T10:00:00.123456789Z"}`
	code, env := s.do(http.MethodPost, "/api/v1/events", body)
	if code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d %s", code, env.Message)
	}
	var created dto.EventResponse
	_ = json.Unmarshal(env.Data, &created)

	code, env = s.do(http.MethodGet, "/api/v1/events/"+created.ID, "")
	if code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", code)
	}
	var found dto.EventResponse
	_ = json.Unmarshal(env.Data, &found)

	if !found.EventDate.Equal(created.EventDate) || !found.CreatedAt.Equal(created.CreatedAt) ||
		found.ID != created.ID || found.UserID != created.UserID || found.Title != created.Title ||
		found.Status != created.Status || found.Version != created.Version ||
		found.Description == nil || created.Description == nil || *found.Description != *created.Description {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", found, created)
	}

	code, env = s.do(http.MethodPut, "/api/v1/events/"+created.ID, `{"event_date":"2025-12-22T10:00:00.123456789Z"}`)
	if code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d %s", code, env.Message)
	}
	var updated dto.EventResponse
	_ = json.Unmarshal(env.Data, &updated)
	if updated.Version != created.Version {
		t.Fatalf("re-sending the same date should not bump the version, got %d", updated.Version)
	}
}

func TestCreateEventTrimsTitleBeforeLengthCheck(t *testing.T) {
	s := newTestServer(t)

	title := strings.Repeat("a", 200)
	ev := s.create("u1", "  "+title+"  ", "2025-12-22T10:00:00Z")
	if ev.Title != title {
		t.Fatalf("expected trimmed title, got %q", ev.Title)
	}

	code, env := s.do(http.MethodPost, "/api/v1/events",
		`{"user_id":"u1","title":"`+title+`a","event_date":"2025-12-22T10:00:00Z"}`)
	if code != http.StatusBadRequest || env.Code != "INVALID_INPUT" {
		t.Fatalf("expected 400 INVALID_INPUT for 201 characters, got %d %s", code, env.Code)
	}
}

func TestUnknownAndMalformedIDs(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/events/3f1c3c39-5d0a-4a4e-9d3c-7b2e1f0a9c11", "")
	if code != http.StatusNotFound || env.Code != "NOT_FOUND" {
		t.Fatalf("expected 404, got %d %s", code, env.Code)
	}
	code, env = s.do(http.MethodPost, "/api/v1/events/42/complete", "")
	if code != http.StatusBadRequest || env.Code != "INVALID_INPUT" {
		t.Fatalf("expected 400, got %d %s", code, env.Code)
	}
}

func TestUserQueriesOverHTTP(t *testing.T) {
	s := newTestServer(t)

	third := s.create("u1", "third", "2025-12-25T09:00:00Z")
	first := s.create("u1", "first", "2025-12-22T09:00:00Z")
	second := s.create("u1", "second", "2025-12-22T18:00:00Z")
	for _, title := range []string{"done one", "done two"} {
		ev := s.create("u1", title, "2025-12-23T09:00:00Z")
		if code, _ := s.do(http.MethodPost, "/api/v1/events/"+ev.ID+"/complete", ""); code != http.StatusOK {
			t.Fatalf("complete: %d", code)
		}
	}
	s.create("u2", "someone else", "2025-12-22T09:00:00Z")

	code, env := s.do(http.MethodGet, "/api/v1/events/user/u1/upcoming?limit=10", "")
	if code != http.StatusOK {
		t.Fatalf("upcoming: expected 200, got %d", code)
	}
	upcoming := decodeList(t, env)
	want := []string{first.ID, second.ID, third.ID}
	if upcoming.Total != 3 {
		t.Fatalf("expected 3 upcoming, got %d", upcoming.Total)
	}
	for i, id := range want {
		if upcoming.Events[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, upcoming.Events[i].ID)
		}
	}

	_, env = s.do(http.MethodGet, "/api/v1/events/user/u1", "")
	if all := decodeList(t, env); all.Total != 5 || all.Events[0].ID != third.ID {
		t.Fatalf("expected 5 events newest first, got %+v", all)
	}

	_, env = s.do(http.MethodGet, "/api/v1/events/user/u1/date/2025-12-22", "")
	byDate := decodeList(t, env)
	if byDate.Total != 2 || byDate.Events[0].ID != first.ID || byDate.Events[1].ID != second.ID {
		t.Fatalf("unexpected events for 2025-12-22: %+v", byDate)
	}

	for _, path := range []string{
		"/api/v1/events/user/u1/upcoming?limit=0",
		"/api/v1/events/user/u1/upcoming?limit=101",
		"/api/v1/events/user/u1/date/22-12-2025",
	} {
		if code, _ := s.do(http.MethodGet, path, ""); code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, code)
		}
	}
}
