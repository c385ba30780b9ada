package validator

import (
	"strings"
	"testing"
	"time"

	"eventrely-api/modules/reminder/dto"
)

func strPtr(s string) *string { return &s }

func TestValidateCreateEventRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateEventRequest
		wantField string
	}{
		{"valid", dto.CreateEventRequest{UserID: "u1", Title: "Pagar alquiler", EventDate: "2025-12-22T10:00:00"}, ""},
		{"empty title is left to the domain", dto.CreateEventRequest{UserID: "u1", EventDate: "2025-12-22T10:00:00Z"}, ""},
		{"missing user", dto.CreateEventRequest{Title: "x", EventDate: "2025-12-22T10:00:00Z"}, "user_id"},
		{"missing date", dto.CreateEventRequest{UserID: "u1", Title: "x"}, "event_date"},
		{"bad date", dto.CreateEventRequest{UserID: "u1", Title: "x", EventDate: "tomorrow"}, "event_date"},
		{"long title", dto.CreateEventRequest{UserID: "u1", Title: strings.Repeat("a", 201), EventDate: "2025-12-22T10:00:00Z"}, "title"},
		{"padded title at max length", dto.CreateEventRequest{UserID: "u1", Title: "  " + strings.Repeat("a", 200) + "\t", EventDate: "2025-12-22T10:00:00Z"}, ""},
		{"padded description at max length", dto.CreateEventRequest{UserID: "u1", Title: "x", Description: strPtr(" " + strings.Repeat("a", 1000) + " "), EventDate: "2025-12-22T10:00:00Z"}, ""},
		{"long description", dto.CreateEventRequest{UserID: "u1", Title: "x", Description: strPtr(strings.Repeat("a", 1001)), EventDate: "2025-12-22T10:00:00Z"}, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := ValidateCreateEventRequest(&tt.req)
			if tt.wantField == "" {
				if result.HasError() {
					t.Fatalf("unexpected errors %+v", result.Errors)
				}
				return
			}
			if !result.HasError() || result.Errors[0].Field != tt.wantField {
				t.Fatalf("expected error on %s, got %+v", tt.wantField, result.Errors)
			}
		})
	}
}

func TestValidateUpdateEventRequest(t *testing.T) {
	if r := ValidateUpdateEventRequest(&dto.UpdateEventRequest{Title: strPtr("ok")}); r.HasError() {
		t.Fatalf("unexpected errors %+v", r.Errors)
	}
	if r := ValidateUpdateEventRequest(&dto.UpdateEventRequest{EventDate: strPtr("nope")}); !r.HasError() {
		t.Fatal("expected event_date error")
	}

	req := &dto.UpdateEventRequest{Title: strPtr(" " + strings.Repeat("b", 200) + " ")}
	if r := ValidateUpdateEventRequest(req); r.HasError() {
		t.Fatalf("surrounding whitespace should not count, got %+v", r.Errors)
	}
	if *req.Title != strings.Repeat("b", 200) {
		t.Fatalf("expected title trimmed in place, got %q", *req.Title)
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"10", 10, false},
		{" 100 ", 100, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"ten", 0, true},
	}
	for _, tt := range tests {
		got, result := ParseLimit(tt.raw)
		if result.HasError() != tt.wantErr || got != tt.want {
			t.Errorf("ParseLimit(%q) = %d, %v", tt.raw, got, result.Errors)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	want := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	for _, s := range []string{"2025-12-22T10:00:00", "2025-12-22T10:00", "2025-12-22T10:00:00Z", "2025-12-22T11:00:00+01:00"} {
		got, err := ParseDateTime(s)
		if err != nil || !got.Equal(want) || got.Location() != time.UTC {
			t.Errorf("ParseDateTime(%q) = %s, %v", s, got, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-12-22")
	if err != nil || !got.Equal(time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected %s %v", got, err)
	}
	if _, err := ParseDate("22/12/2025"); err == nil {
		t.Fatal("expected error")
	}
}
