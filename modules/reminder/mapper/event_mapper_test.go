package mapper

import (
	"errors"
	"testing"
	"time"

	"eventrely-api/modules/reminder/domain"
	"eventrely-api/modules/reminder/entity"
)

func TestEntityRoundTrip(t *testing.T) {
	now := time.Date(2025, 12, 21, 15, 30, 0, 123456789, time.UTC)
	desc := "Recordatorio mensual"
	e, err := domain.NewEvent(domain.NewEventID(), "u1", "Pagar alquiler", now.Add(time.Hour), &desc, now)
	if err != nil {
		t.Fatal(err)
	}

	row := ToEntity(e)
	if row.Status != "pending" || row.Version != 1 {
		t.Fatalf("unexpected row %+v", row)
	}
	if row.CreatedAt.Nanosecond()%1000 != 0 {
		t.Fatal("timestamps should be truncated to microseconds")
	}

	back, err := ToDomain(row)
	if err != nil {
		t.Fatal(err)
	}
	if back.ID != e.ID || back.Title != e.Title || *back.Description != desc || back.Status != e.Status {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, e)
	}
}

func TestToDomainRejectsBadRows(t *testing.T) {
	tests := []struct {
		name    string
		row     entity.Event
		wantErr error
	}{
		{"bad id", entity.Event{ID: "1", Status: "pending"}, domain.ErrInvalidEventID},
		{"bad status", entity.Event{ID: domain.NewEventID().String(), Status: "expired"}, domain.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToDomain(&tt.row); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestToEventListResponse(t *testing.T) {
	resp := ToEventListResponse(nil)
	if resp.Total != 0 || resp.Events == nil {
		t.Fatalf("expected empty non-nil list, got %+v", resp)
	}
}
