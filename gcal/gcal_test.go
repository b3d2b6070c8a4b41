package gcal

import (
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"
)

// MockCalendarService is a mock implementation of CalendarService.
type MockCalendarService struct {
	Events *calendar.Events
	Err    error
}

func (m *MockCalendarService) ListUpcoming(calendarID string, from time.Time, days int) (*calendar.Events, error) {
	return m.Events, m.Err
}

func TestDumpEvents(t *testing.T) {
	mockEvents := &calendar.Events{
		Items: []*calendar.Event{
			{
				Id:          "ev-1",
				Summary:     "Meeting with Bob",
				Location:    "Room 2",
				Description: "Quarterly review",
				Start: &calendar.EventDateTime{
					DateTime: "2026-02-19T10:00:00-05:00",
				},
				End: &calendar.EventDateTime{
					DateTime: "2026-02-19T11:00:00-05:00",
				},
			},
			{
				Id:      "ev-2",
				Summary: "Company holiday",
				Start: &calendar.EventDateTime{
					Date: "2026-02-20",
				},
				End: &calendar.EventDateTime{
					Date: "2026-02-21",
				},
			},
			{
				// No endpoints; must be dropped.
				Id:      "ev-3",
				Summary: "Phantom",
			},
		},
	}

	mockService := &MockCalendarService{Events: mockEvents}

	dumped, err := DumpEvents(mockService, "alice@example.com", time.Now(), 7)
	if err != nil {
		t.Fatalf("DumpEvents returned error: %v", err)
	}
	if len(dumped) != 2 {
		t.Fatalf("DumpEvents returned %d events, want 2", len(dumped))
	}

	timed := dumped[0]
	if timed.ID != "ev-1" || timed.Title != "Meeting with Bob" {
		t.Errorf("timed event = %+v", timed)
	}
	if timed.Start != "2026-02-19T15:00:00Z" {
		t.Errorf("timed start = %q, want UTC Z form", timed.Start)
	}
	if timed.Location != "Room 2" || timed.Notes != "Quarterly review" {
		t.Errorf("timed fields = %+v", timed)
	}
	if timed.AllDay {
		t.Errorf("timed event flagged all-day")
	}

	allDay := dumped[1]
	if !allDay.AllDay {
		t.Errorf("all-day event not flagged")
	}
	if allDay.Start != "2026-02-20T00:00:00Z" || allDay.End != "2026-02-21T00:00:00Z" {
		t.Errorf("all-day range = %q .. %q", allDay.Start, allDay.End)
	}
}

func TestDumpEventsBadTimestamp(t *testing.T) {
	mockService := &MockCalendarService{
		Events: &calendar.Events{
			Items: []*calendar.Event{
				{
					Id:    "ev-1",
					Start: &calendar.EventDateTime{DateTime: "garbage"},
					End:   &calendar.EventDateTime{DateTime: "2026-02-19T11:00:00Z"},
				},
			},
		},
	}

	if _, err := DumpEvents(mockService, "alice@example.com", time.Now(), 7); err == nil {
		t.Fatal("DumpEvents should fail on a malformed timestamp")
	}
}
