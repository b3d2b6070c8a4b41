package gcal

import (
	"time"

	"google.golang.org/api/calendar/v3"
)

// CalendarService defines the interface for interacting with Google Calendar.
type CalendarService interface {
	ListUpcoming(calendarID string, from time.Time, days int) (*calendar.Events, error)
}
