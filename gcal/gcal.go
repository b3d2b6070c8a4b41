// Package gcal dumps Google Calendar events into the calendar-export
// JSON shape consumed by the agenda and ICS tools.
package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/perbu/hobbes/config"
	"github.com/perbu/hobbes/events"
)

// GCalService interacts with the Google Calendar API.
type GCalService struct {
	service *calendar.Service
	loader  config.Loader
}

// NewGCalService creates and initializes a new GCalService.
func NewGCalService(loader config.Loader) (*GCalService, error) {
	credBytes, err := loader.LoadCredentials()
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	token, err := loadOrObtainToken(credBytes, loader)
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}

	client := oauthClient(credBytes, token)

	srv, err := calendar.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}

	return &GCalService{service: srv, loader: loader}, nil
}

// loadOrObtainToken loads a token from storage or obtains a new one if necessary.
func loadOrObtainToken(credBytes []byte, loader config.Loader) (*oauth2.Token, error) {
	tokenBytes, err := loader.LoadToken()
	if err == nil { // Token found in storage
		var tok oauth2.Token
		if err := json.Unmarshal(tokenBytes, &tok); err != nil {
			return nil, fmt.Errorf("unmarshalling token: %w", err)
		}
		return &tok, nil
	}

	// No token found, initiate OAuth2 flow
	return getTokenFromWeb(credBytes, loader)
}

// oauthClient creates an OAuth2 client.
func oauthClient(credBytes []byte, token *oauth2.Token) *http.Client {
	conf, err := google.ConfigFromJSON(credBytes, calendar.CalendarReadonlyScope)
	if err != nil {
		log.Fatalf("parsing credentials: %v", err) // Fatal error if credentials are invalid
	}
	return conf.Client(context.Background(), token)
}

// ListUpcoming retrieves the events of a calendar starting at from and
// spanning the given number of days, expanded to single instances and
// ordered by start time.
func (g *GCalService) ListUpcoming(calendarID string, from time.Time, days int) (*calendar.Events, error) {
	until := from.AddDate(0, 0, days)

	evts, err := g.service.Events.List(calendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(until.Format(time.RFC3339)).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("retrieving events: %w", err)
	}
	return evts, nil
}

// DumpEvents fetches a window of events and converts them into the
// calendar-export JSON shape. Google items without both endpoints are
// dropped, mirroring how the consumers treat incomplete records.
func DumpEvents(s CalendarService, calendarID string, from time.Time, days int) ([]events.Event, error) {
	listed, err := s.ListUpcoming(calendarID, from, days)
	if err != nil {
		return nil, err
	}

	dumped := make([]events.Event, 0, len(listed.Items))
	for _, item := range listed.Items {
		e, ok, err := convertEvent(item)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		dumped = append(dumped, e)
	}
	return dumped, nil
}

// convertEvent maps one Google Calendar item to an event record. The
// second return value is false for items that cannot be represented.
func convertEvent(item *calendar.Event) (events.Event, bool, error) {
	if item.Start == nil || item.End == nil {
		return events.Event{}, false, nil
	}

	e := events.Event{
		ID:       item.Id,
		Title:    item.Summary,
		Location: item.Location,
		Notes:    item.Description,
	}

	// All-day items carry bare dates; Google's end date is already
	// exclusive, which matches the export format downstream.
	if item.Start.Date != "" {
		e.AllDay = true
		start, err := time.ParseInLocation("2006-01-02", item.Start.Date, time.UTC)
		if err != nil {
			return events.Event{}, false, fmt.Errorf("parsing all-day start %q: %w", item.Start.Date, err)
		}
		end, err := time.ParseInLocation("2006-01-02", item.End.Date, time.UTC)
		if err != nil {
			return events.Event{}, false, fmt.Errorf("parsing all-day end %q: %w", item.End.Date, err)
		}
		e.Start = start.Format(time.RFC3339)
		e.End = end.Format(time.RFC3339)
		return e, true, nil
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return events.Event{}, false, fmt.Errorf("parsing start %q: %w", item.Start.DateTime, err)
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return events.Event{}, false, fmt.Errorf("parsing end %q: %w", item.End.DateTime, err)
	}
	e.Start = start.UTC().Format(time.RFC3339)
	e.End = end.UTC().Format(time.RFC3339)
	return e, true, nil
}
