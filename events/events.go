// Package events defines the calendar-export JSON event shape and the
// interval arithmetic shared by the agenda and ICS tools.
package events

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Event is a single record from a calendar-export JSON file.
// All fields are optional in the source data.
type Event struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	AllDay   bool   `json:"allDay,omitempty"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// File is the top-level shape of a calendar-export JSON document.
type File struct {
	Events []Event `json:"events"`
}

// HasTimes reports whether the record carries both timestamps.
// Records without them are skipped by every consumer.
func (e Event) HasTimes() bool {
	return e.Start != "" && e.End != ""
}

// Load reads a calendar-export JSON file. A document without an
// "events" key yields an empty slice.
func Load(path string) ([]Event, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s): %w", path, err)
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s): %w", path, err)
	}
	return f.Events, nil
}

// FormatError reports a timestamp string that is not valid ISO-8601.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid ISO-8601 timestamp %q: %v", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// timestampLayouts are tried in order for strings without an explicit
// offset. RFC3339 covers both "Z" and numeric-offset forms; the parser
// accepts fractional seconds whether or not the layout names them.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp normalizes an ISO-8601 string to a UTC instant.
// A trailing "Z" means UTC, an explicit numeric offset is honored, and
// a string with neither is treated as UTC as well.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &FormatError{Value: s, Err: lastErr}
}

// Times parses both timestamps of a record.
func (e Event) Times() (start, end time.Time, err error) {
	start, err = ParseTimestamp(e.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = ParseTimestamp(e.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Zero-length intervals never overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DayWindow returns the half-open UTC interval covering the calendar
// date of t (read in loc) from local midnight to the next local
// midnight. The next midnight is computed with calendar arithmetic, so
// DST-transition days yield 23- or 25-hour windows with the correct
// boundaries.
func DayWindow(t time.Time, loc *time.Location) (start, end time.Time) {
	year, month, day := t.In(loc).Date()
	start = time.Date(year, month, day, 0, 0, 0, 0, loc)
	end = time.Date(year, month, day+1, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC()
}
