// Package ics serializes calendar-export events into an RFC5545
// iCalendar document.
package ics

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/perbu/hobbes/events"
)

const (
	// DateTimeFormat is the UTC instant form used for DTSTAMP, DTSTART
	// and DTEND. The trailing Z is a literal.
	DateTimeFormat = "20060102T150405Z"
	// DateFormat is the bare-date form used for all-day events.
	DateFormat = "20060102"

	// foldLimit is the RFC5545 line-length ceiling in octets.
	foldLimit = 75

	prodID  = "-//hobbes//json-to-ics//EN"
	noTitle = "(No Title)"
)

// FormatUTC renders an instant as a UTC iCalendar date-time.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(DateTimeFormat)
}

// ParseUTC is the inverse of FormatUTC.
func ParseUTC(s string) (time.Time, error) {
	t, err := time.Parse(DateTimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.Parse(%s): %w", s, err)
	}
	return t.UTC(), nil
}

// EscapeText applies RFC5545 text escaping. Backslashes are doubled
// first so the escapes inserted afterwards survive untouched.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	return s
}

// FoldLine soft-folds a content line at foldLimit octets, marking
// continuations with a single leading space. The break may land inside
// a multi-byte sequence; fine for the ASCII content produced here.
func FoldLine(line string) string {
	if len(line) <= foldLimit {
		return line
	}
	var out []string
	for len(line) > foldLimit {
		out = append(out, line[:foldLimit])
		line = " " + line[foldLimit:]
	}
	out = append(out, line)
	return strings.Join(out, "\r\n")
}

// FallbackUID derives a stable identifier for a record without an id,
// hashing the title and the raw timestamp strings. The same input
// always yields the same UID, so re-exports do not churn identifiers.
func FallbackUID(title, start, end string) string {
	sum := sha1.Sum([]byte(title + "\x00" + start + "\x00" + end))
	return fmt.Sprintf("no-id-%x", sum)
}

// Build serializes the events into a VCALENDAR document with CRLF line
// endings and a trailing CRLF, and returns it along with the number of
// VEVENT blocks written. Records without both timestamps are skipped;
// a malformed timestamp aborts the whole export. All-day dates are
// rendered in loc, and now becomes the DTSTAMP of every block.
func Build(evts []events.Event, loc *time.Location, now time.Time) (string, int, error) {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}

	count := 0
	for _, e := range evts {
		if !e.HasTimes() {
			continue
		}
		vevent, err := buildEvent(e, loc, now)
		if err != nil {
			return "", 0, err
		}
		for _, line := range vevent {
			lines = append(lines, FoldLine(line))
		}
		count++
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n", count, nil
}

func buildEvent(e events.Event, loc *time.Location, now time.Time) ([]string, error) {
	start, end, err := e.Times()
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(e.Title)
	if title == "" {
		title = noTitle
	}
	uid := strings.TrimSpace(e.ID)
	if uid == "" {
		uid = FallbackUID(title, e.Start, e.End)
	}

	vevent := []string{
		"BEGIN:VEVENT",
		"UID:" + EscapeText(uid),
		"DTSTAMP:" + FormatUTC(now),
	}

	if e.AllDay {
		startDate := localDate(start, loc)
		endDate := localDate(end, loc)
		// DTEND is exclusive; force at least one day.
		if !endDate.After(startDate) {
			endDate = startDate.AddDate(0, 0, 1)
		}
		vevent = append(vevent,
			"DTSTART;VALUE=DATE:"+startDate.Format(DateFormat),
			"DTEND;VALUE=DATE:"+endDate.Format(DateFormat),
		)
	} else {
		vevent = append(vevent,
			"DTSTART:"+FormatUTC(start),
			"DTEND:"+FormatUTC(end),
		)
	}

	vevent = append(vevent, "SUMMARY:"+EscapeText(title))

	if location := strings.TrimSpace(e.Location); location != "" {
		vevent = append(vevent, "LOCATION:"+EscapeText(location))
	}
	if notes := strings.TrimSpace(e.Notes); notes != "" {
		vevent = append(vevent, "DESCRIPTION:"+EscapeText(notes))
	}

	vevent = append(vevent, "END:VEVENT")
	return vevent, nil
}

// localDate truncates an instant to midnight of its calendar date in
// loc.
func localDate(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
