// Package agenda filters events against a local day window and renders
// them as a day agenda.
package agenda

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/perbu/hobbes/events"
)

const (
	// timeColumnWidth is the minimum width of the time-range column.
	timeColumnWidth = 18

	noTitle = "(No Title)"
	allDay  = "All Day"
)

// Entry is a resolved event ready for display: title plus local-zone
// instants.
type Entry struct {
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
}

// Filter returns the events overlapping the half-open UTC window
// [winStart, winEnd), converted to loc and sorted ascending by local
// start. The sort is stable, so ties keep input order. Records without
// both timestamps are skipped; a malformed timestamp aborts the run.
func Filter(evts []events.Event, winStart, winEnd time.Time, loc *time.Location) ([]Entry, error) {
	var matches []Entry

	for _, e := range evts {
		if !e.HasTimes() {
			continue
		}
		start, end, err := e.Times()
		if err != nil {
			return nil, err
		}
		if !events.Overlaps(start, end, winStart, winEnd) {
			continue
		}

		title := e.Title
		if title == "" {
			title = noTitle
		}
		matches = append(matches, Entry{
			Title:  title,
			Start:  start.In(loc),
			End:    end.In(loc),
			AllDay: e.AllDay,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start.Before(matches[j].Start)
	})
	return matches, nil
}

// Render prints the agenda for the given date: a full-date header, a
// blank line, then one row per entry, or "No events." when there are
// none. Colors disable themselves when w is not a terminal.
func Render(w io.Writer, date time.Time, entries []Entry) {
	headerColor := color.New(color.FgCyan, color.Bold).SprintFunc()
	warnColor := color.New(color.FgRed, color.Bold).SprintFunc()
	timeColor := color.New(color.FgGreen).SprintFunc()
	summaryColor := color.New(color.FgYellow, color.Bold).SprintFunc()

	fmt.Fprintln(w, headerColor(date.Format("Monday, January 2, 2006")))
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, warnColor("No events."))
		return
	}

	for _, entry := range entries {
		// Pad before colorizing so the escape codes don't skew the column.
		column := pad(timeRange(entry), timeColumnWidth)
		fmt.Fprintf(w, "%s %s\n", timeColor(column), summaryColor(entry.Title))
	}
}

// timeRange formats the time column: a fixed literal for all-day
// events, otherwise 12-hour clock times with no leading zero and an
// uppercase meridiem, separated by an en dash.
func timeRange(entry Entry) string {
	if entry.AllDay {
		return allDay
	}
	return fmt.Sprintf("%s – %s", entry.Start.Format("3:04 PM"), entry.End.Format("3:04 PM"))
}

// pad left-aligns s in a column of at least width characters. The en
// dash is multi-byte, so this counts runes rather than bytes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
