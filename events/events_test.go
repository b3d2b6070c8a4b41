package events

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      time.Time
		expectErr bool
	}{
		{
			name:  "Z suffix",
			input: "2026-02-19T14:00:00Z",
			want:  time.Date(2026, 2, 19, 14, 0, 0, 0, time.UTC),
		},
		{
			name:  "Z suffix with milliseconds",
			input: "2026-02-19T14:00:00.000Z",
			want:  time.Date(2026, 2, 19, 14, 0, 0, 0, time.UTC),
		},
		{
			name:  "Explicit offset",
			input: "2026-02-19T09:00:00-05:00",
			want:  time.Date(2026, 2, 19, 14, 0, 0, 0, time.UTC),
		},
		{
			name:  "No offset treated as UTC",
			input: "2026-02-19T14:00:00",
			want:  time.Date(2026, 2, 19, 14, 0, 0, 0, time.UTC),
		},
		{
			name:  "Date only",
			input: "2026-02-19",
			want:  time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Garbage",
			input:     "next thursday-ish",
			expectErr: true,
		},
		{
			name:      "Empty",
			input:     "",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.expectErr {
				var formatErr *FormatError
				if !errors.As(err, &formatErr) {
					t.Fatalf("ParseTimestamp(%q) error = %v, want *FormatError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseTimestamp(%q) location = %v, want UTC", tt.input, got.Location())
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	at := func(h int) time.Time {
		return time.Date(2026, 2, 19, h, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"Disjoint", at(1), at(2), at(3), at(4), false},
		{"Touching endpoints", at(1), at(2), at(2), at(3), false},
		{"Contained", at(1), at(4), at(2), at(3), true},
		{"Partial", at(1), at(3), at(2), at(4), true},
		{"Zero-length never overlaps", at(2), at(2), at(1), at(3), false},
		{"Zero-length against itself", at(2), at(2), at(2), at(2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			// Symmetry must hold for every pair.
			if got := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
				t.Errorf("Overlaps (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDayWindow(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	tests := []struct {
		name      string
		date      time.Time
		wantStart time.Time
		wantHours float64
	}{
		{
			name:      "Plain winter day is 24 hours at UTC-5",
			date:      time.Date(2026, 2, 19, 0, 0, 0, 0, ny),
			wantStart: time.Date(2026, 2, 19, 5, 0, 0, 0, time.UTC),
			wantHours: 24,
		},
		{
			name:      "Spring-forward day is 23 hours",
			date:      time.Date(2026, 3, 8, 0, 0, 0, 0, ny),
			wantStart: time.Date(2026, 3, 8, 5, 0, 0, 0, time.UTC),
			wantHours: 23,
		},
		{
			name:      "Fall-back day is 25 hours",
			date:      time.Date(2026, 11, 1, 0, 0, 0, 0, ny),
			wantStart: time.Date(2026, 11, 1, 4, 0, 0, 0, time.UTC),
			wantHours: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := DayWindow(tt.date, ny)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if got := end.Sub(start).Hours(); got != tt.wantHours {
				t.Errorf("window length = %v hours, want %v", got, tt.wantHours)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "events.json")
	content := `{"events": [{"id": "1", "title": "Standup", "start": "2026-02-19T14:00:00Z", "end": "2026-02-19T14:15:00Z"}]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	evts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(evts) != 1 || evts[0].Title != "Standup" {
		t.Errorf("Load = %+v, want one Standup event", evts)
	}
}

func TestLoadMissingEventsKey(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	evts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(evts) != 0 {
		t.Errorf("Load = %+v, want empty", evts)
	}
}

func TestHasTimes(t *testing.T) {
	if (Event{Start: "x"}).HasTimes() {
		t.Error("event without end should not have times")
	}
	if !(Event{Start: "x", End: "y"}).HasTimes() {
		t.Error("event with both timestamps should have times")
	}
}
