package dateparse

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned for a date token that is none of "today",
// "tomorrow", or YYYY-MM-DD. It is a user-input error, not an internal
// fault.
var ErrInvalidDate = errors.New(`date must be "today", "tomorrow", or YYYY-MM-DD`)

// Parser defines the interface for resolving date tokens.
type Parser interface {
	Resolve(token string) (time.Time, error)
}

// DefaultParser implements the Parser interface against a wall clock
// in a fixed zone. Now may be overridden in tests; when nil, time.Now
// is used.
type DefaultParser struct {
	Location *time.Location
	Now      func() time.Time
}

// New returns a DefaultParser for the given zone.
func New(loc *time.Location) *DefaultParser {
	return &DefaultParser{Location: loc}
}

// Resolve turns a date token into midnight of the target calendar date
// in the parser's zone. An empty token means today.
func (p *DefaultParser) Resolve(token string) (time.Time, error) {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	today := midnight(now.In(p.Location), p.Location)

	switch strings.ToLower(token) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", token, p.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w (got %q)", ErrInvalidDate, token)
	}
	return parsed, nil
}

func midnight(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
