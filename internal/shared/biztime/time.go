// Package biztime holds the business time zone. Timestamps are stored in
// UTC; calendar arithmetic (adding months, day boundaries, parsing dates
// entered by operators) happens in the business zone.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is used when no zone is configured.
	DefaultTimezone = "UTC"

	// DateLayout is the layout of dates entered in forms and URLs.
	DateLayout = "2006-01-02"

	// LocalDateTimeLayout is what an HTML datetime-local input submits.
	LocalDateTimeLayout = "2006-01-02T15:04"
)

var (
	mu          sync.RWMutex
	bizLocation *time.Location
)

// Init sets the business time zone. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load business timezone %q: %w", tz, err)
	}
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
	return nil
}

// Location returns the business time zone.
func Location() *time.Location {
	mu.RLock()
	loc := bizLocation
	mu.RUnlock()
	if loc == nil {
		return time.UTC
	}
	return loc
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns midnight of t's business day, in UTC.
func StartOfDayUTC(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Location()).UTC()
}

// EndOfDayUTC returns the last instant of t's business day, in UTC.
func EndOfDayUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).In(Location()).AddDate(0, 0, 1).Add(-time.Nanosecond).UTC()
}

// StartOfMonthUTC returns the first instant of the business month, in UTC.
func StartOfMonthUTC(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, Location()).UTC()
}

// EndOfMonthUTC returns the last instant of the business month, in UTC.
func EndOfMonthUTC(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, Location()).Add(-time.Nanosecond).UTC()
}

// ParseDate parses a YYYY-MM-DD date as midnight in the business zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, Location())
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseDateTime accepts RFC 3339, a zone-less datetime-local value read in
// the business zone, or a plain date.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(LocalDateTimeLayout, s, Location()); err == nil {
		return t.UTC(), nil
	}
	if t, err := ParseDate(s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date or time %q", s)
}

// FormatDate renders t as YYYY-MM-DD in the business zone.
func FormatDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}

// ToBizTimezone converts t to the business zone for display or arithmetic.
func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}
