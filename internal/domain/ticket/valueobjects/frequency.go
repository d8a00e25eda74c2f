package valueobjects

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
)

// Frequency is the cadence of a recurring ticket. Values are stored in
// lowercase; ParseFrequency accepts any casing.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// ErrUnknownFrequency is returned when a date is advanced by a value that
// is not one of the known frequencies.
var ErrUnknownFrequency = errors.New("unknown frequency")

var allowedFrequencies = map[Kind][]Frequency{
	KindPreventive:  {FrequencyWeekly, FrequencyMonthly, FrequencyYearly},
	KindCalibration: {FrequencyMonthly, FrequencyQuarterly, FrequencyYearly},
}

var titleCaser = cases.Title(language.English)

func (f Frequency) String() string { return string(f) }

// Label is the display form, e.g. "Monthly".
func (f Frequency) Label() string {
	return titleCaser.String(string(f))
}

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// IsAllowedFor reports whether tickets of kind may recur at f.
func (f Frequency) IsAllowedFor(kind Kind) bool {
	for _, allowed := range allowedFrequencies[kind] {
		if allowed == f {
			return true
		}
	}
	return false
}

// NextDate advances anchor by one period. Month and year steps use
// time.AddDate in the business time zone, so a day past the end of the
// target month normalizes forward (Jan 31 + 1 month = Mar 2 in a leap year).
func (f Frequency) NextDate(anchor time.Time) (time.Time, error) {
	local := anchor.In(biztime.Location())
	var next time.Time
	switch f {
	case FrequencyWeekly:
		next = local.AddDate(0, 0, 7)
	case FrequencyMonthly:
		next = local.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		next = local.AddDate(0, 3, 0)
	case FrequencyYearly:
		next = local.AddDate(1, 0, 0)
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, string(f))
	}
	return next.In(anchor.Location()), nil
}

// ParseFrequency accepts any casing of a known frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
	}
	return f, nil
}

// ParseFrequencyFor parses s and checks it is allowed for kind.
func ParseFrequencyFor(kind Kind, s string) (Frequency, error) {
	f, err := ParseFrequency(s)
	if err != nil {
		return "", err
	}
	if !f.IsAllowedFor(kind) {
		return "", fmt.Errorf("frequency %s is not allowed for %s tickets", f, kind)
	}
	return f, nil
}

// FrequenciesFor lists the frequencies allowed for kind.
func FrequenciesFor(kind Kind) []Frequency {
	return append([]Frequency(nil), allowedFrequencies[kind]...)
}
