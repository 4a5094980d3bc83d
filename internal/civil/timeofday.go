// Package civil holds wall-clock helpers used by ordering rules: time-of-day
// values, calendar dates and an injectable clock bound to the service time zone.
package civil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultCutoff is the visibility cutoff applied when a sector has none.
const DefaultCutoff TimeOfDay = "23:59:59"

// TimeOfDay is a canonical, zero-padded "HH:MM:SS" value.
//
// Comparisons are lexical on purpose. They are only correct because every
// value goes through ParseTimeOfDay and therefore has a fixed width.
type TimeOfDay string

// ParseTimeOfDay accepts "H:MM", "HH:MM" or "HH:MM:SS" and returns the
// canonical form.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("civil: invalid time of day %q", raw)
	}
	limits := []int{23, 59, 59}
	values := []int{0, 0, 0}
	for i, part := range parts {
		if part == "" || len(part) > 2 {
			return "", fmt.Errorf("civil: invalid time of day %q", raw)
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > limits[i] {
			return "", fmt.Errorf("civil: invalid time of day %q", raw)
		}
		values[i] = n
	}
	return TimeOfDay(fmt.Sprintf("%02d:%02d:%02d", values[0], values[1], values[2])), nil
}

// MustTimeOfDay is ParseTimeOfDay for literals; it panics on bad input.
func MustTimeOfDay(raw string) TimeOfDay {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayOf extracts the wall-clock time of t in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Format("15:04:05"))
}

// HHMM returns the hour and minute part, e.g. "08:30".
func (t TimeOfDay) HHMM() string {
	s := string(t)
	if len(s) < 5 {
		return s
	}
	return s[:5]
}

// String implements fmt.Stringer.
func (t TimeOfDay) String() string { return string(t) }

// Before reports whether t sorts strictly before o.
func (t TimeOfDay) Before(o TimeOfDay) bool { return t < o }

// AtOrAfter reports whether t is equal to or later than o.
func (t TimeOfDay) AtOrAfter(o TimeOfDay) bool { return t >= o }
