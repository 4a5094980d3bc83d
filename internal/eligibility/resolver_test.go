package eligibility

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cida-marmitas/marmitas/internal/civil"
)

func window(start, end string) Window {
	return Window{Start: civil.MustTimeOfDay(start), End: civil.MustTimeOfDay(end)}
}

func TestEmptyWindowSetAlwaysDenies(t *testing.T) {
	for h := 0; h < 24; h++ {
		now := civil.MustTimeOfDay(fmt.Sprintf("%02d:30", h))
		d := CheckWindowPermission(nil, now)
		assert.False(t, d.Allowed, now)
		assert.True(t, d.NoWindows)
		assert.Contains(t, d.Reason, "não possui horários")
	}
}

func TestPermissionBoundariesAreInclusive(t *testing.T) {
	windows := []Window{window("08:00", "10:00")}

	cases := []struct {
		now  string
		want bool
	}{
		{"07:59:59", false},
		{"08:00:00", true},
		{"09:15:00", true},
		{"10:00:00", true},
		{"10:00:59", true},
		{"10:01:00", false},
	}
	for _, tc := range cases {
		got := CheckWindowPermission(windows, civil.MustTimeOfDay(tc.now))
		assert.Equal(t, tc.want, got.Allowed, tc.now)
	}
}

func TestPermissionIsLogicalOrAcrossWindows(t *testing.T) {
	windows := []Window{window("08:00", "10:00"), window("09:30", "09:45"), window("13:00", "14:00")}

	assert.True(t, CheckWindowPermission(windows, "09:40:00").Allowed)
	assert.True(t, CheckWindowPermission(windows, "13:00:00").Allowed)
	assert.False(t, CheckWindowPermission(windows, "11:00:00").Allowed)
}

func TestDeniedReasonListsEveryWindow(t *testing.T) {
	windows := []Window{window("08:00", "10:00"), window("13:00", "14:00")}

	d := CheckWindowPermission(windows, civil.MustTimeOfDay("12:30"))

	assert.False(t, d.Allowed)
	assert.False(t, d.NoWindows)
	assert.Contains(t, d.Reason, "08:00 às 10:00")
	assert.Contains(t, d.Reason, "13:00 às 14:00")
}

func TestPermissionMatchesBruteForce(t *testing.T) {
	windows := []Window{window("06:15", "07:00"), window("11:00", "11:30")}
	for m := 0; m < 24*60; m++ {
		hhmm := fmt.Sprintf("%02d:%02d", m/60, m%60)
		want := false
		for _, w := range windows {
			if w.Start.HHMM() <= hhmm && hhmm <= w.End.HHMM() {
				want = true
			}
		}
		got := CheckWindowPermission(windows, civil.MustTimeOfDay(hhmm))
		assert.Equal(t, want, got.Allowed, hhmm)
	}
}

func TestResolveServiceDateCutoff(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	cutoff := civil.MustTimeOfDay("17:00:00")

	before := time.Date(2025, 5, 20, 16, 59, 59, 0, loc)
	at := time.Date(2025, 5, 20, 17, 0, 0, 0, loc)

	assert.Equal(t, civil.Date{Year: 2025, Month: time.May, Day: 20}, ResolveServiceDate(cutoff, before))
	assert.Equal(t, civil.Date{Year: 2025, Month: time.May, Day: 21}, ResolveServiceDate(cutoff, at))
	assert.Equal(t, ResolveServiceDate(cutoff, at), ResolveServiceDate(cutoff, at))
}

func TestResolveServiceDateRollsOverMonthAndYear(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	cutoff := civil.MustTimeOfDay("17:00:00")

	endOfMonth := time.Date(2025, 4, 30, 22, 0, 0, 0, loc)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.May, Day: 1}, ResolveServiceDate(cutoff, endOfMonth))

	endOfYear := time.Date(2025, 12, 31, 22, 0, 0, 0, loc)
	assert.Equal(t, civil.Date{Year: 2026, Month: time.January, Day: 1}, ResolveServiceDate(cutoff, endOfYear))
}

func TestResolveServiceDateDefaultCutoff(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	late := time.Date(2025, 5, 20, 23, 59, 58, 0, loc)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.May, Day: 20}, ResolveServiceDate("", late))

	last := time.Date(2025, 5, 20, 23, 59, 59, 0, loc)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.May, Day: 21}, ResolveServiceDate("", last))
}
