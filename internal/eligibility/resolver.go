// Package eligibility decides whether a sector may order right now and which
// service day a menu request resolves to. Everything here is a pure function
// of its inputs; callers load the sector configuration and supply the clock.
package eligibility

import (
	"fmt"
	"strings"
	"time"

	"github.com/cida-marmitas/marmitas/internal/civil"
)

// Window is a configured ordering slot of a sector.
type Window struct {
	ID       int64           `json:"id"`
	SectorID int64           `json:"sectorId"`
	Start    civil.TimeOfDay `json:"start"`
	End      civil.TimeOfDay `json:"end"`
	Label    string          `json:"label,omitempty"`
}

// Decision is the outcome of a permission check.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	// NoWindows is set when the denial comes from an empty configuration.
	NoWindows bool `json:"-"`
}

const (
	reasonNoWindows = "Seu setor não possui horários cadastrados."
	reasonClosed    = "Horário encerrado. Seu setor só pode pedir das: %s."
)

// CheckWindowPermission grants the request when now falls inside at least one
// window, boundaries included. Comparison uses the HH:MM prefix of each value.
// An empty window set always denies.
func CheckWindowPermission(windows []Window, now civil.TimeOfDay) Decision {
	if len(windows) == 0 {
		return Decision{Reason: reasonNoWindows, NoWindows: true}
	}
	current := now.HHMM()
	for _, w := range windows {
		if current >= w.Start.HHMM() && current <= w.End.HHMM() {
			return Decision{Allowed: true}
		}
	}
	return Decision{Reason: fmt.Sprintf(reasonClosed, DescribeWindows(windows))}
}

// DescribeWindows renders every window as "08:00 às 10:00", comma separated.
func DescribeWindows(windows []Window) string {
	ranges := make([]string, 0, len(windows))
	for _, w := range windows {
		ranges = append(ranges, w.Start.HHMM()+" às "+w.End.HHMM())
	}
	return strings.Join(ranges, ", ")
}

// ResolveServiceDate returns today's date when now is before the cutoff and
// tomorrow's otherwise. now must already be in the reference zone.
func ResolveServiceDate(cutoff civil.TimeOfDay, now time.Time) civil.Date {
	if cutoff == "" {
		cutoff = civil.DefaultCutoff
	}
	today := civil.DateOf(now)
	if civil.TimeOfDayOf(now).AtOrAfter(cutoff) {
		return today.AddDays(1)
	}
	return today
}
