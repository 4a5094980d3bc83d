package sectors

import (
	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/eligibility"
)

// Sector groups employees of a company that share ordering windows and a cutoff.
type Sector struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	CompanyID        int64           `json:"companyId"`
	CompanyName      string          `json:"companyName"`
	VisibilityCutoff civil.TimeOfDay `json:"visibilityCutoff"`
}

// WithWindows is a sector and its configured windows.
type WithWindows struct {
	Sector
	Windows []eligibility.Window `json:"windows"`
}

// SaveInput creates a sector when ID is zero and updates it otherwise.
// An empty VisibilityCutoff means the default cutoff.
type SaveInput struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	CompanyID        int64  `json:"companyId"`
	VisibilityCutoff string `json:"visibilityCutoff"`
}

// WindowInput adds an ordering window to a sector.
type WindowInput struct {
	SectorID int64  `json:"sectorId" validate:"required,gt=0"`
	Start    string `json:"start" validate:"required"`
	End      string `json:"end" validate:"required"`
	Label    string `json:"label" validate:"max=60"`
}

// windowRow is one row of the sectors LEFT JOIN order_windows listing.
type windowRow struct {
	Sector   Sector
	WindowID *int64
	Start    *string
	End      *string
	Label    *string
}

// groupWindows folds joined rows into sectors keeping the row order.
func groupWindows(rows []windowRow) []WithWindows {
	index := make(map[int64]int, len(rows))
	out := make([]WithWindows, 0)
	for _, row := range rows {
		pos, ok := index[row.Sector.ID]
		if !ok {
			pos = len(out)
			index[row.Sector.ID] = pos
			out = append(out, WithWindows{Sector: row.Sector, Windows: []eligibility.Window{}})
		}
		if row.WindowID == nil {
			continue
		}
		w := eligibility.Window{ID: *row.WindowID, SectorID: row.Sector.ID}
		if row.Start != nil {
			w.Start = civil.TimeOfDay(*row.Start)
		}
		if row.End != nil {
			w.End = civil.TimeOfDay(*row.End)
		}
		if row.Label != nil {
			w.Label = *row.Label
		}
		out[pos].Windows = append(out[pos].Windows, w)
	}
	return out
}
