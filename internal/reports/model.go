// Package reports builds the billing rollup of orders by company, sector and
// service day, and renders it for the screen and as a spreadsheet.
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/cida-marmitas/marmitas/internal/civil"
)

// Row is one order as read for the report. Rows arrive sorted by company
// name, sector name, service date and employee name.
type Row struct {
	OrderID      int64
	ServiceDate  civil.Date
	EmployeeName string
	CompanyID    int64
	CompanyName  string
	SectorID     int64
	SectorName   string
	SizeName     string
	Price        decimal.Decimal
	Extras       string
}

// Line is an order leaf of the tree.
type Line struct {
	OrderID  int64           `json:"orderId"`
	Employee string          `json:"employee"`
	Size     string          `json:"size"`
	Extras   string          `json:"extras"`
	Price    decimal.Decimal `json:"price"`
}

// Totals accumulates value and count of the lines below a node.
type Totals struct {
	TotalValue decimal.Decimal `json:"totalValue"`
	TotalCount int             `json:"totalCount"`
}

func (t *Totals) add(price decimal.Decimal) {
	t.TotalValue = t.TotalValue.Add(price)
	t.TotalCount++
}

// DayNode groups a sector's orders for one service date.
type DayNode struct {
	Date  civil.Date `json:"date"`
	Label string     `json:"label"`
	Totals
	Orders []Line `json:"orders"`
}

// SectorNode groups a company's days by sector.
type SectorNode struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Totals
	Days []*DayNode `json:"days"`
}

// CompanyNode is the root of the report tree, one per company.
type CompanyNode struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Totals
	Sectors []*SectorNode `json:"sectors"`
}

// Filters narrow the report. Nil fields are not applied.
type Filters struct {
	CompanyID *int64      `json:"companyId,omitempty"`
	SectorID  *int64      `json:"sectorId,omitempty"`
	DateFrom  *civil.Date `json:"dateFrom,omitempty"`
	DateTo    *civil.Date `json:"dateTo,omitempty"`
}
