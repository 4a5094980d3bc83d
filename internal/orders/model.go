package orders

import (
	"time"

	"github.com/cida-marmitas/marmitas/internal/civil"
	"github.com/cida-marmitas/marmitas/internal/masterdata/catalog"
	"github.com/cida-marmitas/marmitas/internal/masterdata/menus"
)

// Order is one employee's meal for one service menu.
type Order struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	MenuID     int64     `json:"menuId"`
	SizeID     int64     `json:"sizeId"`
	Note       string    `json:"note"`
	ExtraIDs   []int64   `json:"extraIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

// InitialData is what the ordering screen needs once ordering is allowed.
type InitialData struct {
	ServiceDate civil.Date      `json:"serviceDate"`
	Menu        menus.Menu      `json:"menu"`
	Sizes       []catalog.Size  `json:"sizes"`
	Extras      []catalog.Extra `json:"extras"`
}

// SubmitRequest is an employee's order. EmployeeID comes from the caller's
// token; MenuID is the menu the client displayed, if any.
type SubmitRequest struct {
	EmployeeID int64   `json:"-"`
	MenuID     int64   `json:"menuId"`
	SizeID     int64   `json:"sizeId" validate:"required,gt=0"`
	Note       string  `json:"note" validate:"max=500"`
	ExtraIDs   []int64 `json:"extraIds" validate:"dive,gt=0"`
}

// SubmitResult identifies the created order.
type SubmitResult struct {
	OrderID     int64      `json:"id"`
	ServiceDate civil.Date `json:"serviceDate"`
	Message     string     `json:"message"`
}

// UpdateRequest replaces size, note and extras of an existing order.
type UpdateRequest struct {
	SizeID   int64   `json:"sizeId" validate:"required,gt=0"`
	Note     string  `json:"note" validate:"max=500"`
	ExtraIDs []int64 `json:"extraIds" validate:"dive,gt=0"`
}

// ManualRequest is an order placed by staff on behalf of an employee.
type ManualRequest struct {
	EmployeeID int64   `json:"employeeId" validate:"required,gt=0"`
	SizeID     int64   `json:"sizeId" validate:"required,gt=0"`
	Note       string  `json:"note" validate:"max=500"`
	ExtraIDs   []int64 `json:"extraIds" validate:"dive,gt=0"`
}

// DayOrder is a row of the kitchen's daily order list.
type DayOrder struct {
	OrderID      int64     `json:"orderId"`
	CreatedAt    time.Time `json:"createdAt"`
	Note         string    `json:"note"`
	SizeName     string    `json:"sizeName"`
	EmployeeName string    `json:"employeeName"`
	SectorName   string    `json:"sectorName"`
	CompanyID    int64     `json:"companyId"`
	CompanyName  string    `json:"companyName"`
	IsBirthday   bool      `json:"isBirthday"`
	Extras       string    `json:"extras"`
}

// SummaryLine counts orders of one size or extra.
type SummaryLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ProductionSummary tells the kitchen how much to prepare for a date.
type ProductionSummary struct {
	Date   civil.Date    `json:"date"`
	Sizes  []SummaryLine `json:"sizes"`
	Extras []SummaryLine `json:"extras"`
}
