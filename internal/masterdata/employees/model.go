// Package employees manages the people allowed to order and their spreadsheet import.
package employees

import "github.com/cida-marmitas/marmitas/internal/civil"

// Employee is an ordering employee with its sector and company.
type Employee struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	RaCpf       string      `json:"raCpf"`
	Active      bool        `json:"active"`
	BirthDate   *civil.Date `json:"birthDate,omitempty"`
	SectorID    int64       `json:"sectorId"`
	SectorName  string      `json:"sectorName"`
	CompanyID   int64       `json:"companyId"`
	CompanyName string      `json:"companyName"`
}

// SaveInput creates an employee when ID is zero and updates it otherwise.
type SaveInput struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name" validate:"required,max=120"`
	RaCpf     string      `json:"raCpf" validate:"required,max=20"`
	SectorID  int64       `json:"sectorId" validate:"required,gt=0"`
	BirthDate *civil.Date `json:"birthDate"`
}

// ImportRow is one data line of the employee spreadsheet.
type ImportRow struct {
	Line    int
	Name    string
	RaCpf   string
	Company string
	Sector  string
}

// ImportResult summarizes a finished import.
type ImportResult struct {
	BatchID   string `json:"batchId"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Message   string `json:"message"`
}
