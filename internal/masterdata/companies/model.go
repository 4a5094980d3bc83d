package companies

import (
	"time"
)

// Company is a client company whose employees order meals.
type Company struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	WorksWeekends bool      `json:"worksWeekends"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Option is the id/name pair used by selects.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SaveInput creates a company when ID is zero and updates it otherwise.
type SaveInput struct {
	ID            int64  `json:"id"`
	Name          string `json:"name" validate:"required,max=120"`
	WorksWeekends bool   `json:"worksWeekends"`
}
