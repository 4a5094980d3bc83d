// Package menus manages the single menu published for each service date.
package menus

import (
	"time"

	"github.com/cida-marmitas/marmitas/internal/civil"
)

// Menu is the menu of a service date.
type Menu struct {
	ID          int64      `json:"id"`
	ServiceDate civil.Date `json:"serviceDate"`
	MainDish    string     `json:"mainDish"`
	SideDishes  string     `json:"sideDishes"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// SaveInput publishes or replaces the menu of a date.
type SaveInput struct {
	ServiceDate civil.Date `json:"serviceDate"`
	MainDish    string     `json:"mainDish" validate:"required,max=200"`
	SideDishes  string     `json:"sideDishes" validate:"max=500"`
}
