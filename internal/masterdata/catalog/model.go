// Package catalog manages the sizes and extras offered on the ordering screen.
package catalog

import "github.com/shopspring/decimal"

// Size is a meal size option with its price.
type Size struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Active bool            `json:"active"`
}

// Extra is an optional add-on or substitution.
type Extra struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	DisplayOrder int    `json:"displayOrder"`
	Active       bool   `json:"active"`
}

// SizeInput creates a size when ID is zero and updates it otherwise.
type SizeInput struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name" validate:"required,max=60"`
	Price decimal.Decimal `json:"price"`
}

// ExtraInput creates an extra when ID is zero and updates it otherwise.
type ExtraInput struct {
	ID           int64  `json:"id"`
	Name         string `json:"name" validate:"required,max=80"`
	Kind         string `json:"kind" validate:"required,max=30"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
}
