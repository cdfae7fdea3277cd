package models

import "github.com/shopspring/decimal"

// Category classifies what an installment purchase pays for.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFurniture   Category = "furniture"
	CategoryTravel      Category = "travel"
	CategoryEducation   Category = "education"
	CategoryHealth      Category = "health"
	CategoryGroceries   Category = "groceries"
	CategoryUtilities   Category = "utilities"
	CategoryOther       Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryFurniture,
		CategoryTravel, CategoryEducation, CategoryHealth,
		CategoryGroceries, CategoryUtilities, CategoryOther:
		return true
	}
	return false
}

// PurchaseRequest describes an installment purchase to evaluate.
type PurchaseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	NumPayments int             `json:"num_payments"`
	AnnualRate  decimal.Decimal `json:"annual_rate"` // percent, e.g. 14.5
}
