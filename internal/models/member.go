package models

import "github.com/shopspring/decimal"

// Member is the slice of a member record the purchase screen needs.
type Member struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	AvailablePoints decimal.Decimal `json:"available_points"`
}
