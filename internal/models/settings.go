package models

import "github.com/shopspring/decimal"

// MaxRewardSettings mirrors setting_attribute.maxreward on the backend.
type MaxRewardSettings struct {
	RMPoints         decimal.Decimal `json:"rm_points"`
	PPPoints         decimal.Decimal `json:"pp_points"`
	RPPoints         decimal.Decimal `json:"rp_points"`
	CPPoints         decimal.Decimal `json:"cp_points"`
	CRPoints         decimal.Decimal `json:"cr_points"`
	MaxLevel         int             `json:"max_level"`
	DeductablePoints decimal.Decimal `json:"deductable_points"`
}

// PointsPerCurrencyUnit is the exchange rate used by every calculator.
// Non-positive or missing rm_points falls back to 1.
func (s MaxRewardSettings) PointsPerCurrencyUnit() decimal.Decimal {
	if s.RMPoints.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	return s.RMPoints
}
