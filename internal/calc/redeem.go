// Package calc holds the derived-state calculators behind the purchase and
// voucher screens. Every function here is pure: it takes a draft or a
// selection and returns a new one, never mutating its input.
package calc

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/maxreward-console/internal/models"
)

var one = decimal.NewFromInt(1)

// NormalizeRate returns the points-per-currency-unit rate to use, treating a
// missing or non-positive rate as 1 so nothing ever divides by zero.
func NormalizeRate(ppcu decimal.Decimal) decimal.Decimal {
	if ppcu.LessThanOrEqual(decimal.Zero) {
		return one
	}
	return ppcu
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseAmount reads a free-text amount field. Anything that is not a finite,
// non-negative number reads as 0.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return nonNegative(d)
}

// PointsForAmount converts a currency amount into reward points.
func PointsForAmount(amount, ppcu decimal.Decimal) decimal.Decimal {
	return nonNegative(amount).Mul(NormalizeRate(ppcu))
}

// RecomputePurchase re-derives every computed field of a purchase draft.
// The requested redeem amount is clamped to what the transaction can absorb;
// exceeding it sets RedeemExceeded but is never an error.
func RecomputePurchase(d models.PurchaseDraft) models.PurchaseDraft {
	tx := nonNegative(d.TransactionAmount)
	requested := nonNegative(d.RedeemAmountRequested)
	rate := NormalizeRate(d.PointsPerCurrencyUnit)

	maxAllowed := PointsForAmount(tx, rate)
	clamped := decimal.Min(requested, maxAllowed)
	equivalent := clamped.Div(rate)
	balance := decimal.Max(tx.Sub(equivalent), decimal.Zero)

	return models.PurchaseDraft{
		MerchantRef:                d.MerchantRef,
		TransactionAmount:          tx,
		RedeemAmountRequested:      requested,
		PointsPerCurrencyUnit:      rate,
		MaxRedeemPointsAllowed:     maxAllowed,
		RedeemPointsClamped:        clamped,
		RedeemedCurrencyEquivalent: equivalent,
		BalanceToPay:               balance,
		RedeemExceeded:             requested.GreaterThan(maxAllowed),
	}
}

// NewPurchaseDraft builds and computes a draft from raw screen input.
func NewPurchaseDraft(in models.PurchaseInput, ppcu decimal.Decimal) models.PurchaseDraft {
	return RecomputePurchase(models.PurchaseDraft{
		MerchantRef:           in.MerchantID,
		TransactionAmount:     in.TransactionAmount,
		RedeemAmountRequested: in.RedeemAmount,
		PointsPerCurrencyUnit: ppcu,
	})
}
