package models

import "github.com/shopspring/decimal"

// PurchaseInput is what the purchase screen collects on every keystroke.
type PurchaseInput struct {
	MemberID          string          `json:"member_id"`
	MerchantID        string          `json:"merchant_id"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	RedeemAmount      decimal.Decimal `json:"redeem_amount"`
}

// PurchaseDraft is a purchase being typed in by an admin. It lives only for the
// duration of the screen and is never persisted.
type PurchaseDraft struct {
	MerchantRef           string          `json:"merchant_ref"`
	TransactionAmount     decimal.Decimal `json:"transaction_amount"`
	RedeemAmountRequested decimal.Decimal `json:"redeem_amount_requested"`
	PointsPerCurrencyUnit decimal.Decimal `json:"points_per_currency_unit"`

	// derived
	MaxRedeemPointsAllowed     decimal.Decimal `json:"max_redeem_points_allowed"`
	RedeemPointsClamped        decimal.Decimal `json:"redeem_points_clamped"`
	RedeemedCurrencyEquivalent decimal.Decimal `json:"redeemed_currency_equivalent"`
	BalanceToPay               decimal.Decimal `json:"balance_to_pay"`
	RedeemExceeded             bool            `json:"redeem_exceeded"`
}
