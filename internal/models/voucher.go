package models

import "github.com/shopspring/decimal"

type VoucherType string

const (
	VoucherTypeMax   VoucherType = "max"
	VoucherTypeRefer VoucherType = "refer"
)

func (t VoucherType) Valid() bool {
	return t == VoucherTypeMax || t == VoucherTypeRefer
}

type PaymentMethod string

const (
	PaymentManual PaymentMethod = "manual"
	PaymentOnline PaymentMethod = "online"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentManual || p == PaymentOnline
}

// Denomination is one selected voucher face value. Quantity is always >= 1
// once it is part of a selection.
type Denomination struct {
	ID        int             `json:"id"`
	UnitValue decimal.Decimal `json:"value"`
	Quantity  int             `json:"quantity"`
}

type VoucherTotals struct {
	TotalAmount           decimal.Decimal `json:"total_amount"`
	TotalAmountWithPoints decimal.Decimal `json:"total_amount_with_points"`
	TotalQuantity         int             `json:"total_quantity"`
}

type VoucherDraft struct {
	MemberID              string          `json:"member_id"`
	VoucherType           VoucherType     `json:"voucher_type"`
	PaymentMethod         PaymentMethod   `json:"payment_method"`
	Denominations         []Denomination  `json:"denominations"`
	PointsPerCurrencyUnit decimal.Decimal `json:"points_per_currency_unit"`
	VoucherTotals
}

// Attachment is a manual payment document forwarded to the backend as-is.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}
