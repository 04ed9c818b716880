package calc

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/maxreward-console/internal/models"
)

// Toggle flips membership of a denomination in the selection. A selected id is
// dropped entirely (its quantity is forgotten); an absent one is appended with
// quantity 1.
func Toggle(sel []models.Denomination, d models.Denomination) []models.Denomination {
	out := make([]models.Denomination, 0, len(sel)+1)
	removed := false
	for _, s := range sel {
		if s.ID == d.ID {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if !removed {
		d.Quantity = 1
		out = append(out, d)
	}
	return out
}

// SetQuantity updates the quantity of a selected denomination, clamped to at
// least 1. Unknown ids leave the selection unchanged.
func SetQuantity(sel []models.Denomination, id, qty int) []models.Denomination {
	if qty < 1 {
		qty = 1
	}
	out := make([]models.Denomination, len(sel))
	copy(out, sel)
	for i := range out {
		if out[i].ID == id {
			out[i].Quantity = qty
		}
	}
	return out
}

// ParseQuantity reads a quantity field; non-numeric or non-positive input is 1.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// RecomputeVoucher sums a selection. An empty selection yields zero totals.
func RecomputeVoucher(sel []models.Denomination, ppcu decimal.Decimal) models.VoucherTotals {
	total := decimal.Zero
	qty := 0
	for _, d := range sel {
		q := d.Quantity
		if q < 1 {
			q = 1
		}
		total = total.Add(nonNegative(d.UnitValue).Mul(decimal.NewFromInt(int64(q))))
		qty += q
	}
	return models.VoucherTotals{
		TotalAmount:           total,
		TotalAmountWithPoints: total.Mul(NormalizeRate(ppcu)),
		TotalQuantity:         qty,
	}
}

// RecomputeVoucherDraft refreshes the totals embedded in a draft.
func RecomputeVoucherDraft(d models.VoucherDraft) models.VoucherDraft {
	d.PointsPerCurrencyUnit = NormalizeRate(d.PointsPerCurrencyUnit)
	d.VoucherTotals = RecomputeVoucher(d.Denominations, d.PointsPerCurrencyUnit)
	return d
}
