package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Cheertaboi/maxreward-console/internal/calc"
	"github.com/Cheertaboi/maxreward-console/internal/models"
)

// parseDenom reads ID:VALUE[:QTY]. A missing or bad quantity is 1.
func parseDenom(s string) (models.Denomination, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return models.Denomination{}, fmt.Errorf("invalid denomination %q, want ID:VALUE[:QTY]", s)
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return models.Denomination{}, fmt.Errorf("invalid denomination id %q", parts[0])
	}
	value, err := decimal.NewFromString(parts[1])
	if err != nil || value.IsNegative() {
		return models.Denomination{}, fmt.Errorf("invalid denomination value %q", parts[1])
	}
	qty := 1
	if len(parts) == 3 {
		qty = calc.ParseQuantity(parts[2])
	}
	return models.Denomination{ID: id, UnitValue: value, Quantity: qty}, nil
}

func voucherCmd() *cobra.Command {
	var (
		denoms []string
		ppcu   string
	)
	cmd := &cobra.Command{
		Use:   "voucher",
		Short: "Total a voucher selection in currency and points",
		Example: `  # two 10.00 vouchers and one 50.00 voucher at 5 points per unit
  rewardctl voucher --denom 1:10:2 --denom 2:50 --ppcu 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := []models.Denomination{}
			for _, s := range denoms {
				d, err := parseDenom(s)
				if err != nil {
					return err
				}
				sel = calc.Toggle(sel, d)
				sel = calc.SetQuantity(sel, d.ID, d.Quantity)
			}
			totals := calc.RecomputeVoucher(sel, calc.ParseAmount(ppcu))

			for _, d := range sel {
				cmd.Printf("#%d  %s x %d\n", d.ID, d.UnitValue.StringFixed(2), d.Quantity)
			}
			cmd.Printf("vouchers:      %d\n", totals.TotalQuantity)
			cmd.Printf("total amount:  %s\n", totals.TotalAmount.StringFixed(2))
			cmd.Printf("total points:  %s\n", totals.TotalAmountWithPoints)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&denoms, "denom", nil, "denomination as ID:VALUE[:QTY]; repeating an ID deselects it")
	cmd.Flags().StringVar(&ppcu, "ppcu", "1", "points per currency unit")
	return cmd
}
