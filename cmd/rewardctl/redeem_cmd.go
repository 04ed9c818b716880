package main

import (
	"github.com/spf13/cobra"

	"github.com/Cheertaboi/maxreward-console/internal/calc"
	"github.com/Cheertaboi/maxreward-console/internal/models"
)

func redeemCmd() *cobra.Command {
	var amount, redeem, ppcu string
	cmd := &cobra.Command{
		Use:   "redeem",
		Short: "Show how much of a purchase can be paid with points",
		Example: `  # 100.00 purchase, member wants to spend 500 points at 2 points per unit
  rewardctl redeem --amount 100 --redeem 500 --ppcu 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := calc.NewPurchaseDraft(models.PurchaseInput{
				TransactionAmount: calc.ParseAmount(amount),
				RedeemAmount:      calc.ParseAmount(redeem),
			}, calc.ParseAmount(ppcu))

			cmd.Printf("transaction amount:   %s\n", d.TransactionAmount.StringFixed(2))
			cmd.Printf("points per unit:      %s\n", d.PointsPerCurrencyUnit)
			cmd.Printf("max redeem points:    %s\n", d.MaxRedeemPointsAllowed)
			cmd.Printf("redeem points:        %s\n", d.RedeemPointsClamped)
			cmd.Printf("currency equivalent:  %s\n", d.RedeemedCurrencyEquivalent.StringFixed(2))
			cmd.Printf("balance to pay:       %s\n", d.BalanceToPay.StringFixed(2))
			if d.RedeemExceeded {
				cmd.Printf("requested %s points exceeds the maximum; clamped\n", d.RedeemAmountRequested)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "0", "transaction amount")
	cmd.Flags().StringVar(&redeem, "redeem", "0", "points the member wants to redeem")
	cmd.Flags().StringVar(&ppcu, "ppcu", "1", "points per currency unit")
	return cmd
}
