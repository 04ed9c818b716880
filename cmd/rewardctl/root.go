package main

import "github.com/spf13/cobra"

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rewardctl",
		Short:         "Preview maxreward calculations and browse admin list screens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(redeemCmd())
	cmd.AddCommand(voucherCmd())
	cmd.AddCommand(listCmd())
	return cmd
}
