package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

var paymentsCmd = &cobra.Command{
	Use:     "payments",
	Aliases: []string{"payment"},
	Short:   "Inspect payments and issue refunds",
}

var paymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dates, err := dateRange(cmd)
		if err != nil {
			return err
		}
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			method, _ := cmd.Flags().GetString("method")
			f := &client.PaymentFilter{ListFilter: listFilter(cmd), DateRange: dates, Status: statusFlag(cmd), Method: method}
			env, err := c.Queries().PaymentList(ctx, f)
			return printList(cc, env, err, paymentHeaders, paymentRow)
		})
	},
}

var paymentsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one payment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().PaymentDetail(ctx, args[0])
			return printData(cc, env, err)
		})
	},
}

var paymentsRefundCmd = &cobra.Command{
	Use:   "refund <id>",
	Short: "Refund a payment",
	Long:  "Refund a payment in full, or partially with --amount.",
	Example: `  cleanaid payments refund 64f0c2 --reason "damaged item"
  cleanaid payments refund 64f0c2 --amount 12.50 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			if !confirmed(cmd, cc, fmt.Sprintf("Refund payment %s?", args[0])) {
				return nil
			}
			amount, _ := cmd.Flags().GetFloat64("amount")
			reason, _ := cmd.Flags().GetString("reason")
			env, err := c.Mutations().RefundPayment(ctx, args[0], types.RefundRequest{Amount: amount, Reason: reason})
			return printDone(cc, env, err, fmt.Sprintf("Payment %s refunded", args[0]))
		})
	},
}

var paymentsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show payment totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().PaymentStats(ctx)
			return printData(cc, env, err)
		})
	},
}

func init() {
	addListFlags(paymentsListCmd)
	addDateFlags(paymentsListCmd)
	paymentsListCmd.Flags().String("method", "", "filter by payment method")
	paymentsRefundCmd.Flags().Float64("amount", 0, "partial refund amount (default full)")
	paymentsRefundCmd.Flags().String("reason", "", "refund reason")
	addYesFlag(paymentsRefundCmd)

	paymentsCmd.AddCommand(paymentsListCmd, paymentsGetCmd, paymentsRefundCmd, paymentsStatsCmd)
	rootCmd.AddCommand(paymentsCmd)
}
