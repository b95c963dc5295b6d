package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

var payoutsCmd = &cobra.Command{
	Use:     "payouts",
	Aliases: []string{"payout"},
	Short:   "Inspect and process business payouts",
}

var payoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dates, err := dateRange(cmd)
		if err != nil {
			return err
		}
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			business, _ := cmd.Flags().GetString("business")
			f := &client.PayoutFilter{ListFilter: listFilter(cmd), DateRange: dates, Status: statusFlag(cmd), BusinessID: business}
			env, err := c.Queries().PayoutList(ctx, f)
			return printList(cc, env, err, payoutHeaders, payoutRow)
		})
	},
}

var payoutsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one payout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().PayoutDetail(ctx, args[0])
			return printData(cc, env, err)
		})
	},
}

var payoutsStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change a payout's status",
	Args:  cobra.ExactArgs(2),
	ValidArgs: []string{
		types.PayoutStatusPending, types.PayoutStatusProcessing, types.PayoutStatusPaid,
		types.PayoutStatusFailed, types.PayoutStatusOnHold,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Mutations().UpdatePayoutStatus(ctx, args[0], args[1])
			return printDone(cc, env, err, fmt.Sprintf("Payout %s is now %s", args[0], args[1]))
		})
	},
}

var payoutsProcessCmd = &cobra.Command{
	Use:   "process <id>",
	Short: "Send a payout to the business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			if !confirmed(cmd, cc, fmt.Sprintf("Process payout %s?", args[0])) {
				return nil
			}
			env, err := c.Mutations().ProcessPayout(ctx, args[0])
			return printDone(cc, env, err, fmt.Sprintf("Payout %s processed", args[0]))
		})
	},
}

var payoutsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show payout totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().PayoutStats(ctx)
			return printData(cc, env, err)
		})
	},
}

func init() {
	addListFlags(payoutsListCmd)
	addDateFlags(payoutsListCmd)
	payoutsListCmd.Flags().String("business", "", "filter by business id")
	addYesFlag(payoutsProcessCmd)

	payoutsCmd.AddCommand(payoutsListCmd, payoutsGetCmd, payoutsStatusCmd, payoutsProcessCmd, payoutsStatsCmd)
	rootCmd.AddCommand(payoutsCmd)
}
