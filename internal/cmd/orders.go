package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

var ordersCmd = &cobra.Command{
	Use:     "orders",
	Aliases: []string{"order"},
	Short:   "Inspect and manage orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	Example: `  cleanaid orders list --status pending
  cleanaid orders list --business 64f0c2 --from 2024-01-01 --to 2024-01-31`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dates, err := dateRange(cmd)
		if err != nil {
			return err
		}
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			business, _ := cmd.Flags().GetString("business")
			customer, _ := cmd.Flags().GetString("customer")
			f := &client.OrderFilter{
				ListFilter: listFilter(cmd),
				DateRange:  dates,
				Status:     statusFlag(cmd),
				BusinessID: business,
				CustomerID: customer,
			}
			env, err := c.Queries().OrderList(ctx, f)
			return printList(cc, env, err, orderHeaders, orderRow)
		})
	},
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().OrderDetail(ctx, args[0])
			return printData(cc, env, err)
		})
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Move an order to another status",
	Args:  cobra.ExactArgs(2),
	ValidArgs: []string{
		types.OrderStatusPending, types.OrderStatusAccepted, types.OrderStatusPickedUp,
		types.OrderStatusInProgress, types.OrderStatusReady, types.OrderStatusDelivered,
		types.OrderStatusCompleted, types.OrderStatusCancelled,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Mutations().UpdateOrderStatus(ctx, args[0], args[1])
			return printDone(cc, env, err, fmt.Sprintf("Order %s is now %s", args[0], args[1]))
		})
	},
}

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			if !confirmed(cmd, cc, fmt.Sprintf("Cancel order %s?", args[0])) {
				return nil
			}
			reason, _ := cmd.Flags().GetString("reason")
			env, err := c.Mutations().CancelOrder(ctx, args[0], reason)
			return printDone(cc, env, err, fmt.Sprintf("Order %s cancelled", args[0]))
		})
	},
}

var ordersStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show order counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().OrderStats(ctx)
			return printData(cc, env, err)
		})
	},
}

func init() {
	addListFlags(ordersListCmd)
	addDateFlags(ordersListCmd)
	ordersListCmd.Flags().String("business", "", "filter by business id")
	ordersListCmd.Flags().String("customer", "", "filter by customer id")
	ordersCancelCmd.Flags().String("reason", "", "cancellation reason")
	addYesFlag(ordersCancelCmd)

	ordersCmd.AddCommand(ordersListCmd, ordersGetCmd, ordersStatusCmd, ordersCancelCmd, ordersStatsCmd)
	rootCmd.AddCommand(ordersCmd)
}
