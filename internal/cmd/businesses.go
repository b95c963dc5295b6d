package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

var businessesCmd = &cobra.Command{
	Use:     "businesses",
	Aliases: []string{"business", "biz"},
	Short:   "Review and manage laundry businesses",
}

var businessesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List businesses",
	Example: `  cleanaid businesses list --status pending`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			city, _ := cmd.Flags().GetString("city")
			f := &client.BusinessFilter{ListFilter: listFilter(cmd), Status: statusFlag(cmd), City: city}
			env, err := c.Queries().BusinessList(ctx, f)
			return printList(cc, env, err, businessHeaders, businessRow)
		})
	},
}

var businessesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().BusinessDetail(ctx, args[0])
			return printData(cc, env, err)
		})
	},
}

var businessesStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Approve, reject or suspend a business",
	Example: `  cleanaid businesses status 64f0c2 approved
  cleanaid businesses status 64f0c2 rejected --reason "missing licence"`,
	Args: cobra.ExactArgs(2),
	ValidArgs: []string{
		types.BusinessStatusPending, types.BusinessStatusApproved,
		types.BusinessStatusRejected, types.BusinessStatusSuspended,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			reason, _ := cmd.Flags().GetString("reason")
			env, err := c.Mutations().UpdateBusinessStatus(ctx, args[0], args[1], reason)
			return printDone(cc, env, err, fmt.Sprintf("Business %s is now %s", args[0], args[1]))
		})
	},
}

var businessesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			if !confirmed(cmd, cc, fmt.Sprintf("Delete business %s?", args[0])) {
				return nil
			}
			env, err := c.Mutations().DeleteBusiness(ctx, args[0])
			return printDone(cc, env, err, fmt.Sprintf("Business %s deleted", args[0]))
		})
	},
}

var businessesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show business counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().BusinessStats(ctx)
			return printData(cc, env, err)
		})
	},
}

func init() {
	addListFlags(businessesListCmd)
	businessesListCmd.Flags().String("city", "", "filter by city")
	businessesStatusCmd.Flags().String("reason", "", "reason sent with the status change")
	addYesFlag(businessesDeleteCmd)

	businessesCmd.AddCommand(businessesListCmd, businessesGetCmd, businessesStatusCmd, businessesDeleteCmd, businessesStatsCmd)
	rootCmd.AddCommand(businessesCmd)
}
