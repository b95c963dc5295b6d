package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
)

var adminsCmd = &cobra.Command{
	Use:     "admins",
	Aliases: []string{"admin"},
	Short:   "List dashboard administrators",
}

var adminsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List admins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			role, _ := cmd.Flags().GetString("role")
			f := &client.AdminFilter{ListFilter: listFilter(cmd), Status: statusFlag(cmd), Role: role}
			env, err := c.Queries().AdminList(ctx, f)
			return printList(cc, env, err, adminHeaders, adminRow)
		})
	},
}

var adminsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one admin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().AdminDetail(ctx, args[0])
			return printData(cc, env, err)
		})
	},
}

var adminsMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the signed-in admin's profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().Me(ctx)
			return printData(cc, env, err)
		})
	},
}

func init() {
	addListFlags(adminsListCmd)
	adminsListCmd.Flags().String("role", "", "filter by role")

	adminsCmd.AddCommand(adminsListCmd, adminsGetCmd, adminsMeCmd)
	rootCmd.AddCommand(adminsCmd)
}
