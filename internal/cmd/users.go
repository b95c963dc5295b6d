package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Manage marketplace users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Example: `  cleanaid users list --status active --limit 50
  cleanaid users list --search ada -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			role, _ := cmd.Flags().GetString("role")
			f := &client.UserFilter{ListFilter: listFilter(cmd), Status: statusFlag(cmd), Role: role}
			if cmd.Flags().Changed("verified") {
				v, _ := cmd.Flags().GetBool("verified")
				f.IsVerified = &v
			}
			env, err := c.Queries().UserList(ctx, f)
			return printList(cc, env, err, userHeaders, userRow)
		})
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().UserDetail(ctx, args[0])
			return printData(cc, env, err)
		})
	},
}

var usersStatusCmd = &cobra.Command{
	Use:       "status <id> <status>",
	Short:     "Change a user's status",
	Example:   `  cleanaid users status 64f0c2 suspended`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{types.UserStatusActive, types.UserStatusInactive, types.UserStatusSuspended},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Mutations().UpdateUserStatus(ctx, args[0], args[1])
			return printDone(cc, env, err, fmt.Sprintf("User %s is now %s", args[0], args[1]))
		})
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			if !confirmed(cmd, cc, fmt.Sprintf("Delete user %s?", args[0])) {
				return nil
			}
			env, err := c.Mutations().DeleteUser(ctx, args[0])
			return printDone(cc, env, err, fmt.Sprintf("User %s deleted", args[0]))
		})
	},
}

var usersStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show user counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().UserStats(ctx)
			return printData(cc, env, err)
		})
	},
}

func init() {
	addListFlags(usersListCmd)
	usersListCmd.Flags().String("role", "", "filter by role")
	usersListCmd.Flags().Bool("verified", false, "only verified (or, with =false, unverified) users")
	addYesFlag(usersDeleteCmd)

	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersStatusCmd, usersDeleteCmd, usersStatsCmd)
	rootCmd.AddCommand(usersCmd)
}
