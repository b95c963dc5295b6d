package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

var broadcastsCmd = &cobra.Command{
	Use:     "broadcasts",
	Aliases: []string{"broadcast"},
	Short:   "Compose and send broadcast notifications",
}

var broadcastsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List broadcasts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			audience, _ := cmd.Flags().GetString("audience")
			f := &client.BroadcastFilter{ListFilter: listFilter(cmd), Status: statusFlag(cmd), Audience: audience}
			env, err := c.Queries().BroadcastList(ctx, f)
			return printList(cc, env, err, broadcastHeaders, broadcastRow)
		})
	},
}

var broadcastsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one broadcast",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().BroadcastDetail(ctx, args[0])
			return printData(cc, env, err)
		})
	},
}

var broadcastsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a draft or scheduled broadcast",
	Example: `  cleanaid broadcasts create --title "Holiday hours" --message "Closed on the 25th" --audience customers
  cleanaid broadcasts create --title Promo --message "20% off" --channel push --channel email --schedule 2024-12-01T09:00:00Z`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, err := broadcastInput(cmd)
		if err != nil {
			return err
		}
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Mutations().CreateBroadcast(ctx, in)
			return printDone(cc, env, err, fmt.Sprintf("Broadcast %s created", env.Data.ID))
		})
	},
}

var broadcastsSendCmd = &cobra.Command{
	Use:   "send <id>",
	Short: "Send a broadcast now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			if !confirmed(cmd, cc, fmt.Sprintf("Send broadcast %s to its audience?", args[0])) {
				return nil
			}
			env, err := c.Mutations().SendBroadcast(ctx, args[0])
			return printDone(cc, env, err, fmt.Sprintf("Broadcast %s sent", args[0]))
		})
	},
}

var broadcastsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a broadcast",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			if !confirmed(cmd, cc, fmt.Sprintf("Delete broadcast %s?", args[0])) {
				return nil
			}
			env, err := c.Mutations().DeleteBroadcast(ctx, args[0])
			return printDone(cc, env, err, fmt.Sprintf("Broadcast %s deleted", args[0]))
		})
	},
}

var broadcastsUploadCmd = &cobra.Command{
	Use:   "upload-image <file>",
	Short: "Upload an image for use in broadcasts",
	Long:  "Upload an image and print the URL to pass as --image when creating a broadcast.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileReadFailed, "failed to open "+args[0], err)
			}
			defer f.Close()

			env, err := c.Mutations().UploadBroadcastImage(ctx, filepath.Base(args[0]), f)
			return printDone(cc, env, err, env.Data.URL)
		})
	},
}

var broadcastsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show broadcast counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			env, err := c.Queries().BroadcastStats(ctx)
			return printData(cc, env, err)
		})
	},
}

func broadcastInput(cmd *cobra.Command) (types.BroadcastInput, error) {
	flags := cmd.Flags()
	var in types.BroadcastInput
	in.Title, _ = flags.GetString("title")
	in.Message, _ = flags.GetString("message")
	in.Audience, _ = flags.GetString("audience")
	in.Channels, _ = flags.GetStringSlice("channel")
	in.ImageURL, _ = flags.GetString("image")

	if in.Title == "" || in.Message == "" {
		return in, errors.New(errors.ErrCodeBadRequest, "--title and --message are required")
	}
	if raw, _ := flags.GetString("schedule"); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return in, errors.Wrap(errors.ErrCodeBadRequest, fmt.Sprintf("invalid --schedule %q, want RFC 3339", raw), err)
		}
		in.ScheduledAt = &at
	}
	return in, nil
}

func init() {
	addListFlags(broadcastsListCmd)
	broadcastsListCmd.Flags().String("audience", "", "filter by audience")

	flags := broadcastsCreateCmd.Flags()
	flags.String("title", "", "broadcast title")
	flags.String("message", "", "broadcast body")
	flags.String("audience", "", "audience: all, customers or businesses")
	flags.StringSlice("channel", nil, "delivery channel, repeatable")
	flags.String("image", "", "image URL from upload-image")
	flags.String("schedule", "", "send time (RFC 3339); omit to keep as draft")

	addYesFlag(broadcastsSendCmd)
	addYesFlag(broadcastsDeleteCmd)

	broadcastsCmd.AddCommand(broadcastsListCmd, broadcastsGetCmd, broadcastsCreateCmd, broadcastsSendCmd,
		broadcastsDeleteCmd, broadcastsUploadCmd, broadcastsStatsCmd)
	rootCmd.AddCommand(broadcastsCmd)
}
