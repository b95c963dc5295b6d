// Package cmd implements the cleanaid command line.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/internal/ux"
)

var rootCmd = &cobra.Command{
	Use:   "cleanaid",
	Short: "Cleanaid marketplace admin client",
	Long: `cleanaid is the command-line admin client for the Cleanaid laundry marketplace.
It signs in as an admin and reads and manages users, businesses, orders,
payments, payouts and broadcasts through the admin API.

Configuration is read from ~/.cleanaid/config.yaml and CLEANAID_* environment
variables; CLEANAID_API_URL sets the API root.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx and prints any error to
// stderr. The error is returned so the caller can pick an exit code.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && ctx.Err() == nil {
		noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
		ux.PrintError(rootCmd.ErrOrStderr(), err, noColor)
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.cleanaid/config.yaml)")
	flags.String("api-url", "", "API root URL (overrides api.url)")
	flags.StringP("format", "o", "", "output format: text, json or yaml (overrides output.format)")
	flags.String("log-level", "", "log level: debug, info, warn or error (overrides log.level)")
	flags.Bool("no-color", false, "disable colored output")
}
