package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information including version number, git commit,
build date, Go version, and platform.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "show detailed version information")
	versionCmd.Flags().Bool("json", false, "output version information as JSON")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.GetInfo()
	out := cmd.OutOrStdout()

	format, _ := cmd.Flags().GetString("format")
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		format = "json"
	}
	if format == "json" || format == "yaml" {
		cc := &CommandContext{Format: format, Out: out}
		return cc.Print(info)
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		_, err := fmt.Fprintln(out, info.String())
		return err
	}

	_, err := fmt.Fprintf(out, "cleanaid %s\n", info.Short())
	return err
}
