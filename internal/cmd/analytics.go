package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Revenue reports and exports",
}

var analyticsDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the dashboard counters only",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			d, err := api.Require(c.Queries().Dashboard(ctx))
			if err != nil {
				return err
			}
			return cc.Print(dashboardView{Dashboard: d})
		})
	},
}

var analyticsRevenueCmd = &cobra.Command{
	Use:     "revenue",
	Short:   "Show revenue per period",
	Example: `  cleanaid analytics revenue --period month`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			period, _ := cmd.Flags().GetString("period")
			env, err := c.Queries().Revenue(ctx, period)
			return printList(cc, env, err, revenueHeaders, revenueRow)
		})
	},
}

var analyticsTopCmd = &cobra.Command{
	Use:   "top-businesses",
	Short: "Show the highest-earning businesses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			limit, _ := cmd.Flags().GetInt("limit")
			env, err := c.Queries().TopBusinesses(ctx, limit)
			return printList(cc, env, err, topBusinessHeaders, topBusinessRow)
		})
	},
}

var analyticsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download an analytics report",
	Long: `Download an analytics report. The file name comes from the server
unless --output names a file. A directory --output keeps the server's name.`,
	Example: `  cleanaid analytics export --report orders --file-format csv --from 2024-01-01
  cleanaid analytics export --report revenue -O reports/
  cleanaid analytics export --report revenue -O revenue.xlsx`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dates, err := dateRange(cmd)
		if err != nil {
			return err
		}
		return run(cmd, func(ctx context.Context, cc *CommandContext, c *client.Client) error {
			report, _ := cmd.Flags().GetString("report")
			format, _ := cmd.Flags().GetString("file-format")
			output, _ := cmd.Flags().GetString("output")

			fallback := "export"
			if format != "" {
				fallback += "." + format
			}
			filter := &client.ExportFilter{DateRange: dates, Report: report, Format: format}
			target, n, err := api.SaveFile(output, fallback, func(w io.Writer) (int64, string, error) {
				return c.Analytics.Export(ctx, w, filter)
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cc.Out, "Saved %s (%d bytes)\n", target, n)
			return err
		})
	},
}

func init() {
	analyticsRevenueCmd.Flags().String("period", "", "grouping period: day, week, month or year")
	analyticsTopCmd.Flags().Int("limit", 10, "number of businesses")

	flags := analyticsExportCmd.Flags()
	flags.String("report", "", "report name, such as orders or revenue")
	flags.String("file-format", "", "file format: csv or xlsx")
	flags.StringP("output", "O", "", "destination file or directory")
	addDateFlags(analyticsExportCmd)

	analyticsCmd.AddCommand(analyticsDashboardCmd, analyticsRevenueCmd, analyticsTopCmd, analyticsExportCmd)
	rootCmd.AddCommand(analyticsCmd)
}
