package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/internal/api"
	"github.com/felixgeelhaar/cleanaid/internal/errors"
	"github.com/felixgeelhaar/cleanaid/internal/ux"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/client"
	"github.com/felixgeelhaar/cleanaid/pkg/cleanaid/types"
)

// run resolves the command context and an API client and hands both to fn.
func run(cmd *cobra.Command, fn func(ctx context.Context, cc *CommandContext, c *client.Client) error) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	c, err := cc.Client()
	if err != nil {
		return err
	}
	return fn(cmd.Context(), cc, c)
}

func addListFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int("page", 0, "page number (1-based)")
	flags.Int("limit", 0, "page size")
	flags.String("search", "", "free-text search")
	flags.String("sort-by", "", "field to sort by")
	flags.String("sort-order", "", "sort order: asc or desc")
	flags.String("status", "", "filter by status")
}

func listFilter(cmd *cobra.Command) client.ListFilter {
	flags := cmd.Flags()
	page, _ := flags.GetInt("page")
	limit, _ := flags.GetInt("limit")
	search, _ := flags.GetString("search")
	sortBy, _ := flags.GetString("sort-by")
	sortOrder, _ := flags.GetString("sort-order")
	return client.ListFilter{Page: page, Limit: limit, Search: search, SortBy: sortBy, SortOrder: sortOrder}
}

func statusFlag(cmd *cobra.Command) string {
	s, _ := cmd.Flags().GetString("status")
	return s
}

// listView renders one page of a list response. JSON and YAML output carry
// the items and pagination; text output is a table with a page footer.
type listView[T any] struct {
	Items      []T                   `json:"items" yaml:"items"`
	Pagination *types.PaginationMeta `json:"pagination,omitempty" yaml:"pagination,omitempty"`

	headers []string
	row     func(T) []any
}

func (v listView[T]) Table() *ux.Table {
	t := ux.NewTable(v.headers...)
	for _, item := range v.Items {
		t.AddRow(v.row(item)...)
	}
	if v.Pagination != nil {
		t.Footer = fmt.Sprintf("page %d of %d, %d total",
			v.Pagination.CurrentPageNumber(), max(v.Pagination.TotalPageCount(), 1), v.Pagination.TotalItems())
	}
	return t
}

// printList unwraps a list envelope and prints it as a listView.
func printList[T any](cc *CommandContext, env types.Envelope[[]T], err error, headers []string, row func(T) []any) error {
	items, err := api.Require(env, err)
	if err != nil {
		return err
	}
	return cc.Print(listView[T]{Items: items, Pagination: env.Pagination, headers: headers, row: row})
}

// printData unwraps a single-record envelope and prints its data.
func printData[T any](cc *CommandContext, env types.Envelope[T], err error) error {
	data, err := api.Require(env, err)
	if err != nil {
		return err
	}
	return cc.Print(data)
}

// printDone reports a completed mutation. Structured formats get the envelope.
func printDone[T any](cc *CommandContext, env types.Envelope[T], err error, done string) error {
	if _, err := api.Require(env, err); err != nil {
		return err
	}
	if cc.Format == "json" || cc.Format == "yaml" {
		return cc.Print(env)
	}
	if env.Message != "" {
		done = env.Message
	}
	_, err = fmt.Fprintln(cc.Out, done)
	return err
}

func addYesFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}

// confirmed asks before a destructive call unless --yes was given.
func confirmed(cmd *cobra.Command, cc *CommandContext, question string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	if cc.Prompter().Confirm(question, false) {
		return true
	}
	fmt.Fprintln(cc.Err, "Aborted.")
	return false
}

const dateLayout = "2006-01-02"

func addDateFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD)")
}

func dateRange(cmd *cobra.Command) (client.DateRange, error) {
	var r client.DateRange
	for _, f := range []struct {
		name string
		dst  *time.Time
	}{{"from", &r.From}, {"to", &r.To}} {
		raw, _ := cmd.Flags().GetString(f.name)
		if raw == "" {
			continue
		}
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return r, errors.Wrap(errors.ErrCodeConfigInvalid, fmt.Sprintf("invalid --%s date %q, want YYYY-MM-DD", f.name, raw), err)
		}
		*f.dst = t
	}
	return r, nil
}
