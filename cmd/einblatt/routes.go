package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/einblatt-dev/einblatt/internal/demo"
	"github.com/einblatt-dev/einblatt/internal/errors"
	"github.com/einblatt-dev/einblatt/pkg/router"
)

func routesCmd(c *cli) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Long: `List the routes from router.routes in einblatt.yaml, or the demo
routes when none are configured, in matching order.

With --match, print the route the path resolves to instead.

Examples:
  einblatt routes
  einblatt routes --match /user/42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := routeTable(c)
			if match != "" {
				return printMatch(c, table, match)
			}
			return printRoutes(c, table)
		},
	}

	cmd.Flags().StringVarP(&match, "match", "m", "", "print the route matching this path")

	return cmd
}

// routeTable returns the configured routes, or the demo routes.
func routeTable(c *cli) *router.Table {
	if c.cfg.HasRoutes() {
		return c.cfg.Table()
	}
	return demo.Routes()
}

func printRoutes(c *cli, table *router.Table) error {
	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPATH\tPARAMS")
	for _, e := range table.Entries() {
		params := strings.Join(e.Route.Keys(), ",")
		if params == "" {
			params = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Route.Path(), params)
	}
	return tw.Flush()
}

func printMatch(c *cli, table *router.Table, path string) error {
	m := table.Match(path)
	if !m.Found() {
		return errors.New("E304").WithDetailf("No route matches %q.", path)
	}
	fmt.Fprintf(c.stdout, "%s %s\n", m.Name, m.Route.Path())
	for _, k := range m.Params.Keys() {
		fmt.Fprintf(c.stdout, "  %s=%s\n", k, m.Params.Get(k))
	}
	if m.Query != "" {
		fmt.Fprintf(c.stdout, "  ?%s\n", m.Query)
	}
	return nil
}
