package main

import (
	"github.com/spf13/cobra"

	"github.com/einblatt-dev/einblatt/internal/demo"
	"github.com/einblatt-dev/einblatt/internal/errors"
)

func renderCmd(c *cli) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "render [PATH]",
		Short: "Render the demo app at a path",
		Long: `Mount the demo app headlessly with a memory router at PATH
(default /) and print the resulting HTML document.

Examples:
  einblatt render
  einblatt render /counter --pretty`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("E401").WithDetailf("render takes one path, got %d arguments.", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}
			return demo.RenderPage(c.stdout, demo.RenderOptions{
				Path:     path,
				Basename: c.cfg.Router.Basename,
				Pretty:   pretty,
				Logger:   c.logger.With("component", "demo"),
			})
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "indent the output")

	return cmd
}
