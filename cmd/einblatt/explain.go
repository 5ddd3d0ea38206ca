package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/einblatt-dev/einblatt/internal/errors"
)

func explainCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [CODE]",
		Short: "Describe an error code",
		Long: `Describe an error code, or list all codes when none is given.

Examples:
  einblatt explain
  einblatt explain E302`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, code := range errors.GetAllCodes() {
					tmpl, _ := errors.GetTemplate(code)
					fmt.Fprintf(c.stdout, "%s  %-8s %s\n", code, tmpl.Category, tmpl.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			if _, ok := errors.GetTemplate(code); !ok {
				return errors.New("E401").WithDetailf("Unknown error code %q.", args[0]).
					WithSuggestion("Run einblatt explain to list the codes.")
			}
			errors.Fprint(c.stdout, errors.New(code))
			return nil
		},
	}
}
