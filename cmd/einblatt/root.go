package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/einblatt-dev/einblatt/internal/config"
	"github.com/einblatt-dev/einblatt/internal/errors"
	"github.com/einblatt-dev/einblatt/internal/logging"
)

// cli holds what every command shares once the configuration is loaded.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configFile string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "einblatt",
		Short: "Reactive DOM binding and client-side routing",
		Long: `einblatt binds element descriptors to live DOM nodes and routes
paths to views with guards and three navigation strategies.

The CLI works with the project's einblatt.yaml:

  • routes   list the route table and test paths against it
  • render   render the demo app headlessly at a path
  • serve    run the dev server with live reload and metrics
  • explain  describe an error code`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.load,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.configFile, "config", "c", "", "config file (default is einblatt.yaml in the working directory)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(
		routesCmd(c),
		renderCmd(c),
		serveCmd(c),
		explainCmd(c),
		versionCmd(c),
	)
	return rootCmd
}

// load reads the configuration with the command's flags bound over the
// file and environment, then installs the logger.
func (c *cli) load(cmd *cobra.Command, _ []string) error {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return errors.New("E401").Wrap(err)
	}
	cfg, err := config.Load(v, c.configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logging.Install(cfg.Log, c.stderr)
	c.logger.Debug("config loaded", "path", cfg.Path(), "mode", cfg.Mode())
	return nil
}
