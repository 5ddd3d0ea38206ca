package main

import (
	"bytes"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/einblatt-dev/einblatt/internal/config"
	"github.com/einblatt-dev/einblatt/internal/demo"
	"github.com/einblatt-dev/einblatt/internal/dev"
	"github.com/einblatt-dev/einblatt/pkg/router"
)

func serveCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development server",
		Long: `Start the development server with live reload.

Files in the static directory are served as they are. Any other GET
below the basename receives the app shell, so history mode paths load
the app on refresh. The shell is the static index.html when there is
one and the demo app rendered at the path otherwise.

Features:
  • Live reload on file change, stylesheets swapped in place
  • Prometheus metrics at /metrics

Examples:
  einblatt serve
  einblatt serve --port=8080
  einblatt serve --static=dist --basename=/app`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, c)
		},
	}

	f := cmd.Flags()
	f.StringP("host", "H", config.DefaultHost, "host to bind to")
	f.IntP("port", "p", config.DefaultPort, "port to run on")
	f.String("static", config.DefaultStatic, "static file directory")
	f.Bool("hot-reload", true, "reload browsers on file change")
	f.String("mode", string(router.ModeBrowser), "router mode (browser, hash, memory)")
	f.String("basename", "", "path prefix the app is served under")

	return cmd
}

func runServe(ctx context.Context, c *cli) error {
	cfg := c.cfg
	logger := c.logger.With("component", "dev")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := router.NewMetrics(router.WithRegistry(reg))

	server := dev.NewServer(dev.ServerOptions{
		Config:   cfg,
		Logger:   logger,
		Registry: reg,
		Shell: func(path string) (string, error) {
			var buf bytes.Buffer
			err := demo.RenderPage(&buf, demo.RenderOptions{
				Path:     path,
				Basename: cfg.Router.Basename,
				Logger:   c.logger.With("component", "demo"),
				Metrics:  metrics,
			})
			return buf.String(), err
		},
	})

	printBanner(c.stdout)
	info(c.stdout, "serve")

	go func() {
		select {
		case <-server.Ready():
			success(c.stdout, "Serving %s", server.URL())
			if cfg.Dev.Metrics {
				info(c.stdout, "Metrics at http://%s%s", server.Addr(), dev.MetricsPath)
			}
		case <-ctx.Done():
		}
	}()

	return server.Start(ctx)
}
