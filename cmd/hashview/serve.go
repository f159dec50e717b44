package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hashview/internal/build"
	"github.com/vango-dev/hashview/internal/dev"
	"github.com/vango-dev/hashview/internal/errors"
	"github.com/vango-dev/hashview/pkg/router"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port     int
		host     string
		noReload bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development server",
		Long: `Build the page and serve it with live reload.

The server watches the page, its modules and the lang file, rebuilds
on change and refreshes connected browsers. Style-only changes are
applied without a reload. Build errors are shown in the browser.

Browsers report their URL fragment over /_hashview/hash; decoded
routes are printed as they arrive. Metrics are served at /metrics.

Examples:
  hashview serve
  hashview serve --port=8080
  hashview serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}
			if noReload {
				cfg.Dev.HotReload = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			server := dev.NewServer(dev.ServerOptions{
				Config: cfg,
				Logger: flags.logger(cmd.ErrOrStderr(), cfg),
				OnBuildComplete: func(result *build.Result, err error) {
					if err != nil {
						errors.Fprint(cmd.ErrOrStderr(), err)
						return
					}
					success(out, "Built in %s", result.Duration.Round(time.Millisecond))
				},
				OnReload: func(clients int) {
					success(out, "Reloaded %d browsers", clients)
				},
				OnNavigate: func(route router.Route, err error) {
					if err != nil {
						info(out, "# %v", err)
						return
					}
					info(out, "# %s %v", route.Name, route.Args)
				},
			})

			ctx, cancel := signalContext(func() {
				fmt.Fprintln(out, "\n  Shutting down...")
			})
			defer cancel()

			info(out, "Serving %s at %s", cfg.PagePath(), cfg.DevURL())
			return server.Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from hashview.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from hashview.json)")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "Disable live reload")

	return cmd
}
