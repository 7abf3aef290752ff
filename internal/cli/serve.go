package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcslider/internal/server"
	"github.com/matzehuels/arcslider/pkg/config"
	"github.com/matzehuels/arcslider/pkg/session"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve interactive widgets over HTTP",
		Long: `Serve the configured widget. Every page load gets its own instance whose
sliders are driven by pointer events posted from the browser.

With --watch the configuration file is reloaded when it changes; open
instances keep the widget they were created with.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			spin := startSpinner(ctx, os.Stderr, fmt.Sprintf("Connecting to %s cache...", cfg.Cache.Backend))
			runner, err := c.newRunner(ctx, cfg.Cache, noCache)
			if err != nil {
				spin.stop()
				return err
			}
			spin.done("Connected to %s cache", cfg.Cache.Backend)
			defer runner.Close()

			srv := server.New(server.Options{
				Config: cfg,
				Runner: runner,
				Store:  session.NewMemoryStore(cfg.Server.MaxInstances),
				Logger: logger,
			})

			if watch && c.configPath != "" {
				go func() {
					err := config.Watch(ctx, c.configPath, logger, srv.SetConfig)
					if err != nil && !errors.Is(err, context.Canceled) {
						logger.Error("config watch stopped", "err", err)
					}
				}()
			}

			printInfo("Serving %d slider(s) on %s", len(cfg.Widget.Sliders), StyleLink.Render(displayURL(addr)))
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload --config when it changes")

	return cmd
}

// displayURL turns a listen address into a clickable URL.
func displayURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
