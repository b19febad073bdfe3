package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/helmward/helmboard/internal/server"
	"github.com/helmward/helmboard/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	config  string // TOML config file path; defaults apply when empty
	addr    string // listen address override
	fixture string // records fixture override for the memory store
}

// serveCommand creates the serve command, which runs the HTTP rendering
// feed with the store poller.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard rendering feed over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "records fixture file for the memory store (overrides config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cfg := server.DefaultConfig()
	if opts.config != "" {
		loaded, err := server.LoadConfig(opts.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.addr != "" {
		cfg.ListenAddr = opts.addr
	}
	if opts.fixture != "" {
		cfg.Store.Backend = server.StoreMemory
		cfg.Store.Fixture = opts.fixture
	}

	st, err := server.OpenStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	if closer, ok := st.(interface{ Close(context.Context) error }); ok {
		defer closer.Close(context.Background())
	}
	cch, err := server.OpenCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer cch.Close()

	runner := pipeline.NewRunner(cch, nil, c.Logger)
	srv := server.New(cfg, st, runner, c.Logger)

	printInfo("Serving on http://%s", cfg.ListenAddr)
	printDetail("store: %s, cache: %s, poll: %s",
		cfg.Store.Backend, cfg.Cache.Backend, cfg.PollInterval.Duration)
	if cfg.Store.Backend == server.StoreMemory && cfg.Store.Fixture == "" {
		printWarning("Memory store has no fixture; the dashboard will be empty until records are loaded")
	}

	return srv.Run(ctx)
}
