package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChasNicholls/spendlite/internal/api"
	"github.com/ChasNicholls/spendlite/internal/config"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the categoriser as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}

			app, cleanup, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			server := api.New(app)
			fmt.Printf("Listening on %s\n", cfg.Serve.Addr)
			return server.Listen(cfg.Serve.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
