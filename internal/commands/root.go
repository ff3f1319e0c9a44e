// Package commands wires the CLI surface: loading statements, exporting
// totals and rules, and launching the TUI and HTTP server.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ChasNicholls/spendlite/internal/buildinfo"
	"github.com/ChasNicholls/spendlite/internal/config"
	"github.com/ChasNicholls/spendlite/internal/rules"
	"github.com/ChasNicholls/spendlite/internal/state"
	"github.com/ChasNicholls/spendlite/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "spendlite",
		Short:   "Rule-based bank statement categoriser",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newLoadCommand())
	rootCmd.AddCommand(newTotalsCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// openApp restores the application state from the configured store. When
// the store cannot be opened the session degrades to memory-only, matching
// the swallow-persistence-failures contract.
func openApp(cfg config.Config) (*state.App, func(), error) {
	var st store.Store
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err == nil {
		if sqlite, err := store.Open(cfg.StorePath()); err == nil {
			st = sqlite
		}
	}
	if st == nil {
		st = store.NewMemory()
	}

	app := state.New(st, cfg.View.PageSize, fallbackRuleText(cfg))
	cleanup := func() { _ = st.Close() }
	return app, cleanup, nil
}

// fallbackRuleText resolves the rules restore chain below the store:
// configured rules file first, then the sample block.
func fallbackRuleText(cfg config.Config) string {
	if cfg.Data.RulesFile != "" {
		if data, err := os.ReadFile(cfg.Data.RulesFile); err == nil {
			return string(data)
		}
	}
	return rules.DefaultRuleText
}
