package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChasNicholls/spendlite/internal/config"
	"github.com/ChasNicholls/spendlite/internal/importer"
	"github.com/ChasNicholls/spendlite/internal/model"
	"github.com/ChasNicholls/spendlite/internal/state"
	"github.com/ChasNicholls/spendlite/internal/view"
)

func newLoadCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "load [statement.csv]",
		Short: "Load a bank statement export and categorise it",
		Long: "Load a bank statement export and categorise it.\n\n" +
			"With no argument, every CSV waiting in <data.dir>/import/ is loaded\n" +
			"and moved to import/processed/.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown statement format %q", format)
			}

			app, cleanup, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			var txns []model.Transaction
			var sources []string
			if len(args) == 1 {
				txns, err = parseStatement(parser, args[0])
				if err != nil {
					return err
				}
				sources = append(sources, args[0])
			} else {
				files, err := importer.Scan(cfg.Data.Dir)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					return fmt.Errorf("no statement files in %s", filepath.Join(cfg.Data.Dir, "import"))
				}
				for _, f := range files {
					batch, err := parseStatement(parser, f.Path)
					if err != nil {
						return err
					}
					txns = append(txns, batch...)
					if err := importer.MarkProcessed(cfg.Data.Dir, f.Name); err != nil {
						return err
					}
					sources = append(sources, f.Name)
				}
			}

			app.Dispatch(state.LoadTransactions{Transactions: txns})

			vm := app.View()
			fmt.Printf("Loaded %d transaction(s) from %s\n", len(txns), strings.Join(sources, ", "))
			fmt.Printf("%s · Debit: $%s · Credit: $%s · Net: $%s\n",
				vm.MonthLabel,
				vm.Summary.Debit.StringFixed(2),
				vm.Summary.Credit.StringFixed(2),
				vm.Summary.Net.StringFixed(2))
			fmt.Println()
			fmt.Println(view.RenderTotalsText(vm.Totals, vm.GrandTotal, vm.MonthLabel))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "statement", "statement format to parse")
	return cmd
}

func parseStatement(parser importer.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	txns, err := parser.Parse(f)
	if err != nil {
		// the one fatal path: the CSV collaborator itself failed
		return nil, fmt.Errorf("import aborted: %w", err)
	}
	return txns, nil
}
