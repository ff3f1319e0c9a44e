package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChasNicholls/spendlite/internal/config"
	"github.com/ChasNicholls/spendlite/internal/state"
	"github.com/ChasNicholls/spendlite/internal/view"
)

func newTotalsCommand() *cobra.Command {
	var month string
	var out string

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Export category totals for the active (or given) month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			app, cleanup, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if cmd.Flags().Changed("month") {
				app.Dispatch(state.SetMonthFilter{Month: month})
			}

			vm := app.View()
			label := view.TotalsLabel(vm.MonthFilter, app.Transactions)
			text := view.RenderTotalsText(vm.Totals, vm.GrandTotal, label)

			if out == "" {
				out = view.TotalsFilename(label)
			}
			if out == "-" {
				fmt.Println(text)
				return nil
			}
			if err := os.WriteFile(out, []byte(text+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing totals: %w", err)
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", `month filter as "YYYY-MM" ("" = all months)`)
	cmd.Flags().StringVar(&out, "out", "", "output file (default category_totals_<label>.txt, - for stdout)")
	return cmd
}
