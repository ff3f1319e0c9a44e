package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChasNicholls/spendlite/internal/config"
	"github.com/ChasNicholls/spendlite/internal/model"
	"github.com/ChasNicholls/spendlite/internal/rules"
	"github.com/ChasNicholls/spendlite/internal/state"
)

func newRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage keyword => category rules",
	}
	cmd.AddCommand(newRulesExportCommand())
	cmd.AddCommand(newRulesImportCommand())
	cmd.AddCommand(newRulesAddCommand())
	cmd.AddCommand(newRulesSuggestCommand())
	return cmd
}

func newRulesExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the active rule text (normalised line endings)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp()
			if err != nil {
				return err
			}
			defer cleanup()

			text := rules.NormalizeText(app.RuleText)
			if len(args) == 0 {
				fmt.Println(text)
				return nil
			}
			if err := os.WriteFile(args[0], []byte(text), 0o644); err != nil {
				return fmt.Errorf("writing rules: %w", err)
			}
			fmt.Printf("Wrote %s\n", args[0])
			return nil
		},
	}
}

func newRulesImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the active rule text from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading rules: %w", err)
			}

			app, cleanup, err := loadApp()
			if err != nil {
				return err
			}
			defer cleanup()

			app.Dispatch(state.SetRuleText{Text: string(data)})
			fmt.Printf("Imported %d rule(s)\n", len(app.Rules))
			return nil
		},
	}
}

func newRulesAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <keyword> <category>",
		Short: "Add or update one rule, preserving rule order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp()
			if err != nil {
				return err
			}
			defer cleanup()

			app.Dispatch(state.UpsertRule{Keyword: args[0], Category: args[1]})
			fmt.Printf("Rules now: %d\n", len(app.Rules))
			return nil
		},
	}
}

func newRulesSuggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <description>",
		Short: "Show the rule keyword the heuristics would propose",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword, category := rules.SuggestRule(model.Transaction{
				Description: args[0],
				Category:    model.Uncategorised,
			})
			fmt.Printf("%s %s %s\n", keyword, rules.Separator, category)
			return nil
		},
	}
}

func loadApp() (*state.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return openApp(cfg)
}
