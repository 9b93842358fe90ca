package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/xinkuaihuo/wellbeing-engine/internal/taxonomy"
)

func newKeywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Validate and summarize the keyword taxonomy file",
		RunE: func(cmd *cobra.Command, args []string) error {
			tax, err := taxonomy.Load(cfg.Data.KeywordsPath)
			if err != nil {
				return fmt.Errorf("loading keywords from %s: %w", cfg.Data.KeywordsPath, err)
			}

			snap := tax.Current()
			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(snap.Categories())
			}

			for _, cat := range snap.Categories() {
				color.New(color.FgCyan, color.Bold).Printf("%s", cat.Name)
				fmt.Printf("  (%d keywords)\n", len(cat.Keywords))
			}
			return nil
		},
	}
	return cmd
}
