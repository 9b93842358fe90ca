package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/xinkuaihuo/wellbeing-engine/internal/search"
)

func newIndexCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the vector index for the content catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			embedder, err := newEmbedder()
			if err != nil {
				return fmt.Errorf("embedding client: %w", err)
			}

			bar := progressbar.NewOptions(cat.Len(),
				progressbar.OptionSetDescription("embedding units"),
				progressbar.OptionShowCount(),
			)

			ix := search.NewIndex(embedder)
			err = ix.Build(cmd.Context(), cat, cfg.Embedding.BatchSize, func(done int) {
				bar.Set(done)
			})
			if err != nil {
				return fmt.Errorf("building index: %w", err)
			}
			bar.Finish()

			if err := ix.Save(outPath); err != nil {
				return fmt.Errorf("saving index: %w", err)
			}

			fmt.Printf("\nIndexed %d units -> %s\n", cat.Len(), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "data/vector_index.json", "output index file")
	return cmd
}
