package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/famtree/internal/family"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load a family file into the persistent family index",
		Long: `Replace the family index (KuzuDB, default .famtree/graph) with the
records of --input. Later commands read the index when --input is omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.input == "" {
				return errors.New("--input is required")
			}
			g, err := family.LoadFile(a.input)
			if err != nil {
				return err
			}
			path := a.indexPath()
			stats, err := importGraph(cmd.Context(), path, g)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Imported %d people (%d parent links, %d marriages) into %s\n",
				stats.PersonCount, stats.ParentEdges, stats.SpouseEdges, path)
			printWarnings(a.out, g.Warnings())
			return nil
		},
	}
}
