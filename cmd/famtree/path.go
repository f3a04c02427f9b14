package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/famtree/internal/partition"
	"github.com/dusk-indust/famtree/internal/traverse"
)

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path START END",
		Short: "Find the direct line between two people",
		Long: `Find the shortest chain of parent/child links between two people.
Spouses and collateral relatives (siblings, cousins) are not on a direct
line.

Examples:
  famtree path --input family.yml I12 I1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGraph(cmd.Context())
			if err != nil {
				return err
			}
			start, end := args[0], args[1]
			if !g.Has(start) {
				return &partition.NotFoundError{Role: "start", ID: start}
			}
			if !g.Has(end) {
				return &partition.NotFoundError{Role: "end", ID: end}
			}

			path, ok := traverse.ShortestPath(g, start, end)
			if !ok {
				fmt.Fprintf(a.out, "no path found between %s and %s\n", start, end)
				return nil
			}
			steps := make([]string, len(path))
			for i, id := range path {
				steps[i] = fmt.Sprintf("%s (%s)", g.Name(id), id)
			}
			fmt.Fprintln(a.out, strings.Join(steps, " -> "))
			fmt.Fprintf(a.out, "%d generations\n", len(path)-1)
			return nil
		},
	}
}
