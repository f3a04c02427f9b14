package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/famtree/internal/status"
)

func newStatusCmd(a *app) *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show generation runs and their artifacts",
		Long: `Read the manifests under the output directory and report which
artifacts were written, which failed and which have since gone missing.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dir := a.outputDir(outputDir)
			runs := status.ListRuns(dir)
			if len(runs) == 0 {
				fmt.Fprintf(a.out, "No runs found in %s.\n", dir)
				fmt.Fprintln(a.out, "Run 'famtree generate --strategy <file>' to create one.")
				return nil
			}
			for i, rs := range runs {
				if i > 0 {
					fmt.Fprintln(a.out)
				}
				printRun(a.out, rs)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory to inspect")
	return cmd
}

func printRun(w io.Writer, rs status.RunStatus) {
	fmt.Fprintf(w, "Run: %s\n", rs.Dir)
	fmt.Fprintf(w, "  Plan %s, strategy %s, %d people, generated %s\n",
		rs.PlanID, rs.Strategy, rs.TotalPeople, rs.GeneratedAt.Format("2006-01-02 15:04"))

	for _, art := range rs.Artifacts {
		label := "ok"
		switch {
		case !art.Written:
			label = "failed"
		case !art.Present:
			label = "missing"
		}
		name := art.Partition
		if art.Count > 0 {
			name = fmt.Sprintf("%s (%d)", art.Partition, art.Count)
		}
		fmt.Fprintf(w, "  %-40s [%s]\n", name, label)
		if art.Error != "" {
			fmt.Fprintf(w, "      %s\n", art.Error)
		}
	}

	if rs.Complete() {
		fmt.Fprintln(w, "  All artifacts present.")
	}
	printWarnings(w, rs.Warnings)
}
