package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/famtree/internal/config"
	"github.com/dusk-indust/famtree/internal/mcptools"
	"github.com/dusk-indust/famtree/internal/orchestrator"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		strategyPath string
		asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the partitions a strategy would produce",
		Long: `Compute a partitioning and print per-partition counts, bridge people
and warnings. Nothing is written.

Examples:
  famtree preview --input family.yml --strategy surname.yml
  famtree preview --strategy lineage.json --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pipeline, err := a.newPipeline(genFlags{}, false, false)
			if err != nil {
				return err
			}
			defer pipeline.Close()

			plan, warnings, err := a.preview(cmd, pipeline, strategyPath)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(a.out, mcptools.PreviewOutput{
					PlanID:        plan.ID,
					Summary:       plan.Summary,
					GraphWarnings: warnings,
				})
			}
			printSummary(a.out, plan)
			return nil
		},
	}
	cmd.Flags().StringVarP(&strategyPath, "strategy", "s", "", "strategy document (.json, .yml, .yaml)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.MarkFlagRequired("strategy")
	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		strategyPath string
		flags        genFlags
		asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write one diagram per partition",
		Long: `Compute a partitioning, print its preview, then write one artifact per
partition plus an optional overview and a manifest.

Examples:
  famtree generate --input family.yml --strategy branch.yml
  famtree generate --strategy generations.yml --format json --stubs --overview
  famtree generate --strategy surname.yml --output-dir out/smith`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pipeline, err := a.newPipeline(flags, cmd.Flags().Changed("stubs"), cmd.Flags().Changed("overview"))
			if err != nil {
				return err
			}

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				for ev := range pipeline.Progress() {
					fmt.Fprintln(cmd.ErrOrStderr(), orchestrator.FormatProgress(ev))
				}
			}()
			gen, err := a.generate(cmd, pipeline, strategyPath, asJSON)
			pipeline.Close()
			wg.Wait()
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(a.out, mcptools.NewGenerateOutput(gen, nil))
			}
			printResults(a.out, gen)
			if n := gen.Failed(); n > 0 {
				return fmt.Errorf("%d of %d artifacts failed", n, len(gen.Results))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&strategyPath, "strategy", "s", "", "strategy document (.json, .yml, .yaml)")
	f.StringVarP(&flags.outputDir, "output-dir", "o", "", "artifact directory (default from famtree.yml)")
	f.StringVar(&flags.format, "format", "", "artifact format: mermaid or json")
	f.BoolVar(&flags.stubs, "stubs", false, "add navigation stubs for relatives in other partitions")
	f.BoolVar(&flags.overview, "overview", false, "write an overview diagram linking the partitions")
	f.IntVar(&flags.concurrency, "concurrency", 0, "parallel artifact writes")
	f.BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.MarkFlagRequired("strategy")
	return cmd
}

// preview loads the graph and strategy and plans them.
func (a *app) preview(cmd *cobra.Command, pipeline *orchestrator.Pipeline, strategyPath string) (*orchestrator.Plan, []string, error) {
	cfg, err := config.LoadStrategy(strategyPath)
	if err != nil {
		return nil, nil, err
	}
	g, err := a.loadGraph(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	plan, err := pipeline.Preview(cmd.Context(), g, cfg)
	if err != nil {
		return nil, nil, err
	}
	return plan, g.Warnings(), nil
}

func (a *app) generate(cmd *cobra.Command, pipeline *orchestrator.Pipeline, strategyPath string, quiet bool) (*orchestrator.Generation, error) {
	plan, _, err := a.preview(cmd, pipeline, strategyPath)
	if err != nil {
		return nil, err
	}
	if !quiet {
		printSummary(a.out, plan)
		fmt.Fprintln(a.out)
	}
	return pipeline.Generate(cmd.Context(), plan.ID)
}

func printSummary(w io.Writer, plan *orchestrator.Plan) {
	s := plan.Summary
	fmt.Fprintf(w, "Strategy: %s\n", s.Strategy)
	if len(s.Partitions) == 0 {
		fmt.Fprintln(w, "  No partitions.")
	}
	for i, p := range s.Partitions {
		line := fmt.Sprintf("  %2d  %-32s %4d people", i, p.Label, p.Count)
		if p.Bridges > 0 {
			line += fmt.Sprintf("  (%d bridge)", p.Bridges)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "Total: %d people in %d slots, %d bridge people\n", s.TotalPeople, s.MemberSlots, s.BridgePeople)
	printWarnings(w, s.Warnings)
	fmt.Fprintf(w, "Plan: %s\n", plan.ID)
}

func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, "Warnings:")
	for _, msg := range warnings {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}

func printResults(w io.Writer, gen *orchestrator.Generation) {
	for _, r := range gen.Results {
		if r.Success {
			fmt.Fprintf(w, "  wrote  %s\n", r.Path)
			continue
		}
		fmt.Fprintf(w, "  failed %s: %s\n", r.Partition, r.Error)
	}
	if gen.ManifestPath != "" {
		fmt.Fprintf(w, "Manifest: %s\n", gen.ManifestPath)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
