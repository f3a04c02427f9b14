package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/mcptools"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-mcp",
		Short: "Run as an MCP server",
		Long: `Expose preview_partitions, generate_partitions, find_lineage,
graph_stats and get_run_status as MCP tools. Stdio is the default transport;
--http serves streamable HTTP at /mcp together with Prometheus metrics at
/metrics.

Tools that receive no family input use --input or the family index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pipeline, err := a.newPipeline(genFlags{}, false, false)
			if err != nil {
				return err
			}
			defer pipeline.Close()

			source := func(ctx context.Context) (*family.Graph, error) {
				return a.loadGraph(ctx)
			}
			svc := mcptools.NewFamilyService(pipeline, source, a.outputDir(""))
			server := mcptools.NewMCPServer(svc)

			if addr != "" {
				return mcptools.RunHTTP(ctx, server, addr)
			}
			return mcptools.RunStdio(ctx, server)
		},
	}
	cmd.Flags().StringVar(&addr, "http", "", "serve streamable HTTP on this address instead of stdio (e.g. :8080)")
	return cmd
}
