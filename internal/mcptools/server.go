package mcptools

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/famtree/internal/logger"
	"github.com/dusk-indust/famtree/internal/metrics"
)

// version is set by the linker at build time.
var version = "dev"

// NewMCPServer creates an MCP server with the family partitioning tools
// registered.
func NewMCPServer(svc *FamilyService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "famtree",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_partitions",
		Description: "Partition a family graph with a strategy document and return the plan id with per-partition counts, bridge people and warnings. Nothing is written.",
	}, svc.PreviewPartitions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_partitions",
		Description: "Write diagram artifacts, the optional overview and a manifest for a plan returned by preview_partitions.",
	}, svc.GeneratePartitions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_lineage",
		Description: "Find the shortest direct-line (parent/child) path between two people.",
	}, svc.FindLineage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Count people, parent and spouse edges and collections in a family graph, with load warnings.",
	}, svc.GraphStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_run_status",
		Description: "List generation runs in an output directory with written, failed and missing artifact counts.",
	}, svc.GetRunStatus)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// NewHTTPHandler serves the MCP endpoint at /mcp and Prometheus metrics at
// /metrics.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	))
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

// RunHTTP starts an HTTP server exposing the MCP tools and metrics on addr.
func RunHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewHTTPHandler(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("mcp server listening", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
