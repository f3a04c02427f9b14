package mcptools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupServerClient wires an MCP server and client together using in-memory
// transports.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	svc, _ := newService(t, nil)
	server := NewMCPServer(svc)

	st, ct := mcp.NewInMemoryTransports()
	ctx := context.Background()

	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})
	return session
}

func decodeStructured[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	require.NotNil(t, result.StructuredContent, "expected structured content")
	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)

	assert.Equal(t, []string{
		"find_lineage",
		"generate_partitions",
		"get_run_status",
		"graph_stats",
		"preview_partitions",
	}, names)
}

func TestMCPPreviewThenGenerate(t *testing.T) {
	session := setupServerClient(t)
	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "preview_partitions",
		Arguments: PreviewInput{
			Family:   inline(),
			Strategy: `{"strategy":"ancestor-descendant","rootId":"X"}`,
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "preview_partitions should succeed")

	preview := decodeStructured[PreviewOutput](t, result)
	require.NotEmpty(t, preview.PlanID)
	require.Len(t, preview.Summary.Partitions, 2)
	assert.Equal(t, "ancestors", preview.Summary.Partitions[0].Role)
	assert.Equal(t, 3, preview.Summary.Partitions[0].Count)
	assert.Equal(t, "descendants", preview.Summary.Partitions[1].Role)
	assert.Equal(t, 2, preview.Summary.Partitions[1].Count)

	result, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "generate_partitions",
		Arguments: GenerateInput{PlanID: preview.PlanID},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "generate_partitions should succeed")

	gen := decodeStructured[GenerateOutput](t, result)
	assert.Equal(t, "completed", gen.Status)
	assert.Len(t, gen.Artifacts, 2)
}

func TestMCPToolErrorSetsIsError(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "find_lineage",
		Arguments: LineageInput{Family: inline(), StartID: "nobody", EndID: "G"},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHTTPHandlerServesMetrics(t *testing.T) {
	svc, _ := newService(t, nil)
	srv := httptest.NewServer(NewHTTPHandler(NewMCPServer(svc)))
	defer srv.Close()

	// Loading a graph sets the people gauge.
	_, _, err := svc.GraphStats(context.Background(), nil, StatsInput{Family: inline()})
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "famtree_graph_people 5")
}
