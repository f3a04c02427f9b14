package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/famtree/internal/export"
	"github.com/dusk-indust/famtree/internal/mcptools"
	"github.com/dusk-indust/famtree/internal/partition"
)

// Tests run from cmd/famtree/, so fixtures are two levels up.
const fixtures = "../../testdata/fixtures"

func fixture(name string) string {
	return filepath.Join(fixtures, name)
}

// runCLI executes the root command in an isolated project root and returns
// its standard output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestPreview_Branch(t *testing.T) {
	out, err := runCLI(t,
		"--project-root", t.TempDir(),
		"preview", "--input", fixture("family.yml"), "--strategy", fixture("branch.yml"),
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Strategy: branch")
	assert.Contains(t, out, "Paternal line")
	assert.Contains(t, out, "Maternal line")
	assert.Contains(t, out, "Descendants")
	assert.Contains(t, out, "Total: 10 people in 10 slots, 0 bridge people")
	assert.Contains(t, out, "Plan: ")
}

func TestPreview_JSON(t *testing.T) {
	out, err := runCLI(t,
		"--project-root", t.TempDir(),
		"preview", "-i", fixture("family.yml"), "-s", fixture("surname.json"), "--json",
	)
	require.NoError(t, err)

	var preview mcptools.PreviewOutput
	require.NoError(t, json.Unmarshal([]byte(out), &preview))
	assert.NotEmpty(t, preview.PlanID)
	assert.Equal(t, partition.StrategySurname, preview.Summary.Strategy)
	require.Len(t, preview.Summary.Partitions, 1)
	assert.Equal(t, "Hale", preview.Summary.Partitions[0].Label)
	assert.Equal(t, 8, preview.Summary.Partitions[0].Count)
}

func TestPreview_RequiresStrategy(t *testing.T) {
	_, err := runCLI(t, "--project-root", t.TempDir(), "preview", "--input", fixture("family.yml"))
	assert.Error(t, err)
}

func TestGenerate_WritesArtifactsAndStatus(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(root, "out")

	out, err := runCLI(t,
		"--project-root", root,
		"generate", "--input", fixture("family.yml"), "--strategy", fixture("branch.yml"),
		"--output-dir", outDir, "--stubs", "--overview",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Strategy: branch")
	assert.Contains(t, out, "Manifest: "+filepath.Join(outDir, export.ManifestName))

	for i, label := range []string{"Paternal line", "Maternal line", "Descendants"} {
		assert.FileExists(t, filepath.Join(outDir, export.ArtifactName(i, label, export.FormatMermaid)))
	}
	assert.FileExists(t, filepath.Join(outDir, "00-overview.mmd"))

	out, err = runCLI(t, "--project-root", root, "status", "--output-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "strategy branch, 10 people")
	assert.Contains(t, out, "All artifacts present.")
}

func TestGenerate_CanvasJSONOutput(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(root, "canvas")

	out, err := runCLI(t,
		"--project-root", root,
		"generate", "-i", fixture("family.yml"), "-s", fixture("generations.yml"),
		"-o", outDir, "--format", "json", "--json",
	)
	require.NoError(t, err)

	var gen mcptools.GenerateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &gen))
	assert.Equal(t, "completed", gen.Status)
	require.NotEmpty(t, gen.Artifacts)
	for _, a := range gen.Artifacts {
		assert.Equal(t, ".canvas", filepath.Ext(a.Path))
		assert.FileExists(t, a.Path)
	}
}

func TestGenerate_UsesProjectConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "famtree.yml"), []byte("outputDir: diagrams\nformat: json\n"), 0o644))

	_, err := runCLI(t,
		"--project-root", root,
		"generate", "-i", fixture("family.yml"), "-s", fixture("surname.json"),
	)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "diagrams", export.ArtifactName(0, "Hale", export.FormatCanvas)))
	assert.FileExists(t, filepath.Join(root, "diagrams", export.ManifestName))
}

func TestGenerate_UnknownFormat(t *testing.T) {
	_, err := runCLI(t,
		"--project-root", t.TempDir(),
		"generate", "-i", fixture("family.yml"), "-s", fixture("branch.yml"), "--format", "svg",
	)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestPath(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{
			name:  "great-granddaughter to great-grandfather",
			start: "I12",
			end:   "I1",
			want: []string{
				"Lily Owens (I12) -> Emma Hale (I10) -> Daniel Hale (I8) -> Arthur Hale (I3) -> Walter Hale (I1)",
				"4 generations",
			},
		},
		{
			name:  "spouses are not a direct line",
			start: "I8",
			end:   "I9",
			want:  []string{"no path found between I8 and I9"},
		},
		{
			name:  "siblings are not a direct line",
			start: "I3",
			end:   "I4",
			want:  []string{"no path found between I3 and I4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, "--project-root", t.TempDir(), "path", "-i", fixture("family.yml"), tt.start, tt.end)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestPath_UnknownPerson(t *testing.T) {
	_, err := runCLI(t, "--project-root", t.TempDir(), "path", "-i", fixture("family.yml"), "I1", "I99")
	assert.ErrorIs(t, err, partition.ErrPersonNotFound)
}

func TestStatus_NoRuns(t *testing.T) {
	root := t.TempDir()
	out, err := runCLI(t, "--project-root", root, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs found")
}

func TestInit(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".mcp.json"),
		[]byte(`{"mcpServers":{"other":{"type":"stdio","command":"other"}}}`), 0o644))

	out, err := runCLI(t, "--project-root", root, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "created ./famtree.yml")
	assert.Contains(t, out, "updated .mcp.json")

	data, err := os.ReadFile(filepath.Join(root, ".mcp.json"))
	require.NoError(t, err)
	var cfg mcpConfig
	require.NoError(t, json.Unmarshal(data, &cfg))
	assert.Contains(t, cfg.MCPServers, "famtree")
	assert.Contains(t, cfg.MCPServers, "other")

	out, err = runCLI(t, "--project-root", root, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "skipped ./famtree.yml")
	assert.Contains(t, out, "skipped .mcp.json famtree entry")
}

func TestMissingGraphSource(t *testing.T) {
	_, err := runCLI(t, "--project-root", t.TempDir(), "preview", "-s", fixture("branch.yml"))
	assert.Error(t, err)
}
