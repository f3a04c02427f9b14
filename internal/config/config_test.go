package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/famtree/internal/partition"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_MissingFileIsZeroValue(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad_UnreadableFileIsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "famtree.yml"), 0o755))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "read famtree.yml")
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "famtree.yml", `
outputDir: diagrams
format: json
stubs: true
concurrency: 8
s3:
  endpoint: localhost:9000
  bucket: trees
`)
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "diagrams", cfg.OutputDir)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Stubs)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.True(t, cfg.S3.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "famtree.yaml", "outputDir: from-file\nformat: mermaid\n")
	writeFile(t, dir, ".env", "FAMTREE_OUTPUT_DIR=from-dotenv\nFAMTREE_DEBUG=true\nFAMTREE_S3_BUCKET=dotenv-bucket\n")
	t.Setenv("FAMTREE_OUTPUT_DIR", "from-env")
	t.Setenv("FAMTREE_CONCURRENCY", "3")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutputDir, "process env beats .env")
	assert.Equal(t, "mermaid", cfg.Format)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "dotenv-bucket", cfg.S3.Bucket)
	assert.Equal(t, 3, cfg.Concurrency)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "famtree.yml", "format: svg\n")
	_, err := Load(dir)
	assert.ErrorContains(t, err, "invalid config")

	dir = t.TempDir()
	writeFile(t, dir, "famtree.yml", "concurrency: [\n")
	_, err = Load(dir)
	assert.Error(t, err)

	dir = t.TempDir()
	t.Setenv("FAMTREE_DEBUG", "perhaps")
	_, err = Load(dir)
	assert.ErrorContains(t, err, "FAMTREE_DEBUG")
}

func TestResolvedOutputDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/base", DefaultOutputDir), (&ProjectConfig{}).ResolvedOutputDir("/base"))
	assert.Equal(t, filepath.Join("/base", "out"), (&ProjectConfig{OutputDir: "out"}).ResolvedOutputDir("/base"))
	assert.Equal(t, "/abs", (&ProjectConfig{OutputDir: "/abs"}).ResolvedOutputDir("/base"))
}

func TestLoadStrategy_YAML(t *testing.T) {
	p := writeFile(t, t.TempDir(), "branch.yml", `
strategy: branch
anchorId: I42
paternal: true
maxGenerations: 4
`)
	cfg, err := LoadStrategy(p)
	require.NoError(t, err)
	assert.Equal(t, partition.BranchConfig{AnchorID: "I42", Paternal: true, MaxGenerations: 4}, cfg)
}

func TestLoadStrategy_NumericIDs(t *testing.T) {
	p := writeFile(t, t.TempDir(), "lineage.yml", `
strategy: lineage
startId: 42
endId: 7
includeSpouses: true
`)
	cfg, err := LoadStrategy(p)
	require.NoError(t, err)
	assert.Equal(t, partition.LineageConfig{StartID: "42", EndID: "7", IncludeSpouses: true}, cfg)
}

func TestLoadStrategy_JSON(t *testing.T) {
	p := writeFile(t, t.TempDir(), "surname.json", `{"strategy":"surname","surnames":["Smith","Jones"],"handleVariants":true}`)
	cfg, err := LoadStrategy(p)
	require.NoError(t, err)
	assert.Equal(t, partition.SurnameConfig{Surnames: []string{"Smith", "Jones"}, HandleVariants: true}, cfg)
}

func TestLoadStrategy_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadStrategy(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)

	_, err = LoadStrategy(writeFile(t, dir, "empty.yml", ""))
	assert.ErrorIs(t, err, partition.ErrInvalidConfig)

	_, err = LoadStrategy(writeFile(t, dir, "list.yml", "- strategy\n- branch\n"))
	assert.ErrorIs(t, err, partition.ErrInvalidConfig)

	_, err = LoadStrategy(writeFile(t, dir, "unknown.yml", "strategy: tarot\n"))
	assert.ErrorIs(t, err, partition.ErrUnknownStrategy)
}
