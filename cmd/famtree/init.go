package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// mcpConfig represents the structure of a .mcp.json file.
type mcpConfig struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

// famtreeMCPEntry is the MCP server configuration for the famtree binary.
var famtreeMCPEntry = json.RawMessage(`{
  "type": "stdio",
  "command": "famtree",
  "args": ["serve-mcp"]
}`)

// projectTemplate is written to famtree.yml by init.
const projectTemplate = `# famtree project settings. FAMTREE_* environment variables override these.
outputDir: famtree-out
format: mermaid
stubs: true
overview: true
concurrency: 4
# indexPath: .famtree/graph
# s3:
#   endpoint: localhost:9000
#   bucket: family-diagrams
#   prefix: runs
#   useSSL: false
`

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create famtree.yml and register the MCP server",
		Long: `Write a starter famtree.yml into the project root and add a famtree
entry to .mcp.json. Existing files are kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(a.out, a.projectRoot, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files and entries")
	return cmd
}

func runInit(w io.Writer, projectRoot string, force bool) error {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return err
	}

	cfgPath := filepath.Join(abs, "famtree.yml")
	if _, err := os.Stat(cfgPath); err == nil && !force {
		fmt.Fprintf(w, "  skipped ./famtree.yml (exists, use --force to overwrite)\n")
	} else {
		if err := os.WriteFile(cfgPath, []byte(projectTemplate), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cfgPath, err)
		}
		fmt.Fprintf(w, "  created ./famtree.yml\n")
	}

	if err := mergeMCPConfig(w, filepath.Join(abs, ".mcp.json"), force); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nSetup complete. Run 'famtree import --input <family file>' to build the family index.")
	return nil
}

// mergeMCPConfig creates or merges the famtree entry into .mcp.json.
func mergeMCPConfig(w io.Writer, mcpPath string, force bool) error {
	var cfg mcpConfig

	data, err := os.ReadFile(mcpPath)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", mcpPath, err)
		}
	}

	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]json.RawMessage)
	}

	if _, exists := cfg.MCPServers["famtree"]; exists && !force {
		fmt.Fprintf(w, "  skipped .mcp.json famtree entry (exists, use --force to overwrite)\n")
		return nil
	}

	cfg.MCPServers["famtree"] = famtreeMCPEntry

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling .mcp.json: %w", err)
	}

	if err := os.WriteFile(mcpPath, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", mcpPath, err)
	}

	action := "created"
	if data != nil {
		action = "updated"
	}
	fmt.Fprintf(w, "  %s .mcp.json with famtree MCP server\n", action)
	return nil
}
