package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/famtree/internal/config"
	"github.com/dusk-indust/famtree/internal/logger"
	"github.com/dusk-indust/famtree/internal/logger/console"
)

// version is set by goreleaser at build time.
var version = "dev"

// defaultIndexPath is where the persistent family index lives, relative to
// the project root.
const defaultIndexPath = ".famtree/graph"

// app carries the state shared by every command.
type app struct {
	projectRoot string
	input       string
	debug       bool

	cfg *config.ProjectConfig
	out io.Writer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "famtree",
		Short: "Partition family trees into focused diagrams",
		Long: `famtree splits a family graph into bounded, labeled partitions and
renders each one as a Mermaid or JSON Canvas diagram.

Examples:
  famtree preview --input family.yml --strategy branch.yml
  famtree generate --input family.yml --strategy branch.yml --stubs --overview
  famtree path --input family.yml I12 I1
  famtree status`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.projectRoot, "project-root", ".", "directory holding famtree.yml and .env")
	pf.StringVarP(&a.input, "input", "i", "", "family file (.json, .yml, .yaml); defaults to the family index")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newPreviewCmd(a),
		newGenerateCmd(a),
		newPathCmd(a),
		newStatusCmd(a),
		newImportCmd(a),
		newServeCmd(a),
		newInitCmd(a),
	)
	return root
}

// setup loads project configuration and installs the console logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.projectRoot)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.out = cmd.OutOrStdout()

	logger.Init(console.New(console.Params{
		Debug:  a.debug || cfg.Debug,
		Writer: cmd.ErrOrStderr(),
		Prefix: "famtree",
	}))
	return nil
}

// outputDir returns the --output-dir flag value when set, else the configured
// directory.
func (a *app) outputDir(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.ResolvedOutputDir(a.projectRoot)
}

// indexPath returns the family index location.
func (a *app) indexPath() string {
	p := a.cfg.IndexPath
	if p == "" {
		p = defaultIndexPath
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.projectRoot, p)
}
