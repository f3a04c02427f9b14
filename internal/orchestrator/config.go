package orchestrator

import (
	"github.com/dusk-indust/famtree/internal/export"
	"github.com/dusk-indust/famtree/internal/navigation"
)

// Default tuning values.
const (
	DefaultConcurrency = 4
	DefaultCacheSize   = 32
)

// Config holds runtime configuration for generation runs.
type Config struct {
	// Format selects the artifact renderer.
	Format export.Format

	// Navigation selects stubs and the overview artifact.
	Navigation navigation.Options

	// Concurrency bounds parallel artifact emission. Zero means
	// DefaultConcurrency.
	Concurrency int
}

func (c Config) concurrency() int {
	if c.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return c.Concurrency
}

func (c Config) format() export.Format {
	if c.Format == "" {
		return export.FormatMermaid
	}
	return c.Format
}
