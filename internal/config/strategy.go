package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dusk-indust/famtree/internal/partition"
)

// LoadStrategy reads a strategy document. JSON files are decoded directly;
// anything else is read as YAML. The document names its strategy in a
// top-level "strategy" field next to the strategy's own settings:
//
//	strategy: branch
//	anchorId: "I42"
//	paternal: true
//	maternal: true
func LoadStrategy(path string) (partition.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy: %w", err)
	}
	cfg, err := ParseStrategy(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseStrategy decodes a strategy document. ext selects the syntax
// (".json" or YAML for anything else).
func ParseStrategy(data []byte, ext string) (partition.Config, error) {
	if strings.EqualFold(ext, ".json") {
		return partition.UnmarshalConfig(data)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: empty strategy document", partition.ErrInvalidConfig)
	}
	return partition.UnmarshalConfigYAML(data)
}
