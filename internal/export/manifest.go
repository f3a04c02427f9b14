package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dusk-indust/famtree/internal/partition"
)

// ManifestName is the file written next to the artifacts of a run.
const ManifestName = "manifest.json"

// Manifest records what a generation run produced.
type Manifest struct {
	PlanID      string             `json:"planId"`
	Strategy    partition.Strategy `json:"strategy"`
	Format      Format             `json:"format"`
	Fingerprint string             `json:"fingerprint"`
	PlannedAt   time.Time          `json:"plannedAt"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Summary     partition.Summary  `json:"summary"`
	Results     []Result           `json:"results"`
}

// Succeeded counts successful results.
func (m *Manifest) Succeeded() int {
	n := 0
	for _, r := range m.Results {
		if r.Success {
			n++
		}
	}
	return n
}

// Failed counts failed results.
func (m *Manifest) Failed() int {
	return len(m.Results) - m.Succeeded()
}

// WriteManifest stores m through sink.
func WriteManifest(ctx context.Context, sink Sink, m *Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	return sink.Put(ctx, ManifestName, data)
}

// ReadManifest loads the manifest from a local output directory.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
