// Package status reports on generation runs from the manifests they leave
// in output directories.
package status

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dusk-indust/famtree/internal/export"
	"github.com/dusk-indust/famtree/internal/partition"
)

// ArtifactInfo describes one artifact recorded in a manifest.
type ArtifactInfo struct {
	Partition string
	Count     int // members; zero for the overview
	Path      string
	Written   bool // the run reported success
	Present   bool // the file still exists (always true for remote paths)
	Error     string
}

// RunStatus holds the status of one output directory.
type RunStatus struct {
	Dir         string
	PlanID      string
	Strategy    partition.Strategy
	GeneratedAt time.Time
	TotalPeople int
	Warnings    []string
	Artifacts   []ArtifactInfo
}

// Failed counts artifacts the run could not write.
func (s RunStatus) Failed() int {
	n := 0
	for _, a := range s.Artifacts {
		if !a.Written {
			n++
		}
	}
	return n
}

// Missing counts written artifacts that are no longer on disk.
func (s RunStatus) Missing() int {
	n := 0
	for _, a := range s.Artifacts {
		if a.Written && !a.Present {
			n++
		}
	}
	return n
}

// Complete reports whether every artifact was written and is still present.
func (s RunStatus) Complete() bool {
	return s.Failed() == 0 && s.Missing() == 0
}

// GetRunStatus reads the manifest in dir.
func GetRunStatus(dir string) (*RunStatus, error) {
	m, err := export.ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	rs := &RunStatus{
		Dir:         dir,
		PlanID:      m.PlanID,
		Strategy:    m.Strategy,
		GeneratedAt: m.GeneratedAt,
		TotalPeople: m.Summary.TotalPeople,
		Warnings:    m.Summary.Warnings,
	}
	for _, r := range m.Results {
		info := ArtifactInfo{
			Partition: r.Partition,
			Path:      r.Path,
			Written:   r.Success,
			Error:     r.Error,
		}
		if r.Index >= 0 && r.Index < len(m.Summary.Partitions) {
			info.Count = m.Summary.Partitions[r.Index].Count
		}
		if r.Success {
			info.Present = exists(r.Path)
		}
		rs.Artifacts = append(rs.Artifacts, info)
	}
	return rs, nil
}

// ListRuns returns the status of root and of every immediate subdirectory
// that holds a manifest, ordered by directory name.
func ListRuns(root string) []RunStatus {
	var dirs []string
	if _, err := os.Stat(filepath.Join(root, export.ManifestName)); err == nil {
		dirs = append(dirs, root)
	}
	entries, err := os.ReadDir(root)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				dirs = append(dirs, filepath.Join(root, e.Name()))
			}
		}
	}
	sort.Strings(dirs)

	var runs []RunStatus
	for _, dir := range dirs {
		rs, err := GetRunStatus(dir)
		if err != nil {
			continue
		}
		runs = append(runs, *rs)
	}
	return runs
}

func exists(path string) bool {
	if strings.Contains(path, "://") {
		return true
	}
	_, err := os.Stat(path)
	return err == nil
}
