package export

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/logger"
	"github.com/dusk-indust/famtree/internal/metrics"
	"github.com/dusk-indust/famtree/internal/navigation"
	"github.com/dusk-indust/famtree/internal/partition"
)

// Format selects the diagram renderer.
type Format string

const (
	FormatMermaid Format = "mermaid"
	FormatCanvas  Format = "json"
)

// ParseFormat maps a user-supplied name onto a Format. Empty means Mermaid.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mermaid", "mmd":
		return FormatMermaid, nil
	case "json", "canvas":
		return FormatCanvas, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Ext returns the file extension of artifacts in this format.
func (f Format) Ext() string {
	if f == FormatCanvas {
		return ".canvas"
	}
	return ".mmd"
}

// OverviewIndex is the Result index of the overview artifact.
const OverviewIndex = -1

// Artifact is one rendered file waiting to be written.
type Artifact struct {
	Partition string
	Index     int
	Name      string
	Format    Format
	Data      []byte
}

// Result is the outcome of writing one artifact.
type Result struct {
	Partition string `json:"partition"`
	Index     int    `json:"index"`
	Success   bool   `json:"success"`
	Path      string `json:"path,omitempty"`
	Error     string `json:"error,omitempty"`
}

// RenderPartition renders partition index of p.
func RenderPartition(g *family.Graph, p *partition.Partitioning, nav *navigation.Navigation, index int, format Format) (Artifact, error) {
	payload, err := BuildPayload(g, p, nav, index)
	if err != nil {
		return Artifact{}, err
	}
	a := Artifact{
		Partition: payload.Label,
		Index:     index,
		Name:      ArtifactName(index, payload.Label, format),
		Format:    format,
	}
	switch format {
	case FormatCanvas:
		a.Data, err = RenderCanvas(payload)
		if err != nil {
			return Artifact{}, err
		}
	default:
		a.Data = []byte(RenderMermaid(payload))
	}
	return a, nil
}

// RenderOverview renders the overview artifact.
func RenderOverview(ov *navigation.Overview, format Format) (Artifact, error) {
	a := Artifact{
		Partition: "Overview",
		Index:     OverviewIndex,
		Name:      "00-overview" + format.Ext(),
		Format:    format,
	}
	switch format {
	case FormatCanvas:
		data, err := RenderOverviewCanvas(ov)
		if err != nil {
			return Artifact{}, err
		}
		a.Data = data
	default:
		a.Data = []byte(RenderOverviewMermaid(ov))
	}
	return a, nil
}

// Emit writes a to sink and reports the outcome. Failures are reported in
// the Result, never returned, so callers can collect every outcome.
func Emit(ctx context.Context, sink Sink, a Artifact) Result {
	res := Result{Partition: a.Partition, Index: a.Index}
	loc, err := sink.Put(ctx, a.Name, a.Data)
	if err != nil {
		res.Error = err.Error()
		metrics.ArtifactsTotal.WithLabelValues(string(a.Format), metrics.OutcomeFailure).Inc()
		logger.Warn("artifact not written", "partition", a.Partition, "name", a.Name, "err", err)
		return res
	}
	res.Success = true
	res.Path = loc
	metrics.ArtifactsTotal.WithLabelValues(string(a.Format), metrics.OutcomeSuccess).Inc()
	logger.Debug("artifact written", "partition", a.Partition, "path", loc)
	return res
}

// ArtifactName builds a stable file name such as "02-paternal-line.mmd".
func ArtifactName(index int, label string, format Format) string {
	return fmt.Sprintf("%02d-%s%s", index+1, slug(label), format.Ext())
}

// slug reduces a label to lowercase ASCII letters, digits and dashes.
func slug(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if plain, _, err := transform.String(t, label); err == nil {
		label = plain
	}
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(sb.String(), "-")
	if s == "" {
		return "partition"
	}
	return s
}
