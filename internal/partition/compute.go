package partition

import (
	"fmt"

	"github.com/dusk-indust/famtree/internal/family"
)

// Compute runs the strategy selected by cfg over g.
//
// Configuration errors (structurally incomplete config, unknown root,
// anchor, start or end id) are returned as errors and no Partitioning is
// produced. Empty results such as "no path found" or "0 matches" are not
// errors; they come back as a valid Partitioning carrying warnings.
func Compute(g *family.Graph, cfg Config) (*Partitioning, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	switch c := deref(cfg).(type) {
	case GenerationRangeConfig:
		return generationRange(g, c)
	case BranchConfig:
		return branches(g, c)
	case LineageConfig:
		return lineage(g, c)
	case CollectionConfig:
		return collections(g, c)
	case AncestorDescendantConfig:
		return ancestorDescendant(g, c)
	case SurnameConfig:
		return surnames(g, c)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownStrategy, cfg)
	}
}
