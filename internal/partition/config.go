package partition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Strategy names a partitioning strategy.
type Strategy string

const (
	StrategyGenerationRange    Strategy = "generation-range"
	StrategyBranch             Strategy = "branch"
	StrategyLineage            Strategy = "lineage"
	StrategyCollection         Strategy = "collection"
	StrategyAncestorDescendant Strategy = "ancestor-descendant"
	StrategySurname            Strategy = "surname"
)

// Strategies lists every strategy in declaration order.
var Strategies = []Strategy{
	StrategyGenerationRange,
	StrategyBranch,
	StrategyLineage,
	StrategyCollection,
	StrategyAncestorDescendant,
	StrategySurname,
}

// Config is the closed set of strategy configurations. Only the six config
// types in this package implement it.
type Config interface {
	Strategy() Strategy
	isConfig()
}

// Direction restricts a generation-range walk.
type Direction string

const (
	DirectionAncestors   Direction = "ancestors"
	DirectionDescendants Direction = "descendants"
	DirectionBoth        Direction = "both"
)

// BridgeHandling decides where a person tagged with several selected
// collections ends up.
type BridgeHandling string

const (
	BridgeDuplicate   BridgeHandling = "duplicate"    // in every matching partition
	BridgePrimaryOnly BridgeHandling = "primary-only" // first matching tag only
)

// GenerationRangeConfig buckets everyone related to the root by generation.
type GenerationRangeConfig struct {
	RootID                  string    `json:"rootId" yaml:"rootId" validate:"required"`
	GenerationsPerPartition int       `json:"generationsPerPartition" yaml:"generationsPerPartition" validate:"min=1"`
	Direction               Direction `json:"direction,omitempty" yaml:"direction,omitempty" validate:"omitempty,oneof=ancestors descendants both"`
}

// BranchConfig splits an anchor's tree into paternal, maternal and
// descendant branches.
type BranchConfig struct {
	AnchorID       string `json:"anchorId" yaml:"anchorId" validate:"required"`
	Paternal       bool   `json:"paternal,omitempty" yaml:"paternal,omitempty"`
	Maternal       bool   `json:"maternal,omitempty" yaml:"maternal,omitempty"`
	Descendant     bool   `json:"descendant,omitempty" yaml:"descendant,omitempty"`
	MaxGenerations int    `json:"maxGenerations,omitempty" yaml:"maxGenerations,omitempty" validate:"gte=0"`
}

// LineageConfig extracts the direct line between two people.
type LineageConfig struct {
	StartID         string `json:"startId" yaml:"startId" validate:"required"`
	EndID           string `json:"endId" yaml:"endId" validate:"required"`
	IncludeSpouses  bool   `json:"includeSpouses,omitempty" yaml:"includeSpouses,omitempty"`
	IncludeSiblings bool   `json:"includeSiblings,omitempty" yaml:"includeSiblings,omitempty"`
}

// CollectionConfig groups people by their collection tags.
type CollectionConfig struct {
	Collections    []string       `json:"collections" yaml:"collections"`
	BridgeHandling BridgeHandling `json:"bridgeHandling,omitempty" yaml:"bridgeHandling,omitempty" validate:"omitempty,oneof=duplicate primary-only"`
}

// AncestorDescendantConfig splits the tree around a root into its
// ancestors and its descendants.
type AncestorDescendantConfig struct {
	RootID                   string `json:"rootId" yaml:"rootId" validate:"required"`
	IncludeSpouses           bool   `json:"includeSpouses,omitempty" yaml:"includeSpouses,omitempty"`
	MaxAncestorGenerations   int    `json:"maxAncestorGenerations,omitempty" yaml:"maxAncestorGenerations,omitempty" validate:"gte=0"`
	MaxDescendantGenerations int    `json:"maxDescendantGenerations,omitempty" yaml:"maxDescendantGenerations,omitempty" validate:"gte=0"`
}

// SurnameConfig groups people by surname regardless of connectivity.
type SurnameConfig struct {
	Surnames           []string `json:"surnames" yaml:"surnames"`
	IncludeSpouses     bool     `json:"includeSpouses,omitempty" yaml:"includeSpouses,omitempty"`
	IncludeMaidenNames bool     `json:"includeMaidenNames,omitempty" yaml:"includeMaidenNames,omitempty"`
	HandleVariants     bool     `json:"handleVariants,omitempty" yaml:"handleVariants,omitempty"`
	SeparatePartitions bool     `json:"separatePartitions,omitempty" yaml:"separatePartitions,omitempty"`
}

func (GenerationRangeConfig) Strategy() Strategy    { return StrategyGenerationRange }
func (BranchConfig) Strategy() Strategy             { return StrategyBranch }
func (LineageConfig) Strategy() Strategy            { return StrategyLineage }
func (CollectionConfig) Strategy() Strategy         { return StrategyCollection }
func (AncestorDescendantConfig) Strategy() Strategy { return StrategyAncestorDescendant }
func (SurnameConfig) Strategy() Strategy            { return StrategySurname }

func (GenerationRangeConfig) isConfig()    {}
func (BranchConfig) isConfig()             {}
func (LineageConfig) isConfig()            {}
func (CollectionConfig) isConfig()         {}
func (AncestorDescendantConfig) isConfig() {}
func (SurnameConfig) isConfig()            {}

// configValidate checks struct tags on every config type.
var configValidate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural completeness only: required ids present and
// enumerations in range. Whether a config is meaningful (no surnames
// selected, no branches toggled) is reported later as a warning.
func Validate(cfg Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	cfg = deref(cfg)
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := configValidate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, cfg.Strategy(), strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// deref turns pointer configs into values so dispatch only deals with the
// six value types. A nil pointer becomes a nil Config.
func deref(cfg Config) Config {
	switch c := cfg.(type) {
	case *GenerationRangeConfig:
		if c == nil {
			return nil
		}
		return *c
	case *BranchConfig:
		if c == nil {
			return nil
		}
		return *c
	case *LineageConfig:
		if c == nil {
			return nil
		}
		return *c
	case *CollectionConfig:
		if c == nil {
			return nil
		}
		return *c
	case *AncestorDescendantConfig:
		if c == nil {
			return nil
		}
		return *c
	case *SurnameConfig:
		if c == nil {
			return nil
		}
		return *c
	default:
		return cfg
	}
}

// StrategyOf returns the strategy of cfg, or "" for a nil config.
func StrategyOf(cfg Config) Strategy {
	if c := deref(cfg); c != nil {
		return c.Strategy()
	}
	return ""
}
