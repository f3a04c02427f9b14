package partition

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// envelope carries only the discriminator of a serialized Config.
type envelope struct {
	Strategy Strategy `json:"strategy" yaml:"strategy"`
}

// MarshalConfig encodes cfg as a flat JSON object with a "strategy" field
// next to the strategy's own fields. Object keys are sorted, so the output
// is canonical and usable as a cache key.
func MarshalConfig(cfg Config) ([]byte, error) {
	cfg = deref(cfg)
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	fields["strategy"] = cfg.Strategy()
	return json.Marshal(fields)
}

// UnmarshalConfig decodes the output of MarshalConfig (or a hand-written
// document of the same shape) into the matching Config type.
func UnmarshalConfig(data []byte) (Config, error) {
	return decodeConfig(json.Unmarshal, data)
}

// UnmarshalConfigYAML decodes a YAML strategy document straight into the
// matching Config type. Unquoted scalars such as `startId: 42` land in
// string fields as written.
func UnmarshalConfigYAML(data []byte) (Config, error) {
	return decodeConfig(yaml.Unmarshal, data)
}

type unmarshalFunc func([]byte, any) error

func decodeConfig(unmarshal unmarshalFunc, data []byte) (Config, error) {
	var env envelope
	if err := unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var (
		cfg Config
		err error
	)
	switch env.Strategy {
	case StrategyGenerationRange:
		cfg, err = decodeAs[GenerationRangeConfig](unmarshal, data)
	case StrategyBranch:
		cfg, err = decodeAs[BranchConfig](unmarshal, data)
	case StrategyLineage:
		cfg, err = decodeAs[LineageConfig](unmarshal, data)
	case StrategyCollection:
		cfg, err = decodeAs[CollectionConfig](unmarshal, data)
	case StrategyAncestorDescendant:
		cfg, err = decodeAs[AncestorDescendantConfig](unmarshal, data)
	case StrategySurname:
		cfg, err = decodeAs[SurnameConfig](unmarshal, data)
	case "":
		return nil, fmt.Errorf("%w: missing strategy field", ErrInvalidConfig)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, env.Strategy)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, env.Strategy, err)
	}
	return cfg, nil
}

func decodeAs[T Config](unmarshal unmarshalFunc, data []byte) (Config, error) {
	var v T
	if err := unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
