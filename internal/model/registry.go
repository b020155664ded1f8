package model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lripredict/backend/internal/domain"
)

// Role identifies one of the three trained models.
type Role int

const (
	// RoleClassifier predicts the arcuate category code (0/1/2).
	RoleClassifier Role = iota
	// RoleSingleLength predicts LRI length for single-arcuate cases.
	RoleSingleLength
	// RolePairedLength predicts LRI length for paired-arcuate cases.
	RolePairedLength
)

func (r Role) String() string {
	switch r {
	case RoleClassifier:
		return "classifier"
	case RoleSingleLength:
		return "single-length"
	case RolePairedLength:
		return "paired-length"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// configKey returns the model's key in the configuration file. The keys
// follow the training pipeline's naming (model1/model2/model3).
func (r Role) configKey() string {
	switch r {
	case RoleClassifier:
		return "model1"
	case RoleSingleLength:
		return "model2"
	case RolePairedLength:
		return "model3"
	default:
		return ""
	}
}

type modelConfig struct {
	FeatureColumns []string `json:"feature_columns"`
}

// LoadFeatureConfig reads the per-model ordered feature-name lists from a
// model_configs.json-style file produced by the training pipeline.
func LoadFeatureConfig(path string) (map[Role][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model config: %w", err)
	}
	return ParseFeatureConfig(data)
}

// ParseFeatureConfig decodes the model configuration document.
func ParseFeatureConfig(data []byte) (map[Role][]string, error) {
	var raw map[string]modelConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("model config: invalid JSON: %w", err)
	}

	features := make(map[Role][]string, 3)
	for _, role := range []Role{RoleClassifier, RoleSingleLength, RolePairedLength} {
		cfg, ok := raw[role.configKey()]
		if !ok {
			return nil, fmt.Errorf("model config: missing entry %q", role.configKey())
		}
		features[role] = cfg.FeatureColumns
	}

	return features, nil
}

type registryEntry struct {
	scorer   Scorer
	features []string
}

// Registry maps each model role to its scorer and the ordered feature
// names that model expects. Immutable after construction; shared by all
// requests.
type Registry struct {
	entries map[Role]registryEntry
}

// NewRegistry builds the registry and validates it eagerly: every role
// must have a scorer and a non-empty feature list, and every configured
// feature name must be one the Feature Builder actually produces. A bad
// deployment fails here, before the first request, instead of midway
// through a scoring call.
func NewRegistry(scorers map[Role]Scorer, features map[Role][]string) (*Registry, error) {
	known := make(map[string]bool, len(domain.FeatureNames()))
	for _, name := range domain.FeatureNames() {
		known[name] = true
	}

	entries := make(map[Role]registryEntry, 3)
	for _, role := range []Role{RoleClassifier, RoleSingleLength, RolePairedLength} {
		scorer, ok := scorers[role]
		if !ok || scorer == nil {
			return nil, fmt.Errorf("registry: no scorer for %s model", role)
		}

		cols := features[role]
		if len(cols) == 0 {
			return nil, fmt.Errorf("registry: empty feature list for %s model", role)
		}
		for _, name := range cols {
			if !known[name] {
				return nil, fmt.Errorf("registry: %s model: %w", role,
					&domain.MissingFeatureError{Model: role.String(), Feature: name})
			}
		}

		entries[role] = registryEntry{scorer: scorer, features: cols}
	}

	return &Registry{entries: entries}, nil
}

// Features returns the ordered feature names configured for a role.
func (r *Registry) Features(role Role) []string {
	return r.entries[role].features
}

// Vector restricts a built feature vector to the role's configured names,
// in their configured order.
func (r *Registry) Vector(role Role, fv domain.FeatureVector) ([]float64, error) {
	entry, ok := r.entries[role]
	if !ok {
		return nil, fmt.Errorf("registry: unknown model role %s", role)
	}

	values := make([]float64, 0, len(entry.features))
	for _, name := range entry.features {
		v, ok := fv[name]
		if !ok {
			return nil, &domain.MissingFeatureError{Model: role.String(), Feature: name}
		}
		values = append(values, v)
	}

	return values, nil
}

// Score restricts the feature vector for the role's model and invokes it.
func (r *Registry) Score(ctx context.Context, role Role, fv domain.FeatureVector) (float64, error) {
	values, err := r.Vector(role, fv)
	if err != nil {
		return 0, err
	}
	return r.entries[role].scorer.Score(ctx, values)
}
