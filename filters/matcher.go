// Package filters provides the declarative predicates that decide which
// records continue downstream, together with the value matchers they are
// built from.
package filters

import (
	"context"
	"reflect"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/value"
)

// ValueMatcher tests one resolved value for membership in a set of
// possibilities. The subject and every possibility go through the same
// normalization, so normalization can never make the comparison one-sided.
type ValueMatcher struct {
	value         value.Provider
	possibilities []value.Provider
	normalization value.Normalization
}

// ValueMatcherFromConfig builds a matcher from
// {value: ..., possibilities: [...], normalization: {...}}.
func ValueMatcherFromConfig(path string, cfg map[string]any) (*ValueMatcher, error) {
	rawValue, ok := cfg["value"]
	if !ok {
		return nil, graft.ConfigErrorf(path, "matcher requires a value")
	}
	subject, err := value.FromConfig(path+"/value", rawValue)
	if err != nil {
		return nil, err
	}
	rawPoss, ok := cfg["possibilities"].([]any)
	if !ok || len(rawPoss) == 0 {
		return nil, graft.ConfigErrorf(path+"/possibilities", "matcher requires a non-empty possibilities list")
	}
	possibilities, err := value.ListFromConfig(path+"/possibilities", rawPoss)
	if err != nil {
		return nil, err
	}
	norm, err := normalizationFromConfig(path, cfg)
	if err != nil {
		return nil, err
	}
	return &ValueMatcher{value: subject, possibilities: possibilities, normalization: norm}, nil
}

// DoesMatch resolves the subject once and reports whether any possibility's
// normalized value equals the subject's normalized value.
func (m *ValueMatcher) DoesMatch(ctx context.Context, pctx *value.Context) (bool, error) {
	actual, err := value.NormalizeSingleValue(ctx, m.value, pctx, m.normalization)
	if err != nil {
		return false, err
	}
	for _, p := range m.possibilities {
		candidate, err := value.NormalizeSingleValue(ctx, p, pctx, m.normalization)
		if err != nil {
			return false, err
		}
		if equalNormalized(actual, candidate) {
			return true, nil
		}
	}
	return false, nil
}

func normalizationFromConfig(path string, cfg map[string]any) (value.Normalization, error) {
	raw, present := cfg["normalization"]
	if !present {
		return value.Normalization{}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return value.Normalization{}, graft.ConfigErrorf(path+"/normalization", "normalization must be a mapping of do_<name> flags")
	}
	return value.NormalizationFromConfig(path+"/normalization", m)
}

// equalNormalized compares two normalized values. Numeric values compare by
// magnitude so that a YAML-sourced int matches a JSON-sourced float64.
func equalNormalized(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	return aok && bok && af == bf
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
