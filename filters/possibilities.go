package filters

import (
	"context"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/value"
)

// ValuesMatchPossibilities drops a record unless every configured matcher
// matches it: a record survives iff all fields match their declared
// possibilities.
type ValuesMatchPossibilities struct {
	matchers []*ValueMatcher
}

// ValuesMatchPossibilitiesFromConfig builds the predicate from
// {fields: [{value: ..., possibilities: [...]}, ...]}.
func ValuesMatchPossibilitiesFromConfig(path string, cfg map[string]any) (*ValuesMatchPossibilities, error) {
	rawFields, ok := cfg["fields"].([]any)
	if !ok || len(rawFields) == 0 {
		return nil, graft.ConfigErrorf(path+"/fields", "values_match_possibilities requires a non-empty fields list")
	}
	matchers := make([]*ValueMatcher, 0, len(rawFields))
	for i, rawField := range rawFields {
		fieldCfg, ok := rawField.(map[string]any)
		if !ok {
			return nil, graft.ConfigErrorf(graft.ChildPath(path+"/fields", i), "each field must be a mapping")
		}
		m, err := ValueMatcherFromConfig(graft.ChildPath(path+"/fields", i), fieldCfg)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return &ValuesMatchPossibilities{matchers: matchers}, nil
}

// FilterRecord reports true (drop) when any matcher fails to match.
func (f *ValuesMatchPossibilities) FilterRecord(ctx context.Context, r graft.Record) (bool, error) {
	pctx := value.NewContext(r)
	for _, m := range f.matchers {
		ok, err := m.DoesMatch(ctx, pctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
	}
	return false, nil
}

// ExcludeWhenValuesMatchPossibilities is the exact logical complement of
// ValuesMatchPossibilities: a record is dropped iff all matchers match.
type ExcludeWhenValuesMatchPossibilities struct {
	inner *ValuesMatchPossibilities
}

// ExcludeWhenValuesMatchPossibilitiesFromConfig accepts the same
// configuration shape as ValuesMatchPossibilitiesFromConfig.
func ExcludeWhenValuesMatchPossibilitiesFromConfig(path string, cfg map[string]any) (*ExcludeWhenValuesMatchPossibilities, error) {
	inner, err := ValuesMatchPossibilitiesFromConfig(path, cfg)
	if err != nil {
		return nil, err
	}
	return &ExcludeWhenValuesMatchPossibilities{inner: inner}, nil
}

func (f *ExcludeWhenValuesMatchPossibilities) FilterRecord(ctx context.Context, r graft.Record) (bool, error) {
	drop, err := f.inner.FilterRecord(ctx, r)
	if err != nil {
		return false, err
	}
	return !drop, nil
}
