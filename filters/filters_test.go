package filters_test

import (
	"context"
	"testing"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/filters"
	"github.com/graftdata/graft/value"
	"github.com/stretchr/testify/require"
)

func matcherFields(fields ...map[string]any) map[string]any {
	raw := make([]any, len(fields))
	for i, f := range fields {
		raw[i] = f
	}
	return map[string]any{"fields": raw}
}

func TestValueMatcherMembership(t *testing.T) {
	ctx := context.Background()
	m, err := filters.ValueMatcherFromConfig("/test", map[string]any{
		"value":         map[string]any{"jmespath": "kind"},
		"possibilities": []any{"a", "b"},
	})
	require.NoError(t, err)

	ok, err := m.DoesMatch(ctx, value.NewContext(graft.Record{"kind": "b"}))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.DoesMatch(ctx, value.NewContext(graft.Record{"kind": "c"}))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValueMatcherNormalizesBothSides(t *testing.T) {
	ctx := context.Background()
	m, err := filters.ValueMatcherFromConfig("/test", map[string]any{
		"value":         map[string]any{"jmespath": "kind"},
		"possibilities": []any{"ALPHA"},
		"normalization": map[string]any{"do_lowercase_strings": true},
	})
	require.NoError(t, err)

	// The possibility is uppercase in configuration and the record value is
	// mixed case; normalization applies to both, so they still meet.
	ok, err := m.DoesMatch(ctx, value.NewContext(graft.Record{"kind": "Alpha"}))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestValueMatcherNumericEquality(t *testing.T) {
	ctx := context.Background()
	m, err := filters.ValueMatcherFromConfig("/test", map[string]any{
		"value":         map[string]any{"jmespath": "n"},
		"possibilities": []any{42},
	})
	require.NoError(t, err)

	// JSON-decoded records carry float64; YAML config carries int.
	ok, err := m.DoesMatch(ctx, value.NewContext(graft.Record{"n": float64(42)}))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestValuesMatchPossibilitiesSurvivesIffAllMatch(t *testing.T) {
	ctx := context.Background()
	pred, err := filters.ValuesMatchPossibilitiesFromConfig("/test", matcherFields(
		map[string]any{"value": map[string]any{"jmespath": "kind"}, "possibilities": []any{"person"}},
		map[string]any{"value": map[string]any{"jmespath": "region"}, "possibilities": []any{"emea", "apac"}},
	))
	require.NoError(t, err)

	drop, err := pred.FilterRecord(ctx, graft.Record{"kind": "person", "region": "emea"})
	require.NoError(t, err)
	require.False(t, drop)

	drop, err = pred.FilterRecord(ctx, graft.Record{"kind": "person", "region": "amer"})
	require.NoError(t, err)
	require.True(t, drop)

	drop, err = pred.FilterRecord(ctx, graft.Record{"kind": "place", "region": "emea"})
	require.NoError(t, err)
	require.True(t, drop)
}

func TestRemovingAMatcherNeverDropsASurvivor(t *testing.T) {
	ctx := context.Background()
	record := graft.Record{"kind": "person", "region": "emea"}

	both, err := filters.ValuesMatchPossibilitiesFromConfig("/test", matcherFields(
		map[string]any{"value": map[string]any{"jmespath": "kind"}, "possibilities": []any{"person"}},
		map[string]any{"value": map[string]any{"jmespath": "region"}, "possibilities": []any{"emea"}},
	))
	require.NoError(t, err)
	drop, err := both.FilterRecord(ctx, record)
	require.NoError(t, err)
	require.False(t, drop)

	one, err := filters.ValuesMatchPossibilitiesFromConfig("/test", matcherFields(
		map[string]any{"value": map[string]any{"jmespath": "kind"}, "possibilities": []any{"person"}},
	))
	require.NoError(t, err)
	drop, err = one.FilterRecord(ctx, record)
	require.NoError(t, err)
	require.False(t, drop)
}

func TestExcludeIsExactComplement(t *testing.T) {
	ctx := context.Background()
	cfg := matcherFields(
		map[string]any{"value": map[string]any{"jmespath": "kind"}, "possibilities": []any{"person"}},
		map[string]any{"value": map[string]any{"jmespath": "region"}, "possibilities": []any{"emea"}},
	)
	keep, err := filters.ValuesMatchPossibilitiesFromConfig("/test", cfg)
	require.NoError(t, err)
	exclude, err := filters.ExcludeWhenValuesMatchPossibilitiesFromConfig("/test", cfg)
	require.NoError(t, err)

	records := []graft.Record{
		{"kind": "person", "region": "emea"},
		{"kind": "person", "region": "amer"},
		{"kind": "place", "region": "emea"},
		{"kind": "place", "region": "amer"},
	}
	for _, r := range records {
		dropKeep, err := keep.FilterRecord(ctx, r)
		require.NoError(t, err)
		dropExclude, err := exclude.FilterRecord(ctx, r)
		require.NoError(t, err)
		require.NotEqual(t, dropKeep, dropExclude, "record %v", r)
	}
}

func TestRegexMatcherPolarity(t *testing.T) {
	ctx := context.Background()

	include, err := filters.RegexMatcherFromConfig("/test", map[string]any{
		"value":   map[string]any{"jmespath": "name"},
		"regex":   "al",
		"include": true,
	})
	require.NoError(t, err)
	exclude, err := filters.RegexMatcherFromConfig("/test", map[string]any{
		"value":   map[string]any{"jmespath": "name"},
		"regex":   "al",
		"include": false,
	})
	require.NoError(t, err)

	matching := value.NewContext(graft.Record{"name": "alpha"})
	nonMatching := value.NewContext(graft.Record{"name": "beta"})

	// include=true: drop verdict is false exactly when the regex matches at
	// the start of the value.
	drop, err := include.ShouldInclude(ctx, matching)
	require.NoError(t, err)
	require.False(t, drop)
	drop, err = include.ShouldInclude(ctx, nonMatching)
	require.NoError(t, err)
	require.True(t, drop)

	// include=false: drop verdict is true exactly when it matches.
	drop, err = exclude.ShouldInclude(ctx, matching)
	require.NoError(t, err)
	require.True(t, drop)
	drop, err = exclude.ShouldInclude(ctx, nonMatching)
	require.NoError(t, err)
	require.False(t, drop)
}

func TestRegexMatchesFromStartOnly(t *testing.T) {
	ctx := context.Background()
	m, err := filters.RegexMatcherFromConfig("/test", map[string]any{
		"value": map[string]any{"jmespath": "name"},
		"regex": "pha",
	})
	require.NoError(t, err)

	// "pha" occurs mid-string, which is not a match from the start.
	drop, err := m.ShouldInclude(ctx, value.NewContext(graft.Record{"name": "alpha"}))
	require.NoError(t, err)
	require.True(t, drop)
}

func TestRegexNonStringSubjectIsResolutionError(t *testing.T) {
	ctx := context.Background()
	m, err := filters.RegexMatcherFromConfig("/test", map[string]any{
		"value": map[string]any{"jmespath": "n"},
		"regex": "[0-9]+",
	})
	require.NoError(t, err)

	_, err = m.ShouldInclude(ctx, value.NewContext(graft.Record{"n": float64(42)}))
	require.Error(t, err)
	require.True(t, graft.HasCode(err, graft.CodeResolutionFailed))
}

func TestRegexFilterEndToEnd(t *testing.T) {
	ctx := context.Background()
	pred, err := filters.ValueMatchesRegexFromConfig("/test", map[string]any{
		"value":   map[string]any{"jmespath": "name"},
		"regex":   "a[0-9]+",
		"include": true,
	})
	require.NoError(t, err)
	out := graft.Chain(
		graft.FromRecords(
			graft.Record{"name": "a123"},
			graft.Record{"name": "b123"},
			graft.Record{"name": "a9"},
		),
		graft.NewFilter(pred),
	)
	records, err := graft.CollectRecords(ctx, out)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "a123", records[0]["name"])
	require.Equal(t, "a9", records[1]["name"])
}

func TestFlushTraversesFilterChainUntouched(t *testing.T) {
	ctx := context.Background()
	keepNone, err := filters.ValuesMatchPossibilitiesFromConfig("/test", matcherFields(
		map[string]any{"value": map[string]any{"jmespath": "kind"}, "possibilities": []any{"never"}},
	))
	require.NoError(t, err)
	excludeAll, err := filters.ExcludeWhenValuesMatchPossibilitiesFromConfig("/test", matcherFields(
		map[string]any{"value": "x", "possibilities": []any{"x"}},
	))
	require.NoError(t, err)

	out := graft.Chain(
		graft.FromItems(graft.Flush, graft.RecordItem(graft.Record{"kind": "person"}), graft.Flush),
		graft.NewFilter(keepNone),
		graft.NewFilter(excludeAll),
	)
	items, err := graft.Collect(ctx, out)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.True(t, items[0].Flush)
	require.True(t, items[1].Flush)
}

func TestMatcherConfigurationFailsFast(t *testing.T) {
	_, err := filters.ValueMatcherFromConfig("/test", map[string]any{
		"possibilities": []any{"a"},
	})
	require.Error(t, err)
	require.True(t, graft.HasCode(err, graft.CodeInvalidConfig))

	_, err = filters.ValuesMatchPossibilitiesFromConfig("/test", map[string]any{})
	require.Error(t, err)

	_, err = filters.RegexMatcherFromConfig("/test", map[string]any{
		"value": "x",
		"regex": "(",
	})
	require.Error(t, err)
	require.True(t, graft.HasCode(err, graft.CodeInvalidConfig))
}

func TestMissingFieldPropagatesResolutionError(t *testing.T) {
	ctx := context.Background()
	pred, err := filters.ValuesMatchPossibilitiesFromConfig("/test", matcherFields(
		map[string]any{"value": map[string]any{"jmespath": "absent"}, "possibilities": []any{"x"}},
	))
	require.NoError(t, err)

	_, err = pred.FilterRecord(ctx, graft.Record{"other": 1})
	require.Error(t, err)
	require.True(t, graft.HasCode(err, graft.CodeResolutionFailed))
}
