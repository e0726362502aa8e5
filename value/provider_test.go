package value_test

import (
	"context"
	"testing"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/value"
	"github.com/stretchr/testify/require"
)

func TestGuaranteeWrapsLiterals(t *testing.T) {
	ctx := context.Background()
	pctx := value.NewContext(graft.Record{})

	p := value.Guarantee("hello")
	v, err := p.SingleValue(ctx, pctx)
	require.NoError(t, err)
	require.Equal(t, "hello", v)

	// A value that already is a provider passes through unchanged.
	require.Equal(t, p, value.Guarantee(p))
}

func TestStaticManyValues(t *testing.T) {
	ctx := context.Background()
	pctx := value.NewContext(graft.Record{})

	vs, err := value.Static{Value: []any{1, 2}}.ManyValues(ctx, pctx)
	require.NoError(t, err)
	require.Equal(t, []any{1, 2}, vs)

	vs, err = value.Static{Value: "solo"}.ManyValues(ctx, pctx)
	require.NoError(t, err)
	require.Equal(t, []any{"solo"}, vs)
}

func TestJMESPathResolvesRecordFields(t *testing.T) {
	ctx := context.Background()
	pctx := value.NewContext(graft.Record{
		"person": map[string]any{"name": "Ada"},
	})

	p, err := value.JMESPathFromExpression("/test", "person.name")
	require.NoError(t, err)
	v, err := p.SingleValue(ctx, pctx)
	require.NoError(t, err)
	require.Equal(t, "Ada", v)
}

func TestJMESPathAcceptsDollarPrefix(t *testing.T) {
	ctx := context.Background()
	pctx := value.NewContext(graft.Record{"type": "person"})

	p, err := value.FromConfig("/test", "$.type")
	require.NoError(t, err)
	v, err := p.SingleValue(ctx, pctx)
	require.NoError(t, err)
	require.Equal(t, "person", v)
}

func TestJMESPathMissingFieldIsResolutionError(t *testing.T) {
	ctx := context.Background()
	pctx := value.NewContext(graft.Record{"other": 1})

	p, err := value.JMESPathFromExpression("/test", "missing")
	require.NoError(t, err)
	_, err = p.SingleValue(ctx, pctx)
	require.Error(t, err)
	require.True(t, graft.HasCode(err, graft.CodeResolutionFailed))
}

func TestJMESPathInvalidExpressionFailsAtConstruction(t *testing.T) {
	_, err := value.JMESPathFromExpression("/test", "][")
	require.Error(t, err)
	require.True(t, graft.HasCode(err, graft.CodeInvalidConfig))
}

func TestVariableProvider(t *testing.T) {
	ctx := context.Background()
	pctx := value.NewContext(graft.Record{})
	pctx.SetVariable("region", "emea")

	p, err := value.FromConfig("/test", map[string]any{"variable": "region"})
	require.NoError(t, err)
	v, err := p.SingleValue(ctx, pctx)
	require.NoError(t, err)
	require.Equal(t, "emea", v)

	missing, err := value.FromConfig("/test", map[string]any{"variable": "absent"})
	require.NoError(t, err)
	_, err = missing.SingleValue(ctx, pctx)
	require.True(t, graft.HasCode(err, graft.CodeResolutionFailed))
}

func TestFormatProvider(t *testing.T) {
	ctx := context.Background()
	pctx := value.NewContext(graft.Record{"first": "Ada", "last": "Lovelace"})

	p, err := value.FromConfig("/test", map[string]any{
		"format": map[string]any{
			"template": "{first} {last}",
			"values": map[string]any{
				"first": map[string]any{"jmespath": "first"},
				"last":  map[string]any{"jmespath": "last"},
			},
		},
	})
	require.NoError(t, err)
	v, err := p.SingleValue(ctx, pctx)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", v)
}

func TestFormatRejectsPrintfVerbs(t *testing.T) {
	_, err := value.FromConfig("/test", map[string]any{
		"format": map[string]any{
			"template": "%s-{a}",
			"values":   map[string]any{"a": "x"},
		},
	})
	require.Error(t, err)
	require.True(t, graft.HasCode(err, graft.CodeInvalidConfig))
}

func TestFormatUnboundPlaceholderFailsAtConstruction(t *testing.T) {
	_, err := value.FromConfig("/test", map[string]any{
		"format": map[string]any{"template": "{oops}"},
	})
	require.Error(t, err)
	require.True(t, graft.HasCode(err, graft.CodeInvalidConfig))
}

func TestSingleKeyDataMappingStaysStatic(t *testing.T) {
	ctx := context.Background()
	pctx := value.NewContext(graft.Record{})

	p, err := value.FromConfig("/test", map[string]any{"country": "fr"})
	require.NoError(t, err)
	v, err := p.SingleValue(ctx, pctx)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"country": "fr"}, v)
}
