package value

import (
	"context"
	"strings"

	graft "github.com/graftdata/graft"
	"github.com/jmespath/go-jmespath"
)

// JMESPath resolves values by searching the record with a compiled JMESPath
// expression. A nil search result is a resolution failure, never a silent
// non-match: an absent field in a rule set is a configuration problem the
// operator needs to see.
type JMESPath struct {
	expression string
	compiled   *jmespath.JMESPath
	path       string
}

// JMESPathFromExpression compiles the expression at configuration-load time.
// A leading "$." (JSONPath style) is accepted and stripped for familiarity.
func JMESPathFromExpression(path, expression string) (*JMESPath, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(expression, "$."), "$")
	compiled, err := jmespath.Compile(trimmed)
	if err != nil {
		return nil, graft.Issues{{
			Path:    path,
			Code:    graft.CodeInvalidConfig,
			Message: "invalid jmespath expression",
			Cause:   err,
			Params:  map[string]any{"expression": expression},
		}}
	}
	return &JMESPath{expression: expression, compiled: compiled, path: path}, nil
}

func (j *JMESPath) SingleValue(ctx context.Context, pctx *Context) (any, error) {
	v, err := j.compiled.Search(map[string]any(pctx.Record))
	if err != nil || v == nil {
		return nil, graft.Issues{{
			Path:    j.path,
			Code:    graft.CodeResolutionFailed,
			Message: "jmespath expression resolved no value",
			Cause:   err,
			Params:  map[string]any{"expression": j.expression},
		}}
	}
	return v, nil
}

func (j *JMESPath) ManyValues(ctx context.Context, pctx *Context) ([]any, error) {
	v, err := j.SingleValue(ctx, pctx)
	if err != nil {
		return nil, err
	}
	if vs, ok := v.([]any); ok {
		return vs, nil
	}
	return []any{v}, nil
}
