package value

import (
	"context"

	graft "github.com/graftdata/graft"
)

// Variable reads a value stashed into the context earlier in the same
// record's interpretation (see the variables interpretation).
type Variable struct {
	Name string
	path string
}

func (v Variable) SingleValue(ctx context.Context, pctx *Context) (any, error) {
	got, ok := pctx.Variables[v.Name]
	if !ok {
		return nil, graft.Issues{{
			Path:    v.path,
			Code:    graft.CodeResolutionFailed,
			Message: "variable is not set in this record's context",
			Params:  map[string]any{"variable": v.Name},
		}}
	}
	return got, nil
}

func (v Variable) ManyValues(ctx context.Context, pctx *Context) ([]any, error) {
	got, err := v.SingleValue(ctx, pctx)
	if err != nil {
		return nil, err
	}
	if vs, ok := got.([]any); ok {
		return vs, nil
	}
	return []any{got}, nil
}
