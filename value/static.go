package value

import "context"

// Static is the trivial provider: it always yields the literal it was built
// with, ignoring the record.
type Static struct {
	Value any
}

func (s Static) SingleValue(ctx context.Context, pctx *Context) (any, error) {
	return s.Value, nil
}

func (s Static) ManyValues(ctx context.Context, pctx *Context) ([]any, error) {
	if vs, ok := s.Value.([]any); ok {
		return vs, nil
	}
	return []any{s.Value}, nil
}
