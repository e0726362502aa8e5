package value

import (
	"context"
)

// Provider resolves a value from a per-record context. Providers are built
// once at configuration-load time, hold no per-record state, and must be
// deterministic: resolving twice against the same context yields the same
// result with no side effects on the record.
type Provider interface {
	// SingleValue resolves one scalar from the context.
	SingleValue(ctx context.Context, pctx *Context) (any, error)
	// ManyValues resolves a sequence; scalar results are returned as a
	// one-element sequence.
	ManyValues(ctx context.Context, pctx *Context) ([]any, error)
}

// NormalizeSingleValue resolves one value and applies the normalization set
// to it. Comparisons normalize both operands through this same path so that
// normalization can never be one-sided.
func NormalizeSingleValue(ctx context.Context, p Provider, pctx *Context, n Normalization) (any, error) {
	v, err := p.SingleValue(ctx, pctx)
	if err != nil {
		return nil, err
	}
	return n.Apply(v), nil
}

// Guarantee wraps a literal into a Static provider; values that already are
// providers pass through. Downstream logic never special-cases literals.
func Guarantee(v any) Provider {
	if p, ok := v.(Provider); ok {
		return p
	}
	return Static{Value: v}
}

// GuaranteeList applies Guarantee to each element.
func GuaranteeList(vs []any) []Provider {
	out := make([]Provider, len(vs))
	for i, v := range vs {
		out[i] = Guarantee(v)
	}
	return out
}
