package value

import (
	"sort"
	"strings"

	graft "github.com/graftdata/graft"
)

// A normalizer rewrites one resolved value before comparison or use. All
// registered normalizers are idempotent.
type normalizer func(v any) any

// Normalizer names accepted in normalization configuration blocks, each
// keyed as do_<name>: true.
var normalizers = map[string]normalizer{
	"lowercase_strings": func(v any) any {
		if s, ok := v.(string); ok {
			return strings.ToLower(s)
		}
		return v
	},
	"trim_whitespace": func(v any) any {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		return v
	},
	"remove_trailing_dots": func(v any) any {
		if s, ok := v.(string); ok {
			return strings.TrimRight(s, ".")
		}
		return v
	},
}

// Normalization is a compiled set of value transforms. The zero value applies
// nothing.
type Normalization struct {
	ops []normalizer
}

// NormalizationFromConfig compiles a normalization block such as
// {do_lowercase_strings: true}. Unknown flag names fail fast. The path names
// the configuration node for error reporting.
func NormalizationFromConfig(path string, cfg map[string]any) (Normalization, error) {
	if len(cfg) == 0 {
		return Normalization{}, nil
	}
	// Deterministic application order regardless of map iteration.
	names := make([]string, 0, len(cfg))
	for name := range cfg {
		names = append(names, name)
	}
	sort.Strings(names)

	var n Normalization
	for _, name := range names {
		enabled, ok := cfg[name].(bool)
		if !ok {
			return Normalization{}, graft.ConfigErrorf(path+"/"+name, "normalization flag must be a boolean, got %T", cfg[name])
		}
		key, found := strings.CutPrefix(name, "do_")
		if !found {
			return Normalization{}, graft.ConfigErrorf(path+"/"+name, "normalization flags are named do_<normalizer>")
		}
		op, known := normalizers[key]
		if !known {
			return Normalization{}, graft.ConfigErrorf(path+"/"+name, "unknown normalizer %q", key)
		}
		if enabled {
			n.ops = append(n.ops, op)
		}
	}
	return n, nil
}

// Apply runs every configured transform over the value, in order.
func (n Normalization) Apply(v any) any {
	for _, op := range n.ops {
		v = op(v)
	}
	return v
}
