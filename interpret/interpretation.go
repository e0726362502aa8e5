package interpret

import (
	"context"
	"sort"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/schema"
	"github.com/graftdata/graft/value"
)

// Interpretation is one configured rule: a pure function of the per-record
// context (plus the immutable configuration baked in at construction) that
// adds to the record's ingestion. Every interpretation also enumerates the
// sub-interpretations it owns so the schema coordinator can traverse the
// compiled tree without evaluating data.
type Interpretation interface {
	Interpret(ctx context.Context, ictx *Context) error
	SubordinateComponents() []schema.Component
}

// Constructor builds an interpretation from its declarative arguments. The
// path names the configuration node for error reporting.
type Constructor func(path string, args map[string]any) (Interpretation, error)

var registry = map[string]Constructor{}

// Register installs a constructor under a declarative type name. Kinds are
// registered at package init; later registrations replace earlier ones.
func Register(kind string, c Constructor) { registry[kind] = c }

func init() {
	Register("switch", SwitchFromConfig)
	Register("source_node", SourceNodeFromConfig)
	Register("relationship", RelationshipFromConfig)
	Register("properties", PropertiesFromConfig)
	Register("variables", VariablesFromConfig)
}

// FromConfig compiles one interpretation configuration of the form
// {type: <kind>, ...args}. Unknown kinds and malformed arguments fail here,
// before any record is processed.
func FromConfig(path string, cfg map[string]any) (Interpretation, error) {
	kind, ok := cfg["type"].(string)
	if !ok {
		return nil, graft.ConfigErrorf(path+"/type", "interpretation requires a string type")
	}
	ctor, known := registry[kind]
	if !known {
		return nil, graft.Issues{{
			Path:    path + "/type",
			Code:    graft.CodeUnknownKind,
			Message: "unknown interpretation type",
			Params:  map[string]any{"type": kind, "known": knownKinds()},
		}}
	}
	args := make(map[string]any, len(cfg))
	for k, v := range cfg {
		if k != "type" {
			args[k] = v
		}
	}
	return ctor(path, args)
}

func knownKinds() []string {
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// providerMapFromConfig compiles a {name: provider config} block.
func providerMapFromConfig(path string, raw any) (map[string]value.Provider, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, graft.ConfigErrorf(path, "expected a mapping of name to value, got %T", raw)
	}
	out := make(map[string]value.Provider, len(m))
	for name, sub := range m {
		p, err := value.FromConfig(path+"/"+name, sub)
		if err != nil {
			return nil, err
		}
		out[name] = p
	}
	return out, nil
}

// declaredType infers the schema type a provider will produce. Only static
// literals carry a usable type at configuration time; dynamic providers
// declare the wildcard.
func declaredType(p value.Provider) schema.PropertyType {
	s, ok := p.(value.Static)
	if !ok {
		return schema.TypeAny
	}
	switch s.Value.(type) {
	case string:
		return schema.TypeString
	case bool:
		return schema.TypeBoolean
	case int, int64, float64, float32, uint64:
		return schema.TypeNumber
	default:
		return schema.TypeAny
	}
}

// declaredTypes maps a provider block to its inferred schema types.
func declaredTypes(providers map[string]value.Provider) map[string]schema.PropertyType {
	out := make(map[string]schema.PropertyType, len(providers))
	for name, p := range providers {
		out[name] = declaredType(p)
	}
	return out
}

// resolveAll resolves every provider in the block against the context.
func resolveAll(ctx context.Context, providers map[string]value.Provider, pctx *value.Context, n value.Normalization) (graft.Record, error) {
	out := make(graft.Record, len(providers))
	for name, p := range providers {
		v, err := value.NormalizeSingleValue(ctx, p, pctx, n)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}
