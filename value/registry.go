package value

import (
	"strings"

	graft "github.com/graftdata/graft"
)

// FromConfig builds a provider from declarative configuration. A mapping with
// exactly one key naming a provider kind selects that kind:
//
//	{jmespath: "person.name"}
//	{variable: "region"}
//	{format: {template: "{a}-{b}", values: {...}}}
//	{static: [1, 2, 3]}
//
// A bare string beginning with "$" is shorthand for a jmespath provider
// ("$.type" resolves the record's type field); use {static: ...} for a
// literal that genuinely starts with "$". Any other value is taken as a
// static literal, so case values, possibility lists, and similar config
// fields accept bare scalars directly.
func FromConfig(path string, raw any) (Provider, error) {
	if s, ok := raw.(string); ok && strings.HasPrefix(s, "$") {
		return JMESPathFromExpression(path, s)
	}
	m, ok := raw.(map[string]any)
	if !ok || len(m) != 1 {
		return Guarantee(raw), nil
	}
	for kind, arg := range m {
		switch kind {
		case "static":
			return Static{Value: arg}, nil
		case "jmespath":
			expr, ok := arg.(string)
			if !ok {
				return nil, graft.ConfigErrorf(path+"/jmespath", "jmespath expects a string expression, got %T", arg)
			}
			return JMESPathFromExpression(path+"/jmespath", expr)
		case "variable":
			name, ok := arg.(string)
			if !ok {
				return nil, graft.ConfigErrorf(path+"/variable", "variable expects a string name, got %T", arg)
			}
			return Variable{Name: name, path: path + "/variable"}, nil
		case "format":
			cfg, ok := arg.(map[string]any)
			if !ok {
				return nil, graft.ConfigErrorf(path+"/format", "format expects a mapping, got %T", arg)
			}
			return FormatFromConfig(path+"/format", cfg)
		default:
			// A single-key mapping that names no provider kind is data.
			return Guarantee(raw), nil
		}
	}
	return Guarantee(raw), nil
}

// ListFromConfig builds one provider per element of a configuration list.
func ListFromConfig(path string, raws []any) ([]Provider, error) {
	out := make([]Provider, 0, len(raws))
	for i, raw := range raws {
		p, err := FromConfig(graft.ChildPath(path, i), raw)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
