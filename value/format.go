package value

import (
	"context"
	"fmt"
	"sort"
	"strings"

	graft "github.com/graftdata/graft"
)

// Format composes a string from other providers. The template uses {name}
// placeholders; each name must be bound to a sub-provider in the values
// block. Placeholders without a binding fail at construction.
type Format struct {
	template string
	values   map[string]Provider
}

// FormatFromConfig builds a Format provider from
// {template: "...", values: {name: <provider config>}}.
func FormatFromConfig(path string, cfg map[string]any) (*Format, error) {
	template, ok := cfg["template"].(string)
	if !ok {
		return nil, graft.ConfigErrorf(path+"/template", "format requires a string template")
	}
	if strings.ContainsRune(template, '%') {
		return nil, graft.ConfigErrorf(path+"/template", "templates bind values with {name} placeholders; printf-style verbs are not supported")
	}
	values := make(map[string]Provider)
	if raw, present := cfg["values"]; present {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, graft.ConfigErrorf(path+"/values", "values must be a mapping of name to provider")
		}
		for name, sub := range m {
			p, err := FromConfig(path+"/values/"+name, sub)
			if err != nil {
				return nil, err
			}
			values[name] = p
		}
	}
	for _, name := range placeholderNames(template) {
		if _, bound := values[name]; !bound {
			return nil, graft.ConfigErrorf(path+"/template", "placeholder {%s} has no binding under values", name)
		}
	}
	return &Format{template: template, values: values}, nil
}

func placeholderNames(template string) []string {
	var names []string
	rest := template
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			break
		}
		names = append(names, rest[start+1:start+end])
		rest = rest[start+end+1:]
	}
	sort.Strings(names)
	return names
}

func (f *Format) SingleValue(ctx context.Context, pctx *Context) (any, error) {
	out := f.template
	for name, p := range f.values {
		v, err := p.SingleValue(ctx, pctx)
		if err != nil {
			return nil, err
		}
		out = strings.ReplaceAll(out, "{"+name+"}", fmt.Sprint(v))
	}
	return out, nil
}

func (f *Format) ManyValues(ctx context.Context, pctx *Context) ([]any, error) {
	v, err := f.SingleValue(ctx, pctx)
	if err != nil {
		return nil, err
	}
	return []any{v}, nil
}
