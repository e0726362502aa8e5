package interpret

import (
	"context"

	"github.com/graftdata/graft/schema"
	"github.com/graftdata/graft/value"
)

// Variables stashes resolved values into the interpreter context so that
// later rules can reference them through variable providers. Every argument
// key is a variable binding.
type Variables struct {
	bindings map[string]value.Provider
}

// VariablesFromConfig builds the rule; each argument is name: <provider config>.
func VariablesFromConfig(path string, args map[string]any) (Interpretation, error) {
	bindings := make(map[string]value.Provider, len(args))
	for name, sub := range args {
		p, err := value.FromConfig(path+"/"+name, sub)
		if err != nil {
			return nil, err
		}
		bindings[name] = p
	}
	return &Variables{bindings: bindings}, nil
}

func (v *Variables) Interpret(ctx context.Context, ictx *Context) error {
	for name, p := range v.bindings {
		resolved, err := p.SingleValue(ctx, ictx.Values)
		if err != nil {
			return err
		}
		ictx.Values.SetVariable(name, resolved)
	}
	return nil
}

func (v *Variables) SubordinateComponents() []schema.Component { return nil }
