package interpret

import (
	"context"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/schema"
	"github.com/graftdata/graft/value"
)

// Properties merges additional resolved properties onto the source node,
// with an optional normalization applied to each value.
type Properties struct {
	properties    map[string]value.Provider
	normalization value.Normalization
}

// PropertiesFromConfig builds the rule from
// {properties: {name: <provider config>}, normalization: {...}}.
func PropertiesFromConfig(path string, args map[string]any) (Interpretation, error) {
	rawProps, ok := args["properties"]
	if !ok {
		return nil, graft.ConfigErrorf(path+"/properties", "properties requires a properties block")
	}
	props, err := providerMapFromConfig(path+"/properties", rawProps)
	if err != nil {
		return nil, err
	}
	p := &Properties{properties: props}
	if rawNorm, present := args["normalization"]; present {
		normCfg, ok := rawNorm.(map[string]any)
		if !ok {
			return nil, graft.ConfigErrorf(path+"/normalization", "normalization must be a mapping of do_<name> flags")
		}
		if p.normalization, err = value.NormalizationFromConfig(path+"/normalization", normCfg); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Properties) Interpret(ctx context.Context, ictx *Context) error {
	resolved, err := resolveAll(ctx, p.properties, ictx.Values, p.normalization)
	if err != nil {
		return err
	}
	for name, v := range resolved {
		ictx.Ingestion.SetProperty(name, v)
	}
	return nil
}

func (p *Properties) SubordinateComponents() []schema.Component { return nil }

// propertyTypes exposes the declared property types for the owning
// interpreter, which knows which node type they land on.
func (p *Properties) propertyTypes() map[string]schema.PropertyType {
	return declaredTypes(p.properties)
}
