package interpret

import (
	"context"
	"fmt"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/schema"
	"github.com/graftdata/graft/value"
)

// SourceNode declares the node being built from the record: its type, the
// key properties identifying it, additional properties, and extra labels.
type SourceNode struct {
	nodeType      value.Provider
	keys          map[string]value.Provider
	properties    map[string]value.Provider
	extraLabels   []string
	normalization value.Normalization
	path          string
}

// SourceNodeFromConfig builds the rule from
// {node_type: ..., key: {...}, properties: {...}, additional_types: [...], normalization: {...}}.
func SourceNodeFromConfig(path string, args map[string]any) (Interpretation, error) {
	rawType, ok := args["node_type"]
	if !ok {
		return nil, graft.ConfigErrorf(path+"/node_type", "source_node requires node_type")
	}
	nodeType, err := value.FromConfig(path+"/node_type", rawType)
	if err != nil {
		return nil, err
	}
	rawKey, ok := args["key"]
	if !ok {
		return nil, graft.ConfigErrorf(path+"/key", "source_node requires a key block")
	}
	keys, err := providerMapFromConfig(path+"/key", rawKey)
	if err != nil {
		return nil, err
	}
	s := &SourceNode{nodeType: nodeType, keys: keys, path: path}
	if rawProps, present := args["properties"]; present {
		if s.properties, err = providerMapFromConfig(path+"/properties", rawProps); err != nil {
			return nil, err
		}
	}
	if rawLabels, present := args["additional_types"]; present {
		labels, ok := rawLabels.([]any)
		if !ok {
			return nil, graft.ConfigErrorf(path+"/additional_types", "additional_types must be a list of strings")
		}
		for i, l := range labels {
			label, ok := l.(string)
			if !ok {
				return nil, graft.ConfigErrorf(graft.ChildPath(path+"/additional_types", i), "additional_types must be a list of strings")
			}
			s.extraLabels = append(s.extraLabels, label)
		}
	}
	if rawNorm, present := args["normalization"]; present {
		normCfg, ok := rawNorm.(map[string]any)
		if !ok {
			return nil, graft.ConfigErrorf(path+"/normalization", "normalization must be a mapping of do_<name> flags")
		}
		if s.normalization, err = value.NormalizationFromConfig(path+"/normalization", normCfg); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *SourceNode) Interpret(ctx context.Context, ictx *Context) error {
	t, err := s.nodeType.SingleValue(ctx, ictx.Values)
	if err != nil {
		return err
	}
	typeName, ok := t.(string)
	if !ok {
		return graft.Issues{{
			Path:    s.path + "/node_type",
			Code:    graft.CodeResolutionFailed,
			Message: "node_type resolved to a non-string value",
			Params:  map[string]any{"value": t},
		}}
	}
	ictx.Ingestion.Source.Type = typeName
	keys, err := resolveAll(ctx, s.keys, ictx.Values, s.normalization)
	if err != nil {
		return err
	}
	for name, v := range keys {
		ictx.Ingestion.SetKey(name, v)
	}
	props, err := resolveAll(ctx, s.properties, ictx.Values, s.normalization)
	if err != nil {
		return err
	}
	for name, v := range props {
		ictx.Ingestion.SetProperty(name, v)
	}
	ictx.Ingestion.Source.ExtraLabels = append(ictx.Ingestion.Source.ExtraLabels, s.extraLabels...)
	return nil
}

func (s *SourceNode) SubordinateComponents() []schema.Component { return nil }

// ExpandSchema contributes the declared node shape. A dynamically resolved
// node_type has no name to contribute under, so only static types declare a
// shape.
func (s *SourceNode) ExpandSchema(c *schema.Coordinator) {
	typeName, ok := s.staticNodeType()
	if !ok {
		return
	}
	shape := schema.NodeShape{
		Type:       typeName,
		Keys:       declaredTypes(s.keys),
		Properties: declaredTypes(s.properties),
	}
	c.ContributeNode(s.origin(), shape)
	for _, label := range s.extraLabels {
		c.ContributeNode(s.origin(), schema.NodeShape{Type: label, Keys: declaredTypes(s.keys)})
	}
}

func (s *SourceNode) staticNodeType() (string, bool) {
	static, ok := s.nodeType.(value.Static)
	if !ok {
		return "", false
	}
	name, ok := static.Value.(string)
	return name, ok
}

func (s *SourceNode) origin() string { return fmt.Sprintf("source_node@%s", s.path) }
