package interpret

import (
	"context"
	"fmt"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/schema"
	"github.com/graftdata/graft/value"
)

// Relationship declares an edge from the source node to a related node found
// by key.
type Relationship struct {
	nodeType         value.Provider
	relationshipType value.Provider
	nodeKeys         map[string]value.Provider
	properties       map[string]value.Provider
	direction        Direction
	normalization    value.Normalization
	path             string
}

// RelationshipFromConfig builds the rule from
// {related_node_type: ..., relationship_type: ..., node_key: {...},
//  properties: {...}, direction: outbound|inbound, normalization: {...}}.
func RelationshipFromConfig(path string, args map[string]any) (Interpretation, error) {
	rawNodeType, ok := args["related_node_type"]
	if !ok {
		return nil, graft.ConfigErrorf(path+"/related_node_type", "relationship requires related_node_type")
	}
	nodeType, err := value.FromConfig(path+"/related_node_type", rawNodeType)
	if err != nil {
		return nil, err
	}
	rawRelType, ok := args["relationship_type"]
	if !ok {
		return nil, graft.ConfigErrorf(path+"/relationship_type", "relationship requires relationship_type")
	}
	relType, err := value.FromConfig(path+"/relationship_type", rawRelType)
	if err != nil {
		return nil, err
	}
	rawKeys, ok := args["node_key"]
	if !ok {
		return nil, graft.ConfigErrorf(path+"/node_key", "relationship requires a node_key block")
	}
	nodeKeys, err := providerMapFromConfig(path+"/node_key", rawKeys)
	if err != nil {
		return nil, err
	}
	r := &Relationship{
		nodeType:         nodeType,
		relationshipType: relType,
		nodeKeys:         nodeKeys,
		direction:        Outbound,
		path:             path,
	}
	if rawProps, present := args["properties"]; present {
		if r.properties, err = providerMapFromConfig(path+"/properties", rawProps); err != nil {
			return nil, err
		}
	}
	if rawDir, present := args["direction"]; present {
		dir, ok := rawDir.(string)
		if !ok || (Direction(dir) != Outbound && Direction(dir) != Inbound) {
			return nil, graft.ConfigErrorf(path+"/direction", "direction must be %q or %q", Outbound, Inbound)
		}
		r.direction = Direction(dir)
	}
	if rawNorm, present := args["normalization"]; present {
		normCfg, ok := rawNorm.(map[string]any)
		if !ok {
			return nil, graft.ConfigErrorf(path+"/normalization", "normalization must be a mapping of do_<name> flags")
		}
		if r.normalization, err = value.NormalizationFromConfig(path+"/normalization", normCfg); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Relationship) Interpret(ctx context.Context, ictx *Context) error {
	nodeType, err := r.resolveString(ctx, ictx, r.nodeType, "/related_node_type")
	if err != nil {
		return err
	}
	relType, err := r.resolveString(ctx, ictx, r.relationshipType, "/relationship_type")
	if err != nil {
		return err
	}
	keys, err := resolveAll(ctx, r.nodeKeys, ictx.Values, r.normalization)
	if err != nil {
		return err
	}
	props, err := resolveAll(ctx, r.properties, ictx.Values, r.normalization)
	if err != nil {
		return err
	}
	ictx.Ingestion.AddRelationship(RelationshipSpec{
		NodeType:         nodeType,
		NodeKeys:         keys,
		RelationshipType: relType,
		Direction:        r.direction,
		Properties:       props,
	})
	return nil
}

func (r *Relationship) resolveString(ctx context.Context, ictx *Context, p value.Provider, field string) (string, error) {
	v, err := p.SingleValue(ctx, ictx.Values)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", graft.Issues{{
			Path:    r.path + field,
			Code:    graft.CodeResolutionFailed,
			Message: "expected a string value",
			Params:  map[string]any{"value": v},
		}}
	}
	return s, nil
}

func (r *Relationship) SubordinateComponents() []schema.Component { return nil }

// ExpandSchema contributes the related node and relationship shapes when
// their types are static.
func (r *Relationship) ExpandSchema(c *schema.Coordinator) {
	if nodeType, ok := staticString(r.nodeType); ok {
		c.ContributeNode(r.origin(), schema.NodeShape{Type: nodeType, Keys: declaredTypes(r.nodeKeys)})
	}
	if relType, ok := staticString(r.relationshipType); ok {
		c.ContributeRelationship(r.origin(), schema.RelationshipShape{
			Type:       relType,
			Properties: declaredTypes(r.properties),
		})
	}
}

// staticTypes exposes the statically declared endpoint and relationship type
// names for adjacency pairing by the owning interpreter.
func (r *Relationship) staticTypes() (nodeType, relType string, ok bool) {
	nodeType, nok := staticString(r.nodeType)
	relType, rok := staticString(r.relationshipType)
	return nodeType, relType, nok && rok
}

func (r *Relationship) origin() string { return fmt.Sprintf("relationship@%s", r.path) }

func staticString(p value.Provider) (string, bool) {
	static, ok := p.(value.Static)
	if !ok {
		return "", false
	}
	s, ok := static.Value.(string)
	return s, ok
}
