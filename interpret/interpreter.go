package interpret

import (
	"context"
	"fmt"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/schema"
)

// Interpreter is the step that applies an ordered interpretation list to
// each data record. Per record it builds a fresh Context, runs every rule,
// and emits the rendered ingestion; Flush passes through untouched. An
// interpretation error terminates the stream: an incomplete rule set is not
// something to skip past.
type Interpreter struct {
	interpretations []Interpretation
	path            string
}

// NewInterpreter builds an interpreter over pre-compiled rules.
func NewInterpreter(interpretations ...Interpretation) *Interpreter {
	return &Interpreter{interpretations: interpretations}
}

// InterpreterFromConfig builds the step from {interpretations: [...]}.
func InterpreterFromConfig(path string, cfg map[string]any) (*Interpreter, error) {
	rawList, ok := cfg["interpretations"].([]any)
	if !ok || len(rawList) == 0 {
		return nil, graft.ConfigErrorf(path+"/interpretations", "interpreter requires a non-empty interpretations list")
	}
	i := &Interpreter{path: path}
	for n, raw := range rawList {
		childCfg, ok := raw.(map[string]any)
		if !ok {
			return nil, graft.ConfigErrorf(graft.ChildPath(path+"/interpretations", n), "each interpretation must be a mapping")
		}
		child, err := FromConfig(graft.ChildPath(path+"/interpretations", n), childCfg)
		if err != nil {
			return nil, err
		}
		i.interpretations = append(i.interpretations, child)
	}
	return i, nil
}

func (i *Interpreter) Open(in graft.Stream) graft.Stream { return graft.AsStep(i).Open(in) }

func (i *Interpreter) ProcessItem(ctx context.Context, it graft.Item) ([]graft.Item, error) {
	if it.Flush {
		return []graft.Item{it}, nil
	}
	ictx := NewContext(it.Record)
	for _, interp := range i.interpretations {
		if err := interp.Interpret(ctx, ictx); err != nil {
			return nil, err
		}
	}
	return []graft.Item{graft.RecordItem(ictx.Ingestion.AsRecord())}, nil
}

// SubordinateComponents yields the interpretation list in order.
func (i *Interpreter) SubordinateComponents() []schema.Component {
	out := make([]schema.Component, len(i.interpretations))
	for n, interp := range i.interpretations {
		out[n] = interp
	}
	return out
}

// ExpandSchema contributes what only the owning interpreter can know: which
// node type the properties rules land on, and the adjacency between the
// source node type and each statically declared relationship endpoint.
// Individual rules contribute their own shapes during traversal.
func (i *Interpreter) ExpandSchema(c *schema.Coordinator) {
	sourceType, haveSource := i.staticSourceType()
	if !haveSource {
		return
	}
	for _, interp := range i.interpretations {
		switch rule := interp.(type) {
		case *Properties:
			c.ContributeNode(i.origin(), schema.NodeShape{
				Type:       sourceType,
				Properties: rule.propertyTypes(),
			})
		case *Relationship:
			nodeType, relType, ok := rule.staticTypes()
			if !ok {
				continue
			}
			adj := schema.Adjacency{
				FromNodeType:     sourceType,
				RelationshipType: relType,
				ToNodeType:       nodeType,
			}
			if rule.direction == Inbound {
				adj.FromNodeType, adj.ToNodeType = adj.ToNodeType, adj.FromNodeType
			}
			c.ContributeAdjacency(adj)
		}
	}
}

func (i *Interpreter) staticSourceType() (string, bool) {
	for _, interp := range i.interpretations {
		if sn, ok := interp.(*SourceNode); ok {
			return sn.staticNodeType()
		}
	}
	return "", false
}

func (i *Interpreter) origin() string { return fmt.Sprintf("interpreter@%s", i.path) }
