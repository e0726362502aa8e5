// Package interpret provides the recursively composable rule vocabulary that
// turns records into graph node and relationship contributions.
package interpret

import graft "github.com/graftdata/graft"

// Direction orients a relationship relative to the source node.
type Direction string

const (
	Outbound Direction = "outbound"
	Inbound  Direction = "inbound"
)

// NodeSpec is the node a record's interpretation is building: its type, the
// key properties identifying it, additional properties, and extra labels.
type NodeSpec struct {
	Type        string
	Keys        graft.Record
	Properties  graft.Record
	ExtraLabels []string
}

// RelationshipSpec relates the source node to another node found by key.
type RelationshipSpec struct {
	NodeType         string
	NodeKeys         graft.Record
	RelationshipType string
	Direction        Direction
	Properties       graft.Record
}

// Ingestion accumulates one record's structured output contribution. One
// Ingestion lives inside each interpreter context and is discarded with it.
type Ingestion struct {
	Source        NodeSpec
	Relationships []RelationshipSpec
}

// SetKey sets one key property on the source node.
func (i *Ingestion) SetKey(name string, v any) {
	if i.Source.Keys == nil {
		i.Source.Keys = graft.Record{}
	}
	i.Source.Keys[name] = v
}

// SetProperty sets one non-key property on the source node.
func (i *Ingestion) SetProperty(name string, v any) {
	if i.Source.Properties == nil {
		i.Source.Properties = graft.Record{}
	}
	i.Source.Properties[name] = v
}

// AddRelationship appends one relationship contribution.
func (i *Ingestion) AddRelationship(r RelationshipSpec) {
	i.Relationships = append(i.Relationships, r)
}

// AsRecord renders the contribution as a plain record so it can continue
// down a step chain.
func (i *Ingestion) AsRecord() graft.Record {
	node := graft.Record{"type": i.Source.Type}
	if len(i.Source.Keys) > 0 {
		node["keys"] = i.Source.Keys
	}
	if len(i.Source.Properties) > 0 {
		node["properties"] = i.Source.Properties
	}
	if len(i.Source.ExtraLabels) > 0 {
		labels := make([]any, len(i.Source.ExtraLabels))
		for n, l := range i.Source.ExtraLabels {
			labels[n] = l
		}
		node["extra_labels"] = labels
	}
	out := graft.Record{"node": node}
	if len(i.Relationships) > 0 {
		rels := make([]any, len(i.Relationships))
		for n, r := range i.Relationships {
			rel := graft.Record{
				"node_type":         r.NodeType,
				"relationship_type": r.RelationshipType,
				"direction":         string(r.Direction),
			}
			if len(r.NodeKeys) > 0 {
				rel["node_keys"] = r.NodeKeys
			}
			if len(r.Properties) > 0 {
				rel["properties"] = r.Properties
			}
			rels[n] = rel
		}
		out["relationships"] = rels
	}
	return out
}
