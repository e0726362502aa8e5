// Package schema aggregates the output shape declared across a compiled
// interpretation tree into one graph schema.
package schema

// PropertyType classifies a declared property. Keep this set small and
// extend incrementally.
type PropertyType string

const (
	TypeString   PropertyType = "string"
	TypeNumber   PropertyType = "number"
	TypeBoolean  PropertyType = "boolean"
	TypeDateTime PropertyType = "datetime"
	// TypeAny is the wildcard: it merges with any concrete type.
	TypeAny PropertyType = "any"
)

// NodeShape declares a node type with its key and non-key properties.
type NodeShape struct {
	Type       string                  `json:"type"`
	Keys       map[string]PropertyType `json:"keys,omitempty"`
	Properties map[string]PropertyType `json:"properties,omitempty"`
}

// RelationshipShape declares a relationship type and its properties.
type RelationshipShape struct {
	Type       string                  `json:"type"`
	Properties map[string]PropertyType `json:"properties,omitempty"`
}

// Adjacency records that records may produce an edge between two node types.
type Adjacency struct {
	FromNodeType     string `json:"from_node_type"`
	RelationshipType string `json:"relationship_type"`
	ToNodeType       string `json:"to_node_type"`
}

// GraphSchema is the aggregated result of schema expansion.
type GraphSchema struct {
	Nodes         map[string]*NodeShape         `json:"nodes"`
	Relationships map[string]*RelationshipShape `json:"relationships"`
	Adjacencies   []Adjacency                   `json:"adjacencies,omitempty"`
}

// NewGraphSchema returns an empty schema ready for aggregation.
func NewGraphSchema() *GraphSchema {
	return &GraphSchema{
		Nodes:         make(map[string]*NodeShape),
		Relationships: make(map[string]*RelationshipShape),
	}
}
