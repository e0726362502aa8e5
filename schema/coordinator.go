package schema

import (
	"sort"

	graft "github.com/graftdata/graft"
)

// Component is any node of the compiled interpretation tree that can
// enumerate the sub-components it owns. Enumeration is structural only: no
// data is evaluated during traversal.
type Component interface {
	SubordinateComponents() []Component
}

// Expander is implemented by components that declare a schema contribution.
// Components without a contribution of their own (pure dispatchers) only
// implement Component and are still traversed.
type Expander interface {
	ExpandSchema(c *Coordinator)
}

// Coordinator performs a single depth-first walk over a component tree and
// merges every contribution into one GraphSchema. Each distinct compiled
// component is visited exactly once, however many parents reference it, so
// the walk terminates on any finite structure.
type Coordinator struct {
	out     *GraphSchema
	visited map[Component]bool
	issues  graft.Issues
	// origin of each merged property, keyed by shape kind, shape type and
	// property name, for conflict reporting.
	origins map[propertyKey]string
}

type propertyKey struct {
	kind     string // "node" or "relationship"
	shape    string
	property string
}

// NewCoordinator returns a coordinator with an empty schema.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		out:     NewGraphSchema(),
		visited: make(map[Component]bool),
		origins: make(map[propertyKey]string),
	}
}

// Expand walks the tree rooted at the component, aggregating contributions.
// It may be called for several roots; the visited set spans all of them.
func (c *Coordinator) Expand(root Component) {
	if root == nil || c.visited[root] {
		return
	}
	c.visited[root] = true
	if e, ok := root.(Expander); ok {
		e.ExpandSchema(c)
	}
	for _, child := range root.SubordinateComponents() {
		c.Expand(child)
	}
}

// Result returns the aggregated schema, or the accumulated consistency
// errors when any contribution was irreconcilable.
func (c *Coordinator) Result() (*GraphSchema, error) {
	if len(c.issues) > 0 {
		return nil, c.issues
	}
	return c.out, nil
}

// ContributeNode merges a node shape into the schema. The origin names the
// declaring rule so conflicts can be reported against both declarers.
func (c *Coordinator) ContributeNode(origin string, shape NodeShape) {
	existing, ok := c.out.Nodes[shape.Type]
	if !ok {
		existing = &NodeShape{Type: shape.Type, Keys: map[string]PropertyType{}, Properties: map[string]PropertyType{}}
		c.out.Nodes[shape.Type] = existing
	}
	c.mergeProperties("node", shape.Type, origin, existing.Keys, shape.Keys)
	c.mergeProperties("node", shape.Type, origin, existing.Properties, shape.Properties)
}

// ContributeRelationship merges a relationship shape into the schema.
func (c *Coordinator) ContributeRelationship(origin string, shape RelationshipShape) {
	existing, ok := c.out.Relationships[shape.Type]
	if !ok {
		existing = &RelationshipShape{Type: shape.Type, Properties: map[string]PropertyType{}}
		c.out.Relationships[shape.Type] = existing
	}
	c.mergeProperties("relationship", shape.Type, origin, existing.Properties, shape.Properties)
}

// ContributeAdjacency records an edge between node types, deduplicated.
// Adjacencies carry no properties, so there is nothing to conflict on and no
// origin to track.
func (c *Coordinator) ContributeAdjacency(adj Adjacency) {
	for _, have := range c.out.Adjacencies {
		if have == adj {
			return
		}
	}
	c.out.Adjacencies = append(c.out.Adjacencies, adj)
}

// mergeProperties unions the contribution into dst. TypeAny yields to any
// concrete type; two differing concrete types are a consistency error naming
// both declaring rules.
func (c *Coordinator) mergeProperties(kind, shape, origin string, dst, contribution map[string]PropertyType) {
	names := make([]string, 0, len(contribution))
	for name := range contribution {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := contribution[name]
		key := propertyKey{kind: kind, shape: shape, property: name}
		have, present := dst[name]
		switch {
		case !present, have == TypeAny:
			dst[name] = t
			c.origins[key] = origin
		case t == TypeAny, t == have:
			// Union is the existing concrete type.
		default:
			declarers := []string{c.origins[key], origin}
			sort.Strings(declarers)
			c.issues = graft.AppendIssues(c.issues, graft.Issue{
				Path:    "/" + kind + "/" + shape + "/" + name,
				Code:    graft.CodeSchemaConflict,
				Message: "property declared with two incompatible types",
				Params: map[string]any{
					"declared_by": declarers,
					"types":       []string{string(have), string(t)},
				},
			})
		}
	}
}
