package interpret_test

import (
	"testing"

	"github.com/graftdata/graft/interpret"
	"github.com/graftdata/graft/schema"
	"github.com/stretchr/testify/require"
)

func TestInterpreterSchemaExpansion(t *testing.T) {
	i, err := interpret.InterpreterFromConfig("/steps/0", map[string]any{
		"interpretations": []any{
			map[string]any{
				"type":      "source_node",
				"node_type": "Person",
				"key":       map[string]any{"name": "$.name"},
			},
			map[string]any{
				"type":       "properties",
				"properties": map[string]any{"nickname": "$.nickname", "kind": "human"},
			},
			map[string]any{
				"type":              "relationship",
				"related_node_type": "Country",
				"relationship_type": "LIVES_IN",
				"node_key":          map[string]any{"code": "$.country"},
			},
		},
	})
	require.NoError(t, err)

	c := schema.NewCoordinator()
	c.Expand(i)
	out, err := c.Result()
	require.NoError(t, err)

	person := out.Nodes["Person"]
	require.NotNil(t, person)
	// Dynamic providers declare the wildcard; static literals carry a type.
	require.Equal(t, schema.TypeAny, person.Keys["name"])
	require.Equal(t, schema.TypeAny, person.Properties["nickname"])
	require.Equal(t, schema.TypeString, person.Properties["kind"])

	require.Contains(t, out.Nodes, "Country")
	require.Contains(t, out.Relationships, "LIVES_IN")
	require.Equal(t, []schema.Adjacency{{
		FromNodeType:     "Person",
		RelationshipType: "LIVES_IN",
		ToNodeType:       "Country",
	}}, out.Adjacencies)
}

func TestInboundRelationshipReversesAdjacency(t *testing.T) {
	i, err := interpret.InterpreterFromConfig("/steps/0", map[string]any{
		"interpretations": []any{
			map[string]any{
				"type":      "source_node",
				"node_type": "Country",
				"key":       map[string]any{"code": "$.code"},
			},
			map[string]any{
				"type":              "relationship",
				"related_node_type": "Person",
				"relationship_type": "LIVES_IN",
				"direction":         "inbound",
				"node_key":          map[string]any{"name": "$.name"},
			},
		},
	})
	require.NoError(t, err)

	c := schema.NewCoordinator()
	c.Expand(i)
	out, err := c.Result()
	require.NoError(t, err)
	require.Equal(t, []schema.Adjacency{{
		FromNodeType:     "Person",
		RelationshipType: "LIVES_IN",
		ToNodeType:       "Country",
	}}, out.Adjacencies)
}

func TestSwitchBranchesContributeSchema(t *testing.T) {
	i, err := interpret.InterpreterFromConfig("/steps/0", map[string]any{
		"interpretations": []any{
			map[string]any{
				"type":      "switch",
				"switch_on": "$.type",
				"cases": map[string]any{
					"person": map[string]any{
						"type":      "source_node",
						"node_type": "Person",
						"key":       map[string]any{"name": "$.name"},
					},
					"place": map[string]any{
						"type":      "source_node",
						"node_type": "Place",
						"key":       map[string]any{"id": "$.id"},
					},
				},
				"default": map[string]any{
					"type":      "source_node",
					"node_type": "Unknown",
					"key":       map[string]any{"id": "$.id"},
				},
			},
		},
	})
	require.NoError(t, err)

	c := schema.NewCoordinator()
	c.Expand(i)
	out, err := c.Result()
	require.NoError(t, err)
	require.Contains(t, out.Nodes, "Person")
	require.Contains(t, out.Nodes, "Place")
	require.Contains(t, out.Nodes, "Unknown")
}
