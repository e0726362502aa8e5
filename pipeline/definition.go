package pipeline

import (
	"path/filepath"
	"strings"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/schema"
)

// Definition is the metadata needed to load one pipeline from a file. It is
// not itself a pipeline: Build compiles the file into a step chain, and
// ExpandSchema compiles it for introspection only.
type Definition struct {
	Name        string
	Path        string
	Annotations map[string]any
}

// DefinitionFromPath names the pipeline after the file stem.
func DefinitionFromPath(path string) Definition {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Definition{Name: stem, Path: path}
}

// DefinitionFromConfig accepts either a bare path string or
// {path: ..., name: ..., annotations: {...}}.
func DefinitionFromConfig(cfgPath string, raw any) (Definition, error) {
	if s, ok := raw.(string); ok {
		return DefinitionFromPath(s), nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return Definition{}, graft.ConfigErrorf(cfgPath, "pipeline definition must be a path or a mapping")
	}
	path, ok := m["path"].(string)
	if !ok {
		return Definition{}, graft.ConfigErrorf(cfgPath+"/path", "pipeline definition requires a path")
	}
	d := DefinitionFromPath(path)
	if name, ok := m["name"].(string); ok {
		d.Name = name
	}
	if annotations, ok := m["annotations"].(map[string]any); ok {
		d.Annotations = annotations
	}
	return d, nil
}

// Build compiles the pipeline file into its step chain.
func (d Definition) Build() ([]graft.Step, error) {
	return LoadFile(d.Path)
}

// ExpandSchema compiles the pipeline and walks every introspectable step,
// aggregating schema contributions into the coordinator. No data flows.
func (d Definition) ExpandSchema(c *schema.Coordinator) error {
	steps, err := d.Build()
	if err != nil {
		return err
	}
	for _, step := range steps {
		if component, ok := step.(schema.Component); ok {
			c.Expand(component)
		}
	}
	return nil
}
