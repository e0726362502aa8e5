package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	graft "github.com/graftdata/graft"
	"gopkg.in/yaml.v3"
)

// StepDef is one entry of a pipeline file: an implementation name from the
// step registry plus its arguments block.
type StepDef struct {
	Implementation string         `yaml:"implementation"`
	Arguments      map[string]any `yaml:"arguments"`
}

// LoadFile reads a pipeline file (a YAML list of step definitions), resolves
// !include tags, and compiles every step. All configuration errors surface
// here, before any record is processed.
func LoadFile(path string) ([]graft.Step, error) {
	defs, err := loadDefs(path)
	if err != nil {
		return nil, err
	}
	steps := make([]graft.Step, 0, len(defs))
	for i, def := range defs {
		stepPath := graft.ChildPath("/steps", i)
		if def.Implementation == "" {
			return nil, graft.ConfigErrorf(stepPath+"/implementation", "step requires an implementation name")
		}
		step, err := stepFromConfig(stepPath, def.Implementation, def.Arguments)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func loadDefs(path string) ([]StepDef, error) {
	node, err := loadNode(path, map[string]bool{})
	if err != nil {
		return nil, err
	}
	var defs []StepDef
	if err := node.Decode(&defs); err != nil {
		return nil, graft.Issues{{
			Path:    "/",
			Code:    graft.CodeInvalidConfig,
			Message: "pipeline file must be a list of step definitions",
			Cause:   err,
			Params:  map[string]any{"file": path},
		}}
	}
	return defs, nil
}

// loadNode parses a YAML file and resolves !include tags in place. The stack
// holds the absolute paths of files currently being included, for cycle
// detection.
func loadNode(path string, stack map[string]bool) (*yaml.Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if stack[abs] {
		return nil, graft.Issues{{
			Path:    "/",
			Code:    graft.CodeIncludeCycle,
			Message: "include cycle detected",
			Params:  map[string]any{"file": path},
		}}
	}
	stack[abs] = true
	defer delete(stack, abs)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline file: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, graft.Issues{{
			Path:    "/",
			Code:    graft.CodeParseError,
			Message: "invalid YAML",
			Cause:   err,
			Params:  map[string]any{"file": path},
		}}
	}
	if len(doc.Content) == 0 {
		return nil, graft.ConfigErrorf("/", "pipeline file %s is empty", path)
	}
	root := doc.Content[0]
	if err := resolveIncludes(root, filepath.Dir(abs), stack); err != nil {
		return nil, err
	}
	return root, nil
}

// resolveIncludes replaces every !include <path> scalar with the root node
// of the referenced file, resolved relative to the including file.
func resolveIncludes(n *yaml.Node, dir string, stack map[string]bool) error {
	if n.Tag == "!include" {
		target := n.Value
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		included, err := loadNode(target, stack)
		if err != nil {
			return err
		}
		*n = *included
		return nil
	}
	for _, child := range n.Content {
		if err := resolveIncludes(child, dir, stack); err != nil {
			return err
		}
	}
	return nil
}
