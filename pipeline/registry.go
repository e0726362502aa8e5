// Package pipeline loads declarative pipeline files and executes the
// resulting step chains.
package pipeline

import (
	"sort"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/extract"
	"github.com/graftdata/graft/filters"
	"github.com/graftdata/graft/interpret"
)

// StepConstructor builds a step from the arguments block of a step
// definition.
type StepConstructor func(path string, args map[string]any) (graft.Step, error)

var stepRegistry = map[string]StepConstructor{}

// RegisterStep installs a constructor under an implementation name. The
// built-in vocabulary is registered at package init; later registrations
// replace earlier ones.
func RegisterStep(name string, c StepConstructor) { stepRegistry[name] = c }

func init() {
	RegisterStep("filter:values_match_possibilities", func(path string, args map[string]any) (graft.Step, error) {
		pred, err := filters.ValuesMatchPossibilitiesFromConfig(path, args)
		if err != nil {
			return nil, err
		}
		return graft.NewFilter(pred), nil
	})
	RegisterStep("filter:exclude_when_values_match_possibilities", func(path string, args map[string]any) (graft.Step, error) {
		pred, err := filters.ExcludeWhenValuesMatchPossibilitiesFromConfig(path, args)
		if err != nil {
			return nil, err
		}
		return graft.NewFilter(pred), nil
	})
	RegisterStep("filter:value_matches_regex", func(path string, args map[string]any) (graft.Step, error) {
		pred, err := filters.ValueMatchesRegexFromConfig(path, args)
		if err != nil {
			return nil, err
		}
		return graft.NewFilter(pred), nil
	})
	RegisterStep("interpreter", func(path string, args map[string]any) (graft.Step, error) {
		return interpret.InterpreterFromConfig(path, args)
	})
	RegisterStep("flush_every", func(path string, args map[string]any) (graft.Step, error) {
		n, ok := args["count"].(int)
		if !ok || n < 1 {
			return nil, graft.ConfigErrorf(path+"/count", "flush_every requires a positive integer count")
		}
		return extract.FlushEvery(n), nil
	})
}

func stepFromConfig(path, implementation string, args map[string]any) (graft.Step, error) {
	ctor, known := stepRegistry[implementation]
	if !known {
		return nil, graft.Issues{{
			Path:    path + "/implementation",
			Code:    graft.CodeUnknownKind,
			Message: "unknown step implementation",
			Params:  map[string]any{"implementation": implementation, "known": knownSteps()},
		}}
	}
	return ctor(path+"/arguments", args)
}

func knownSteps() []string {
	names := make([]string, 0, len(stepRegistry))
	for name := range stepRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
