package interpret

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/schema"
	"github.com/graftdata/graft/value"
)

// Switch dispatches to one of several child interpretations keyed by a
// normalized lookup value. Every case and the optional default are compiled
// eagerly at construction, so a malformed branch fails before any record is
// processed.
type Switch struct {
	switchOn      value.Provider
	cases         map[string]Interpretation
	caseOrder     []string
	defaultCase   Interpretation
	normalization value.Normalization
	path          string
}

// SwitchFromConfig builds a Switch from
// {switch_on: ..., cases: {literal: <interpretation>}, default: <interpretation>, normalization: {...}}.
func SwitchFromConfig(path string, args map[string]any) (Interpretation, error) {
	rawOn, ok := args["switch_on"]
	if !ok {
		return nil, graft.ConfigErrorf(path+"/switch_on", "switch requires switch_on")
	}
	switchOn, err := value.FromConfig(path+"/switch_on", rawOn)
	if err != nil {
		return nil, err
	}
	rawCases, ok := args["cases"].(map[string]any)
	if !ok || len(rawCases) == 0 {
		return nil, graft.ConfigErrorf(path+"/cases", "switch requires a non-empty cases mapping")
	}
	s := &Switch{
		switchOn: switchOn,
		cases:    make(map[string]Interpretation, len(rawCases)),
		path:     path,
	}
	for key, rawCase := range rawCases {
		caseCfg, ok := rawCase.(map[string]any)
		if !ok {
			return nil, graft.ConfigErrorf(path+"/cases/"+key, "case must be an interpretation mapping")
		}
		child, err := FromConfig(path+"/cases/"+key, caseCfg)
		if err != nil {
			return nil, err
		}
		s.cases[key] = child
		s.caseOrder = append(s.caseOrder, key)
	}
	sort.Strings(s.caseOrder)
	if rawDefault, present := args["default"]; present {
		defCfg, ok := rawDefault.(map[string]any)
		if !ok {
			return nil, graft.ConfigErrorf(path+"/default", "default must be an interpretation mapping")
		}
		if s.defaultCase, err = FromConfig(path+"/default", defCfg); err != nil {
			return nil, err
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

// Interpret resolves the switch value, normalizes it, and delegates entirely
// to the matching case; an unmatched value falls to the default when one is
// configured and otherwise fails with an unhandled-branch error carrying the
// value. Lookup is exact match on the normalized value.
func (s *Switch) Interpret(ctx context.Context, ictx *Context) error {
	v, err := value.NormalizeSingleValue(ctx, s.switchOn, ictx.Values, s.normalization)
	if err != nil {
		return err
	}
	if key, ok := caseKey(v); ok {
		if child, found := s.cases[key]; found {
			return child.Interpret(ctx, ictx)
		}
	}
	if s.defaultCase != nil {
		return s.defaultCase.Interpret(ctx, ictx)
	}
	return graft.Issues{{
		Path:    s.path + "/cases",
		Code:    graft.CodeUnhandledBranch,
		Message: "no case matches the resolved value and no default is configured",
		Params:  map[string]any{"value": v},
	}}
}

// SubordinateComponents yields every compiled case plus the default, in a
// stable order, without evaluating any of them.
func (s *Switch) SubordinateComponents() []schema.Component {
	out := make([]schema.Component, 0, len(s.caseOrder)+1)
	for _, key := range s.caseOrder {
		out = append(out, s.cases[key])
	}
	if s.defaultCase != nil {
		out = append(out, s.defaultCase)
	}
	return out
}

// caseKey renders a resolved scalar into the string form case keys use.
// Composite values are never keyable and fall through to the default.
func caseKey(v any) (string, bool) {
	switch k := v.(type) {
	case string:
		return k, true
	case bool:
		return strconv.FormatBool(k), true
	case int:
		return strconv.Itoa(k), true
	case int64:
		return strconv.FormatInt(k, 10), true
	case float64:
		// Decimal notation, never exponent form: a JSON-sourced 1000000 must
		// render identically to the config key "1000000".
		return strconv.FormatFloat(k, 'f', -1, 64), true
	case json.Number:
		return k.String(), true
	default:
		return "", false
	}
}
