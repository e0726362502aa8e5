package filters

import (
	"context"
	"regexp"

	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/value"
)

// RegexMatcher resolves a value and tests it against a regular expression
// anchored at the start of the value; callers needing a full match must
// anchor the end themselves. The pattern may itself be dynamically resolved,
// in which case it is compiled per record.
type RegexMatcher struct {
	value         value.Provider
	pattern       value.Provider
	compiled      *regexp.Regexp // non-nil when the pattern is a literal
	include       bool
	normalization value.Normalization
	path          string
}

// RegexMatcherFromConfig builds a matcher from
// {value: ..., regex: ..., include: bool, normalization: {...}}.
// include defaults to true.
func RegexMatcherFromConfig(path string, cfg map[string]any) (*RegexMatcher, error) {
	rawValue, ok := cfg["value"]
	if !ok {
		return nil, graft.ConfigErrorf(path, "regex matcher requires a value")
	}
	subject, err := value.FromConfig(path+"/value", rawValue)
	if err != nil {
		return nil, err
	}
	rawRegex, ok := cfg["regex"]
	if !ok {
		return nil, graft.ConfigErrorf(path, "regex matcher requires a regex")
	}
	pattern, err := value.FromConfig(path+"/regex", rawRegex)
	if err != nil {
		return nil, err
	}
	m := &RegexMatcher{value: subject, pattern: pattern, include: true, path: path}
	if static, ok := pattern.(value.Static); ok {
		literal, ok := static.Value.(string)
		if !ok {
			return nil, graft.ConfigErrorf(path+"/regex", "regex must be a string, got %T", static.Value)
		}
		m.compiled, err = compileAnchored(path+"/regex", literal)
		if err != nil {
			return nil, err
		}
	}
	if rawInclude, present := cfg["include"]; present {
		include, ok := rawInclude.(bool)
		if !ok {
			return nil, graft.ConfigErrorf(path+"/include", "include must be a boolean, got %T", rawInclude)
		}
		m.include = include
	}
	if m.normalization, err = normalizationFromConfig(path, cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// ShouldInclude reports true when the record should be filtered out. With
// include set, records whose value does not match the pattern at its start
// are removed; with include unset, matching records are removed. The
// polarity mirrors how FilterRecord consumes it. A subject that resolves to
// a non-string value is a resolution error.
func (m *RegexMatcher) ShouldInclude(ctx context.Context, pctx *value.Context) (bool, error) {
	actual, err := value.NormalizeSingleValue(ctx, m.value, pctx, m.normalization)
	if err != nil {
		return false, err
	}
	re := m.compiled
	if re == nil {
		resolved, err := m.pattern.SingleValue(ctx, pctx)
		if err != nil {
			return false, err
		}
		literal, ok := resolved.(string)
		if !ok {
			return false, graft.Issues{{
				Path:    m.path + "/regex",
				Code:    graft.CodeResolutionFailed,
				Message: "regex resolved to a non-string value",
				Params:  map[string]any{"value": resolved},
			}}
		}
		if re, err = compileAnchored(m.path+"/regex", literal); err != nil {
			return false, err
		}
	}
	subject, ok := actual.(string)
	if !ok {
		return false, graft.Issues{{
			Path:    m.path + "/value",
			Code:    graft.CodeResolutionFailed,
			Message: "regex subject resolved to a non-string value",
			Params:  map[string]any{"value": actual},
		}}
	}
	match := re.MatchString(subject)
	if m.include {
		return !match, nil
	}
	return match, nil
}

// compileAnchored wraps the pattern so matching starts at the beginning of
// the value, leaving the end unanchored.
func compileAnchored(path, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, graft.Issues{{
			Path:    path,
			Code:    graft.CodeInvalidConfig,
			Message: "invalid regular expression",
			Cause:   err,
			Params:  map[string]any{"regex": pattern},
		}}
	}
	return re, nil
}

// ValueMatchesRegex keeps or drops records based on a RegexMatcher verdict.
type ValueMatchesRegex struct {
	matcher *RegexMatcher
}

// ValueMatchesRegexFromConfig accepts the RegexMatcherFromConfig shape.
func ValueMatchesRegexFromConfig(path string, cfg map[string]any) (*ValueMatchesRegex, error) {
	m, err := RegexMatcherFromConfig(path, cfg)
	if err != nil {
		return nil, err
	}
	return &ValueMatchesRegex{matcher: m}, nil
}

func (f *ValueMatchesRegex) FilterRecord(ctx context.Context, r graft.Record) (bool, error) {
	return f.matcher.ShouldInclude(ctx, value.NewContext(r))
}
