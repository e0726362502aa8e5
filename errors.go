package graft

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidConfig    = "invalid_config"
	CodeUnknownKind      = "unknown_kind"
	CodeUnhandledBranch  = "unhandled_branch"
	CodeResolutionFailed = "resolution_failed"
	CodeParseError       = "parse_error"
	CodeSchemaConflict   = "schema_conflict"
	CodeIncludeCycle     = "include_cycle"
)

// Issue represents a single configuration or processing failure.
type Issue struct {
	Path    string // Slash-separated configuration path (for example: /steps/2/arguments/cases/A).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"value":"c"}) for
	// observability and error inspection in tests.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unhandled_branch at /cases
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether any issue in err carries the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// ChildPath appends a list index to a configuration path.
func ChildPath(path string, index int) string {
	return fmt.Sprintf("%s/%d", path, index)
}

// ConfigErrorf builds a single-issue configuration error at the given path.
func ConfigErrorf(path, format string, args ...any) error {
	return Issues{{Path: path, Code: CodeInvalidConfig, Message: fmt.Sprintf(format, args...)}}
}
