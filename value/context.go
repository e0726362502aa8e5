package value

import graft "github.com/graftdata/graft"

// Context carries everything a Provider may resolve against for one record:
// the record itself plus variables stashed earlier in the same record's
// interpretation. It is created fresh per record and discarded afterwards;
// it is never shared across records.
type Context struct {
	Record    graft.Record
	Variables map[string]any
}

// NewContext builds a provider context for one record.
func NewContext(r graft.Record) *Context {
	return &Context{Record: r}
}

// SetVariable stashes a named value for later providers to reference.
func (c *Context) SetVariable(name string, v any) {
	if c.Variables == nil {
		c.Variables = make(map[string]any)
	}
	c.Variables[name] = v
}
