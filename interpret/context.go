package interpret

import (
	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/value"
)

// Context is the ephemeral, per-record state of an interpretation pass: the
// record (through the provider context), any variables stashed so far, and
// the ingestion being built. It is created fresh per record and dropped when
// that record's interpretation completes; all rule configuration stays
// read-only.
type Context struct {
	Values    *value.Context
	Ingestion *Ingestion
}

// NewContext builds the interpretation state for one record.
func NewContext(r graft.Record) *Context {
	return &Context{
		Values:    value.NewContext(r),
		Ingestion: &Ingestion{},
	}
}

// Record returns the record under interpretation.
func (c *Context) Record() graft.Record { return c.Values.Record }
