package graft

// Record is one unit of data flowing through a pipeline: an open mapping of
// field name to value. Values may be scalars, []any slices, or nested
// map[string]any objects, matching what YAML and JSON decoders produce.
//
// Steps treat records as immutable: a transforming step emits a new record
// rather than mutating its input, while pass-through steps may forward the
// same instance.
type Record = map[string]any

// Item is the element type of a Stream: either one data Record or the Flush
// control signal. Flush items never carry a record.
type Item struct {
	Record Record
	Flush  bool
}

// Flush marks a logical batch boundary. It is control, not data: filters and
// matchers forward it unexamined, and buffering steps emit their buffered
// output before forwarding it.
var Flush = Item{Flush: true}

// RecordItem wraps a record as a stream item.
func RecordItem(r Record) Item { return Item{Record: r} }
