package graft

import (
	"context"
	"io"
)

// Stream is a lazy, pull-driven sequence of items. Next returns io.EOF once
// the sequence is exhausted; any other error terminates the stream for all
// downstream consumers. A stream is consumed once and is not restartable.
type Stream interface {
	Next(ctx context.Context) (Item, error)
}

// FromItems wraps a fixed sequence of items as a Stream.
func FromItems(items ...Item) Stream {
	return &sliceStream{items: items}
}

// FromRecords wraps records as a Stream of data items.
func FromRecords(records ...Record) Stream {
	items := make([]Item, len(records))
	for i, r := range records {
		items[i] = RecordItem(r)
	}
	return FromItems(items...)
}

type sliceStream struct {
	items []Item
	pos   int
}

func (s *sliceStream) Next(ctx context.Context) (Item, error) {
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}
	if s.pos >= len(s.items) {
		return Item{}, io.EOF
	}
	it := s.items[s.pos]
	s.pos++
	return it, nil
}

// Collect drains a stream into a slice. Intended for tests and small inputs;
// it materializes everything, which streaming callers should avoid.
func Collect(ctx context.Context, s Stream) ([]Item, error) {
	var out []Item
	for {
		it, err := s.Next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, it)
	}
}

// CollectRecords drains a stream and keeps only data records, discarding
// Flush markers.
func CollectRecords(ctx context.Context, s Stream) ([]Record, error) {
	items, err := Collect(ctx, s)
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, it := range items {
		if !it.Flush {
			out = append(out, it.Record)
		}
	}
	return out, nil
}
