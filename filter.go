package graft

import "context"

// Predicate decides whether a data record should be removed from the stream.
// It is asked only for data records, never for Flush.
type Predicate interface {
	// FilterRecord reports true when the record should be dropped.
	FilterRecord(ctx context.Context, r Record) (bool, error)
}

// Filter adapts a Predicate into a Step. Flush items pass through
// unconditionally without touching the predicate; data records are forwarded
// when the predicate reports false and dropped when it reports true.
type Filter struct {
	pred Predicate
}

// NewFilter builds a Filter around the given predicate.
func NewFilter(p Predicate) *Filter { return &Filter{pred: p} }

func (f *Filter) Open(in Stream) Stream { return AsStep(f).Open(in) }

func (f *Filter) ProcessItem(ctx context.Context, it Item) ([]Item, error) {
	if it.Flush {
		return []Item{it}, nil
	}
	drop, err := f.pred.FilterRecord(ctx, it.Record)
	if err != nil {
		return nil, err
	}
	if drop {
		return nil, nil
	}
	return []Item{it}, nil
}
