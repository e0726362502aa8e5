package graft

import "context"

// Step is the unit of streaming execution. Open wires the step to its
// upstream and returns the downstream view; iteration is driven entirely by
// the consumer pulling on the returned stream.
//
// For each input item a step may emit zero, one, or many output items.
// Outputs of a single input keep whatever order the step produced them in,
// and outputs of distinct inputs never interleave.
type Step interface {
	Open(in Stream) Stream
}

// Processor handles one input item at a time. AsStep adapts a Processor into
// a Step with the ordering guarantees above.
type Processor interface {
	ProcessItem(ctx context.Context, it Item) ([]Item, error)
}

// ProcessorFunc adapts a plain function into a Processor.
type ProcessorFunc func(ctx context.Context, it Item) ([]Item, error)

func (f ProcessorFunc) ProcessItem(ctx context.Context, it Item) ([]Item, error) {
	return f(ctx, it)
}

// AsStep wraps a Processor as a Step.
func AsStep(p Processor) Step { return processorStep{p: p} }

type processorStep struct {
	p Processor
}

func (s processorStep) Open(in Stream) Stream {
	return &processorStream{p: s.p, in: in}
}

type processorStream struct {
	p       Processor
	in      Stream
	pending []Item
	err     error
}

func (s *processorStream) Next(ctx context.Context) (Item, error) {
	// A terminated stream stays terminated: no output is emitted after an
	// upstream or processor error.
	if s.err != nil {
		return Item{}, s.err
	}
	for {
		if len(s.pending) > 0 {
			it := s.pending[0]
			s.pending = s.pending[1:]
			return it, nil
		}
		if err := ctx.Err(); err != nil {
			s.err = err
			return Item{}, err
		}
		it, err := s.in.Next(ctx)
		if err != nil {
			s.err = err
			return Item{}, err
		}
		out, err := s.p.ProcessItem(ctx, it)
		if err != nil {
			s.err = err
			return Item{}, err
		}
		s.pending = out
	}
}

// Chain wires a linear chain of steps onto a source stream and returns the
// final downstream view.
func Chain(src Stream, steps ...Step) Stream {
	out := src
	for _, st := range steps {
		out = st.Open(out)
	}
	return out
}
