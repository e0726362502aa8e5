package pipeline

import (
	"context"
	"io"
	"log/slog"

	graft "github.com/graftdata/graft"
)

// Sink receives every item that leaves the end of the chain.
type Sink func(graft.Item) error

// ProgressReporter logs throughput while a pipeline runs.
type ProgressReporter struct {
	// ReportingFrequency is how many data records pass between reports.
	ReportingFrequency int
	Logger             *slog.Logger
	// Callback, when set, is invoked with the index and record at every
	// reporting interval.
	Callback func(index int, r graft.Record)
}

func (p ProgressReporter) report(name string, index int, r graft.Record) {
	if p.ReportingFrequency <= 0 || index%p.ReportingFrequency != 0 {
		return
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("records processed", "pipeline", name, "index", index)
	if p.Callback != nil {
		p.Callback(index, r)
	}
}

// Runner drives one compiled chain from a source to a sink.
type Runner struct {
	Name     string
	Reporter ProgressReporter
}

// Run pulls the chain to exhaustion, returning the number of data records
// that reached the sink. Context cancellation and any step error stop the
// run; partial output already delivered to the sink stands.
func (r *Runner) Run(ctx context.Context, src graft.Stream, steps []graft.Step, sink Sink) (int, error) {
	out := graft.Chain(src, steps...)
	count := 0
	for {
		it, err := out.Next(ctx)
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		if sink != nil {
			if err := sink(it); err != nil {
				return count, err
			}
		}
		if !it.Flush {
			count++
			r.Reporter.report(r.Name, count, it.Record)
		}
	}
}
