package pipeline

import (
	"context"
	"errors"
	"runtime"
	"sync"

	graft "github.com/graftdata/graft"
	"github.com/panjf2000/ants/v2"
)

// Run is one pipeline execution request for the executor.
type Run struct {
	Name     string
	Source   graft.Stream
	Steps    []graft.Step
	Sink     Sink
	Reporter ProgressReporter
}

// Executor runs independent pipelines concurrently on a shared worker pool.
// Pipelines share only immutable, pre-compiled configuration, so the pool
// needs no locking beyond its own.
type Executor struct {
	pool *ants.Pool
}

// NewExecutor builds an executor with the given pool size; sizes below one
// fall back to half the CPU count.
func NewExecutor(size int) (*Executor, error) {
	if size < 1 {
		size = runtime.NumCPU() / 2
		if size < 1 {
			size = 1
		}
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &Executor{pool: pool}, nil
}

// Execute submits every run and waits for all of them. Errors from
// individual runs are joined; one failing pipeline does not stop the others.
func (e *Executor) Execute(ctx context.Context, runs ...Run) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, run := range runs {
		run := run
		wg.Add(1)
		submitErr := e.pool.Submit(func() {
			defer wg.Done()
			runner := &Runner{Name: run.Name, Reporter: run.Reporter}
			if _, err := runner.Run(ctx, run.Source, run.Steps, run.Sink); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Release shuts the worker pool down.
func (e *Executor) Release() { e.pool.Release() }
