package extract

import (
	"context"

	graft "github.com/graftdata/graft"
)

// FlushEvery returns a step that injects a Flush marker after every n data
// records. Upstream Flush markers are forwarded unchanged and reset the
// count, so batches never straddle an existing boundary.
func FlushEvery(n int) graft.Step {
	if n < 1 {
		n = 1
	}
	return flushEvery{n: n}
}

type flushEvery struct {
	n int
}

func (f flushEvery) Open(in graft.Stream) graft.Stream {
	return graft.AsStep(&flushCounter{n: f.n}).Open(in)
}

type flushCounter struct {
	n    int
	seen int
}

func (c *flushCounter) ProcessItem(ctx context.Context, it graft.Item) ([]graft.Item, error) {
	if it.Flush {
		c.seen = 0
		return []graft.Item{it}, nil
	}
	c.seen++
	if c.seen >= c.n {
		c.seen = 0
		return []graft.Item{it, graft.Flush}, nil
	}
	return []graft.Item{it}, nil
}
