package transform

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// taskRange is a half-open range of task indices owned by one worker.
type taskRange struct {
	start, end int64
}

// partition splits [0, n) into at most workers contiguous, disjoint ranges
// covering every index exactly once. Earlier ranges absorb the remainder.
func partition(n int64, workers int) []taskRange {
	if n <= 0 {
		return nil
	}
	w := int64(max(workers, 1))
	if w > n {
		w = n
	}

	ranges := make([]taskRange, 0, w)
	base, rem := n/w, n%w
	var start int64
	for i := int64(0); i < w; i++ {
		size := base
		if i < rem {
			size++
		}
		ranges = append(ranges, taskRange{start: start, end: start + size})
		start += size
	}
	return ranges
}

// taskFunc processes a single task index.
type taskFunc func(task int64) error

// policy runs the per-frame body of a bulk transform.
//
// newWorker is called once per worker before any of its tasks run, so
// per-worker scratch is allocated once and never shared.
type policy interface {
	run(ctx context.Context, tasks int64, newWorker func() taskFunc) error
	workers() int
}

// sequential runs every task in increasing order on the calling goroutine.
type sequential struct{}

func (sequential) workers() int { return 1 }

func (sequential) run(ctx context.Context, tasks int64, newWorker func() taskFunc) error {
	if tasks <= 0 {
		return nil
	}
	return runRange(ctx, taskRange{start: 0, end: tasks}, newWorker())
}

// parallel hands each worker one range from partition. The caller's single
// output write happens after run returns, which is after every worker exits.
type parallel struct {
	n int
}

func (p parallel) workers() int { return p.n }

func (p parallel) run(ctx context.Context, tasks int64, newWorker func() taskFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range partition(tasks, p.n) {
		g.Go(func() error {
			return runRange(ctx, r, newWorker())
		})
	}
	return g.Wait()
}

func runRange(ctx context.Context, r taskRange, fn taskFunc) error {
	for i := r.start; i < r.end; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(i); err != nil {
			return err
		}
	}
	return nil
}

func policyFor(opts Options) policy {
	if opts.Strategy == BulkParallel {
		return parallel{n: opts.workers()}
	}
	return sequential{}
}
