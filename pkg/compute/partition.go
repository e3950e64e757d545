package compute

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Range is the half-open index interval [Start, End)
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range
func (r Range) Len() int {
	return r.End - r.Start
}

// Workers resolves a requested worker count. Zero or negative means one worker
// per CPU.
func Workers(requested int) int {
	if requested <= 0 {
		return runtime.NumCPU()
	}
	return requested
}

// Partition splits [0, n) into at most parts contiguous ranges of near-equal
// size, in ascending order. Earlier ranges take the remainder.
func Partition(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	ranges := make([]Range, 0, parts)
	size := n / parts
	rem := n % parts
	start := 0
	for i := 0; i < parts; i++ {
		end := start + size
		if i < rem {
			end++
		}
		ranges = append(ranges, Range{Start: start, End: end})
		start = end
	}
	return ranges
}

// RunPartitions calls fn once per range. A single range runs on the calling
// goroutine; otherwise each range gets its own goroutine and the first error
// cancels the context passed to the others.
func RunPartitions(ctx context.Context, ranges []Range, fn func(ctx context.Context, part int, r Range) error) error {
	if len(ranges) == 1 {
		return fn(ctx, 0, ranges[0])
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		g.Go(func() error {
			return fn(gctx, i, r)
		})
	}
	return g.Wait()
}
