package interior

import (
	"context"
	"errors"

	errorsmod "cosmossdk.io/errors"
	"go.uber.org/zap"

	"github.com/oxygene76/icymoon/pkg/compute"
)

// ctxCheckInterval is how many grid points a partition evaluates between
// context checks
const ctxCheckInterval = 1024

// Evaluator solves one grid point. It returns an error wrapping ErrDomain for
// points that have no physical solution.
type Evaluator[P any] func(index int, point P) (Candidate, error)

// ScanResult is the outcome of an exhaustive scan
type ScanResult struct {
	Best       BestFit `json:"best" yaml:"best"`
	GridPoints int     `json:"grid_points" yaml:"grid_points"`
	Evaluated  int     `json:"evaluated" yaml:"evaluated"`
	Skipped    int     `json:"skipped" yaml:"skipped"`
}

type scanOptions struct {
	workers int
	logger  *zap.Logger
	sink    CandidateSink
}

// ScanOption configures Scan
type ScanOption func(*scanOptions)

// WithWorkers sets the number of partitions scanned concurrently. Zero means
// one per CPU.
func WithWorkers(n int) ScanOption {
	return func(o *scanOptions) { o.workers = n }
}

// WithLogger sets the logger used for skipped points and scan summaries
func WithLogger(l *zap.Logger) ScanOption {
	return func(o *scanOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSink streams every valid candidate to s in canonical order once the scan
// has finished
func WithSink(s CandidateSink) ScanOption {
	return func(o *scanOptions) { o.sink = s }
}

type partial struct {
	selector  *Selector
	evaluated int
	skipped   int
	buffer    []Candidate
}

// Scan evaluates every point of grid and returns the candidate closest to the
// model's target MoI. There is no early exit: the residual surface is not
// assumed to be unimodal.
func Scan[P any](ctx context.Context, model MoonModel, grid Grid[P], eval Evaluator[P], opts ...ScanOption) (ScanResult, error) {
	o := scanOptions{workers: 1, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	n := grid.Len()
	if n <= 0 {
		return ScanResult{}, errorsmod.Wrap(ErrInvalidGrid, "grid has no points")
	}

	ranges := compute.Partition(n, compute.Workers(o.workers))
	parts := make([]partial, len(ranges))

	err := compute.RunPartitions(ctx, ranges, func(ctx context.Context, k int, r compute.Range) error {
		p := &parts[k]
		p.selector = NewSelector(model)
		for i, point := range pointsIn(grid, r.Start, r.End) {
			if (i-r.Start)%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			c, err := eval(i, point)
			if err != nil {
				if errors.Is(err, ErrDomain) {
					p.skipped++
					o.logger.Debug("skipping grid point", zap.Int("index", i), zap.Error(err))
					continue
				}
				return err
			}
			p.evaluated++
			p.selector.Offer(c)
			if o.sink != nil {
				p.buffer = append(p.buffer, c)
			}
		}
		return nil
	})
	if err != nil {
		return ScanResult{}, err
	}

	result := ScanResult{GridPoints: n}
	selector := NewSelector(model)
	for i := range parts {
		selector.Merge(parts[i].selector)
		result.Evaluated += parts[i].evaluated
		result.Skipped += parts[i].skipped
	}

	best, ok := selector.Best()
	if !ok {
		return result, errorsmod.Wrapf(ErrNoSolution, "all %d grid points were unphysical", n)
	}
	result.Best = best

	if o.sink != nil {
		if err := emit(o.sink, parts, result); err != nil {
			return result, errorsmod.Wrap(err, "candidate sink")
		}
	}

	o.logger.Debug("scan finished",
		zap.String("model", model.Name),
		zap.Int("grid_points", n),
		zap.Int("partitions", len(ranges)),
		zap.Int("evaluated", result.Evaluated),
		zap.Int("skipped", result.Skipped),
		zap.Float64("best_moi", best.MoI),
		zap.Float64("residual", best.Residual))

	return result, nil
}

func emit(sink CandidateSink, parts []partial, result ScanResult) error {
	if err := sink.OnStart(result.GridPoints); err != nil {
		return err
	}
	for i := range parts {
		for _, c := range parts[i].buffer {
			if err := sink.OnCandidate(c); err != nil {
				return err
			}
		}
	}
	return sink.OnEnd(result.Best)
}

// FitThreeLayer validates the model and scans the core radius axis
func FitThreeLayer(ctx context.Context, m ThreeLayerModel, opts ...ScanOption) (ScanResult, error) {
	if err := m.Validate(); err != nil {
		return ScanResult{}, err
	}
	return Scan[float64](ctx, m.MoonModel, m.CoreRadius, func(i int, r3 float64) (Candidate, error) {
		return SolveThreeLayer(m, i, r3)
	}, opts...)
}

// FitTwoLayer validates the model and scans the water/core density grid
func FitTwoLayer(ctx context.Context, m TwoLayerModel, opts ...ScanOption) (ScanResult, error) {
	if err := m.Validate(); err != nil {
		return ScanResult{}, err
	}
	return Scan[DensityPair](ctx, m.MoonModel, m.Grid(), func(i int, p DensityPair) (Candidate, error) {
		return SolveTwoLayer(m.MoonModel, i, p)
	}, opts...)
}
