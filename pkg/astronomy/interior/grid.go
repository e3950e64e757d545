package interior

import (
	"iter"
	"math"

	errorsmod "cosmossdk.io/errors"
)

// stepSlack absorbs rounding in (Stop-Start)/Step so that a range the step
// divides exactly keeps its last point
const stepSlack = 1e-9

// MaxGridPoints bounds the number of points a single scan may evaluate
const MaxGridPoints = 1 << 27

// Grid is a finite, random-access sequence of parameter values. Index order is
// the canonical iteration order used for tie-breaking.
type Grid[P any] interface {
	Len() int
	At(i int) P
}

// Points yields every point of g in canonical order. The sequence is lazy and
// can be ranged over any number of times.
func Points[P any](g Grid[P]) iter.Seq2[int, P] {
	return pointsIn(g, 0, g.Len())
}

// pointsIn yields the points with canonical index in [start, end)
func pointsIn[P any](g Grid[P], start, end int) iter.Seq2[int, P] {
	return func(yield func(int, P) bool) {
		for i := start; i < end; i++ {
			if !yield(i, g.At(i)) {
				return
			}
		}
	}
}

// StepAxis sweeps Start, Start+Step, ... while the value does not exceed Stop.
// The last point falls short of Stop when Step does not divide the range.
type StepAxis struct {
	Start float64 `json:"start" yaml:"start"`
	Stop  float64 `json:"stop" yaml:"stop"`
	Step  float64 `json:"step" yaml:"step"`
}

// Validate checks that the axis describes at least one point
func (a StepAxis) Validate() error {
	if !isFinite(a.Start) || !isFinite(a.Stop) || !isFinite(a.Step) {
		return errorsmod.Wrap(ErrInvalidGrid, "step axis bounds must be finite")
	}
	if a.Step <= 0 {
		return errorsmod.Wrapf(ErrInvalidGrid, "step must be positive, got %g", a.Step)
	}
	if a.Start > a.Stop {
		return errorsmod.Wrapf(ErrInvalidGrid, "start %g is beyond stop %g", a.Start, a.Stop)
	}
	if n := a.count(); !isFinite(n) || n > MaxGridPoints {
		return errorsmod.Wrapf(ErrInvalidGrid, "step %g yields %g points, limit is %d", a.Step, n, MaxGridPoints)
	}
	return nil
}

func (a StepAxis) count() float64 {
	return math.Floor((a.Stop-a.Start)/a.Step+stepSlack) + 1
}

// Len returns the number of points, or 0 for an invalid axis
func (a StepAxis) Len() int {
	if a.Validate() != nil {
		return 0
	}
	return int(a.count())
}

// At returns the i-th value. Values are computed from the index rather than
// accumulated so that rounding does not drift along the axis.
func (a StepAxis) At(i int) float64 {
	v := a.Start + float64(i)*a.Step
	if v > a.Stop {
		return a.Stop
	}
	return v
}

// SpanAxis holds N evenly spaced values from Start to Stop, both included
type SpanAxis struct {
	Start float64 `json:"start" yaml:"start"`
	Stop  float64 `json:"stop" yaml:"stop"`
	N     int     `json:"n" yaml:"n"`
}

// Validate checks that the axis describes at least one point
func (a SpanAxis) Validate() error {
	if !isFinite(a.Start) || !isFinite(a.Stop) {
		return errorsmod.Wrap(ErrInvalidGrid, "span axis bounds must be finite")
	}
	if a.N < 1 {
		return errorsmod.Wrapf(ErrInvalidGrid, "span needs at least one point, got %d", a.N)
	}
	if a.Start > a.Stop {
		return errorsmod.Wrapf(ErrInvalidGrid, "start %g is beyond stop %g", a.Start, a.Stop)
	}
	if a.N > MaxGridPoints {
		return errorsmod.Wrapf(ErrInvalidGrid, "span has %d points, limit is %d", a.N, MaxGridPoints)
	}
	return nil
}

// Len returns the number of points, or 0 for an invalid axis
func (a SpanAxis) Len() int {
	if a.Validate() != nil {
		return 0
	}
	return a.N
}

// At returns the i-th value. The last point is exactly Stop.
func (a SpanAxis) At(i int) float64 {
	if a.N <= 1 {
		return a.Start
	}
	if i == a.N-1 {
		return a.Stop
	}
	step := (a.Stop - a.Start) / float64(a.N-1)
	return a.Start + step*float64(i)
}

// DensityPair is one point of the two-layer density grid
type DensityPair struct {
	Water float64 `json:"water" yaml:"water"`
	Core  float64 `json:"core" yaml:"core"`
}

// DensityGrid is the Cartesian product of a water and a core density axis.
// Water density is the outer loop: index = i*Core.Len() + j.
type DensityGrid struct {
	Water SpanAxis `json:"water" yaml:"water"`
	Core  SpanAxis `json:"core" yaml:"core"`
}

// Validate checks both axes and the size of their product
func (g DensityGrid) Validate() error {
	if err := g.Water.Validate(); err != nil {
		return errorsmod.Wrap(err, "water density axis")
	}
	if err := g.Core.Validate(); err != nil {
		return errorsmod.Wrap(err, "core density axis")
	}
	if n := g.Water.N * g.Core.N; n > MaxGridPoints {
		return errorsmod.Wrapf(ErrInvalidGrid, "density grid has %d points, limit is %d", n, MaxGridPoints)
	}
	return nil
}

// Len returns the number of density pairs, or 0 for an invalid grid
func (g DensityGrid) Len() int {
	if g.Validate() != nil {
		return 0
	}
	return g.Water.N * g.Core.N
}

// At returns the density pair at canonical index i
func (g DensityGrid) At(i int) DensityPair {
	nc := g.Core.Len()
	return DensityPair{
		Water: g.Water.At(i / nc),
		Core:  g.Core.At(i % nc),
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
