package interior

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestStepAxis(t *testing.T) {
	t.Run("default core radius sweep", func(t *testing.T) {
		a := StepAxis{Start: 1e3, Stop: 1500e3, Step: 5e2}
		require.NoError(t, a.Validate())
		assert.Equal(t, 2999, a.Len())
		assert.Equal(t, 1e3, a.At(0))
		assert.Equal(t, 624e3, a.At(1246))
		assert.Equal(t, 1500e3, a.At(a.Len()-1))
	})

	t.Run("step does not divide range", func(t *testing.T) {
		a := StepAxis{Start: 0, Stop: 10, Step: 3}
		assert.Equal(t, 4, a.Len())
		assert.Equal(t, 9.0, a.At(3))
	})

	t.Run("fractional step keeps last point", func(t *testing.T) {
		a := StepAxis{Start: 0, Stop: 1, Step: 0.1}
		assert.Equal(t, 11, a.Len())
		assert.LessOrEqual(t, a.At(10), 1.0)
	})

	t.Run("single point", func(t *testing.T) {
		a := StepAxis{Start: 5, Stop: 5, Step: 1}
		assert.Equal(t, 1, a.Len())
	})

	t.Run("invalid", func(t *testing.T) {
		for _, a := range []StepAxis{
			{Start: 0, Stop: 10, Step: 0},
			{Start: 0, Stop: 10, Step: -1},
			{Start: 10, Stop: 0, Step: 1},
			{Start: 1e3, Stop: 1500e3, Step: 1e-300},
			{Start: 0, Stop: 1, Step: 1.0 / (2 * MaxGridPoints)},
		} {
			assert.ErrorIs(t, a.Validate(), ErrInvalidGrid)
			assert.Zero(t, a.Len())
		}
	})
}

func TestSpanAxis(t *testing.T) {
	a := SpanAxis{Start: 3000, Stop: 3800, N: 551}
	require.NoError(t, a.Validate())

	want := floats.Span(make([]float64, a.N), a.Start, a.Stop)
	got := make([]float64, a.Len())
	for i := range got {
		got[i] = a.At(i)
	}
	assert.True(t, floats.EqualApprox(want, got, 1e-9))
	assert.Equal(t, 3800.0, got[len(got)-1])

	single := SpanAxis{Start: 1000, Stop: 1000, N: 1}
	assert.Equal(t, 1, single.Len())
	assert.Equal(t, 1000.0, single.At(0))

	assert.ErrorIs(t, SpanAxis{Start: 0, Stop: 1, N: 0}.Validate(), ErrInvalidGrid)
	assert.ErrorIs(t, SpanAxis{Start: 2, Stop: 1, N: 3}.Validate(), ErrInvalidGrid)
	assert.ErrorIs(t, SpanAxis{Start: 0, Stop: 1, N: MaxGridPoints + 1}.Validate(), ErrInvalidGrid)
}

func TestDensityGridLimit(t *testing.T) {
	g := DensityGrid{
		Water: SpanAxis{Start: 900, Stop: 1100, N: 1 << 14},
		Core:  SpanAxis{Start: 3000, Stop: 4000, N: 1 << 14},
	}
	assert.ErrorIs(t, g.Validate(), ErrInvalidGrid)
	assert.Zero(t, g.Len())

	g.Core.N = 1 << 13
	require.NoError(t, g.Validate())
	assert.Equal(t, MaxGridPoints, g.Len())
}

func TestDensityGridCanonicalOrder(t *testing.T) {
	g := DensityGrid{
		Water: SpanAxis{Start: 900, Stop: 1100, N: 3},
		Core:  SpanAxis{Start: 3000, Stop: 4000, N: 2},
	}
	require.Equal(t, 6, g.Len())

	var got []DensityPair
	for i, p := range Points[DensityPair](g) {
		assert.Equal(t, g.At(i), p)
		got = append(got, p)
	}
	assert.Equal(t, []DensityPair{
		{Water: 900, Core: 3000},
		{Water: 900, Core: 4000},
		{Water: 1000, Core: 3000},
		{Water: 1000, Core: 4000},
		{Water: 1100, Core: 3000},
		{Water: 1100, Core: 4000},
	}, got)
}

func TestPointsRestartable(t *testing.T) {
	a := StepAxis{Start: 1, Stop: 5, Step: 1}
	seq := Points[float64](a)

	collect := func() []float64 {
		var out []float64
		for _, v := range seq {
			out = append(out, v)
		}
		return out
	}
	first := collect()
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, first)
	assert.Equal(t, first, collect())

	var early []float64
	for i, v := range seq {
		if i == 2 {
			break
		}
		early = append(early, v)
	}
	assert.Equal(t, []float64{1, 2}, early)
}
