package interior

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorPicksSmallestResidual(t *testing.T) {
	s := NewSelector(MoonModel{TargetMoI: 0.35})
	_, ok := s.Best()
	require.False(t, ok)

	assert.True(t, s.Offer(Candidate{Index: 0, MoI: 0.30}))
	assert.True(t, s.Offer(Candidate{Index: 1, MoI: 0.36}))
	assert.False(t, s.Offer(Candidate{Index: 2, MoI: 0.40}))

	best, ok := s.Best()
	require.True(t, ok)
	assert.Equal(t, 1, best.Index)
	assert.InDelta(t, 0.01, best.Residual, 1e-12)
}

func TestSelectorFirstCandidateSeedsBest(t *testing.T) {
	s := NewSelector(MoonModel{TargetMoI: 0.35})
	s.Offer(Candidate{Index: 4, MoI: 0.9})

	best, ok := s.Best()
	require.True(t, ok)
	assert.Equal(t, 4, best.Index)
}

func TestSelectorTieBreaksOnIndex(t *testing.T) {
	m := MoonModel{TargetMoI: 0.5}
	low := Candidate{Index: 3, MoI: 0.25}
	high := Candidate{Index: 5, MoI: 0.75}

	forward := NewSelector(m)
	forward.Offer(low)
	forward.Offer(high)

	reverse := NewSelector(m)
	reverse.Offer(high)
	reverse.Offer(low)

	a, _ := forward.Best()
	b, _ := reverse.Best()
	assert.Equal(t, 3, a.Index)
	assert.Equal(t, a, b)
}

func TestSelectorMerge(t *testing.T) {
	m := MoonModel{TargetMoI: 0.35}

	left := NewSelector(m)
	left.Offer(Candidate{Index: 0, MoI: 0.31})
	right := NewSelector(m)
	right.Offer(Candidate{Index: 9, MoI: 0.349})

	merged := NewSelector(m)
	merged.Merge(nil)
	merged.Merge(NewSelector(m))
	_, ok := merged.Best()
	assert.False(t, ok)

	merged.Merge(left)
	merged.Merge(right)
	best, ok := merged.Best()
	require.True(t, ok)
	assert.Equal(t, 9, best.Index)
}
