package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxygene76/icymoon/internal/types"
	"github.com/oxygene76/icymoon/pkg/astronomy/interior"
)

func TestSummarizeEmpty(t *testing.T) {
	assert.Nil(t, Summarize(nil, interior.MoonModel{}))
}

func TestSummarizeThreeLayer(t *testing.T) {
	model := interior.MoonModel{Mass: 100, TargetMoI: 0.35, MoITolerance: 0.01}
	cands := []interior.Candidate{
		{Index: 0, CoreRadius: 100e3, MantleRadius: 1e6, Mass: 100, MoI: 0.37},
		{Index: 1, CoreRadius: 200e3, MantleRadius: 1e6, Mass: 101, MoI: 0.355},
		{Index: 2, CoreRadius: 300e3, MantleRadius: 1e6, Mass: 99.5, MoI: 0.345},
		{Index: 3, CoreRadius: 400e3, MantleRadius: 1e6, Mass: 100, MoI: 0.33},
	}

	d := Summarize(cands, model)
	require.NotNil(t, d)
	assert.Equal(t, 4, d.Candidates)
	assert.Equal(t, 2, d.WithinTolerance)
	assert.InDelta(t, 0.33, d.MoIMin, 1e-12)
	assert.InDelta(t, 0.37, d.MoIMax, 1e-12)
	assert.InDelta(t, 0.35, d.MoIMean, 1e-12)
	assert.Greater(t, d.MoIStdDev, 0.0)
	assert.InDelta(t, 0.01, d.MaxMassError, 1e-12)

	assert.Equal(t, &types.Band{Min: 200, Max: 300}, d.CoreRadiusBand)
	assert.Nil(t, d.WaterDensityBand)
	assert.Nil(t, d.CoreDensityBand)
}

func TestSummarizeTwoLayerBands(t *testing.T) {
	model := interior.MoonModel{Mass: 1, TargetMoI: 0.35, MoITolerance: 0.005}
	cands := []interior.Candidate{
		{Index: 0, CoreRadius: 1.40e6, WaterDensity: 1000, CoreDensity: 3300, Mass: 1, MoI: 0.352},
		{Index: 1, CoreRadius: 1.42e6, WaterDensity: 1010, CoreDensity: 3600, Mass: 1, MoI: 0.349},
		{Index: 2, CoreRadius: 1.45e6, WaterDensity: 1020, CoreDensity: 3800, Mass: 1, MoI: 0.36},
	}

	d := Summarize(cands, model)
	require.NotNil(t, d)
	assert.Equal(t, 2, d.WithinTolerance)
	assert.Equal(t, &types.Band{Min: 1400, Max: 1420}, d.CoreRadiusBand)
	assert.Equal(t, &types.Band{Min: 1000, Max: 1010}, d.WaterDensityBand)
	assert.Equal(t, &types.Band{Min: 3300, Max: 3600}, d.CoreDensityBand)
}

func TestSummarizeSingleCandidate(t *testing.T) {
	model := interior.MoonModel{Mass: 1, TargetMoI: 0.35, MoITolerance: 0}
	d := Summarize([]interior.Candidate{{MoI: 0.3, Mass: 1}}, model)
	require.NotNil(t, d)
	assert.Zero(t, d.MoIStdDev)
	assert.Zero(t, d.WithinTolerance)
	assert.Nil(t, d.CoreRadiusBand)
}
