package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/icymoon/internal/types"
	"github.com/oxygene76/icymoon/pkg/astronomy/interior"
)

func threeLayerReport(t *testing.T) types.StructureReport {
	t.Helper()
	m := interior.DefaultThreeLayerModel()
	res, err := interior.FitThreeLayer(context.Background(), m)
	require.NoError(t, err)
	return NewThreeLayer(m, res)
}

func TestNewThreeLayer(t *testing.T) {
	r := threeLayerReport(t)

	assert.Equal(t, types.VariantThreeLayer, r.Variant)
	assert.Equal(t, "europa_casajus_2021", r.Model)
	assert.True(t, r.WithinTolerance)
	assert.Equal(t, 1246, r.BestCandidateIndex)
	assert.Equal(t, 624.0, r.CoreRadiusKM)
	assert.InDelta(t, 1461.271, r.MantleRadiusKM, 1e-3)
	assert.InDelta(t, 837.271, r.MantleThicknessKM, 1e-3)
	assert.InDelta(t, 103.729, r.ShellThicknessKM, 1e-3)
	assert.InDelta(t, 1.0, r.CoreMassFraction+r.MantleMassFraction+r.ShellMassFraction, 1e-9)
	assert.Less(t, r.MassPercentError, 1e-9)
	assert.Greater(t, r.MassPercentError, -1e-9)
	assert.InDelta(t, -0.00097, r.MoIPercentError, 1e-4)
	assert.Equal(t, 1000.0, r.ShellDensity)
	assert.Equal(t, 3300.0, r.MantleDensity)
	assert.Equal(t, 5150.0, r.CoreDensity)
	assert.Equal(t, 2999, r.GridPoints)
	assert.Equal(t, 551, r.Skipped)
}

func TestNewTwoLayer(t *testing.T) {
	m := interior.DefaultTwoLayerModel()
	res, err := interior.FitTwoLayer(context.Background(), m, interior.WithWorkers(4))
	require.NoError(t, err)

	r := NewTwoLayer(m, res)
	assert.Equal(t, types.VariantTwoLayer, r.Variant)
	assert.InDelta(t, 1423.697, r.CoreRadiusKM, 1e-3)
	assert.InDelta(t, 141.303, r.ShellThicknessKM, 1e-3)
	assert.Equal(t, 1026.0, r.ShellDensity)
	assert.InDelta(t, 3634.18, r.CoreDensity, 1e-2)
	assert.Zero(t, r.MantleRadiusKM)
	assert.Zero(t, r.MantleMassFraction)
	assert.InDelta(t, 1.0, r.CoreMassFraction+r.ShellMassFraction, 1e-9)
}

func TestWriteJSON(t *testing.T) {
	r := threeLayerReport(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "three_layer", got["variant"])
	assert.Equal(t, true, got["within_tolerance"])
	assert.Equal(t, 624.0, got["core_radius_km"])
	assert.NotContains(t, got, "diagnostics")
}

func TestWriteYAML(t *testing.T) {
	r := threeLayerReport(t)
	r.Diagnostics = &types.ScanDiagnostics{Candidates: 3, CoreRadiusBand: &types.Band{Min: 600, Max: 650}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatYAML))

	var got types.StructureReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, r, got)
}

func TestWriteSummary(t *testing.T) {
	r := threeLayerReport(t)
	r.Diagnostics = &types.ScanDiagnostics{
		Candidates:      2448,
		WithinTolerance: 40,
		CoreRadiusBand:  &types.Band{Min: 600, Max: 650},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, ""))
	out := buf.String()

	assert.Contains(t, out, "ICY MOON INTERIOR STRUCTURE FIT")
	assert.Contains(t, out, "Ocean-ice shell thickness")
	assert.Contains(t, out, "103.73 km")
	assert.Contains(t, out, "624.00 km")
	assert.Contains(t, out, "SCAN DIAGNOSTICS")
	assert.Contains(t, out, "Admissible core radius: 600.00")
	assert.NotContains(t, out, "WARNING")
}

func TestWriteSummaryWarnsOutsideTolerance(t *testing.T) {
	r := threeLayerReport(t)
	r.Variant = types.VariantTwoLayer
	r.WithinTolerance = false

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatSummary))
	out := buf.String()
	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "Water-shell thickness")
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, types.StructureReport{}, "xml")
	assert.ErrorContains(t, err, "unknown format: xml")
}

func TestSave(t *testing.T) {
	r := threeLayerReport(t)
	path := filepath.Join(t.TempDir(), "fit.json")
	require.NoError(t, Save(r, path, FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got types.StructureReport
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, r, got)

	assert.Error(t, Save(r, filepath.Join(t.TempDir(), "fit.txt"), "csv"))
}
