package report

import (
	"github.com/oxygene76/icymoon/internal/types"
	"github.com/oxygene76/icymoon/pkg/astronomy/interior"
	astromath "github.com/oxygene76/icymoon/pkg/astronomy/math"
)

// NewThreeLayer derives the report metrics for a three-layer best fit
func NewThreeLayer(m interior.ThreeLayerModel, res interior.ScanResult) types.StructureReport {
	best := res.Best
	r := base(m.MoonModel, types.VariantThreeLayer, res)

	R1, R2, R3 := m.Radius, best.MantleRadius, best.CoreRadius
	r.CoreRadiusKM = astromath.ToKM(R3)
	r.MantleRadiusKM = astromath.ToKM(R2)
	r.MantleThicknessKM = astromath.ToKM(R2 - R3)
	r.ShellThicknessKM = astromath.ToKM(R1 - R2)

	r.CoreMassFraction = m.CoreDensity * astromath.SphereVolume(R3) / m.Mass
	r.MantleMassFraction = m.MantleDensity * astromath.ShellVolume(R3, R2) / m.Mass
	r.ShellMassFraction = m.ShellDensity * astromath.ShellVolume(R2, R1) / m.Mass

	r.ShellDensity = m.ShellDensity
	r.MantleDensity = m.MantleDensity
	r.CoreDensity = m.CoreDensity
	return r
}

// NewTwoLayer derives the report metrics for a two-layer best fit. The shell
// thickness is taken from the best candidate.
func NewTwoLayer(m interior.TwoLayerModel, res interior.ScanResult) types.StructureReport {
	best := res.Best
	r := base(m.MoonModel, types.VariantTwoLayer, res)

	R, Rc := m.Radius, best.CoreRadius
	r.CoreRadiusKM = astromath.ToKM(Rc)
	r.ShellThicknessKM = astromath.ToKM(R - Rc)

	r.CoreMassFraction = best.CoreDensity * astromath.SphereVolume(Rc) / m.Mass
	r.ShellMassFraction = best.WaterDensity * astromath.ShellVolume(Rc, R) / m.Mass

	r.ShellDensity = best.WaterDensity
	r.CoreDensity = best.CoreDensity
	return r
}

func base(m interior.MoonModel, v types.Variant, res interior.ScanResult) types.StructureReport {
	best := res.Best
	return types.StructureReport{
		Model:              m.Name,
		Variant:            v,
		TargetMoI:          m.TargetMoI,
		MoITolerance:       m.MoITolerance,
		MoI:                best.MoI,
		MoIResidual:        best.Residual,
		MoIPercentError:    astromath.RelativeError(best.MoI, m.TargetMoI) * 100,
		WithinTolerance:    m.WithinTolerance(best.MoI),
		MassPercentError:   best.MassError(m) * 100,
		BestCandidateIndex: best.Index,
		GridPoints:         res.GridPoints,
		Evaluated:          res.Evaluated,
		Skipped:            res.Skipped,
	}
}
