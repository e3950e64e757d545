package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/oxygene76/icymoon/internal/types"
	"github.com/oxygene76/icymoon/pkg/astronomy/interior"
	astromath "github.com/oxygene76/icymoon/pkg/astronomy/math"
)

// Summarize describes the residual surface of a finished scan. It returns nil
// when there are no candidates.
func Summarize(candidates []interior.Candidate, model interior.MoonModel) *types.ScanDiagnostics {
	if len(candidates) == 0 {
		return nil
	}

	moi := make([]float64, len(candidates))
	massErr := make([]float64, len(candidates))
	var admissible []interior.Candidate
	for i, c := range candidates {
		moi[i] = c.MoI
		massErr[i] = math.Abs(c.MassError(model))
		if model.WithinTolerance(c.MoI) {
			admissible = append(admissible, c)
		}
	}

	mean, std := stat.MeanStdDev(moi, nil)
	if len(moi) < 2 {
		std = 0
	}

	d := &types.ScanDiagnostics{
		Candidates:      len(candidates),
		WithinTolerance: len(admissible),
		MoIMin:          floats.Min(moi),
		MoIMax:          floats.Max(moi),
		MoIMean:         mean,
		MoIStdDev:       std,
		MaxMassError:    floats.Max(massErr),
	}
	if len(admissible) == 0 {
		return d
	}

	d.CoreRadiusBand = band(admissible, func(c interior.Candidate) float64 {
		return astromath.ToKM(c.CoreRadius)
	})
	if admissible[0].WaterDensity != 0 {
		d.WaterDensityBand = band(admissible, func(c interior.Candidate) float64 { return c.WaterDensity })
		d.CoreDensityBand = band(admissible, func(c interior.Candidate) float64 { return c.CoreDensity })
	}
	return d
}

func band(cs []interior.Candidate, value func(interior.Candidate) float64) *types.Band {
	xs := make([]float64, len(cs))
	for i, c := range cs {
		xs[i] = value(c)
	}
	return &types.Band{Min: floats.Min(xs), Max: floats.Max(xs)}
}
