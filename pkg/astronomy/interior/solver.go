package interior

import (
	"math"

	errorsmod "cosmossdk.io/errors"

	astromath "github.com/oxygene76/icymoon/pkg/astronomy/math"
)

// Candidate is the structure derived at one grid point. Fields that do not
// apply to a variant are left zero.
type Candidate struct {
	Index        int     `json:"index" yaml:"index"`
	CoreRadius   float64 `json:"core_radius" yaml:"core_radius"`                         // m
	MantleRadius float64 `json:"mantle_radius,omitempty" yaml:"mantle_radius,omitempty"` // m, three-layer only
	WaterDensity float64 `json:"water_density,omitempty" yaml:"water_density,omitempty"` // kg/m^3, two-layer only
	CoreDensity  float64 `json:"core_density,omitempty" yaml:"core_density,omitempty"`   // kg/m^3, two-layer only
	Mass         float64 `json:"mass" yaml:"mass"`                                       // recomputed from the radii
	MoI          float64 `json:"moi" yaml:"moi"`
}

// MassError returns the relative deviation of the recomputed mass
func (c Candidate) MassError(m MoonModel) float64 {
	return astromath.RelativeError(c.Mass, m.Mass)
}

// SolveThreeLayer derives the mantle radius for the given core radius from mass
// conservation and evaluates the moment of inertia (Schubert et al. 2009, Eq. 6).
// Points without a real, ordered solution return ErrDomain.
func SolveThreeLayer(m ThreeLayerModel, index int, coreRadius float64) (Candidate, error) {
	R1 := m.Radius
	R3 := coreRadius
	rho1, rho2, rho3 := m.ShellDensity, m.MantleDensity, m.CoreDensity

	m3 := rho3 * astromath.SphereVolume(R3)
	arg := (3*(m.Mass-m3)/(4*math.Pi) + rho2*R3*R3*R3 - rho1*R1*R1*R1) / (rho2 - rho1)
	if !isFinite(arg) || arg < 0 {
		return Candidate{}, errorsmod.Wrapf(ErrDomain, "core radius %g m: negative cube-root argument %g", R3, arg)
	}
	R2 := math.Cbrt(arg)
	if R2 < R3 || R2 > R1 {
		return Candidate{}, errorsmod.Wrapf(ErrDomain, "core radius %g m: mantle radius %g m outside [%g, %g]", R3, R2, R3, R1)
	}

	mass := rho3*astromath.SphereVolume(R3) +
		rho2*astromath.ShellVolume(R3, R2) +
		rho1*astromath.ShellVolume(R2, R1)

	rhoa := m.BulkDensity()
	moi := (2.0 / 5.0) * (rho1/rhoa +
		((rho3-rho2)/rhoa)*astromath.Pow5(R3/R1) +
		((rho2-rho1)/rhoa)*astromath.Pow5(R2/R1))
	if !isFinite(moi) {
		return Candidate{}, errorsmod.Wrapf(ErrDomain, "core radius %g m: non-finite MoI", R3)
	}

	return Candidate{
		Index:        index,
		CoreRadius:   R3,
		MantleRadius: R2,
		Mass:         mass,
		MoI:          moi,
	}, nil
}

// SolveTwoLayer derives the core radius for a water/core density pair from mass
// conservation and evaluates the two-shell moment of inertia
func SolveTwoLayer(m MoonModel, index int, p DensityPair) (Candidate, error) {
	R := m.Radius
	rhow, rhoc := p.Water, p.Core
	if rhoc == rhow {
		return Candidate{}, errorsmod.Wrapf(ErrDomain, "densities %g/%g: equal water and core density", rhow, rhoc)
	}

	arg := (3*m.Mass/(4*math.Pi) - rhow*R*R*R) / (rhoc - rhow)
	if !isFinite(arg) || arg < 0 {
		return Candidate{}, errorsmod.Wrapf(ErrDomain, "densities %g/%g: negative cube-root argument %g", rhow, rhoc, arg)
	}
	Rc := math.Cbrt(arg)
	if Rc > R {
		return Candidate{}, errorsmod.Wrapf(ErrDomain, "densities %g/%g: core radius %g m beyond surface", rhow, rhoc, Rc)
	}

	mass := rhoc*astromath.SphereVolume(Rc) + rhow*astromath.ShellVolume(Rc, R)

	R5 := astromath.Pow5(R)
	Rc5 := astromath.Pow5(Rc)
	moi := (8 * math.Pi / 15) * (rhow*(R5-Rc5) + rhoc*Rc5) / (m.Mass * R * R)
	if !isFinite(moi) {
		return Candidate{}, errorsmod.Wrapf(ErrDomain, "densities %g/%g: non-finite MoI", rhow, rhoc)
	}

	return Candidate{
		Index:        index,
		CoreRadius:   Rc,
		WaterDensity: rhow,
		CoreDensity:  rhoc,
		Mass:         mass,
		MoI:          moi,
	}, nil
}

// EvaluateThreeLayer solves a single core radius outside of a scan
func EvaluateThreeLayer(m ThreeLayerModel, coreRadius float64) (Candidate, error) {
	if err := m.MoonModel.Validate(); err != nil {
		return Candidate{}, err
	}
	if err := m.validateDensities(); err != nil {
		return Candidate{}, err
	}
	if coreRadius <= 0 || coreRadius > m.Radius {
		return Candidate{}, errorsmod.Wrapf(ErrInvalidGrid, "core radius %g m outside (0, %g]", coreRadius, m.Radius)
	}
	return SolveThreeLayer(m, 0, coreRadius)
}

// EvaluateTwoLayer solves a single density pair outside of a scan
func EvaluateTwoLayer(m MoonModel, p DensityPair) (Candidate, error) {
	if err := m.Validate(); err != nil {
		return Candidate{}, err
	}
	if p.Water <= 0 || p.Core <= 0 {
		return Candidate{}, errorsmod.Wrap(ErrInvalidModel, "densities must be positive")
	}
	if p.Water == p.Core {
		return Candidate{}, errorsmod.Wrapf(ErrDegenerateDensity, "water and core density are both %g kg/m^3", p.Water)
	}
	return SolveTwoLayer(m, 0, p)
}
