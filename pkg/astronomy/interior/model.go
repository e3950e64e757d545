package interior

import (
	errorsmod "cosmossdk.io/errors"

	astromath "github.com/oxygene76/icymoon/pkg/astronomy/math"
)

// MoonModel holds the observed bulk properties of a moon
type MoonModel struct {
	Name         string  `json:"name" yaml:"name"`
	Mass         float64 `json:"mass" yaml:"mass"`                   // kg
	Radius       float64 `json:"radius" yaml:"radius"`               // m
	TargetMoI    float64 `json:"target_moi" yaml:"target_moi"`       // C/(M R^2)
	MoITolerance float64 `json:"moi_tolerance" yaml:"moi_tolerance"` // absolute
}

// Validate rejects non-physical bulk properties
func (m MoonModel) Validate() error {
	if !isFinite(m.Mass) || m.Mass <= 0 {
		return errorsmod.Wrapf(ErrInvalidModel, "mass must be positive, got %g kg", m.Mass)
	}
	if !isFinite(m.Radius) || m.Radius <= 0 {
		return errorsmod.Wrapf(ErrInvalidModel, "radius must be positive, got %g m", m.Radius)
	}
	if !isFinite(m.TargetMoI) || m.TargetMoI <= 0 || m.TargetMoI >= 1 {
		return errorsmod.Wrapf(ErrInvalidModel, "MoI factor must lie in (0, 1), got %g", m.TargetMoI)
	}
	if !isFinite(m.MoITolerance) || m.MoITolerance < 0 {
		return errorsmod.Wrapf(ErrInvalidModel, "MoI tolerance must be non-negative, got %g", m.MoITolerance)
	}
	return nil
}

// BulkDensity returns the mean density in kg/m^3
func (m MoonModel) BulkDensity() float64 {
	return m.Mass / astromath.SphereVolume(m.Radius)
}

// Residual returns |moi - target|
func (m MoonModel) Residual(moi float64) float64 {
	d := moi - m.TargetMoI
	if d < 0 {
		return -d
	}
	return d
}

// WithinTolerance reports whether moi matches the target within the tolerance
func (m MoonModel) WithinTolerance(moi float64) bool {
	return m.Residual(moi) <= m.MoITolerance
}

// ThreeLayerModel is an ocean-ice shell over a silicate mantle over a metallic
// core, with fixed densities and a swept core radius
type ThreeLayerModel struct {
	MoonModel     `yaml:",inline"`
	ShellDensity  float64  `json:"shell_density" yaml:"shell_density"`   // rho1, kg/m^3
	MantleDensity float64  `json:"mantle_density" yaml:"mantle_density"` // rho2
	CoreDensity   float64  `json:"core_density" yaml:"core_density"`     // rho3
	CoreRadius    StepAxis `json:"core_radius" yaml:"core_radius"`       // m
}

// Validate fails fast on configurations the scan cannot handle
func (m ThreeLayerModel) Validate() error {
	if err := m.MoonModel.Validate(); err != nil {
		return err
	}
	if err := m.validateDensities(); err != nil {
		return err
	}
	if err := m.CoreRadius.Validate(); err != nil {
		return errorsmod.Wrap(err, "core radius axis")
	}
	if m.CoreRadius.Start <= 0 {
		return errorsmod.Wrapf(ErrInvalidGrid, "core radius floor must be positive, got %g m", m.CoreRadius.Start)
	}
	if m.CoreRadius.Stop > m.Radius {
		return errorsmod.Wrapf(ErrInvalidGrid, "core radius bound %g m exceeds total radius %g m", m.CoreRadius.Stop, m.Radius)
	}
	return nil
}

// validateDensities requires positive layer densities and a shell/mantle
// contrast for the mass inversion
func (m ThreeLayerModel) validateDensities() error {
	densities := []struct {
		name  string
		value float64
	}{
		{"shell", m.ShellDensity},
		{"mantle", m.MantleDensity},
		{"core", m.CoreDensity},
	}
	for _, d := range densities {
		if !isFinite(d.value) || d.value <= 0 {
			return errorsmod.Wrapf(ErrInvalidModel, "%s density must be positive, got %g", d.name, d.value)
		}
	}
	if m.MantleDensity == m.ShellDensity {
		return errorsmod.Wrapf(ErrDegenerateDensity, "mantle and shell density are both %g kg/m^3", m.ShellDensity)
	}
	return nil
}

// TwoLayerModel is a water shell over a rock-metal core with both densities swept
type TwoLayerModel struct {
	MoonModel    `yaml:",inline"`
	WaterDensity SpanAxis `json:"water_density" yaml:"water_density"`
	CoreDensity  SpanAxis `json:"core_density" yaml:"core_density"`
}

// Grid returns the density grid scanned by FitTwoLayer
func (m TwoLayerModel) Grid() DensityGrid {
	return DensityGrid{Water: m.WaterDensity, Core: m.CoreDensity}
}

// Validate fails fast on configurations the scan cannot handle. Overlapping
// density ranges are rejected because a grid point with equal densities has no
// inversion.
func (m TwoLayerModel) Validate() error {
	if err := m.MoonModel.Validate(); err != nil {
		return err
	}
	if err := m.Grid().Validate(); err != nil {
		return err
	}
	if m.WaterDensity.Start <= 0 || m.CoreDensity.Start <= 0 {
		return errorsmod.Wrap(ErrInvalidModel, "densities must be positive")
	}
	if m.WaterDensity.Stop >= m.CoreDensity.Start && m.CoreDensity.Stop >= m.WaterDensity.Start {
		return errorsmod.Wrapf(ErrDegenerateDensity,
			"water density range [%g, %g] overlaps core density range [%g, %g]",
			m.WaterDensity.Start, m.WaterDensity.Stop, m.CoreDensity.Start, m.CoreDensity.Stop)
	}
	return nil
}
