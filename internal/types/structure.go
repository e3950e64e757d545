package types

// Variant identifies the layered model that produced a report
type Variant string

const (
	VariantThreeLayer Variant = "three_layer"
	VariantTwoLayer   Variant = "two_layer"
)

// StructureReport is the presentation record of a best-fit interior structure.
// Lengths are in km, densities in kg/m^3, fractions are of the total mass.
type StructureReport struct {
	Model   string  `json:"model" yaml:"model"`
	Variant Variant `json:"variant" yaml:"variant"`

	TargetMoI    float64 `json:"target_moi" yaml:"target_moi"`
	MoITolerance float64 `json:"moi_tolerance" yaml:"moi_tolerance"`

	MoI             float64 `json:"moi" yaml:"moi"`
	MoIResidual     float64 `json:"moi_residual" yaml:"moi_residual"`
	MoIPercentError float64 `json:"moi_percent_error" yaml:"moi_percent_error"`
	WithinTolerance bool    `json:"within_tolerance" yaml:"within_tolerance"`

	MassPercentError float64 `json:"mass_percent_error" yaml:"mass_percent_error"`

	CoreRadiusKM       float64 `json:"core_radius_km" yaml:"core_radius_km"`
	MantleRadiusKM     float64 `json:"mantle_radius_km,omitempty" yaml:"mantle_radius_km,omitempty"`
	MantleThicknessKM  float64 `json:"mantle_thickness_km,omitempty" yaml:"mantle_thickness_km,omitempty"`
	ShellThicknessKM   float64 `json:"shell_thickness_km" yaml:"shell_thickness_km"`
	CoreMassFraction   float64 `json:"core_mass_fraction" yaml:"core_mass_fraction"`
	MantleMassFraction float64 `json:"mantle_mass_fraction,omitempty" yaml:"mantle_mass_fraction,omitempty"`
	ShellMassFraction  float64 `json:"shell_mass_fraction" yaml:"shell_mass_fraction"`
	ShellDensity       float64 `json:"shell_density" yaml:"shell_density"`
	MantleDensity      float64 `json:"mantle_density,omitempty" yaml:"mantle_density,omitempty"`
	CoreDensity        float64 `json:"core_density" yaml:"core_density"`
	BestCandidateIndex int     `json:"best_candidate_index" yaml:"best_candidate_index"`

	GridPoints int `json:"grid_points" yaml:"grid_points"`
	Evaluated  int `json:"evaluated" yaml:"evaluated"`
	Skipped    int `json:"skipped" yaml:"skipped"`

	Diagnostics *ScanDiagnostics `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// ScanDiagnostics summarises the whole residual surface, not just the best fit
type ScanDiagnostics struct {
	Candidates      int     `json:"candidates" yaml:"candidates"`
	WithinTolerance int     `json:"within_tolerance" yaml:"within_tolerance"`
	MoIMin          float64 `json:"moi_min" yaml:"moi_min"`
	MoIMax          float64 `json:"moi_max" yaml:"moi_max"`
	MoIMean         float64 `json:"moi_mean" yaml:"moi_mean"`
	MoIStdDev       float64 `json:"moi_stddev" yaml:"moi_stddev"`
	MaxMassError    float64 `json:"max_mass_error" yaml:"max_mass_error"`

	// Bands cover the candidates within tolerance only
	CoreRadiusBand   *Band `json:"core_radius_band_km,omitempty" yaml:"core_radius_band_km,omitempty"`
	WaterDensityBand *Band `json:"water_density_band,omitempty" yaml:"water_density_band,omitempty"`
	CoreDensityBand  *Band `json:"core_density_band,omitempty" yaml:"core_density_band,omitempty"`
}

// Band is a closed interval
type Band struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}
