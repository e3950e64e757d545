package interior

import (
	"fmt"
	"sort"
)

// Preset names a published set of bulk constraints
type Preset string

const (
	PresetEuropaCasajus2021  Preset = "europa_casajus_2021"
	PresetEuropaAnderson1998 Preset = "europa_anderson_1998"
	PresetCustom             Preset = "custom"
)

// PresetInfo describes a preset for listings
type PresetInfo struct {
	Preset    Preset
	Reference string
	Model     MoonModel
}

var presets = map[Preset]PresetInfo{
	PresetEuropaCasajus2021: {
		Preset:    PresetEuropaCasajus2021,
		Reference: "Casajus et al. (2021)",
		Model: MoonModel{
			Name:         string(PresetEuropaCasajus2021),
			Mass:         4.8e22, // kg
			Radius:       1565e3, // m
			TargetMoI:    0.3547,
			MoITolerance: 0.0024,
		},
	},
	PresetEuropaAnderson1998: {
		Preset:    PresetEuropaAnderson1998,
		Reference: "Anderson et al. (1998)",
		Model: MoonModel{
			Name:         string(PresetEuropaAnderson1998),
			Mass:         4.8e22,
			Radius:       1565e3,
			TargetMoI:    0.3475,
			MoITolerance: 0.0026,
		},
	},
}

// GetPresetModel returns the bulk model of a named preset
func GetPresetModel(p Preset) (MoonModel, error) {
	info, ok := presets[p]
	if !ok {
		return MoonModel{}, fmt.Errorf("unknown preset: %s", p)
	}
	return info.Model, nil
}

// Presets lists all presets sorted by name
func Presets() []PresetInfo {
	out := make([]PresetInfo, 0, len(presets))
	for _, info := range presets {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Preset < out[j].Preset })
	return out
}

// DefaultThreeLayerModel is the Europa ocean-ice/silicate/metal model with the
// core radius swept from 1 km to 1500 km in 0.5 km steps
func DefaultThreeLayerModel() ThreeLayerModel {
	return ThreeLayerModel{
		MoonModel:     presets[PresetEuropaCasajus2021].Model,
		ShellDensity:  1000,
		MantleDensity: 3300,
		CoreDensity:   5150,
		CoreRadius:    StepAxis{Start: 1e3, Stop: 1500e3, Step: 5e2},
	}
}

// DefaultTwoLayerModel is the Europa water/rock-metal model with densities
// swept over 950-1050 and 3000-3800 kg/m^3
func DefaultTwoLayerModel() TwoLayerModel {
	return TwoLayerModel{
		MoonModel:    presets[PresetEuropaCasajus2021].Model,
		WaterDensity: SpanAxis{Start: 950, Stop: 1050, N: 101},
		CoreDensity:  SpanAxis{Start: 3000, Stop: 3800, N: 551},
	}
}
