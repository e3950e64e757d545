package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/icymoon/pkg/astronomy/interior"
)

// EnvPrefix is the prefix of environment overrides, e.g. ICYMOON_MODEL_MOI
const EnvPrefix = "ICYMOON"

// Config represents the icymoon configuration
type Config struct {
	Model      ModelConfig      `yaml:"model" mapstructure:"model"`
	ThreeLayer ThreeLayerConfig `yaml:"three_layer" mapstructure:"three_layer"`
	TwoLayer   TwoLayerConfig   `yaml:"two_layer" mapstructure:"two_layer"`
	Scan       ScanConfig       `yaml:"scan" mapstructure:"scan"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ModelConfig contains the observed bulk properties (SI units)
type ModelConfig struct {
	Name         string  `yaml:"name" mapstructure:"name"`
	Mass         float64 `yaml:"mass" mapstructure:"mass"`
	Radius       float64 `yaml:"radius" mapstructure:"radius"`
	MoI          float64 `yaml:"moi" mapstructure:"moi"`
	MoITolerance float64 `yaml:"moi_tolerance" mapstructure:"moi_tolerance"`
}

// ThreeLayerConfig contains layer densities and the core radius sweep
type ThreeLayerConfig struct {
	ShellDensity   float64 `yaml:"shell_density" mapstructure:"shell_density"`
	MantleDensity  float64 `yaml:"mantle_density" mapstructure:"mantle_density"`
	CoreDensity    float64 `yaml:"core_density" mapstructure:"core_density"`
	CoreRadiusMin  float64 `yaml:"core_radius_min" mapstructure:"core_radius_min"`
	CoreRadiusMax  float64 `yaml:"core_radius_max" mapstructure:"core_radius_max"`
	CoreRadiusStep float64 `yaml:"core_radius_step" mapstructure:"core_radius_step"`
}

// TwoLayerConfig contains the water and core density sweeps
type TwoLayerConfig struct {
	WaterDensityMin    float64 `yaml:"water_density_min" mapstructure:"water_density_min"`
	WaterDensityMax    float64 `yaml:"water_density_max" mapstructure:"water_density_max"`
	WaterDensityPoints int     `yaml:"water_density_points" mapstructure:"water_density_points"`
	CoreDensityMin     float64 `yaml:"core_density_min" mapstructure:"core_density_min"`
	CoreDensityMax     float64 `yaml:"core_density_max" mapstructure:"core_density_max"`
	CoreDensityPoints  int     `yaml:"core_density_points" mapstructure:"core_density_points"`
}

// ScanConfig contains scan execution settings
type ScanConfig struct {
	Workers int    `yaml:"workers" mapstructure:"workers"`
	Format  string `yaml:"format" mapstructure:"format"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the Europa configuration
func DefaultConfig() *Config {
	three := interior.DefaultThreeLayerModel()
	two := interior.DefaultTwoLayerModel()

	return &Config{
		Model: ModelConfig{
			Name:         three.Name,
			Mass:         three.Mass,
			Radius:       three.Radius,
			MoI:          three.TargetMoI,
			MoITolerance: three.MoITolerance,
		},
		ThreeLayer: ThreeLayerConfig{
			ShellDensity:   three.ShellDensity,
			MantleDensity:  three.MantleDensity,
			CoreDensity:    three.CoreDensity,
			CoreRadiusMin:  three.CoreRadius.Start,
			CoreRadiusMax:  three.CoreRadius.Stop,
			CoreRadiusStep: three.CoreRadius.Step,
		},
		TwoLayer: TwoLayerConfig{
			WaterDensityMin:    two.WaterDensity.Start,
			WaterDensityMax:    two.WaterDensity.Stop,
			WaterDensityPoints: two.WaterDensity.N,
			CoreDensityMin:     two.CoreDensity.Start,
			CoreDensityMax:     two.CoreDensity.Stop,
			CoreDensityPoints:  two.CoreDensity.N,
		},
		Scan: ScanConfig{
			Workers: 1,
			Format:  "summary",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// NewViper returns a viper instance primed with the defaults, the config
// search path and environment overrides. An explicit path disables the search.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("model.name", def.Model.Name)
	v.SetDefault("model.mass", def.Model.Mass)
	v.SetDefault("model.radius", def.Model.Radius)
	v.SetDefault("model.moi", def.Model.MoI)
	v.SetDefault("model.moi_tolerance", def.Model.MoITolerance)
	v.SetDefault("three_layer.shell_density", def.ThreeLayer.ShellDensity)
	v.SetDefault("three_layer.mantle_density", def.ThreeLayer.MantleDensity)
	v.SetDefault("three_layer.core_density", def.ThreeLayer.CoreDensity)
	v.SetDefault("three_layer.core_radius_min", def.ThreeLayer.CoreRadiusMin)
	v.SetDefault("three_layer.core_radius_max", def.ThreeLayer.CoreRadiusMax)
	v.SetDefault("three_layer.core_radius_step", def.ThreeLayer.CoreRadiusStep)
	v.SetDefault("two_layer.water_density_min", def.TwoLayer.WaterDensityMin)
	v.SetDefault("two_layer.water_density_max", def.TwoLayer.WaterDensityMax)
	v.SetDefault("two_layer.water_density_points", def.TwoLayer.WaterDensityPoints)
	v.SetDefault("two_layer.core_density_min", def.TwoLayer.CoreDensityMin)
	v.SetDefault("two_layer.core_density_max", def.TwoLayer.CoreDensityMax)
	v.SetDefault("two_layer.core_density_points", def.TwoLayer.CoreDensityPoints)
	v.SetDefault("scan.workers", def.Scan.Workers)
	v.SetDefault("scan.format", def.Scan.Format)
	v.SetDefault("log.level", def.Log.Level)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".icymoon"))
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig reads the config file, if one is found, and returns the merged
// and validated configuration. A missing file on the search path is not an
// error; a missing explicit file is.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// SaveConfig writes the configuration as YAML, creating parent directories
func SaveConfig(config *Config, configFile string) error {
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigPath returns the default config file location
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".icymoon", "config.yaml"), nil
}

// validateConfig checks settings that are not part of the physical model.
// The models validate themselves before a scan.
func validateConfig(config *Config) error {
	switch config.Scan.Format {
	case "summary", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %q", config.Scan.Format)
	}

	if config.Scan.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}

	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	return nil
}

// MoonModel returns the bulk model
func (c *Config) MoonModel() interior.MoonModel {
	return interior.MoonModel{
		Name:         c.Model.Name,
		Mass:         c.Model.Mass,
		Radius:       c.Model.Radius,
		TargetMoI:    c.Model.MoI,
		MoITolerance: c.Model.MoITolerance,
	}
}

// ThreeLayerModel returns the three-layer model described by the config
func (c *Config) ThreeLayerModel() interior.ThreeLayerModel {
	return interior.ThreeLayerModel{
		MoonModel:     c.MoonModel(),
		ShellDensity:  c.ThreeLayer.ShellDensity,
		MantleDensity: c.ThreeLayer.MantleDensity,
		CoreDensity:   c.ThreeLayer.CoreDensity,
		CoreRadius: interior.StepAxis{
			Start: c.ThreeLayer.CoreRadiusMin,
			Stop:  c.ThreeLayer.CoreRadiusMax,
			Step:  c.ThreeLayer.CoreRadiusStep,
		},
	}
}

// TwoLayerModel returns the two-layer model described by the config
func (c *Config) TwoLayerModel() interior.TwoLayerModel {
	return interior.TwoLayerModel{
		MoonModel: c.MoonModel(),
		WaterDensity: interior.SpanAxis{
			Start: c.TwoLayer.WaterDensityMin,
			Stop:  c.TwoLayer.WaterDensityMax,
			N:     c.TwoLayer.WaterDensityPoints,
		},
		CoreDensity: interior.SpanAxis{
			Start: c.TwoLayer.CoreDensityMin,
			Stop:  c.TwoLayer.CoreDensityMax,
			N:     c.TwoLayer.CoreDensityPoints,
		},
	}
}
