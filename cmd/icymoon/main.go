package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oxygene76/icymoon/pkg/astronomy/interior"
	astromath "github.com/oxygene76/icymoon/pkg/astronomy/math"
	"github.com/oxygene76/icymoon/pkg/utils"
)

const (
	appName = "icymoon"
	version = "v1.0.0"
)

// flagKeys maps command-line flags onto config keys. Flags override the config
// file and environment only when set explicitly.
var flagKeys = map[string]string{
	"log-level":            "log.level",
	"mass":                 "model.mass",
	"radius":               "model.radius",
	"moi":                  "model.moi",
	"moi-tolerance":        "model.moi_tolerance",
	"shell-density":        "three_layer.shell_density",
	"mantle-density":       "three_layer.mantle_density",
	"core-density":         "three_layer.core_density",
	"core-radius-min":      "three_layer.core_radius_min",
	"core-radius-max":      "three_layer.core_radius_max",
	"core-radius-step":     "three_layer.core_radius_step",
	"water-density-min":    "two_layer.water_density_min",
	"water-density-max":    "two_layer.water_density_max",
	"water-density-points": "two_layer.water_density_points",
	"core-density-min":     "two_layer.core_density_min",
	"core-density-max":     "two_layer.core_density_max",
	"core-density-points":  "two_layer.core_density_points",
	"workers":              "scan.workers",
	"format":               "scan.format",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Fit the layered interior of an icy moon to its mass and moment of inertia",
	Long: `icymoon estimates core size, mantle radius and ocean-ice shell thickness of
an icy moon from two observables: total mass and the moment-of-inertia factor.

For every point of a dense parameter grid the dependent radius is solved
exactly from mass conservation, the MoI of the layered sphere is evaluated,
and the configuration closest to the observed MoI is reported.`,
	Version:      version,
	SilenceUsage: true,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default (Europa) configuration to the config file so it can be
edited. Refuses to overwrite an existing file unless --force is given.`,
	RunE: runInit,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the published MoI constraints available as presets",
	RunE:  runPresets,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.icymoon/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	initCmd.Flags().Bool("force", false, "overwrite an existing config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(presetsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration with the command's flags bound and builds the
// logger
func setup(cmd *cobra.Command) (*utils.Config, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	v := utils.NewViper(cfgFile)
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
	}

	cfg, err := utils.LoadConfig(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := newLogger(cfg.Log.Level, verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("Using config file", zap.String("path", used))
	}
	return cfg, logger, nil
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}

func runInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = utils.GetConfigPath(); err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	if err := utils.SaveConfig(utils.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Preset", "Reference", "Mass [kg]", "Radius [km]", "MoI"})
	table.SetBorder(false)
	for _, p := range interior.Presets() {
		table.Append([]string{
			string(p.Preset),
			p.Reference,
			fmt.Sprintf("%.3e", p.Model.Mass),
			fmt.Sprintf("%.0f", astromath.ToKM(p.Model.Radius)),
			fmt.Sprintf("%.4f ± %.4f", p.Model.TargetMoI, p.Model.MoITolerance),
		})
	}
	table.Render()
	return nil
}
