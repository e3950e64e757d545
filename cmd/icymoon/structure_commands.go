package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oxygene76/icymoon/internal/types"
	"github.com/oxygene76/icymoon/pkg/analysis"
	"github.com/oxygene76/icymoon/pkg/astronomy/interior"
	"github.com/oxygene76/icymoon/pkg/report"
	"github.com/oxygene76/icymoon/pkg/utils"
)

var threeLayerCmd = &cobra.Command{
	Use:   "three-layer [preset]",
	Short: "Fit an ocean-ice shell / silicate mantle / metallic core model",
	Long: `
Scan the metallic core radius and solve the mantle radius from mass
conservation at every step. Layer densities are fixed.

Presets available:
  europa_casajus_2021   - MoI 0.3547 ± 0.0024
  europa_anderson_1998  - MoI 0.3475 ± 0.0026
  custom                - model taken from config and flags

Examples:
  # Europa with the default densities
  icymoon three-layer europa_casajus_2021

  # Denser core, finer sweep, JSON output
  icymoon three-layer --core-density 5500 --core-radius-step 100 --format json
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runThreeLayer,
}

var twoLayerCmd = &cobra.Command{
	Use:   "two-layer [preset]",
	Short: "Fit a water shell / rock-metal core model",
	Long: `
Scan water-shell and core densities and solve the core radius from mass
conservation for every density pair.

Examples:
  icymoon two-layer europa_casajus_2021
  icymoon two-layer --water-density-min 900 --water-density-max 1100 --water-density-points 201
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTwoLayer,
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a single interior configuration without scanning",
}

var evaluateThreeLayerCmd = &cobra.Command{
	Use:   "three-layer [preset]",
	Short: "Solve the mantle radius for one core radius",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvaluateThreeLayer,
}

var evaluateTwoLayerCmd = &cobra.Command{
	Use:   "two-layer [preset]",
	Short: "Solve the core radius for one water/core density pair",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvaluateTwoLayer,
}

func init() {
	def := utils.DefaultConfig()

	addModelFlags(threeLayerCmd, def)
	addThreeLayerDensityFlags(threeLayerCmd, def)
	threeLayerCmd.Flags().Float64("core-radius-min", def.ThreeLayer.CoreRadiusMin, "smallest core radius tested [m]")
	threeLayerCmd.Flags().Float64("core-radius-max", def.ThreeLayer.CoreRadiusMax, "largest core radius tested [m]")
	threeLayerCmd.Flags().Float64("core-radius-step", def.ThreeLayer.CoreRadiusStep, "core radius increment [m]")
	addScanFlags(threeLayerCmd, def)

	addModelFlags(twoLayerCmd, def)
	twoLayerCmd.Flags().Float64("water-density-min", def.TwoLayer.WaterDensityMin, "lowest water-shell density [kg/m^3]")
	twoLayerCmd.Flags().Float64("water-density-max", def.TwoLayer.WaterDensityMax, "highest water-shell density [kg/m^3]")
	twoLayerCmd.Flags().Int("water-density-points", def.TwoLayer.WaterDensityPoints, "number of water-shell densities")
	twoLayerCmd.Flags().Float64("core-density-min", def.TwoLayer.CoreDensityMin, "lowest core density [kg/m^3]")
	twoLayerCmd.Flags().Float64("core-density-max", def.TwoLayer.CoreDensityMax, "highest core density [kg/m^3]")
	twoLayerCmd.Flags().Int("core-density-points", def.TwoLayer.CoreDensityPoints, "number of core densities")
	addScanFlags(twoLayerCmd, def)

	addModelFlags(evaluateThreeLayerCmd, def)
	addThreeLayerDensityFlags(evaluateThreeLayerCmd, def)
	evaluateThreeLayerCmd.Flags().Float64("core-radius", 0, "core radius [m]")
	evaluateThreeLayerCmd.Flags().String("format", def.Scan.Format, "output format (summary, json, yaml)")
	_ = evaluateThreeLayerCmd.MarkFlagRequired("core-radius")

	addModelFlags(evaluateTwoLayerCmd, def)
	evaluateTwoLayerCmd.Flags().Float64("water-density", 0, "water-shell density [kg/m^3]")
	evaluateTwoLayerCmd.Flags().Float64("rock-density", 0, "rock-metal core density [kg/m^3]")
	evaluateTwoLayerCmd.Flags().String("format", def.Scan.Format, "output format (summary, json, yaml)")
	_ = evaluateTwoLayerCmd.MarkFlagRequired("water-density")
	_ = evaluateTwoLayerCmd.MarkFlagRequired("rock-density")

	evaluateCmd.AddCommand(evaluateThreeLayerCmd)
	evaluateCmd.AddCommand(evaluateTwoLayerCmd)

	rootCmd.AddCommand(threeLayerCmd)
	rootCmd.AddCommand(twoLayerCmd)
	rootCmd.AddCommand(evaluateCmd)
}

func addModelFlags(cmd *cobra.Command, def *utils.Config) {
	cmd.Flags().Float64("mass", def.Model.Mass, "total mass [kg]")
	cmd.Flags().Float64("radius", def.Model.Radius, "total radius [m]")
	cmd.Flags().Float64("moi", def.Model.MoI, "observed moment-of-inertia factor C/(MR^2)")
	cmd.Flags().Float64("moi-tolerance", def.Model.MoITolerance, "absolute MoI uncertainty")
}

func addThreeLayerDensityFlags(cmd *cobra.Command, def *utils.Config) {
	cmd.Flags().Float64("shell-density", def.ThreeLayer.ShellDensity, "ocean-ice shell density [kg/m^3]")
	cmd.Flags().Float64("mantle-density", def.ThreeLayer.MantleDensity, "silicate mantle density [kg/m^3]")
	cmd.Flags().Float64("core-density", def.ThreeLayer.CoreDensity, "metallic core density [kg/m^3]")
}

func addScanFlags(cmd *cobra.Command, def *utils.Config) {
	cmd.Flags().Int("workers", def.Scan.Workers, "parallel scan partitions (0 = one per CPU)")
	cmd.Flags().String("format", def.Scan.Format, "output format (summary, json, yaml)")
	cmd.Flags().String("output", "", "save the report to a file")
	cmd.Flags().String("dump", "", "write every valid candidate to a JSONL file")
	cmd.Flags().Bool("diagnostics", false, "summarise the whole residual surface")
}

// applyPreset replaces the bulk model with a named preset. Model flags set on
// the command line still win.
func applyPreset(cmd *cobra.Command, args []string, m interior.MoonModel) (interior.MoonModel, error) {
	if len(args) == 0 || interior.Preset(args[0]) == interior.PresetCustom {
		return m, nil
	}

	p, err := interior.GetPresetModel(interior.Preset(args[0]))
	if err != nil {
		return m, err
	}

	flags := cmd.Flags()
	if flags.Changed("mass") {
		p.Mass = m.Mass
	}
	if flags.Changed("radius") {
		p.Radius = m.Radius
	}
	if flags.Changed("moi") {
		p.TargetMoI = m.TargetMoI
	}
	if flags.Changed("moi-tolerance") {
		p.MoITolerance = m.MoITolerance
	}
	return p, nil
}

// scanSetup collects the scan options requested on the command line. The
// returned close function must be called once the scan has finished.
func scanSetup(cmd *cobra.Command, cfg *utils.Config, logger *zap.Logger) ([]interior.ScanOption, *interior.CandidateCollector, func() error, error) {
	opts := []interior.ScanOption{
		interior.WithWorkers(cfg.Scan.Workers),
		interior.WithLogger(logger),
	}
	closeFn := func() error { return nil }

	var sinks []interior.CandidateSink
	if dump, _ := cmd.Flags().GetString("dump"); dump != "" {
		w, err := interior.CreateJSONLCandidateFile(dump)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create dump file: %w", err)
		}
		sinks = append(sinks, w)
		closeFn = w.Close
	}

	var collector *interior.CandidateCollector
	if diag, _ := cmd.Flags().GetBool("diagnostics"); diag {
		collector = &interior.CandidateCollector{}
		sinks = append(sinks, collector)
	}

	switch len(sinks) {
	case 0:
	case 1:
		opts = append(opts, interior.WithSink(sinks[0]))
	default:
		opts = append(opts, interior.WithSink(interior.MultiSink(sinks...)))
	}
	return opts, collector, closeFn, nil
}

func runThreeLayer(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	model := cfg.ThreeLayerModel()
	if model.MoonModel, err = applyPreset(cmd, args, model.MoonModel); err != nil {
		return err
	}

	opts, collector, closeFn, err := scanSetup(cmd, cfg, logger)
	if err != nil {
		return err
	}

	startTime := time.Now()
	res, err := interior.FitThreeLayer(cmd.Context(), model, opts...)
	if cerr := closeFn(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close dump file: %w", cerr)
	}
	if err != nil {
		return fmt.Errorf("three-layer scan failed: %w", err)
	}

	logger.Info("Three-layer scan complete",
		zap.String("model", model.Name),
		zap.Int("grid_points", res.GridPoints),
		zap.Int("skipped", res.Skipped),
		zap.Duration("elapsed", time.Since(startTime)))

	rep := report.NewThreeLayer(model, res)
	if collector != nil {
		rep.Diagnostics = analysis.Summarize(collector.Candidates(), model.MoonModel)
	}
	return writeReport(cmd, cfg, rep)
}

func runTwoLayer(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	model := cfg.TwoLayerModel()
	if model.MoonModel, err = applyPreset(cmd, args, model.MoonModel); err != nil {
		return err
	}

	opts, collector, closeFn, err := scanSetup(cmd, cfg, logger)
	if err != nil {
		return err
	}

	startTime := time.Now()
	res, err := interior.FitTwoLayer(cmd.Context(), model, opts...)
	if cerr := closeFn(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close dump file: %w", cerr)
	}
	if err != nil {
		return fmt.Errorf("two-layer scan failed: %w", err)
	}

	logger.Info("Two-layer scan complete",
		zap.String("model", model.Name),
		zap.Int("grid_points", res.GridPoints),
		zap.Int("skipped", res.Skipped),
		zap.Duration("elapsed", time.Since(startTime)))

	rep := report.NewTwoLayer(model, res)
	if collector != nil {
		rep.Diagnostics = analysis.Summarize(collector.Candidates(), model.MoonModel)
	}
	return writeReport(cmd, cfg, rep)
}

func runEvaluateThreeLayer(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	model := cfg.ThreeLayerModel()
	if model.MoonModel, err = applyPreset(cmd, args, model.MoonModel); err != nil {
		return err
	}

	coreRadius, _ := cmd.Flags().GetFloat64("core-radius")
	c, err := interior.EvaluateThreeLayer(model, coreRadius)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	return writeReport(cmd, cfg, report.NewThreeLayer(model, single(model.MoonModel, c)))
}

func runEvaluateTwoLayer(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	model := cfg.TwoLayerModel()
	if model.MoonModel, err = applyPreset(cmd, args, model.MoonModel); err != nil {
		return err
	}

	water, _ := cmd.Flags().GetFloat64("water-density")
	rock, _ := cmd.Flags().GetFloat64("rock-density")
	c, err := interior.EvaluateTwoLayer(model.MoonModel, interior.DensityPair{Water: water, Core: rock})
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	return writeReport(cmd, cfg, report.NewTwoLayer(model, single(model.MoonModel, c)))
}

// single wraps one evaluated candidate as a one-point scan result
func single(m interior.MoonModel, c interior.Candidate) interior.ScanResult {
	return interior.ScanResult{
		Best:       interior.BestFit{Candidate: c, Residual: m.Residual(c.MoI)},
		GridPoints: 1,
		Evaluated:  1,
	}
}

func writeReport(cmd *cobra.Command, cfg *utils.Config, rep types.StructureReport) error {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return report.Write(cmd.OutOrStdout(), rep, cfg.Scan.Format)
	}

	if err := report.Save(rep, output, cfg.Scan.Format); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Results saved to: %s\n", output)
	return nil
}
