package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/icymoon/internal/types"
)

// Output formats
const (
	FormatSummary = "summary"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

// Formats lists the supported output formats
func Formats() []string {
	return []string{FormatSummary, FormatJSON, FormatYAML}
}

// Write renders r to w in the given format
func Write(w io.Writer, r types.StructureReport, format string) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()

	case FormatSummary, "":
		return writeSummary(w, r)

	default:
		return fmt.Errorf("unknown format: %s (use: %s)", format, strings.Join(Formats(), ", "))
	}
}

// Save writes the report to filename
func Save(r types.StructureReport, filename, format string) error {
	var buf bytes.Buffer
	if err := Write(&buf, r, format); err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}

func writeSummary(w io.Writer, r types.StructureReport) error {
	var buf bytes.Buffer

	buf.WriteString("========================================\n")
	buf.WriteString("   ICY MOON INTERIOR STRUCTURE FIT\n")
	buf.WriteString("========================================\n")
	fmt.Fprintf(&buf, "\nModel: %s (%s)\n", r.Model, r.Variant)
	fmt.Fprintf(&buf, "Target MoI: %.4f ± %.4f\n", r.TargetMoI, r.MoITolerance)
	fmt.Fprintf(&buf, "Grid: %d points, %d evaluated, %d skipped\n\n", r.GridPoints, r.Evaluated, r.Skipped)

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Quantity", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	rows := [][]string{
		{"MoI result", fmt.Sprintf("%.6f", r.MoI)},
		{"MoI error", fmt.Sprintf("%+.4f %%", r.MoIPercentError)},
		{"Within MoI error", fmt.Sprintf("%t", r.WithinTolerance)},
		{"Mass error", fmt.Sprintf("%+.3e %%", r.MassPercentError)},
		{"Core radius", fmt.Sprintf("%.2f km", r.CoreRadiusKM)},
		{"Core mass fraction", fmt.Sprintf("%.4f", r.CoreMassFraction)},
	}
	if r.Variant == types.VariantThreeLayer {
		rows = append(rows,
			[]string{"Mantle radius", fmt.Sprintf("%.2f km", r.MantleRadiusKM)},
			[]string{"Mantle thickness", fmt.Sprintf("%.2f km", r.MantleThicknessKM)},
			[]string{"Mantle mass fraction", fmt.Sprintf("%.4f", r.MantleMassFraction)},
			[]string{"Ocean-ice shell thickness", fmt.Sprintf("%.2f km", r.ShellThicknessKM)},
		)
	} else {
		rows = append(rows,
			[]string{"Water-shell density", fmt.Sprintf("%.2f kg m^-3", r.ShellDensity)},
			[]string{"Rock-metal density", fmt.Sprintf("%.2f kg m^-3", r.CoreDensity)},
			[]string{"Water-shell thickness", fmt.Sprintf("%.2f km", r.ShellThicknessKM)},
		)
	}
	rows = append(rows, []string{"H2O mass fraction", fmt.Sprintf("%.4f", r.ShellMassFraction)})
	table.AppendBulk(rows)
	table.Render()

	if !r.WithinTolerance {
		fmt.Fprintf(&buf, "\n⚠ WARNING: best fit misses the target MoI by %.4f (tolerance %.4f)\n",
			r.MoIResidual, r.MoITolerance)
	}

	if d := r.Diagnostics; d != nil {
		buf.WriteString("\n=== SCAN DIAGNOSTICS ===\n")
		fmt.Fprintf(&buf, "Candidates: %d (%d within tolerance)\n", d.Candidates, d.WithinTolerance)
		fmt.Fprintf(&buf, "MoI range: %.6f – %.6f (mean %.6f, σ %.6f)\n", d.MoIMin, d.MoIMax, d.MoIMean, d.MoIStdDev)
		fmt.Fprintf(&buf, "Max mass error: %.3e\n", d.MaxMassError)
		if d.CoreRadiusBand != nil {
			fmt.Fprintf(&buf, "Admissible core radius: %.2f – %.2f km\n", d.CoreRadiusBand.Min, d.CoreRadiusBand.Max)
		}
		if d.WaterDensityBand != nil {
			fmt.Fprintf(&buf, "Admissible water density: %.2f – %.2f kg m^-3\n", d.WaterDensityBand.Min, d.WaterDensityBand.Max)
		}
		if d.CoreDensityBand != nil {
			fmt.Fprintf(&buf, "Admissible core density: %.2f – %.2f kg m^-3\n", d.CoreDensityBand.Min, d.CoreDensityBand.Max)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}
