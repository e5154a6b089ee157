// Package cmd - estimate command
package cmd

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	hcladapter "reuse-cost/adapters/hcl"
	"reuse-cost/core/estimate"
	"reuse-cost/core/form"
	"reuse-cost/core/output"
	"reuse-cost/core/types"
	"reuse-cost/core/ui"
	"reuse-cost/core/validation"
	"reuse-cost/internal/config"
	"reuse-cost/internal/errors"
	"reuse-cost/internal/logging"
)

var (
	outputFormat string
	outputFile   string
	reportTitle  string
	showRanges   bool
	showFormulas bool

	rainwaterFields = form.NewRainwaterFields()
	hvacFields      = form.NewHVACFields()
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [site.hcl]",
	Short: "Estimate installation cost for a site",
	Long: `Estimate installation cost from a site file or from flags.

A site file holds a rainwater block, an hvac block, or both; every block
present is estimated. Use the rainwater and hvac subcommands to enter
values as flags instead.

Examples:
  reuse-cost estimate site.hcl
  reuse-cost estimate site.hcl --format markdown
  reuse-cost estimate site.hcl --format xlsx --output estimate.xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEstimateSite,
}

var estimateRainwaterCmd = &cobra.Command{
	Use:   "rainwater",
	Short: "Estimate a rooftop rainwater harvesting system",
	Long: `Estimate a rooftop rainwater harvesting system.

The storage tank is sized automatically from the annual collection unless
--storage is given.

Examples:
  reuse-cost estimate rainwater --roof-area 2000 --rainfall 32 --piping 120 --roof-type metal
  reuse-cost estimate rainwater --roof-area 1500 --rainfall 20 --piping 60 --potable --formulas`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		est, err := loadEstimator()
		if err != nil {
			return err
		}
		result, err := est.ValidatedRainwater(rainwaterFields.Input())
		if err != nil {
			return reportFailure(cmd, err)
		}
		return writeResults(cmd, est, []*types.CalculatorResult{result})
	},
}

var estimateHVACCmd = &cobra.Command{
	Use:   "hvac",
	Short: "Estimate an HVAC condensate recovery system",
	Long: `Estimate an HVAC condensate recovery system.

Examples:
  reuse-cost estimate hvac --units 2 --tons 3 --days 200 --piping 40
  reuse-cost estimate hvac --units 6 --tons 5 --days 180 --piping 150 --tank large_poly_1000_plus --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		est, err := loadEstimator()
		if err != nil {
			return err
		}
		result, err := est.ValidatedHVAC(hvacFields.Input())
		if err != nil {
			return reportFailure(cmd, err)
		}
		return writeResults(cmd, est, []*types.CalculatorResult{result})
	},
}

func init() {
	estimateCmd.AddCommand(estimateRainwaterCmd)
	estimateCmd.AddCommand(estimateHVACCmd)

	pf := estimateCmd.PersistentFlags()
	pf.StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown, xlsx, pdf)")
	pf.StringVarP(&outputFile, "output", "o", "", "write the report to a file instead of stdout")
	pf.StringVar(&reportTitle, "title", "", "report title")
	pf.BoolVar(&showRanges, "ranges", true, "show each figure as a low-high range")
	pf.BoolVar(&showFormulas, "formulas", false, "show how each line item was derived")

	rf := estimateRainwaterCmd.Flags()
	rf.StringVar(&rainwaterFields.RoofAreaSqft, "roof-area", "", "catchment roof area in square feet")
	rf.StringVar(&rainwaterFields.AnnualRainfallInches, "rainfall", "", "annual rainfall in inches")
	rf.StringVar(&rainwaterFields.PipingLengthFeet, "piping", "", "piping run in feet")
	rf.StringVar(&rainwaterFields.StorageGallons, "storage", "", "storage tank gallons (default: sized from collection)")
	rf.BoolVar(&rainwaterFields.Potable, "potable", false, "treat water to potable standard")
	rf.StringVar(&rainwaterFields.RoofType, "roof-type", rainwaterFields.RoofType, "roof surface ("+joinKinds(types.RoofTypes())+")")
	rf.StringVar(&rainwaterFields.GutterMaterial, "gutter", rainwaterFields.GutterMaterial, "gutter material ("+joinKinds(types.GutterMaterials())+")")
	rf.StringVar(&rainwaterFields.PipingMaterial, "piping-material", rainwaterFields.PipingMaterial, "piping material ("+joinKinds(types.PipingMaterials())+")")
	rf.StringVar(&rainwaterFields.TankMaterial, "tank", rainwaterFields.TankMaterial, "tank material ("+joinKinds(types.TankMaterials())+")")
	rf.StringVar(&rainwaterFields.PumpSize, "pump", rainwaterFields.PumpSize, "pump size ("+joinKinds(types.PumpSizes())+")")
	rf.BoolVar(&rainwaterFields.IncludeExcavation, "excavation", false, "include excavation for an underground tank")
	rf.BoolVar(&rainwaterFields.IncludePressureTank, "pressure-tank", rainwaterFields.IncludePressureTank, "include a pressure tank")

	hf := estimateHVACCmd.Flags()
	hf.StringVar(&hvacFields.NumUnits, "units", "", "number of HVAC units")
	hf.StringVar(&hvacFields.TonsPerUnit, "tons", "", "cooling tons per unit")
	hf.StringVar(&hvacFields.DaysPerYear, "days", "", "cooling days per year")
	hf.StringVar(&hvacFields.PipingLengthFeet, "piping", "", "piping run in feet")
	hf.StringVar(&hvacFields.StorageGallons, "storage", "", "storage tank gallons (default: sized from collection)")
	hf.BoolVar(&hvacFields.Potable, "potable", false, "treat water to potable standard")
	hf.StringVar(&hvacFields.PipingMaterial, "piping-material", hvacFields.PipingMaterial, "piping material ("+joinKinds(types.HVACPipingMaterials())+")")
	hf.StringVar(&hvacFields.TankType, "tank", hvacFields.TankType, "tank type ("+joinKinds(types.HVACTankTypes())+")")
	hf.StringVar(&hvacFields.PumpType, "pump", hvacFields.PumpType, "pump type ("+joinKinds(types.HVACPumpTypes())+")")
}

func runEstimateSite(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	est, err := loadEstimator()
	if err != nil {
		return err
	}
	site, err := hcladapter.NewLoader().LoadSite(args[0])
	if err != nil {
		return err
	}
	logging.Debug("estimating site", zap.String("path", args[0]),
		zap.Bool("rainwater", site.Rainwater != nil),
		zap.Bool("hvac", site.HVAC != nil))

	var results []*types.CalculatorResult
	if site.Rainwater != nil {
		result, err := est.ValidatedRainwater(*site.Rainwater)
		if err != nil {
			return reportFailure(cmd, err)
		}
		results = append(results, result)
	}
	if site.HVAC != nil {
		result, err := est.ValidatedHVAC(*site.HVAC)
		if err != nil {
			return reportFailure(cmd, err)
		}
		results = append(results, result)
	}
	return writeResults(cmd, est, results)
}

// reportFailure lists validation messages before returning err
func reportFailure(cmd *cobra.Command, err error) error {
	var failed *validation.Failed
	if stderrors.As(err, &failed) {
		logging.Debug("input rejected",
			zap.String("system", string(failed.System)),
			zap.Int("errors", len(failed.Messages)))
		w := ui.NewWriter(cmd.ErrOrStderr(), noColor)
		w.Error("%s input is invalid:", failed.System)
		for _, msg := range failed.Messages {
			w.Println("    %s", msg)
		}
	}
	return err
}

// writeResults renders each result in the selected format. With several
// results and a file destination, each system gets its own file.
func writeResults(cmd *cobra.Command, est *estimate.Estimator, results []*types.CalculatorResult) error {
	cfg := config.Get()

	format := output.Format(outputFormat)
	if format == "" {
		format = output.Format(cfg.Output.DefaultFormat)
	}
	registry := output.NewRegistry()
	registry.Register(&output.CLIFormatter{NoColor: noColor})
	formatter, err := registry.Get(format)
	if err != nil {
		return err
	}
	if output.Binary(format) && outputFile == "" {
		return errors.Newf(errors.TypeInput, "%s output is binary; use --output to name a file", format)
	}

	ranges := cfg.Output.ShowRanges
	if cmd.Flags().Changed("ranges") {
		ranges = showRanges
	}
	formulas := cfg.Output.ShowFormulas
	if cmd.Flags().Changed("formulas") {
		formulas = showFormulas
	}

	for _, result := range results {
		report := output.NewReport(result, est.Catalog().Version)
		report.ShowRanges = ranges
		report.ShowFormulas = formulas
		if cfg.Output.Variation > 0 {
			report.Variation = decimal.NewFromFloat(cfg.Output.Variation)
		}
		if reportTitle != "" {
			report.Title = reportTitle
		}

		if outputFile == "" {
			if err := formatter.Render(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			continue
		}

		path := outputFile
		if len(results) > 1 {
			path = systemPath(outputFile, result.System)
		}
		if err := renderFile(path, formatter, report); err != nil {
			return err
		}
		ui.NewWriter(cmd.OutOrStdout(), noColor).Success("Wrote %s", path)
	}
	return nil
}

func renderFile(path string, formatter output.Formatter, report *output.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.TypeRender, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(errors.TypeRender, cerr, "close %s", path)
		}
	}()
	return formatter.Render(f, report)
}

// systemPath inserts the system name before the extension:
// estimate.pdf becomes estimate-hvac.pdf
func systemPath(path string, system types.SystemKind) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + string(system) + ext
}

func joinKinds[K ~string](kinds []K) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
