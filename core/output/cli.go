package output

import (
	"io"
	"strings"

	"reuse-cost/core/types"
	"reuse-cost/core/ui"
)

// CLIFormatter renders a boxed summary for terminals
type CLIFormatter struct {
	// NoColor disables ANSI escapes
	NoColor bool
}

// Format returns the format type
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render writes the summary box followed by notes
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	out := ui.NewWriter(w, f.NoColor)
	res := report.Result

	box := out.NewBox(strings.ToUpper(report.Title))
	box.Row(volumeLabel(res.System), report.Volume(res.AnnualWaterCollection)+" gal")
	box.Row(tankLabel(res), report.Volume(res.TankSize)+" gal")
	box.Rule()

	for _, row := range report.Rows() {
		if row.Key == types.KeyTotal {
			box.Rule()
			box.Emphasis(strings.ToUpper(row.Label), report.Money(row.Amount))
			continue
		}
		box.Row(row.Label, report.Money(row.Amount))
		if report.ShowFormulas && row.Formula != "" {
			box.Detail(row.Formula)
		}
	}
	box.Render()

	out.Println("")
	out.Dim("%s", MiscNote(res.System))
	out.Dim("%s", Disclaimer)
	if report.CatalogVersion != "" {
		out.Dim("Catalog: %s", report.CatalogVersion)
	}
	return out.Err()
}

func volumeLabel(system types.SystemKind) string {
	if system == types.SystemHVAC {
		return "Annual Condensate Recovery"
	}
	return "Annual Water Collection"
}

func tankLabel(res *types.CalculatorResult) string {
	if res.TankAutoSized {
		return "Recommended Tank Size"
	}
	return "Tank Size"
}
