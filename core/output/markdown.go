package output

import (
	"fmt"
	"io"
	"strings"

	"reuse-cost/core/types"
)

// MarkdownFormatter renders a markdown report
type MarkdownFormatter struct{}

// Format returns the format type
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render writes the report as markdown
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	var b strings.Builder
	res := report.Result

	fmt.Fprintf(&b, "## %s\n\n", report.Title)
	fmt.Fprintf(&b, "- **%s:** %s gallons\n", volumeLabel(res.System), report.Volume(res.AnnualWaterCollection))
	fmt.Fprintf(&b, "- **%s:** %s gallons\n\n", tankLabel(res), report.Volume(res.TankSize))

	if report.ShowFormulas {
		b.WriteString("| Item | Cost | Basis |\n|------|-----:|-------|\n")
	} else {
		b.WriteString("| Item | Cost |\n|------|-----:|\n")
	}
	for _, row := range report.Rows() {
		label, cost := row.Label, report.Money(row.Amount)
		if row.Key == types.KeyTotal {
			label, cost = "**"+label+"**", "**"+cost+"**"
		}
		if report.ShowFormulas {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", label, cost, escapePipes(row.Formula))
		} else {
			fmt.Fprintf(&b, "| %s | %s |\n", label, cost)
		}
	}

	fmt.Fprintf(&b, "\n> %s\n>\n> %s\n", MiscNote(res.System), Disclaimer)
	if report.CatalogVersion != "" {
		fmt.Fprintf(&b, "\n<sub>Catalog %s</sub>\n", report.CatalogVersion)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
