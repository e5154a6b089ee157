// Package output provides output formatting interfaces.
// This package produces human and machine-readable estimate reports; the
// ±variation display ranges and currency formatting live here, never in the
// estimators.
package output

import (
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"reuse-cost/core/types"
	"reuse-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatXLSX is an Excel workbook
	FormatXLSX Format = "xlsx"

	// FormatPDF is a printable PDF report
	FormatPDF Format = "pdf"
)

// DefaultVariation is the ±fraction shown around every figure
var DefaultVariation = decimal.RequireFromString("0.10")

// Disclaimer accompanies every rendered estimate
const Disclaimer = "Rates are based on standard materials and labor and may vary by region, site conditions, and contractor pricing."

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is an estimate plus its presentation settings
type Report struct {
	// Title heads the report
	Title string

	// Result is the engine output being presented
	Result *types.CalculatorResult

	// Variation is the display range fraction
	Variation decimal.Decimal

	// ShowRanges prints min-max ranges instead of point figures
	ShowRanges bool

	// ShowFormulas prints how each line item was derived
	ShowFormulas bool

	// CatalogVersion identifies the rate tables used
	CatalogVersion string
}

// NewReport creates a report with the default presentation settings
func NewReport(result *types.CalculatorResult, catalogVersion string) *Report {
	return &Report{
		Title:          DefaultTitle(result.System),
		Result:         result,
		Variation:      DefaultVariation,
		ShowRanges:     true,
		CatalogVersion: catalogVersion,
	}
}

// DefaultTitle names the report after the system estimated
func DefaultTitle(system types.SystemKind) string {
	if system == types.SystemHVAC {
		return "HVAC Condensate Recovery Estimate"
	}
	return "Rainwater Harvesting Estimate"
}

// Row is one presented line of the breakdown
type Row struct {
	Key     types.LineItemKey
	Label   string
	Amount  decimal.Decimal
	Range   Range
	Formula string
}

// Rows returns the breakdown lines in display order followed by the total
func (r *Report) Rows() []Row {
	items := append([]types.LineItem(nil), r.Result.Breakdown.Items...)
	sort.SliceStable(items, func(i, j int) bool {
		return displayRank(items[i].Key) < displayRank(items[j].Key)
	})

	rows := make([]Row, 0, len(items)+1)
	for _, item := range items {
		rows = append(rows, Row{
			Key:     item.Key,
			Label:   DisplayLabel(item.Key),
			Amount:  item.Amount,
			Range:   Spread(item.Amount, r.Variation),
			Formula: item.Formula,
		})
	}
	rows = append(rows, Row{
		Key:    types.KeyTotal,
		Label:  DisplayLabel(types.KeyTotal),
		Amount: r.Result.Breakdown.Total,
		Range:  Spread(r.Result.Breakdown.Total, r.Variation),
	})
	return rows
}

// Money renders an amount as a range or a point figure per the report settings
func (r *Report) Money(amount decimal.Decimal) string {
	if r.ShowRanges {
		return Spread(amount, r.Variation).USD()
	}
	return USDCents(amount)
}

// Volume renders gallons as a range or a point figure per the report settings
func (r *Report) Volume(gallons decimal.Decimal) string {
	if r.ShowRanges {
		return Spread(gallons, r.Variation).Number()
	}
	return Whole(gallons)
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry returns a registry holding every built-in formatter
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(&CLIFormatter{})
	r.Register(&JSONFormatter{})
	r.Register(&MarkdownFormatter{})
	r.Register(&XLSXFormatter{})
	r.Register(&PDFFormatter{})
	return r
}

// Register adds or replaces a formatter
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for format
func (r *Registry) Get(format Format) (Formatter, error) {
	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotFound("output format", string(format))
	}
	return f, nil
}

// Formats lists the registered formats in sorted order
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// Binary reports whether a format produces non-text output
func Binary(format Format) bool {
	return format == FormatXLSX || format == FormatPDF
}
