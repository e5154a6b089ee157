package output

import (
	"encoding/json"
	"io"

	"reuse-cost/core/types"
)

// JSONFormatter renders the engine result plus display ranges
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Document is the JSON output shape
type Document struct {
	Title   string                  `json:"title"`
	Catalog string                  `json:"catalog_version,omitempty"`
	Result  *types.CalculatorResult `json:"result"`
	Display *Display                `json:"display,omitempty"`
	Notes   []string                `json:"notes"`
}

// Display holds the ±variation ranges shown to users
type Display struct {
	Variation             json.Number          `json:"variation"`
	AnnualWaterCollection RangeJSON            `json:"annual_water_collection"`
	TankSize              RangeJSON            `json:"tank_size"`
	Breakdown             map[string]RangeJSON `json:"breakdown"`
}

// RangeJSON is a range encoded as plain numbers
type RangeJSON struct {
	Min json.Number `json:"min"`
	Max json.Number `json:"max"`
}

func rangeJSON(r Range) RangeJSON {
	return RangeJSON{Min: json.Number(r.Min.String()), Max: json.Number(r.Max.String())}
}

// NewDocument builds the JSON document for a report
func NewDocument(report *Report) *Document {
	doc := &Document{
		Title:   report.Title,
		Catalog: report.CatalogVersion,
		Result:  report.Result,
		Notes:   []string{MiscNote(report.Result.System), Disclaimer},
	}
	if !report.ShowRanges {
		return doc
	}

	display := &Display{
		Variation:             json.Number(report.Variation.String()),
		AnnualWaterCollection: rangeJSON(Spread(report.Result.AnnualWaterCollection, report.Variation)),
		TankSize:              rangeJSON(Spread(report.Result.TankSize, report.Variation)),
		Breakdown:             make(map[string]RangeJSON),
	}
	for _, row := range report.Rows() {
		display.Breakdown[string(row.Key)] = rangeJSON(row.Range)
	}
	doc.Display = display
	return doc
}

// Render writes indented JSON
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(report))
}
