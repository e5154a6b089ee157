package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"reuse-cost/core/catalog"
	"reuse-cost/core/estimate"
	"reuse-cost/core/types"
	"reuse-cost/internal/errors"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func rainwaterReport(t *testing.T) *Report {
	t.Helper()
	in := types.RainwaterInput{
		RoofAreaSqft:         2000,
		AnnualRainfallInches: 32,
		PipingLengthFeet:     120,
		RoofType:             types.RoofMetal,
		GutterMaterial:       types.GutterAluminum,
		PipingMaterial:       types.PipingPVC,
		TankMaterial:         types.TankPolyethyleneAboveGround,
		PumpSize:             types.PumpMidSizedWholeHouse,
		IncludePressureTank:  true,
	}
	res, err := estimate.EstimateRainwaterCollectionCost(in)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	return NewReport(res, "test-catalog")
}

func hvacReport(t *testing.T) *Report {
	t.Helper()
	in := types.HVACInput{
		NumUnits:         2,
		TonsPerUnit:      3,
		DaysPerYear:      200,
		PipingLengthFeet: 40,
		PipingMaterial:   types.HVACPipingPVCTubing,
		TankType:         types.HVACTankSmallPoly,
		PumpType:         types.HVACPumpSmallCondensate,
	}
	res, err := estimate.EstimateHVACCondensateSystemCost(in)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	return NewReport(res, "")
}

func TestSpread(t *testing.T) {
	tests := []struct {
		value    string
		min, max string
	}{
		{"5820.32", "5238", "6402"},
		{"1000", "900", "1100"},
		{"0", "0", "0"},
		{"12.5", "11", "14"},
	}
	for _, tt := range tests {
		r := Spread(d(tt.value), DefaultVariation)
		if !r.Min.Equal(d(tt.min)) || !r.Max.Equal(d(tt.max)) {
			t.Errorf("Spread(%s) = %s..%s, want %s..%s", tt.value, r.Min, r.Max, tt.min, tt.max)
		}
	}
}

func TestCurrencyFormatting(t *testing.T) {
	tests := []struct {
		fn   func(decimal.Decimal) string
		in   string
		want string
	}{
		{USD, "5820.32", "$5,820"},
		{USD, "1234567", "$1,234,567"},
		{USD, "-42", "-$42"},
		{USDCents, "5820.32", "$5,820.32"},
		{USDCents, "0.5", "$0.50"},
		{USDCents, "1000000", "$1,000,000.00"},
		{Whole, "35884.8", "35,885"},
	}
	for _, tt := range tests {
		if got := tt.fn(d(tt.in)); got != tt.want {
			t.Errorf("format(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}

	r := Range{Min: d("5238"), Max: d("6402")}
	if got := r.USD(); got != "$5,238 - $6,402" {
		t.Errorf("Range.USD() = %q", got)
	}
}

func TestRowsEndWithTotal(t *testing.T) {
	report := rainwaterReport(t)
	rows := report.Rows()
	if len(rows) != len(report.Result.Breakdown.Items)+1 {
		t.Fatalf("got %d rows", len(rows))
	}
	last := rows[len(rows)-1]
	if last.Key != types.KeyTotal || !last.Amount.Equal(report.Result.Breakdown.Total) {
		t.Errorf("last row = %+v", last)
	}
	if rows[0].Label != "Gutters & Downspouts" {
		t.Errorf("first row label = %q", rows[0].Label)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	want := []string{"cli", "json", "markdown", "pdf", "xlsx"}
	if got := reg.Formats(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Formats() = %v", got)
	}
	if _, err := reg.Get("html"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("unknown format error = %v", err)
	}
}

func TestCLIRender(t *testing.T) {
	report := rainwaterReport(t)
	report.ShowFormulas = true

	var buf bytes.Buffer
	if err := (&CLIFormatter{NoColor: true}).Render(&buf, report); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"RAINWATER HARVESTING ESTIMATE",
		"Recommended Tank Size",
		"Pressure Tank",
		"SYSTEM TOTAL",
		"$5,238 - $6,402",
		"└─",
		"Catalog: test-catalog",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("NoColor output contains escapes")
	}
}

func TestPointFiguresWhenRangesDisabled(t *testing.T) {
	report := hvacReport(t)
	report.ShowRanges = false

	var buf bytes.Buffer
	if err := (&CLIFormatter{NoColor: true}).Render(&buf, report); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "$1,215.50") {
		t.Errorf("expected point total:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "HVAC Unit Connections") {
		t.Error("missing HVAC unit row")
	}
}

func TestJSONRender(t *testing.T) {
	report := rainwaterReport(t)

	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Render(&buf, report); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var doc struct {
		Result struct {
			System    string                 `json:"system"`
			Breakdown map[string]json.Number `json:"breakdown"`
		} `json:"result"`
		Display struct {
			Breakdown map[string]struct {
				Min json.Number `json:"min"`
				Max json.Number `json:"max"`
			} `json:"breakdown"`
		} `json:"display"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.Result.System != "rainwater" {
		t.Errorf("system = %q", doc.Result.System)
	}
	if doc.Result.Breakdown["total"] != "5820.32" {
		t.Errorf("total = %q", doc.Result.Breakdown["total"])
	}
	if got := doc.Display.Breakdown["total"]; got.Min != "5238" || got.Max != "6402" {
		t.Errorf("total range = %+v", got)
	}
}

func TestJSONOmitsDisplayWithoutRanges(t *testing.T) {
	report := hvacReport(t)
	report.ShowRanges = false
	if doc := NewDocument(report); doc.Display != nil {
		t.Error("display ranges present with ShowRanges off")
	}
}

func TestMarkdownRender(t *testing.T) {
	report := hvacReport(t)
	report.ShowFormulas = true

	var buf bytes.Buffer
	if err := (&MarkdownFormatter{}).Render(&buf, report); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "## HVAC Condensate Recovery Estimate") {
		t.Errorf("unexpected heading:\n%s", out)
	}
	if !strings.Contains(out, "| **System Total** |") {
		t.Errorf("missing total row:\n%s", out)
	}
	if !strings.Contains(out, "| Item | Cost | Basis |") {
		t.Error("missing basis column")
	}
}

func TestXLSXRender(t *testing.T) {
	report := rainwaterReport(t)

	var buf bytes.Buffer
	if err := (&XLSXFormatter{}).Render(&buf, report); err != nil {
		t.Fatalf("Render: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != EstimateSheet {
		t.Fatalf("sheets = %v", sheets)
	}
	title, _ := f.GetCellValue(EstimateSheet, "A1")
	if title != report.Title {
		t.Errorf("title = %q", title)
	}
	label, _ := f.GetCellValue(EstimateSheet, "A7")
	if label != "Gutters & Downspouts" {
		t.Errorf("first item = %q", label)
	}

	rows, err := f.GetRows(EstimateSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	found := false
	for _, row := range rows {
		if len(row) > 0 && row[0] == "System Total" {
			found = true
		}
	}
	if !found {
		t.Error("total row missing")
	}
}

func TestPDFRender(t *testing.T) {
	report := hvacReport(t)
	report.ShowFormulas = true

	var buf bytes.Buffer
	if err := (&PDFFormatter{}).Render(&buf, report); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", buf.Bytes()[:16])
	}
}

func TestSanitizeCell(t *testing.T) {
	if got := sanitizeCell("=SUM(A1)"); got != "'=SUM(A1)" {
		t.Errorf("sanitizeCell = %q", got)
	}
	if got := sanitizeCell("plain"); got != "plain" {
		t.Errorf("sanitizeCell = %q", got)
	}
}

func TestRenderCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCatalog(&buf, catalog.Default(), true); err != nil {
		t.Fatalf("RenderCatalog: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Rate Catalog", "galvanized_steel", "$1.50/ft", "daily_gallons_per_ton", "per_unit"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog output missing %q", want)
		}
	}
}

func TestWriteCatalogWorkbook(t *testing.T) {
	var buf bytes.Buffer
	cat := catalog.Default()
	if err := WriteCatalogWorkbook(&buf, cat); err != nil {
		t.Fatalf("WriteCatalogWorkbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(RatesSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != len(cat.Entries())+1 {
		t.Errorf("got %d rate rows", len(rows))
	}
	consts, err := f.GetRows(ConstantsSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(consts) != len(cat.Constants())+1 {
		t.Errorf("got %d constant rows", len(consts))
	}
}
