package output

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"reuse-cost/core/catalog"
	"reuse-cost/core/ui"
	"reuse-cost/internal/errors"
)

// Catalog sheets
const (
	RatesSheet     = "Rates"
	ConstantsSheet = "Constants"
)

func rateCell(r catalog.MaterialRate, v decimal.Decimal) string {
	return "$" + v.StringFixed(2) + r.Basis.Suffix()
}

// RenderCatalog prints the rate tables and constants for a terminal
func RenderCatalog(w io.Writer, cat *catalog.Catalog, noColor bool) error {
	out := ui.NewWriter(w, noColor)
	out.Header(fmt.Sprintf("Rate Catalog %s (%s)", cat.Version, cat.Currency))

	rates := out.NewTable("System", "Group", "Key", "Label", "Low", "High", "Midpoint")
	for _, e := range cat.Entries() {
		rates.AddRow(
			string(e.System), e.Group, e.Key, e.Rate.Label,
			rateCell(e.Rate, e.Rate.Low),
			rateCell(e.Rate, e.Rate.High),
			rateCell(e.Rate, e.Rate.Midpoint()),
		)
	}
	rates.Render()

	out.Println("")
	consts := out.NewTable("System", "Constant", "Value")
	for _, c := range cat.Constants() {
		consts.AddRow(string(c.System), c.Name, c.Value.String())
	}
	consts.Render()
	return out.Err()
}

// WriteCatalogWorkbook exports the catalog as an Excel workbook
func WriteCatalogWorkbook(w io.Writer, cat *catalog.Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), RatesSheet); err != nil {
		return errors.Render("set sheet name", err)
	}
	if _, err := f.NewSheet(ConstantsSheet); err != nil {
		return errors.Render("add constants sheet", err)
	}
	styles, err := newSheetStyles(f)
	if err != nil {
		return errors.Render("build catalog workbook", err)
	}

	headers := []string{"System", "Group", "Key", "Label", "Basis", "Low", "High", "Midpoint"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(RatesSheet, cell, h)
	}
	f.SetCellStyle(RatesSheet, "A1", "H1", styles.header)
	f.SetColWidth(RatesSheet, "D", "D", 34)

	for i, e := range cat.Entries() {
		n := fmt.Sprintf("%d", i+2)
		f.SetCellValue(RatesSheet, "A"+n, string(e.System))
		f.SetCellValue(RatesSheet, "B"+n, e.Group)
		f.SetCellValue(RatesSheet, "C"+n, e.Key)
		f.SetCellValue(RatesSheet, "D"+n, sanitizeCell(e.Rate.Label))
		f.SetCellValue(RatesSheet, "E"+n, string(e.Rate.Basis))
		f.SetCellValue(RatesSheet, "F"+n, e.Rate.Low.InexactFloat64())
		f.SetCellValue(RatesSheet, "G"+n, e.Rate.High.InexactFloat64())
		f.SetCellValue(RatesSheet, "H"+n, e.Rate.Midpoint().InexactFloat64())
		f.SetCellStyle(RatesSheet, "F"+n, "H"+n, styles.money)
	}

	for i, h := range []string{"System", "Constant", "Value"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ConstantsSheet, cell, h)
	}
	f.SetCellStyle(ConstantsSheet, "A1", "C1", styles.header)
	f.SetColWidth(ConstantsSheet, "B", "B", 30)
	for i, c := range cat.Constants() {
		n := fmt.Sprintf("%d", i+2)
		f.SetCellValue(ConstantsSheet, "A"+n, string(c.System))
		f.SetCellValue(ConstantsSheet, "B"+n, c.Name)
		f.SetCellValue(ConstantsSheet, "C"+n, c.Value.InexactFloat64())
	}

	if err := f.Write(w); err != nil {
		return errors.Render("write catalog workbook", err)
	}
	return nil
}
