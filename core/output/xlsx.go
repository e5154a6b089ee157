package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"reuse-cost/core/types"
	"reuse-cost/internal/errors"
)

// EstimateSheet is the worksheet holding the breakdown
const EstimateSheet = "Estimate"

// XLSXFormatter renders an Excel workbook
type XLSXFormatter struct{}

// Format returns the format type
func (f *XLSXFormatter) Format() Format { return FormatXLSX }

// Render writes the workbook
func (f *XLSXFormatter) Render(w io.Writer, report *Report) error {
	book, err := estimateWorkbook(report)
	if err != nil {
		return errors.Render("build xlsx workbook", err)
	}
	defer book.Close()

	if err := book.Write(w); err != nil {
		return errors.Render("write xlsx workbook", err)
	}
	return nil
}

type sheetStyles struct {
	title  int
	header int
	money  int
	total  int
	gallon int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	moneyFmt := "$#,##0.00"
	gallonFmt := "#,##0"

	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2F5D62"}, Pattern: 1},
	}); err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt}); err != nil {
		return s, fmt.Errorf("create money style: %w", err)
	}
	if s.total, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &moneyFmt,
	}); err != nil {
		return s, fmt.Errorf("create total style: %w", err)
	}
	if s.gallon, err = f.NewStyle(&excelize.Style{CustomNumFmt: &gallonFmt}); err != nil {
		return s, fmt.Errorf("create gallon style: %w", err)
	}
	return s, nil
}

func estimateWorkbook(report *Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), EstimateSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	styles, err := newSheetStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	sh := EstimateSheet
	widths := map[string]float64{"A": 34, "B": 16, "C": 14, "D": 14, "E": 60}
	for col, width := range widths {
		if err := f.SetColWidth(sh, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	res := report.Result
	f.SetCellValue(sh, "A1", sanitizeCell(report.Title))
	f.SetCellStyle(sh, "A1", "A1", styles.title)

	f.SetCellValue(sh, "A3", volumeLabel(res.System)+" (gal)")
	f.SetCellValue(sh, "B3", res.AnnualWaterCollection.Round(0).IntPart())
	f.SetCellStyle(sh, "B3", "B3", styles.gallon)
	f.SetCellValue(sh, "A4", tankLabel(res)+" (gal)")
	f.SetCellValue(sh, "B4", res.TankSize.Round(0).IntPart())
	f.SetCellStyle(sh, "B4", "B4", styles.gallon)

	low := fmt.Sprintf("Low (-%s%%)", report.Variation.Shift(2).String())
	high := fmt.Sprintf("High (+%s%%)", report.Variation.Shift(2).String())
	for i, h := range []string{"Item", "Cost", low, high, "Basis"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 6)
		f.SetCellValue(sh, cell, h)
	}
	f.SetCellStyle(sh, "A6", "E6", styles.header)

	row := 7
	for _, r := range report.Rows() {
		n := fmt.Sprintf("%d", row)
		style := styles.money
		if r.Key == types.KeyTotal {
			style = styles.total
		}
		f.SetCellValue(sh, "A"+n, r.Label)
		f.SetCellValue(sh, "B"+n, r.Amount.InexactFloat64())
		f.SetCellValue(sh, "C"+n, r.Range.Min.InexactFloat64())
		f.SetCellValue(sh, "D"+n, r.Range.Max.InexactFloat64())
		f.SetCellValue(sh, "E"+n, sanitizeCell(r.Formula))
		f.SetCellStyle(sh, "B"+n, "D"+n, style)
		row++
	}

	row++
	f.SetCellValue(sh, fmt.Sprintf("A%d", row), MiscNote(res.System))
	f.SetCellValue(sh, fmt.Sprintf("A%d", row+1), Disclaimer)
	if report.CatalogVersion != "" {
		f.SetCellValue(sh, fmt.Sprintf("A%d", row+2), "Catalog "+report.CatalogVersion)
	}
	return f, nil
}

// sanitizeCell stops spreadsheet apps from evaluating text as a formula
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
