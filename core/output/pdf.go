package output

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"reuse-cost/core/types"
	"reuse-cost/internal/errors"
)

// PDFFormatter renders a one-page printable report
type PDFFormatter struct{}

// Format returns the format type
func (f *PDFFormatter) Format() Format { return FormatPDF }

// Render writes the PDF document
func (f *PDFFormatter) Render(w io.Writer, report *Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	res := report.Result

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(report.Title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%s: %s gallons", volumeLabel(res.System), report.Volume(res.AnnualWaterCollection))))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%s: %s gallons", tankLabel(res), report.Volume(res.TankSize))))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(47, 93, 98)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(110, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 8, "Cost", "1", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	for _, row := range report.Rows() {
		style := ""
		if row.Key == types.KeyTotal {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(110, 7, tr(row.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, tr(report.Money(row.Amount)), "1", 1, "R", false, 0, "")
		if report.ShowFormulas && row.Formula != "" {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(180, 5, tr(row.Formula), "LR", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, tr(MiscNote(res.System)), "", "L", false)
	pdf.MultiCell(0, 5, tr(Disclaimer), "", "L", false)
	if report.CatalogVersion != "" {
		pdf.MultiCell(0, 5, tr("Catalog "+report.CatalogVersion), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return errors.Render("write pdf report", err)
	}
	return nil
}
