// Package export renders downloadable report files.
package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"

	GeneralXLSXFilename = "reporte_general.xlsx"
	GeneralPDFFilename  = "reporte_general.pdf"
)

// GeneralCounts is the payload of the downloadable general report.
type GeneralCounts struct {
	TotalInfants int64
	TotalVisits  int64
}

func GeneralXLSX(counts GeneralCounts) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reporte General"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	rows := []struct {
		cell  string
		value any
	}{
		{"A1", "Reporte General"},
		{"A3", "Total de lactantes"},
		{"B3", counts.TotalInfants},
		{"A4", "Total de citas"},
		{"B4", counts.TotalVisits},
	}
	for _, r := range rows {
		if err := f.SetCellValue(sheet, r.cell, r.value); err != nil {
			return nil, fmt.Errorf("setting cell %s: %w", r.cell, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func GeneralPDF(counts GeneralCounts) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Reporte General", "", 1, "L", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total de lactantes: %d", counts.TotalInfants), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Total de citas: %d", counts.TotalVisits), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
