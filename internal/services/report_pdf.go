package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDF rendition of the tasks report: same rows as the xlsx, rendered as a
// landscape table.

const pdfFont = "Helvetica"

var taskPDFWidths = []float64{15, 45, 75, 22, 25, 25, 60}

func (s *reportService) TasksReportPDF(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.taskRows(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Tasks Report", false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFont, "", 9)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, "Tasks Report", "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdfHeaderRow(pdf)
	pdf.SetFont(pdfFont, "", 9)
	for _, row := range rows {
		if pdf.GetY() > 180 {
			pdf.AddPage()
			pdfHeaderRow(pdf)
			pdf.SetFont(pdfFont, "", 9)
		}
		cells := []string{
			fmt.Sprintf("%d", row.ID),
			row.Title,
			row.Description,
			row.Priority,
			row.Status,
			row.DueDate,
			row.AssignedTo,
		}
		for i, v := range cells {
			pdf.CellFormat(taskPDFWidths[i], 7, truncateCell(v, 48), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

func pdfHeaderRow(pdf *gofpdf.Fpdf) {
	pdf.SetFont(pdfFont, "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range taskReportHeaders {
		pdf.CellFormat(taskPDFWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func truncateCell(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
