package export

import (
	"bytes"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/analytics"
	"github.com/go-pdf/fpdf"
)

type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}

func (e *PDFExporter) Filename(summary analytics.ReportSummary) string {
	return fmt.Sprintf("attendance-report-%s-%s.pdf", summary.PeriodType, summary.StartDate)
}

func (e *PDFExporter) Render(report analytics.ReportResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Attendance Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s (%s to %s)",
		report.Summary.PeriodType, report.Summary.StartDate, report.Summary.EndDate), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Working days: %d", report.Summary.WorkingDays), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated at: %s", report.Summary.GeneratedAt), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{35, 55, 25, 25, 25, 25}
	headers := []string{"Employee ID", "Name", "Present", "Absent", "Late", "Hours"}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range report.Report {
		values := []string{
			row.EmployeeID,
			row.EmployeeName,
			fmt.Sprintf("%d", row.DaysPresent),
			fmt.Sprintf("%d", row.DaysAbsent),
			fmt.Sprintf("%d", row.LateCount),
			fmt.Sprintf("%.2f", row.TotalHours),
		}
		for i, v := range values {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
