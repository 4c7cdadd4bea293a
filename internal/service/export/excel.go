package export

import (
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/analytics"
	"github.com/xuri/excelize/v2"
)

type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) Filename(summary analytics.ReportSummary) string {
	return fmt.Sprintf("attendance-report-%s-%s.xlsx", summary.PeriodType, summary.StartDate)
}

var excelHeaders = []string{
	"Employee ID", "Employee Name", "Days Present", "Days Absent", "Late Count", "Total Hours",
}

func (e *ExcelExporter) Render(report analytics.ReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	// Summary block above the table.
	summaryRows := [][]interface{}{
		{"Attendance Report"},
		{"Period", string(report.Summary.PeriodType)},
		{"From", report.Summary.StartDate},
		{"To", report.Summary.EndDate},
		{"Working Days", report.Summary.WorkingDays},
		{"Generated At", report.Summary.GeneratedAt},
	}
	for i, row := range summaryRows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("excel cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("excel summary cell: %w", err)
			}
		}
	}

	headerRow := len(summaryRows) + 2
	for j, h := range excelHeaders {
		cell, err := excelize.CoordinatesToCellName(j+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("excel cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("excel header cell: %w", err)
		}
	}

	for i, row := range report.Report {
		values := []interface{}{
			row.EmployeeID, row.EmployeeName, row.DaysPresent, row.DaysAbsent, row.LateCount, row.TotalHours,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, headerRow+1+i)
			if err != nil {
				return nil, fmt.Errorf("excel cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("excel data cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}
