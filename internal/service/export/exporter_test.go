package export

import (
	"bytes"
	"testing"

	"github.com/attendly/attendance-backend-go/internal/domain/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() analytics.ReportResponse {
	return analytics.ReportResponse{
		Summary: analytics.ReportSummary{
			PeriodType:     analytics.PeriodWeek,
			StartDate:      "2025-03-10",
			EndDate:        "2025-03-16",
			WorkingDays:    5,
			TotalEmployees: 2,
			GeneratedAt:    "2025-03-17T09:00:00Z",
		},
		Report: []analytics.EmployeePeriodStats{
			{EmployeeID: "emp-1", EmployeeName: "Ada Lovelace", DaysPresent: 5, LateCount: 2, TotalHours: 41},
			{EmployeeID: "emp-2", EmployeeName: "Grace Hopper", DaysPresent: 3, DaysAbsent: 2, TotalHours: 24},
		},
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	excel, err := reg.Get("excel")
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", excel.ContentType())

	pdf, err := reg.Get("pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType())

	_, err = reg.Get("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExcelRender(t *testing.T) {
	exp := NewExcelExporter()
	report := sampleReport()

	out, err := exp.Render(report)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	// xlsx files are zip archives.
	assert.True(t, bytes.HasPrefix(out, []byte("PK")))
	assert.Equal(t, "attendance-report-week-2025-03-10.xlsx", exp.Filename(report.Summary))
}

func TestPDFRender(t *testing.T) {
	exp := NewPDFExporter()
	report := sampleReport()

	out, err := exp.Render(report)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "attendance-report-week-2025-03-10.pdf", exp.Filename(report.Summary))
}
