package http

import (
	"fmt"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/analytics"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/service/export"
)

type ReportHandler interface {
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	analyticsService analytics.Service
	exporters        *export.Registry
}

func NewReportHandler(analyticsService analytics.Service, exporters *export.Registry) ReportHandler {
	return &reportHandlerImpl{
		analyticsService: analyticsService,
		exporters:        exporters,
	}
}

// Export implements ReportHandler. It aggregates the requested period and
// streams the rendered artifact; the aggregation path is the same one the
// JSON report uses.
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	exporter, err := h.exporters.Get(r.URL.Query().Get("type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := analytics.ReportRequest{
		PeriodType: r.URL.Query().Get("viewType"),
	}
	if date := r.URL.Query().Get("date"); date != "" {
		req.Date = &date
	}

	report, err := h.analyticsService.Report(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	artifact, err := exporter.Render(report)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", exporter.Filename(report.Summary)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}
