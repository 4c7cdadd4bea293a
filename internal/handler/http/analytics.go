package http

import (
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/analytics"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type AnalyticsHandler interface {
	DashboardStats(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.Service
}

func NewAnalyticsHandler(analyticsService analytics.Service) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
	}
}

// DashboardStats implements AnalyticsHandler.
func (h *analyticsHandlerImpl) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsService.DashboardStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Report implements AnalyticsHandler.
func (h *analyticsHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	req := analytics.ReportRequest{
		PeriodType: r.URL.Query().Get("type"),
	}
	if date := r.URL.Query().Get("date"); date != "" {
		req.Date = &date
	}

	result, err := h.analyticsService.Report(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
