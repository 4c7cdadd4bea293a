package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// decodeBody decodes an optional JSON body; an empty body is not an error.
func decodeBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// MyHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	filter := attendance.HistoryFilter{}

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	results, err := h.attendanceService.GetMyHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ListFilter{
		ViewType: r.URL.Query().Get("viewType"),
	}
	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}

	results, err := h.attendanceService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
