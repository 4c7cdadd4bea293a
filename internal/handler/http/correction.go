package http

import (
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/correction"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type CorrectionHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
}

type correctionHandlerImpl struct {
	correctionService correction.Service
}

func NewCorrectionHandler(correctionService correction.Service) CorrectionHandler {
	return &correctionHandlerImpl{
		correctionService: correctionService,
	}
}

// Request implements CorrectionHandler.
func (h *correctionHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var req correction.RequestCorrectionRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.correctionService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request filed", result)
}

// Resolve implements CorrectionHandler.
func (h *correctionHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	var req correction.ResolveCorrectionRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.correctionService.Resolve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction resolved", result)
}

// ListPending implements CorrectionHandler.
func (h *correctionHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	results, err := h.correctionService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
