package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payrate"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayRateHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	BulkUpsert(w http.ResponseWriter, r *http.Request)
}

type payRateHandlerImpl struct {
	payRateService payrate.PayRateService
}

func NewPayRateHandler(payRateService payrate.PayRateService) PayRateHandler {
	return &payRateHandlerImpl{payRateService: payRateService}
}

func (h *payRateHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.payRateService.ListPayRates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payRateHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffId")
	if staffID == "" {
		response.BadRequest(w, "Staff ID is required", nil)
		return
	}

	var req payrate.UpsertPayRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.StaffID = staffID

	result, err := h.payRateService.UpsertPayRate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay rate saved", result)
}

func (h *payRateHandlerImpl) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	var req payrate.BulkUpsertPayRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payRateService.BulkUpsertPayRates(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay rates saved", result)
}
