package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/unavailability"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UnavailabilityHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	CreateBlock(w http.ResponseWriter, r *http.Request)
	DeleteBlock(w http.ResponseWriter, r *http.Request)
	CreateRule(w http.ResponseWriter, r *http.Request)
	DeleteRule(w http.ResponseWriter, r *http.Request)
	SkipRule(w http.ResponseWriter, r *http.Request)
	UnskipRule(w http.ResponseWriter, r *http.Request)
}

type unavailabilityHandlerImpl struct {
	unavailabilityService unavailability.UnavailabilityService
}

func NewUnavailabilityHandler(unavailabilityService unavailability.UnavailabilityService) UnavailabilityHandler {
	return &unavailabilityHandlerImpl{unavailabilityService: unavailabilityService}
}

func (h *unavailabilityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := unavailability.ListUnavailabilityRequest{
		From: query.Get("from"),
		To:   query.Get("to"),
	}
	if staffID := query.Get("staff_id"); staffID != "" {
		req.StaffID = &staffID
	}

	result, err := h.unavailabilityService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *unavailabilityHandlerImpl) CreateBlock(w http.ResponseWriter, r *http.Request) {
	var req unavailability.CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.unavailabilityService.CreateBlock(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Unavailability added", result)
}

func (h *unavailabilityHandlerImpl) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Unavailability ID is required", nil)
		return
	}

	if err := h.unavailabilityService.DeleteBlock(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Unavailability deleted", nil)
}

func (h *unavailabilityHandlerImpl) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req unavailability.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.unavailabilityService.CreateRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Weekly unavailability added", result)
}

func (h *unavailabilityHandlerImpl) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Rule ID is required", nil)
		return
	}

	if err := h.unavailabilityService.DeleteRule(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly unavailability deleted", nil)
}

func (h *unavailabilityHandlerImpl) SkipRule(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSkip(w, r)
	if !ok {
		return
	}

	if err := h.unavailabilityService.SkipRule(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly unavailability skipped for this week", nil)
}

func (h *unavailabilityHandlerImpl) UnskipRule(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSkip(w, r)
	if !ok {
		return
	}

	if err := h.unavailabilityService.UnskipRule(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly unavailability applies again for this week", nil)
}

// decodeSkip reads week_start from the body, falling back to the query
// string so DELETE works without a body.
func decodeSkip(w http.ResponseWriter, r *http.Request) (unavailability.SkipRuleRequest, bool) {
	req := unavailability.SkipRuleRequest{WeekStart: r.URL.Query().Get("week_start")}
	if req.WeekStart == "" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return req, false
		}
	}
	req.RuleID = chi.URLParam(r, "id")
	return req, true
}
