package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	// Self service
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	GetMyPunches(w http.ResponseWriter, r *http.Request)

	// Manager workflow
	ListPunches(w http.ResponseWriter, r *http.Request)
	CreateFromShift(w http.ResponseWriter, r *http.Request)
	Adjust(w http.ResponseWriter, r *http.Request)
	RosterProposal(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler. The body is optional.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ClockOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// GetStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyPunches implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyPunches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.ListPunchesRequest{
		From: query.Get("from"),
		To:   query.Get("to"),
	}

	result, err := h.attendanceService.GetMyPunches(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPunches implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListPunches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.ListPunchesRequest{
		From: query.Get("from"),
		To:   query.Get("to"),
	}
	if staffID := query.Get("staff_id"); staffID != "" {
		req.StaffID = &staffID
	}

	result, err := h.attendanceService.ListPunches(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateFromShift implements AttendanceHandler.
func (h *attendanceHandlerImpl) CreateFromShift(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreatePunchFromShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.CreatePunchFromShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock record created", result)
}

// Adjust implements AttendanceHandler.
func (h *attendanceHandlerImpl) Adjust(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Time clock record ID is required", nil)
		return
	}

	var req attendance.AdjustPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.PunchID = id

	result, err := h.attendanceService.AdjustPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment saved", result)
}

// RosterProposal implements AttendanceHandler.
func (h *attendanceHandlerImpl) RosterProposal(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftId")
	if shiftID == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	result, err := h.attendanceService.ProposeRosterAdjustment(r.Context(), shiftID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
