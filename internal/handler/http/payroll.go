package http

import (
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func payrollRequestFromQuery(r *http.Request) payroll.ComputePayrollRequest {
	query := r.URL.Query()
	req := payroll.ComputePayrollRequest{
		From: query.Get("from"),
		To:   query.Get("to"),
	}
	if staffID := query.Get("staff_id"); staffID != "" {
		req.StaffID = &staffID
	}
	return req
}

// Compute implements PayrollHandler.
func (h *payrollHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ComputePayroll(r.Context(), payrollRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements PayrollHandler.
func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	file, err := h.payrollService.ExportPayroll(r.Context(), payrollRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}
