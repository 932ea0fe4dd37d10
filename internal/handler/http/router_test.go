package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/config"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payrate"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/unavailability"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/authctx"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestAccessExp = "1h"
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestStore     = "MOOROOLBARK"
	handlerTestUser      = "0190c2a4-0000-7000-8000-000000000901"
)

type stubAttendanceService struct {
	attendance.AttendanceService
	adjustErr  error
	createErr  error
	lastAdjust attendance.AdjustPunchRequest
	lastUserID string
}

func (s *stubAttendanceService) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.PunchResponse, error) {
	userID, err := authctx.UserID(ctx)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	s.lastUserID = userID
	return attendance.PunchResponse{ID: "punch-1", StaffID: userID, State: attendance.StateOpen}, nil
}

func (s *stubAttendanceService) ClockOut(ctx context.Context) (attendance.PunchResponse, error) {
	return attendance.PunchResponse{}, attendance.ErrNotClockedIn
}

func (s *stubAttendanceService) AdjustPunch(ctx context.Context, req attendance.AdjustPunchRequest) (attendance.PunchResponse, error) {
	s.lastAdjust = req
	if s.adjustErr != nil {
		return attendance.PunchResponse{}, s.adjustErr
	}
	return attendance.PunchResponse{ID: req.PunchID, Adjusted: true}, nil
}

func (s *stubAttendanceService) CreatePunchFromShift(ctx context.Context, req attendance.CreatePunchFromShiftRequest) (attendance.PunchResponse, error) {
	if s.createErr != nil {
		return attendance.PunchResponse{}, s.createErr
	}
	return attendance.PunchResponse{ID: "punch-2", ShiftID: &req.ShiftID}, nil
}

type stubPayrollService struct {
	lastReq    payroll.ComputePayrollRequest
	computeErr error
}

func (s *stubPayrollService) ComputePayroll(ctx context.Context, req payroll.ComputePayrollRequest) (payroll.PayrollReportResponse, error) {
	s.lastReq = req
	if err := req.Validate(); err != nil {
		return payroll.PayrollReportResponse{}, err
	}
	if s.computeErr != nil {
		return payroll.PayrollReportResponse{}, s.computeErr
	}
	return payroll.PayrollReportResponse{}, nil
}

func (s *stubPayrollService) ExportPayroll(ctx context.Context, req payroll.ComputePayrollRequest) (payroll.ExportFile, error) {
	return payroll.ExportFile{
		Filename:    "payroll_2024-03-01_2024-03-07.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte("PK"),
	}, nil
}

type stubShiftService struct{ shift.ShiftService }
type stubPayRateService struct{ payrate.PayRateService }
type stubProfileService struct{ profile.ProfileService }
type stubUnavailabilityService struct{ unavailability.UnavailabilityService }

type testServer struct {
	handler    http.Handler
	jwt        jwt.Service
	attendance *stubAttendanceService
	payroll    *stubPayrollService
}

func newTestServer() testServer {
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	att := &stubAttendanceService{}
	pay := &stubPayrollService{}

	router := NewRouter(config.AppConfig{Env: "test", FrontendURL: "http://localhost:3000"}, jwtService, Handlers{
		Attendance:     NewAttendanceHandler(att),
		Payroll:        NewPayrollHandler(pay),
		Shift:          NewShiftHandler(&stubShiftService{}),
		PayRate:        NewPayRateHandler(&stubPayRateService{}),
		Profile:        NewProfileHandler(&stubProfileService{}),
		Unavailability: NewUnavailabilityHandler(&stubUnavailabilityService{}),
	})
	return testServer{handler: router, jwt: jwtService, attendance: att, payroll: pay}
}

func (s testServer) do(t *testing.T, method, path string, role profile.Role, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		token, _, err := s.jwt.GenerateAccessToken(handlerTestUser, handlerTestStore, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (string, map[string]string) {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error.Code, body.Error.Details
}

func TestRouterRequiresToken(t *testing.T) {
	srv := newTestServer()

	rec := srv.do(t, http.MethodGet, "/api/v1/attendance/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClockInUsesTokenUser(t *testing.T) {
	srv := newTestServer()

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/clock-in", profile.RoleStaff, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, handlerTestUser, srv.attendance.lastUserID)

	rec = srv.do(t, http.MethodPost, "/api/v1/attendance/clock-out", profile.RoleStaff, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	code, _ := decodeError(t, rec)
	assert.Equal(t, "CONFLICT", code)
}

func TestAdjustRoutes(t *testing.T) {
	srv := newTestServer()
	body := map[string]any{
		"adjusted_clock_in_at":  "2024-03-04T09:00:00+11:00",
		"adjusted_clock_out_at": "2024-03-04T17:00:00+11:00",
		"reason":                "forgot to clock out",
	}

	t.Run("staff role is stopped at the router", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/attendance/punches/p-1/adjust", profile.RoleStaff, body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("manager reaches the service with the path id", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/attendance/punches/p-1/adjust", profile.RoleManager, body)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "p-1", srv.attendance.lastAdjust.PunchID)
		assert.Equal(t, "forgot to clock out", srv.attendance.lastAdjust.Reason)
	})

	t.Run("validation errors are 422", func(t *testing.T) {
		srv.attendance.adjustErr = validator.ValidationErrors{{Field: "reason", Message: "reason is required"}}
		defer func() { srv.attendance.adjustErr = nil }()

		rec := srv.do(t, http.MethodPost, "/api/v1/attendance/punches/p-1/adjust", profile.RoleManager, body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		code, details := decodeError(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", code)
		assert.Equal(t, "reason is required", details["reason"])
	})

	t.Run("permission errors are 403", func(t *testing.T) {
		srv.attendance.adjustErr = profile.ErrPermissionDenied
		defer func() { srv.attendance.adjustErr = nil }()

		rec := srv.do(t, http.MethodPost, "/api/v1/attendance/punches/p-1/adjust", profile.RoleManager, body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		code, _ := decodeError(t, rec)
		assert.Equal(t, "FORBIDDEN", code)
	})

	t.Run("version conflicts are 409", func(t *testing.T) {
		srv.attendance.adjustErr = attendance.ErrPunchVersionConflict
		defer func() { srv.attendance.adjustErr = nil }()

		rec := srv.do(t, http.MethodPost, "/api/v1/attendance/punches/p-1/adjust", profile.RoleManager, body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestPayrollRoutes(t *testing.T) {
	srv := newTestServer()

	rec := srv.do(t, http.MethodGet, "/api/v1/payroll?from=2024-03-01&to=2024-03-07&staff_id=0190c2a4-0000-7000-8000-000000000abc", profile.RoleManager, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-03-01", srv.payroll.lastReq.From)
	require.NotNil(t, srv.payroll.lastReq.StaffID)
	assert.Equal(t, "0190c2a4-0000-7000-8000-000000000abc", *srv.payroll.lastReq.StaffID)

	rec = srv.do(t, http.MethodGet, "/api/v1/payroll?from=2024-03-07&to=2024-03-01", profile.RoleOwner, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/payroll?from=2024-03-01&to=2024-03-07", profile.RoleStaff, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/payroll/export?from=2024-03-01&to=2024-03-07", profile.RoleManager, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/payroll/export?from=2024-03-01&to=2024-03-07", profile.RoleOwner, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll_2024-03-01_2024-03-07.xlsx")
	assert.Equal(t, "PK", rec.Body.String())
}

func TestInvalidPeriodHidesParseDetail(t *testing.T) {
	srv := newTestServer()
	srv.payroll.computeErr = fmt.Errorf("%w: from: %v", payroll.ErrInvalidPeriod, `parsing time "2024-02-30": day out of range`)

	rec := srv.do(t, http.MethodGet, "/api/v1/payroll?from=2024-03-01&to=2024-03-07", profile.RoleManager, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
	assert.Equal(t, "Invalid payroll period", body.Error.Message)
	assert.NotContains(t, rec.Body.String(), "parsing time")
}

func TestCreateFromShiftConflict(t *testing.T) {
	srv := newTestServer()
	srv.attendance.createErr = attendance.ErrPunchExistsForShift

	rec := srv.do(t, http.MethodPost, "/api/v1/attendance/punches/from-shift", profile.RoleManager, map[string]any{"shift_id": "0190c2a4-0000-7000-8000-000000000501"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	code, _ := decodeError(t, rec)
	assert.Equal(t, "CONFLICT", code)
}
