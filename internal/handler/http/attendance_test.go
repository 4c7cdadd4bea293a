package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/repository/memory"
	analyticsSvc "github.com/attendly/attendance-backend-go/internal/service/analytics"
	attendanceSvc "github.com/attendly/attendance-backend-go/internal/service/attendance"
	correctionSvc "github.com/attendly/attendance-backend-go/internal/service/correction"
	"github.com/attendly/attendance-backend-go/internal/service/export"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router     *chi.Mux
	jwtService jwt.Service
	attRepo    *memory.AttendanceRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	late, err := attendance.ParseClockTime("09:00")
	require.NoError(t, err)
	cutoff, err := attendance.ParseClockTime("19:30")
	require.NoError(t, err)
	policy := attendance.Policy{LateThreshold: late, AutoCloseCutoff: cutoff, Location: time.UTC}

	attRepo := memory.NewAttendanceRepository()
	empRepo := memory.NewEmployeeRepository(
		employee.Employee{ID: "emp-1", FullName: "Ada Lovelace", Active: true},
		employee.Employee{ID: "emp-2", FullName: "Grace Hopper", Active: true},
	)

	jwtService := jwt.NewJWTService("test-secret", "15m")

	router := NewRouter(
		jwtService,
		NewAttendanceHandler(attendanceSvc.NewAttendanceService(attRepo, policy)),
		NewCorrectionHandler(correctionSvc.NewCorrectionService(attRepo, policy)),
		NewAnalyticsHandler(analyticsSvc.NewAnalyticsService(attRepo, empRepo, policy)),
		NewReportHandler(analyticsSvc.NewAnalyticsService(attRepo, empRepo, policy), export.NewRegistry()),
	)

	return &testEnv{router: router, jwtService: jwtService, attRepo: attRepo}
}

func (env *testEnv) request(t *testing.T, method, path string, body interface{}, employeeID string, role user.Role) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if employeeID != "" {
		token, _, err := env.jwtService.GenerateAccessToken(employeeID, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestCheckInEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/attendance/startAttendent", nil, "emp-1", user.RoleEmployee)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    attendance.RecordResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "emp-1", resp.Data.EmployeeID)
	assert.NotNil(t, resp.Data.InTime)
}

func TestCheckInTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/attendance/startAttendent", nil, "emp-1", user.RoleEmployee)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodPost, "/attendance/startAttendent", nil, "emp-1", user.RoleEmployee)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckOutEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/attendance/startAttendent", nil, "emp-1", user.RoleEmployee)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodPatch, "/attendance/EndAttendance/checkout", nil, "emp-1", user.RoleEmployee)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data attendance.RecordResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Data.OutTime)
}

func TestCheckOutWithoutSessionConflicts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPatch, "/attendance/EndAttendance/checkout", nil, "emp-1", user.RoleEmployee)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/attendance/startAttendent", nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRequireApproverRole(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/attendance/getAttendent",
		"/attendance/dashboard-stats",
		"/attendance/pending-corrections",
		"/attendance/analytics-report?type=week",
	} {
		rec := env.request(t, http.MethodGet, path, nil, "emp-1", user.RoleEmployee)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	rec := env.request(t, http.MethodGet, "/attendance/dashboard-stats", nil, "mgr-1", user.RoleManager)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMyHistoryEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/attendance/startAttendent", nil, "emp-1", user.RoleEmployee)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodGet, "/attendance/my-history", nil, "emp-1", user.RoleEmployee)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []attendance.RecordResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}

func TestAnalyticsReportEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/attendance/analytics-report?type=week", nil, "mgr-1", user.RoleManager)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/attendance/analytics-report?type=quarter", nil, "mgr-1", user.RoleManager)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAttendanceReportExport(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/attendance/attendanceReport?type=pdf&viewType=week", nil, "mgr-1", user.RoleManager)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	rec = env.request(t, http.MethodGet, "/attendance/attendanceReport?type=excel&viewType=month", nil, "mgr-1", user.RoleManager)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/attendance/attendanceReport?type=csv&viewType=week", nil, "mgr-1", user.RoleManager)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCorrectionFlowEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/attendance/startAttendent", nil, "emp-1", user.RoleEmployee)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.request(t, http.MethodPatch, "/attendance/EndAttendance/checkout", nil, "emp-1", user.RoleEmployee)
	require.Equal(t, http.StatusOK, rec.Code)

	var checkout struct {
		Data attendance.RecordResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkout))

	today := checkout.Data.Date
	requested := time.Now().UTC().Add(2 * time.Hour).Format(time.RFC3339)
	rec = env.request(t, http.MethodPost, "/attendance/request-correction", map[string]string{
		"date":           today,
		"type":           "check_out",
		"requested_time": requested,
		"reason":         "left late but forgot to badge out",
	}, "emp-1", user.RoleEmployee)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodGet, "/attendance/pending-corrections", nil, "mgr-1", user.RoleManager)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending struct {
		Data []attendance.RecordResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending.Data, 1)

	rec = env.request(t, http.MethodPost, "/attendance/approve-correction", map[string]string{
		"attendance_id": pending.Data[0].ID,
		"action":        "approve",
	}, "mgr-1", user.RoleManager)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resolved struct {
		Data attendance.RecordResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resolved))
	require.NotNil(t, resolved.Data.Correction)
	assert.Equal(t, attendance.CorrectionApproved, resolved.Data.Correction.Status)
	require.NotNil(t, resolved.Data.OutTime)
	assert.Equal(t, requested, *resolved.Data.OutTime)
}
