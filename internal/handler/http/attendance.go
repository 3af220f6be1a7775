package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/buildforce/attendance-backend-go/internal/domain/attendance"
	"github.com/buildforce/attendance-backend-go/internal/handler/http/response"
	attendanceService "github.com/buildforce/attendance-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Range(w http.ResponseWriter, r *http.Request)
	CreateLeave(w http.ResponseWriter, r *http.Request)
	DeleteLeave(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendanceService.AttendanceService
}

func NewAttendanceHandler(svc attendanceService.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: svc}
}

// Daily implements AttendanceHandler.
func (h *attendanceHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	req := attendance.DailyAttendanceRequest{
		Date: r.URL.Query().Get("date"),
	}
	if v := r.URL.Query().Get("worksite_id"); v != "" {
		req.WorksiteID = &v
	}

	result, err := h.attendanceService.DailyAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stats implements AttendanceHandler. It serves the day summary without the
// per-employee rows the daily view carries.
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	req := attendance.DailyAttendanceRequest{
		Date: r.URL.Query().Get("date"),
	}
	if v := r.URL.Query().Get("worksite_id"); v != "" {
		req.WorksiteID = &v
	}

	result, err := h.attendanceService.DailyAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result.Summary)
}

// Range implements AttendanceHandler. The employee comes from the URL on the
// per-employee route and from the employee_id query on the records route.
func (h *attendanceHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		employeeID = r.URL.Query().Get("employee_id")
	}

	req := attendance.RangeAttendanceRequest{
		EmployeeID: employeeID,
		DateFrom:   r.URL.Query().Get("date_from"),
		DateTo:     r.URL.Query().Get("date_to"),
	}

	result, err := h.attendanceService.RangeAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateLeave implements AttendanceHandler.
func (h *attendanceHandlerImpl) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "BAD_REQUEST", "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CreateLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave entry recorded", result)
}

// DeleteLeave implements AttendanceHandler.
func (h *attendanceHandlerImpl) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.attendanceService.DeleteLeave(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave entry removed", nil)
}

func parseIntQuery(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
