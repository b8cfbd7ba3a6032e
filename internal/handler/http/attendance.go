package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	WorkDay(w http.ResponseWriter, r *http.Request)
	Scheduled(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// WorkDay handles GET /attendance/work-day
func (h *attendanceHandlerImpl) WorkDay(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	date, err := attendance.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	info, err := h.attendanceService.CheckWorkDay(r.Context(), companyID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, info)
}

// Scheduled handles GET /attendance/scheduled
func (h *attendanceHandlerImpl) Scheduled(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	date, err := attendance.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employees, err := h.attendanceService.ListScheduledEmployees(r.Context(), companyID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// List handles GET /attendance
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := r.URL.Query()
	date, err := attendance.ParseDate(query.Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	includeUnscheduled := false
	if v := query.Get("include_unscheduled"); v != "" {
		includeUnscheduled, err = strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "include_unscheduled must be a boolean", nil)
			return
		}
	}

	statuses, err := h.attendanceService.ClassifyEmployees(r.Context(), companyID, &date, includeUnscheduled)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, statuses)
}

// Stats handles GET /attendance/stats
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	date, err := attendance.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.attendanceService.ComputeDailyStats(r.Context(), companyID, &date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
