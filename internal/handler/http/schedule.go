package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	GetWeekly(w http.ResponseWriter, r *http.Request)
	ReplaceWeek(w http.ResponseWriter, r *http.Request)
	UpsertDay(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// GetWeekly handles GET /employees/{id}/schedule
func (h *scheduleHandlerImpl) GetWeekly(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.GetWeekly(r.Context(), companyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ReplaceWeek handles PUT /employees/{id}/schedule
func (h *scheduleHandlerImpl) ReplaceWeek(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req schedule.ReplaceWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.ReplaceWeek(r.Context(), companyID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule updated successfully", result)
}

// UpsertDay handles PUT /employees/{id}/schedule/{day}
func (h *scheduleHandlerImpl) UpsertDay(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		response.HandleError(w, schedule.ErrInvalidDayOfWeek)
		return
	}

	var req schedule.DayScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DayOfWeek = day

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.UpsertDay(r.Context(), companyID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule day saved", result)
}
