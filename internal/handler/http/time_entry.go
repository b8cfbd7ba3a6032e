package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimeEntryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
}

type timeEntryHandlerImpl struct {
	timeEntryService timeentry.TimeEntryService
}

func NewTimeEntryHandler(timeEntryService timeentry.TimeEntryService) TimeEntryHandler {
	return &timeEntryHandlerImpl{timeEntryService: timeEntryService}
}

// List handles GET /time-entries?employee_id=&from=&to=&page=&limit=
func (h *timeEntryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := timeentry.TimeEntryFilter{
		EmployeeID: queryString(r, "employee_id"),
		From:       queryString(r, "from"),
		To:         queryString(r, "to"),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	}

	result, err := h.timeEntryService.ListTimeEntries(r.Context(), companyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.TimeEntries, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

func (h *timeEntryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timeEntryService.GetTimeEntry(r.Context(), companyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timeEntryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timeentry.CreateTimeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timeEntryService.CreateTimeEntry(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time entry created successfully", result)
}

func (h *timeEntryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timeentry.UpdateTimeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timeEntryService.UpdateTimeEntry(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry updated successfully", result)
}

func (h *timeEntryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.timeEntryService.DeleteTimeEntry(r.Context(), companyID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry deleted successfully", nil)
}

// ClockIn handles POST /time-entries/clock-in for the caller's own employee record.
func (h *timeEntryHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	companyID, employeeID, req, ok := h.clockRequest(w, r)
	if !ok {
		return
	}

	result, err := h.timeEntryService.ClockIn(r.Context(), companyID, employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked in", result)
}

// ClockOut handles POST /time-entries/clock-out for the caller's own employee record.
func (h *timeEntryHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	companyID, employeeID, req, ok := h.clockRequest(w, r)
	if !ok {
		return
	}

	result, err := h.timeEntryService.ClockOut(r.Context(), companyID, employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", result)
}

// clockRequest resolves the caller and decodes the optional body.
func (h *timeEntryHandlerImpl) clockRequest(w http.ResponseWriter, r *http.Request) (string, string, timeentry.ClockRequest, bool) {
	var req timeentry.ClockRequest

	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return "", "", req, false
	}
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return "", "", req, false
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return "", "", req, false
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return "", "", req, false
	}

	return companyID, employeeID, req, true
}
