package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GenerateRecurring(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{holidayService: holidayService}
}

// List handles GET /holidays?year=2024
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var year *int
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.HandleError(w, holiday.ErrInvalidYear)
			return
		}
		year = &parsed
	}

	result, err := h.holidayService.ListHolidays(r.Context(), companyID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *holidayHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.GetHoliday(r.Context(), companyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.CreateHoliday(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", result)
}

func (h *holidayHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req holiday.UpdateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.UpdateHoliday(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday updated successfully", result)
}

func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.holidayService.DeleteHoliday(r.Context(), companyID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}

// GenerateRecurring handles POST /holidays/generate
func (h *holidayHandlerImpl) GenerateRecurring(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req holiday.GenerateRecurringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.GenerateRecurring(r.Context(), companyID, req.Year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recurring holidays generated", result)
}
