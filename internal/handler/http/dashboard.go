package http

import (
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns combined dashboard data
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	date, err := attendance.ParseDate(r.URL.Query().Get("date")) // format: YYYY-MM-DD, default: today
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), companyID, &date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
