package http

import (
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// GetStats implements DashboardHandler.
func (d *DashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := d.dashboardService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
