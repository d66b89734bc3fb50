package handler

import (
	"github.com/gin-gonic/gin"

	auditapp "github.com/stockroom/backend/internal/application/audit"
	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
)

// recentActivityLimit caps the audit entries shown on the dashboard
const recentActivityLimit = 10

// DashboardHandler serves aggregated inventory statistics
type DashboardHandler struct {
	BaseHandler
	dashboardService *inventoryapp.DashboardService
	activityService  *auditapp.ActivityService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *inventoryapp.DashboardService, activityService *auditapp.ActivityService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		activityService:  activityService,
	}
}

// dashboardResponse extends the inventory statistics with the audit trail tail
type dashboardResponse struct {
	inventoryapp.DashboardResponse
	RecentActivity []auditapp.ActivityEntry `json:"recent_activity"`
}

// Stats returns entity counts, stock alerts, recent movements and the most
// recent audit entries
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	activities, err := h.activityService.Recent(c.Request.Context(), recentActivityLimit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboardResponse{
		DashboardResponse: *stats,
		RecentActivity:    activities,
	})
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Stats)
}
