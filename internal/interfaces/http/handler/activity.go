package handler

import (
	"github.com/gin-gonic/gin"

	auditapp "github.com/stockroom/backend/internal/application/audit"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// ActivityHandler serves the read-only audit trail
type ActivityHandler struct {
	BaseHandler
	activityService *auditapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *auditapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// List lists audit entries, newest first
func (h *ActivityHandler) List(c *gin.Context) {
	var filter auditapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := parseUUIDQuery(c, "user_id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}
	filter.UserID = userID

	entries, total, err := h.activityService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	h.SuccessWithMeta(c, entries, total, page, auditapp.DefaultPageSize)
}

// RegisterRoutes registers the activity log routes
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activity-log", h.List)
}
