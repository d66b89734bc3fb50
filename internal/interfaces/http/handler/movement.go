package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// MovementHandler handles stock movement API endpoints
type MovementHandler struct {
	BaseHandler
	movementService *inventoryapp.MovementService
}

// NewMovementHandler creates a new MovementHandler
func NewMovementHandler(movementService *inventoryapp.MovementService) *MovementHandler {
	return &MovementHandler{
		movementService: movementService,
	}
}

// movementListQuery binds the shared list parameters. The item_id filter is
// parsed separately because gin's form binding cannot decode *uuid.UUID.
type movementListQuery struct {
	dto.ListRequest
}

// RecordIncoming records a stock receipt
func (h *MovementHandler) RecordIncoming(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.RecordIncomingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	movement, err := h.movementService.RecordIncoming(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// RecordOutgoing records a stock issue
func (h *MovementHandler) RecordOutgoing(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.RecordOutgoingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	movement, err := h.movementService.RecordOutgoing(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// ListIncoming lists stock receipts, newest first
func (h *MovementHandler) ListIncoming(c *gin.Context) {
	var query movementListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	itemID, err := parseUUIDQuery(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	filter := shared.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	filter.Normalize()

	movements, total, err := h.movementService.ListIncoming(c.Request.Context(), itemID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}

// ListOutgoing lists stock issues, newest first
func (h *MovementHandler) ListOutgoing(c *gin.Context) {
	var query movementListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	itemID, err := parseUUIDQuery(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	filter := shared.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	filter.Normalize()

	movements, total, err := h.movementService.ListOutgoing(c.Request.Context(), itemID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers all movement routes
func (h *MovementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	incoming := rg.Group("/incoming-items")
	{
		incoming.POST("", h.RecordIncoming)
		incoming.GET("", h.ListIncoming)
	}

	outgoing := rg.Group("/outgoing-items")
	{
		outgoing.POST("", h.RecordOutgoing)
		outgoing.GET("", h.ListOutgoing)
	}
}
