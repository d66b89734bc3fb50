package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditapp "github.com/stockroom/backend/internal/application/audit"
	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/audit"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence"
)

func newDashboardTestServer(t *testing.T) (*gin.Engine, *gorm.DB, *inventoryapp.MovementService) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&inventory.Category{},
		&inventory.Warehouse{},
		&inventory.Item{},
		&inventory.IncomingItem{},
		&inventory.OutgoingItem{},
		&audit.ActivityLog{},
	))

	itemRepo := persistence.NewGormItemRepository(db)
	scope := persistence.NewGormTransactionScope(db)
	movementService := inventoryapp.NewMovementService(persistence.NewGormMovementRepository(db), scope)
	dashboardService := inventoryapp.NewDashboardService(
		itemRepo,
		persistence.NewGormCategoryRepository(db),
		persistence.NewGormWarehouseRepository(db),
		persistence.NewGormMovementRepository(db),
	)
	activityService := auditapp.NewActivityService(persistence.NewGormActivityLogRepository(db))

	handler := NewDashboardHandler(dashboardService, activityService)
	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"))

	return engine, db, movementService
}

func TestDashboardHandler_StatsIncludesRecentActivity(t *testing.T) {
	engine, db, movementService := newDashboardTestServer(t)
	item := seedMovementItem(t, db, 5)

	userID := uuid.New()
	_, err := movementService.RecordIncoming(context.Background(), userID, inventoryapp.RecordIncomingRequest{
		ItemID:   item.ID,
		Quantity: 3,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalItems     int64                    `json:"total_items"`
			IncomingCount  int64                    `json:"incoming_count"`
			RecentActivity []auditapp.ActivityEntry `json:"recent_activity"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.TotalItems)
	assert.Equal(t, int64(1), resp.Data.IncomingCount)
	require.Len(t, resp.Data.RecentActivity, 1)
	assert.Equal(t, audit.ActionCreate, resp.Data.RecentActivity[0].Action)
	assert.Equal(t, "incoming_items", resp.Data.RecentActivity[0].TableName)
	assert.Equal(t, userID, resp.Data.RecentActivity[0].UserID)
}

func TestDashboardHandler_StatsEmptyDatabase(t *testing.T) {
	engine, _, _ := newDashboardTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalItems     int64                    `json:"total_items"`
			RecentActivity []auditapp.ActivityEntry `json:"recent_activity"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Data.TotalItems)
	assert.Empty(t, resp.Data.RecentActivity)
}
