package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/audit"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

func newItemTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&inventory.Category{},
		&inventory.Warehouse{},
		&inventory.Item{},
		&audit.ActivityLog{},
	))

	service := inventoryapp.NewItemService(
		persistence.NewGormItemRepository(db),
		persistence.NewGormTransactionScope(db),
	)
	handler := NewItemHandler(service)

	userID := uuid.New()
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Next()
	})
	handler.RegisterRoutes(engine.Group("/api/v1"))

	return engine, db
}

func seedItemInCategory(t *testing.T, db *gorm.DB, categoryName, code, name string) *inventory.Item {
	t.Helper()
	category, err := inventory.NewCategory(categoryName, "")
	require.NoError(t, err)
	require.NoError(t, db.Create(category).Error)

	item, err := inventory.NewItem(inventory.NewItemParams{
		Code:       code,
		Name:       name,
		Quantity:   5,
		MinStock:   2,
		UnitPrice:  decimal.NewFromInt(100),
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(item).Error)
	return item
}

func getItems(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestItemHandler_ListFilterByCategory(t *testing.T) {
	engine, db := newItemTestServer(t)
	laptop := seedItemInCategory(t, db, "Electronics", "LAP-001", "Laptop")
	seedItemInCategory(t, db, "Furniture", "DSK-001", "Desk")

	w := getItems(t, engine, "/api/v1/items?category_id="+laptop.CategoryID.String())
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []inventoryapp.ItemResponse `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "LAP-001", resp.Data[0].Code)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestItemHandler_ListFilterByWarehouse(t *testing.T) {
	engine, db := newItemTestServer(t)
	item := seedItemInCategory(t, db, "Electronics", "LAP-001", "Laptop")

	warehouse, err := inventory.NewWarehouse("Main", "", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(warehouse).Error)
	require.NoError(t, db.Model(item).Update("warehouse_id", warehouse.ID).Error)

	w := getItems(t, engine, "/api/v1/items?warehouse_id="+warehouse.ID.String())
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []inventoryapp.ItemResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "LAP-001", resp.Data[0].Code)
}

func TestItemHandler_ListInvalidCategoryID(t *testing.T) {
	engine, _ := newItemTestServer(t)

	w := getItems(t, engine, "/api/v1/items?category_id=not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
