package handler

import (
	"bytes"
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
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// newMovementTestServer wires the movement handler against an in-memory
// database with a stubbed authenticated user.
func newMovementTestServer(t *testing.T) (*gin.Engine, *gorm.DB, uuid.UUID) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&inventory.Category{},
		&inventory.Item{},
		&inventory.IncomingItem{},
		&inventory.OutgoingItem{},
		&audit.ActivityLog{},
	))

	userID := uuid.New()

	service := inventoryapp.NewMovementService(
		persistence.NewGormMovementRepository(db),
		persistence.NewGormTransactionScope(db),
	)
	handler := NewMovementHandler(service)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Next()
	})
	api := engine.Group("/api/v1")
	handler.RegisterRoutes(api)

	return engine, db, userID
}

func seedMovementItem(t *testing.T, db *gorm.DB, quantity int) *inventory.Item {
	category, err := inventory.NewCategory("Electronics", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(category).Error)

	item, err := inventory.NewItem(inventory.NewItemParams{
		Code:       "MON-001",
		Name:       "Monitor",
		Quantity:   quantity,
		MinStock:   2,
		UnitPrice:  decimal.NewFromInt(250),
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(item).Error)
	return item
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestMovementHandler_RecordIncoming(t *testing.T) {
	engine, db, _ := newMovementTestServer(t)
	item := seedMovementItem(t, db, 5)

	w := postJSON(t, engine, "/api/v1/incoming-items", gin.H{
		"item_id":  item.ID,
		"quantity": 3,
		"supplier": "Acme",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var reloaded inventory.Item
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, 8, reloaded.Quantity)
}

func TestMovementHandler_RecordOutgoing(t *testing.T) {
	t.Run("issues stock and returns 201", func(t *testing.T) {
		engine, db, userID := newMovementTestServer(t)
		item := seedMovementItem(t, db, 5)

		w := postJSON(t, engine, "/api/v1/outgoing-items", gin.H{
			"item_id":     item.ID,
			"quantity":    2,
			"destination": "IT Department",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, userID.String(), data["issued_by"])

		var reloaded inventory.Item
		require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
		assert.Equal(t, 3, reloaded.Quantity)
	})

	t.Run("returns 422 on insufficient stock", func(t *testing.T) {
		engine, db, _ := newMovementTestServer(t)
		item := seedMovementItem(t, db, 5)

		w := postJSON(t, engine, "/api/v1/outgoing-items", gin.H{
			"item_id":     item.ID,
			"quantity":    9,
			"destination": "IT Department",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
		assert.Equal(t, "Insufficient stock! Available: 5, Requested: 9", resp.Error.Message)

		var reloaded inventory.Item
		require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
		assert.Equal(t, 5, reloaded.Quantity)
	})

	t.Run("returns 400 when destination is missing", func(t *testing.T) {
		engine, db, _ := newMovementTestServer(t)
		item := seedMovementItem(t, db, 5)

		w := postJSON(t, engine, "/api/v1/outgoing-items", gin.H{
			"item_id":  item.ID,
			"quantity": 2,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for unknown item", func(t *testing.T) {
		engine, _, _ := newMovementTestServer(t)

		w := postJSON(t, engine, "/api/v1/outgoing-items", gin.H{
			"item_id":     uuid.New(),
			"quantity":    1,
			"destination": "IT Department",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMovementHandler_ListIncoming(t *testing.T) {
	engine, db, _ := newMovementTestServer(t)
	item := seedMovementItem(t, db, 5)

	for i := 0; i < 3; i++ {
		w := postJSON(t, engine, "/api/v1/incoming-items", gin.H{
			"item_id":  item.ID,
			"quantity": 1,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req, err := http.NewRequest(http.MethodGet, "/api/v1/incoming-items?item_id="+item.ID.String(), nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(3), resp.Meta.Total)
}
