package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/inventory"
)

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Supplier    string          `json:"supplier"`
	CategoryID  uuid.UUID       `json:"category_id"`
	WarehouseID *uuid.UUID      `json:"warehouse_id,omitempty"`
	IsLowStock  bool            `json:"is_low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewItemResponse converts a domain item to its API representation
func NewItemResponse(item *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Code:        item.Code,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		MinStock:    item.MinStock,
		UnitPrice:   item.UnitPrice,
		TotalValue:  item.TotalValue(),
		Supplier:    item.Supplier,
		CategoryID:  item.CategoryID,
		WarehouseID: item.WarehouseID,
		IsLowStock:  item.IsLowStock(),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ItemListFilter represents filter options for item listings
type ItemListFilter struct {
	Search string `form:"search"`
	// CategoryID and WarehouseID are parsed from the query by the handler;
	// gin's form binding cannot decode *uuid.UUID.
	CategoryID  *uuid.UUID `form:"-"`
	WarehouseID *uuid.UUID `form:"-"`
	Stock       string     `form:"stock" binding:"omitempty,oneof=low out"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreateItemRequest represents a request to create an item
type CreateItemRequest struct {
	Code        string          `json:"code" binding:"required,min=2,max=50"`
	Name        string          `json:"name" binding:"required,min=2,max=200"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	Quantity    int             `json:"quantity" binding:"omitempty,min=0"`
	MinStock    int             `json:"min_stock" binding:"omitempty,min=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Supplier    string          `json:"supplier" binding:"omitempty,max=200"`
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
	WarehouseID *uuid.UUID      `json:"warehouse_id"`
}

// UpdateItemRequest represents a request to update an item
type UpdateItemRequest struct {
	Code        string          `json:"code" binding:"required,min=2,max=50"`
	Name        string          `json:"name" binding:"required,min=2,max=200"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	Quantity    int             `json:"quantity" binding:"omitempty,min=0"`
	MinStock    int             `json:"min_stock" binding:"omitempty,min=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Supplier    string          `json:"supplier" binding:"omitempty,max=200"`
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
	WarehouseID *uuid.UUID      `json:"warehouse_id"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ItemCount   int64     `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategoryResponse converts a domain category to its API representation
func NewCategoryResponse(category *inventory.Category, itemCount int64) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		ItemCount:   itemCount,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Manager   string    `json:"manager"`
	ItemCount int64     `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWarehouseResponse converts a domain warehouse to its API representation
func NewWarehouseResponse(warehouse *inventory.Warehouse, itemCount int64) WarehouseResponse {
	return WarehouseResponse{
		ID:        warehouse.ID,
		Name:      warehouse.Name,
		Location:  warehouse.Location,
		Manager:   warehouse.Manager,
		ItemCount: itemCount,
		CreatedAt: warehouse.CreatedAt,
		UpdatedAt: warehouse.UpdatedAt,
	}
}

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Location string `json:"location" binding:"omitempty,max=200"`
	Manager  string `json:"manager" binding:"omitempty,max=100"`
}

// UpdateWarehouseRequest represents a request to update a warehouse
type UpdateWarehouseRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Location string `json:"location" binding:"omitempty,max=200"`
	Manager  string `json:"manager" binding:"omitempty,max=100"`
}

// RecordIncomingRequest represents a request to record a stock receipt
type RecordIncomingRequest struct {
	ItemID       uuid.UUID       `json:"item_id" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required,min=1"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Supplier     string          `json:"supplier" binding:"omitempty,max=200"`
	BatchNumber  string          `json:"batch_number" binding:"omitempty,max=100"`
	ExpiryDate   *time.Time      `json:"expiry_date"`
	ReceivedDate *time.Time      `json:"received_date"`
	Notes        string          `json:"notes" binding:"omitempty,max=500"`
}

// RecordOutgoingRequest represents a request to record a stock issue
type RecordOutgoingRequest struct {
	ItemID        uuid.UUID  `json:"item_id" binding:"required"`
	Quantity      int        `json:"quantity" binding:"required,min=1"`
	Destination   string     `json:"destination" binding:"required,max=200"`
	Purpose       string     `json:"purpose" binding:"omitempty,max=500"`
	RequestNumber string     `json:"request_number" binding:"omitempty,max=100"`
	IssuedDate    *time.Time `json:"issued_date"`
	Notes         string     `json:"notes" binding:"omitempty,max=500"`
}

// IncomingResponse represents a stock receipt in API responses
type IncomingResponse struct {
	ID           uuid.UUID       `json:"id"`
	ItemID       uuid.UUID       `json:"item_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Supplier     string          `json:"supplier"`
	BatchNumber  string          `json:"batch_number"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	ReceivedDate time.Time       `json:"received_date"`
	Notes        string          `json:"notes"`
	ReceivedBy   uuid.UUID       `json:"received_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewIncomingResponse converts a domain movement to its API representation
func NewIncomingResponse(m *inventory.IncomingItem) IncomingResponse {
	return IncomingResponse{
		ID:           m.ID,
		ItemID:       m.ItemID,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		Supplier:     m.Supplier,
		BatchNumber:  m.BatchNumber,
		ExpiryDate:   m.ExpiryDate,
		ReceivedDate: m.ReceivedDate,
		Notes:        m.Notes,
		ReceivedBy:   m.ReceivedBy,
		CreatedAt:    m.CreatedAt,
	}
}

// OutgoingResponse represents a stock issue in API responses
type OutgoingResponse struct {
	ID            uuid.UUID `json:"id"`
	ItemID        uuid.UUID `json:"item_id"`
	Quantity      int       `json:"quantity"`
	Destination   string    `json:"destination"`
	Purpose       string    `json:"purpose"`
	RequestNumber string    `json:"request_number"`
	IssuedDate    time.Time `json:"issued_date"`
	Notes         string    `json:"notes"`
	IssuedBy      uuid.UUID `json:"issued_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewOutgoingResponse converts a domain movement to its API representation
func NewOutgoingResponse(m *inventory.OutgoingItem) OutgoingResponse {
	return OutgoingResponse{
		ID:            m.ID,
		ItemID:        m.ItemID,
		Quantity:      m.Quantity,
		Destination:   m.Destination,
		Purpose:       m.Purpose,
		RequestNumber: m.RequestNumber,
		IssuedDate:    m.IssuedDate,
		Notes:         m.Notes,
		IssuedBy:      m.IssuedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// DashboardResponse aggregates the landing page statistics
type DashboardResponse struct {
	TotalItems      int64              `json:"total_items"`
	TotalCategories int64              `json:"total_categories"`
	TotalWarehouses int64              `json:"total_warehouses"`
	LowStockItems   int64              `json:"low_stock_items"`
	OutOfStockItems int64              `json:"out_of_stock_items"`
	IncomingCount   int64              `json:"incoming_count"`
	OutgoingCount   int64              `json:"outgoing_count"`
	TotalValue      decimal.Decimal    `json:"total_value"`
	LowStock        []ItemResponse     `json:"low_stock"`
	RecentIncoming  []IncomingResponse `json:"recent_incoming"`
	RecentOutgoing  []OutgoingResponse `json:"recent_outgoing"`
}
