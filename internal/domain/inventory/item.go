package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// Item is a stocked SKU. Quantity is the authoritative on-hand stock figure
// and is only mutated through recorded incoming/outgoing movements (or an
// explicit edit through the item service, which is audited).
type Item struct {
	shared.BaseEntity
	Code        string          `gorm:"size:50;not null;uniqueIndex"`
	Name        string          `gorm:"size:200;not null"`
	Description string          `gorm:"size:500"`
	Quantity    int             `gorm:"not null;default:0"`
	MinStock    int             `gorm:"not null;default:0"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Supplier    string          `gorm:"size:200"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItemParams carries the attributes for creating an item
type NewItemParams struct {
	Code        string
	Name        string
	Description string
	Quantity    int
	MinStock    int
	UnitPrice   decimal.Decimal
	Supplier    string
	CategoryID  uuid.UUID
	WarehouseID *uuid.UUID
}

// NewItem creates a new item
func NewItem(p NewItemParams) (*Item, error) {
	if err := validateItemFields(p.Code, p.Name, p.Description, p.Supplier); err != nil {
		return nil, err
	}
	if p.Quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if p.MinStock < 0 {
		return nil, shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}
	if p.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price must be positive")
	}
	if p.CategoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	return &Item{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        strings.TrimSpace(p.Code),
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		UnitPrice:   p.UnitPrice,
		Supplier:    p.Supplier,
		CategoryID:  p.CategoryID,
		WarehouseID: p.WarehouseID,
	}, nil
}

// Update replaces the item's editable attributes
func (i *Item) Update(p NewItemParams) error {
	if err := validateItemFields(p.Code, p.Name, p.Description, p.Supplier); err != nil {
		return err
	}
	if p.Quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if p.MinStock < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}
	if p.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price must be positive")
	}
	if p.CategoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	i.Code = strings.TrimSpace(p.Code)
	i.Name = strings.TrimSpace(p.Name)
	i.Description = p.Description
	i.Quantity = p.Quantity
	i.MinStock = p.MinStock
	i.UnitPrice = p.UnitPrice
	i.Supplier = p.Supplier
	i.CategoryID = p.CategoryID
	i.WarehouseID = p.WarehouseID
	i.UpdatedAt = time.Now()
	return nil
}

// IsLowStock returns true if on-hand quantity is at or below the reorder threshold
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}

// IsOutOfStock returns true if there is no stock on hand
func (i *Item) IsOutOfStock() bool {
	return i.Quantity == 0
}

// TotalValue returns quantity * unit price
func (i *Item) TotalValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CanFulfill returns true if on-hand stock can cover the requested quantity
func (i *Item) CanFulfill(quantity int) bool {
	return i.Quantity >= quantity
}

func validateItemFields(code, name, description, supplier string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Item code cannot be empty")
	}
	if len(code) < 2 || len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Item code must be between 2 and 50 characters")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) < 2 || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Item name must be between 2 and 200 characters")
	}

	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if len(supplier) > 200 {
		return shared.NewDomainError("INVALID_SUPPLIER", "Supplier cannot exceed 200 characters")
	}
	return nil
}
