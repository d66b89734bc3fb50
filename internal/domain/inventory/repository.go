package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/shared"
)

// ItemFilter narrows item listings
type ItemFilter struct {
	shared.Filter
	CategoryID  *uuid.UUID
	WarehouseID *uuid.UUID
	// Stock is "", "low" or "out"
	Stock string
}

// ItemRepository provides access to items
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByCode(ctx context.Context, code string) (*Item, error)
	FindAll(ctx context.Context, filter ItemFilter) (*shared.Paginated[Item], error)
	// ExistsByCode reports whether another item already uses code; excludeID
	// is ignored when uuid.Nil.
	ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)
	// AdjustQuantity applies delta to the item's quantity with a conditional
	// update that refuses to drive stock negative. It returns
	// shared.ErrNotFound when the row does not exist and an insufficient
	// stock error when the adjustment would make the quantity negative.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error)
	FindLowStock(ctx context.Context, limit int) ([]Item, error)
	// TotalInventoryValue sums quantity * unit_price over all items.
	TotalInventoryValue(ctx context.Context) (decimal.Decimal, error)
}

// CategoryRepository provides access to categories
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Category], error)
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// WarehouseRepository provides access to warehouses
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *Warehouse) error
	Update(ctx context.Context, warehouse *Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Warehouse], error)
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// MovementRepository provides append-only access to stock movements
type MovementRepository interface {
	CreateIncoming(ctx context.Context, movement *IncomingItem) error
	CreateOutgoing(ctx context.Context, movement *OutgoingItem) error
	FindIncoming(ctx context.Context, filter shared.Filter) (*shared.Paginated[IncomingItem], error)
	FindOutgoing(ctx context.Context, filter shared.Filter) (*shared.Paginated[OutgoingItem], error)
	FindIncomingByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) (*shared.Paginated[IncomingItem], error)
	FindOutgoingByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) (*shared.Paginated[OutgoingItem], error)
	CountIncoming(ctx context.Context) (int64, error)
	CountOutgoing(ctx context.Context) (int64, error)
	RecentIncoming(ctx context.Context, limit int) ([]IncomingItem, error)
	RecentOutgoing(ctx context.Context, limit int) ([]OutgoingItem, error)
}
