package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// GormItemRepository implements inventory.ItemRepository using gorm.
type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) Create(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*inventory.Item, error) {
	var item inventory.Item
	err := r.db.WithContext(ctx).First(&item, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormItemRepository) FindAll(ctx context.Context, filter inventory.ItemFilter) (*shared.Paginated[inventory.Item], error) {
	filter.Normalize()

	var total int64
	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []inventory.Item
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)
	query = query.Order("code ASC").Offset(filter.Offset()).Limit(filter.PageSize)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (r *GormItemRepository) ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Item{}).Where("code = ?", code)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AdjustQuantity applies delta to the item's stock level. The update is
// conditional so a concurrent adjustment can never drive quantity below
// zero; when the guard refuses the change the current quantity is re-read
// to report what was actually available.
func (r *GormItemRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		UpdateColumns(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		item, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return shared.NewInsufficientStockError(item.Quantity, -delta)
	}
	return nil
}

func (r *GormItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&inventory.Item{}).Count(&count).Error
	return count, err
}

func (r *GormItemRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("quantity <= min_stock").
		Count(&count).Error
	return count, err
}

func (r *GormItemRepository) CountOutOfStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("quantity = 0").
		Count(&count).Error
	return count, err
}

func (r *GormItemRepository) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Select("SUM(quantity * unit_price)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *GormItemRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *GormItemRepository) CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("warehouse_id = ?", warehouseID).
		Count(&count).Error
	return count, err
}

func (r *GormItemRepository) FindLowStock(ctx context.Context, limit int) ([]inventory.Item, error) {
	var items []inventory.Item
	err := r.db.WithContext(ctx).
		Where("quantity <= min_stock").
		Order("quantity ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormItemRepository) applyFilter(query *gorm.DB, filter inventory.ItemFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	switch filter.Stock {
	case "low":
		query = query.Where("quantity <= min_stock")
	case "out":
		query = query.Where("quantity = 0")
	}
	return query
}

var _ inventory.ItemRepository = (*GormItemRepository)(nil)
