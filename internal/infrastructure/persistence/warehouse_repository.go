package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// GormWarehouseRepository implements inventory.WarehouseRepository using gorm.
type GormWarehouseRepository struct {
	db *gorm.DB
}

func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

func (r *GormWarehouseRepository) Create(ctx context.Context, warehouse *inventory.Warehouse) error {
	return r.db.WithContext(ctx).Create(warehouse).Error
}

func (r *GormWarehouseRepository) Update(ctx context.Context, warehouse *inventory.Warehouse) error {
	return r.db.WithContext(ctx).Save(warehouse).Error
}

func (r *GormWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Warehouse{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	var warehouse inventory.Warehouse
	err := r.db.WithContext(ctx).First(&warehouse, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[inventory.Warehouse], error) {
	filter.Normalize()

	var total int64
	countQuery := r.db.WithContext(ctx).Model(&inventory.Warehouse{})
	if filter.Search != "" {
		countQuery = countQuery.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var warehouses []inventory.Warehouse
	query := r.db.WithContext(ctx).Model(&inventory.Warehouse{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	query = query.Order("name ASC").Offset(filter.Offset()).Limit(filter.PageSize)
	if err := query.Find(&warehouses).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(warehouses, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (r *GormWarehouseRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Warehouse{}).Where("name = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormWarehouseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&inventory.Warehouse{}).Count(&count).Error
	return count, err
}

var _ inventory.WarehouseRepository = (*GormWarehouseRepository)(nil)
