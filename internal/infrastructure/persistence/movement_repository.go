package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// GormMovementRepository implements inventory.MovementRepository using gorm.
// Movement rows are append-only; there are no update or delete operations.
type GormMovementRepository struct {
	db *gorm.DB
}

func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

func (r *GormMovementRepository) CreateIncoming(ctx context.Context, movement *inventory.IncomingItem) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *GormMovementRepository) CreateOutgoing(ctx context.Context, movement *inventory.OutgoingItem) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *GormMovementRepository) FindIncoming(ctx context.Context, filter shared.Filter) (*shared.Paginated[inventory.IncomingItem], error) {
	return r.findIncoming(ctx, nil, filter)
}

func (r *GormMovementRepository) FindOutgoing(ctx context.Context, filter shared.Filter) (*shared.Paginated[inventory.OutgoingItem], error) {
	return r.findOutgoing(ctx, nil, filter)
}

func (r *GormMovementRepository) FindIncomingByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.IncomingItem], error) {
	return r.findIncoming(ctx, &itemID, filter)
}

func (r *GormMovementRepository) FindOutgoingByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.OutgoingItem], error) {
	return r.findOutgoing(ctx, &itemID, filter)
}

func (r *GormMovementRepository) findIncoming(ctx context.Context, itemID *uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.IncomingItem], error) {
	filter.Normalize()

	countQuery := r.db.WithContext(ctx).Model(&inventory.IncomingItem{})
	if itemID != nil {
		countQuery = countQuery.Where("item_id = ?", *itemID)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&inventory.IncomingItem{})
	if itemID != nil {
		query = query.Where("item_id = ?", *itemID)
	}
	var movements []inventory.IncomingItem
	err := query.Order("received_date DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(movements, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (r *GormMovementRepository) findOutgoing(ctx context.Context, itemID *uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.OutgoingItem], error) {
	filter.Normalize()

	countQuery := r.db.WithContext(ctx).Model(&inventory.OutgoingItem{})
	if itemID != nil {
		countQuery = countQuery.Where("item_id = ?", *itemID)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&inventory.OutgoingItem{})
	if itemID != nil {
		query = query.Where("item_id = ?", *itemID)
	}
	var movements []inventory.OutgoingItem
	err := query.Order("issued_date DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(movements, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (r *GormMovementRepository) CountIncoming(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&inventory.IncomingItem{}).Count(&count).Error
	return count, err
}

func (r *GormMovementRepository) CountOutgoing(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&inventory.OutgoingItem{}).Count(&count).Error
	return count, err
}

func (r *GormMovementRepository) RecentIncoming(ctx context.Context, limit int) ([]inventory.IncomingItem, error) {
	var movements []inventory.IncomingItem
	err := r.db.WithContext(ctx).
		Order("received_date DESC").
		Limit(limit).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *GormMovementRepository) RecentOutgoing(ctx context.Context, limit int) ([]inventory.OutgoingItem, error) {
	var movements []inventory.OutgoingItem
	err := r.db.WithContext(ctx).
		Order("issued_date DESC").
		Limit(limit).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
