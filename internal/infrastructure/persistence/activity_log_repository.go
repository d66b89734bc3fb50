package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/audit"
	"github.com/stockroom/backend/internal/domain/shared"
)

// GormActivityLogRepository implements audit.ActivityLogRepository using
// gorm. The table is append-only; rows are never updated or deleted.
type GormActivityLogRepository struct {
	db *gorm.DB
}

func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

func (r *GormActivityLogRepository) Append(ctx context.Context, entry *audit.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormActivityLogRepository) FindAll(ctx context.Context, filter audit.LogFilter) (*shared.Paginated[audit.ActivityLog], error) {
	filter.Normalize()

	var total int64
	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&audit.ActivityLog{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var entries []audit.ActivityLog
	query := r.applyFilter(r.db.WithContext(ctx).Model(&audit.ActivityLog{}), filter)
	err := query.Order("timestamp DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(entries, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (r *GormActivityLogRepository) Recent(ctx context.Context, limit int) ([]audit.ActivityLog, error) {
	var entries []audit.ActivityLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormActivityLogRepository) applyFilter(query *gorm.DB, filter audit.LogFilter) *gorm.DB {
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.TableName != "" {
		query = query.Where("table_name = ?", filter.TableName)
	}
	return query
}

var _ audit.ActivityLogRepository = (*GormActivityLogRepository)(nil)
