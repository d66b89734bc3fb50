package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
)

// LogFilter narrows activity log listings
type LogFilter struct {
	shared.Filter
	UserID    *uuid.UUID
	Action    Action
	TableName string
}

// ActivityLogRepository provides append-only access to the audit trail.
// Entries are listed newest first.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *ActivityLog) error
	FindAll(ctx context.Context, filter LogFilter) (*shared.Paginated[ActivityLog], error)
	Recent(ctx context.Context, limit int) ([]ActivityLog, error)
}
