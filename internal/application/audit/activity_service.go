package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/audit"
	"github.com/stockroom/backend/internal/domain/shared"
)

// DefaultPageSize is the activity log page size
const DefaultPageSize = 50

// ActivityEntry represents one audit row in API responses
type ActivityEntry struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	Action    audit.Action `json:"action"`
	TableName string       `json:"table_name"`
	RecordID  uuid.UUID    `json:"record_id"`
	Details   string       `json:"details"`
	Timestamp time.Time    `json:"timestamp"`
}

// ListFilter narrows activity log listings
type ListFilter struct {
	// UserID is parsed from the query by the handler; gin's form binding
	// cannot decode *uuid.UUID.
	UserID    *uuid.UUID   `form:"-"`
	Action    audit.Action `form:"action" binding:"omitempty,oneof=CREATE UPDATE DELETE"`
	TableName string       `form:"table_name"`
	Page      int          `form:"page" binding:"omitempty,min=1"`
}

// ActivityService provides read access to the audit trail. Writing happens
// exclusively inside mutation transactions, so this service has no create
// operation.
type ActivityService struct {
	logs audit.ActivityLogRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(logs audit.ActivityLogRepository) *ActivityService {
	return &ActivityService{logs: logs}
}

// List returns audit entries newest first, 50 per page
func (s *ActivityService) List(ctx context.Context, filter ListFilter) ([]ActivityEntry, int64, error) {
	domainFilter := audit.LogFilter{
		Filter:    shared.Filter{Page: filter.Page, PageSize: DefaultPageSize},
		UserID:    filter.UserID,
		Action:    filter.Action,
		TableName: filter.TableName,
	}
	domainFilter.Normalize()
	domainFilter.PageSize = DefaultPageSize

	page, err := s.logs.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ActivityEntry, 0, len(page.Items))
	for _, entry := range page.Items {
		out = append(out, ActivityEntry{
			ID:        entry.ID,
			UserID:    entry.UserID,
			Action:    entry.Action,
			TableName: entry.TableName,
			RecordID:  entry.RecordID,
			Details:   entry.Details,
			Timestamp: entry.Timestamp,
		})
	}
	return out, page.Total, nil
}

// Recent returns the latest audit entries for the dashboard
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.logs.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]ActivityEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, ActivityEntry{
			ID:        entry.ID,
			UserID:    entry.UserID,
			Action:    entry.Action,
			TableName: entry.TableName,
			RecordID:  entry.RecordID,
			Details:   entry.Details,
			Timestamp: entry.Timestamp,
		})
	}
	return out, nil
}
