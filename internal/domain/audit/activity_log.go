package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
)

// Action classifies an audited mutation
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// ActivityLog is one append-only audit row. Rows are written in the same
// database transaction as the mutation they describe and are never updated
// or deleted afterwards.
type ActivityLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    Action    `gorm:"size:20;not null"`
	TableName string    `gorm:"size:50;not null;index"`
	RecordID  uuid.UUID `gorm:"type:uuid;not null"`
	Details   string    `gorm:"size:500"`
	Timestamp time.Time `gorm:"not null;index"`
}

// NewActivityLog creates an audit entry for a mutation
func NewActivityLog(userID uuid.UUID, action Action, tableName string, recordID uuid.UUID, details string) (*ActivityLog, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	switch action {
	case ActionCreate, ActionUpdate, ActionDelete:
	default:
		return nil, shared.NewDomainError("INVALID_ACTION", "Action must be CREATE, UPDATE or DELETE")
	}
	if tableName == "" {
		return nil, shared.NewDomainError("INVALID_TABLE", "Table name cannot be empty")
	}
	if recordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECORD", "Record ID cannot be empty")
	}
	if len(details) > 500 {
		details = details[:500]
	}

	return &ActivityLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		TableName: tableName,
		RecordID:  recordID,
		Details:   details,
		Timestamp: time.Now(),
	}, nil
}
