package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// IncomingItem is a stock receipt. Rows are append-only: corrections are made
// by recording a compensating movement, never by editing history.
type IncomingItem struct {
	shared.BaseEntity
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4)"`
	Supplier     string          `gorm:"size:200"`
	BatchNumber  string          `gorm:"size:100"`
	ExpiryDate   *time.Time
	ReceivedDate time.Time `gorm:"not null;index"`
	Notes        string    `gorm:"size:500"`
	ReceivedBy   uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (IncomingItem) TableName() string {
	return "incoming_items"
}

// OutgoingItem is a stock issue. Append-only, same as IncomingItem.
type OutgoingItem struct {
	shared.BaseEntity
	ItemID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity      int       `gorm:"not null"`
	Destination   string    `gorm:"size:200;not null"`
	Purpose       string    `gorm:"size:500"`
	RequestNumber string    `gorm:"size:100"`
	IssuedDate    time.Time `gorm:"not null;index"`
	Notes         string    `gorm:"size:500"`
	IssuedBy      uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (OutgoingItem) TableName() string {
	return "outgoing_items"
}

// NewIncomingParams carries the attributes for recording a stock receipt
type NewIncomingParams struct {
	ItemID       uuid.UUID
	Quantity     int
	UnitPrice    decimal.Decimal
	Supplier     string
	BatchNumber  string
	ExpiryDate   *time.Time
	ReceivedDate time.Time
	Notes        string
	ReceivedBy   uuid.UUID
}

// NewIncomingItem creates an incoming movement record
func NewIncomingItem(p NewIncomingParams) (*IncomingItem, error) {
	if p.ItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if p.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if p.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}
	if p.ReceivedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Receiving user cannot be empty")
	}

	receivedDate := p.ReceivedDate
	if receivedDate.IsZero() {
		receivedDate = time.Now()
	}

	return &IncomingItem{
		BaseEntity:   shared.NewBaseEntity(),
		ItemID:       p.ItemID,
		Quantity:     p.Quantity,
		UnitPrice:    p.UnitPrice,
		Supplier:     p.Supplier,
		BatchNumber:  p.BatchNumber,
		ExpiryDate:   p.ExpiryDate,
		ReceivedDate: receivedDate,
		Notes:        p.Notes,
		ReceivedBy:   p.ReceivedBy,
	}, nil
}

// NewOutgoingParams carries the attributes for recording a stock issue
type NewOutgoingParams struct {
	ItemID        uuid.UUID
	Quantity      int
	Destination   string
	Purpose       string
	RequestNumber string
	IssuedDate    time.Time
	Notes         string
	IssuedBy      uuid.UUID
}

// NewOutgoingItem creates an outgoing movement record
func NewOutgoingItem(p NewOutgoingParams) (*OutgoingItem, error) {
	if p.ItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if p.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	destination := strings.TrimSpace(p.Destination)
	if destination == "" {
		return nil, shared.NewDomainError("INVALID_DESTINATION", "Destination cannot be empty")
	}
	if len(destination) > 200 {
		return nil, shared.NewDomainError("INVALID_DESTINATION", "Destination cannot exceed 200 characters")
	}
	if p.IssuedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Issuing user cannot be empty")
	}

	issuedDate := p.IssuedDate
	if issuedDate.IsZero() {
		issuedDate = time.Now()
	}

	return &OutgoingItem{
		BaseEntity:    shared.NewBaseEntity(),
		ItemID:        p.ItemID,
		Quantity:      p.Quantity,
		Destination:   destination,
		Purpose:       p.Purpose,
		RequestNumber: p.RequestNumber,
		IssuedDate:    issuedDate,
		Notes:         p.Notes,
		IssuedBy:      p.IssuedBy,
	}, nil
}
