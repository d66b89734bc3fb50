package inventory

import (
	"strings"
	"time"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Warehouse is a physical storage location items can be assigned to.
// Warehouse names are unique across the system.
type Warehouse struct {
	shared.BaseEntity
	Name     string `gorm:"size:100;not null;uniqueIndex"`
	Location string `gorm:"size:200"`
	Manager  string `gorm:"size:100"`

	// Association - loaded lazily
	Items []Item `gorm:"foreignKey:WarehouseID;references:ID"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(name, location, manager string) (*Warehouse, error) {
	if err := validateWarehouseName(name); err != nil {
		return nil, err
	}
	if len(location) > 200 {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location cannot exceed 200 characters")
	}
	if len(manager) > 100 {
		return nil, shared.NewDomainError("INVALID_MANAGER", "Manager name cannot exceed 100 characters")
	}

	return &Warehouse{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Location:   location,
		Manager:    manager,
	}, nil
}

// Rename updates the warehouse name
func (w *Warehouse) Rename(name string) error {
	if err := validateWarehouseName(name); err != nil {
		return err
	}
	w.Name = strings.TrimSpace(name)
	w.UpdatedAt = time.Now()
	return nil
}

// SetLocation updates the warehouse location
func (w *Warehouse) SetLocation(location string) error {
	if len(location) > 200 {
		return shared.NewDomainError("INVALID_LOCATION", "Location cannot exceed 200 characters")
	}
	w.Location = location
	w.UpdatedAt = time.Now()
	return nil
}

// SetManager updates the warehouse manager
func (w *Warehouse) SetManager(manager string) error {
	if len(manager) > 100 {
		return shared.NewDomainError("INVALID_MANAGER", "Manager name cannot exceed 100 characters")
	}
	w.Manager = manager
	w.UpdatedAt = time.Now()
	return nil
}

func validateWarehouseName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	if len(name) < 2 {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name must be at least 2 characters")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot exceed 100 characters")
	}
	return nil
}
