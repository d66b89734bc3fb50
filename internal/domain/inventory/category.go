package inventory

import (
	"strings"
	"time"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Category groups items for filtering and reporting.
// Category names are unique across the system.
type Category struct {
	shared.BaseEntity
	Name        string `gorm:"size:100;not null;uniqueIndex"`
	Description string `gorm:"size:500"`

	// Association - loaded lazily
	Items []Item `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Description: description,
	}, nil
}

// Rename updates the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now()
	return nil
}

// SetDescription updates the category description
func (c *Category) SetDescription(description string) error {
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	c.Description = description
	c.UpdatedAt = time.Now()
	return nil
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) < 2 {
		return shared.NewDomainError("INVALID_NAME", "Category name must be at least 2 characters")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
