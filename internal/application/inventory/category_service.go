package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/audit"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// CategoryService handles category CRUD operations
type CategoryService struct {
	categories inventory.CategoryRepository
	items      inventory.ItemRepository
	scope      TransactionScope
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories inventory.CategoryRepository, items inventory.ItemRepository, scope TransactionScope) *CategoryService {
	return &CategoryService{categories: categories, items: items, scope: scope}
}

// Create creates a new category and audits the creation
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := inventory.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.Categories().ExistsByName(ctx, category.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Category name already exists. Please use a different name.")
		}
		if err := repos.Categories().Create(ctx, category); err != nil {
			return err
		}
		return appendLog(ctx, repos, userID, audit.ActionCreate, category.TableName(), category.ID,
			fmt.Sprintf("Added new category: %s", category.Name))
	})
	if err != nil {
		return nil, err
	}

	resp := NewCategoryResponse(category, 0)
	return &resp, nil
}

// Update renames a category and audits the old and new names
func (s *CategoryService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	var category *inventory.Category
	var itemCount int64

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		category, err = repos.Categories().FindByID(ctx, id)
		if err != nil {
			return err
		}

		exists, err := repos.Categories().ExistsByName(ctx, req.Name, category.ID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Category name already exists. Please use a different name.")
		}

		oldName := category.Name
		if err := category.Rename(req.Name); err != nil {
			return err
		}
		if err := category.SetDescription(req.Description); err != nil {
			return err
		}
		if err := repos.Categories().Update(ctx, category); err != nil {
			return err
		}
		if itemCount, err = repos.Items().CountByCategory(ctx, category.ID); err != nil {
			return err
		}
		return appendLog(ctx, repos, userID, audit.ActionUpdate, category.TableName(), category.ID,
			fmt.Sprintf("Updated category from %q to %q", oldName, category.Name))
	})
	if err != nil {
		return nil, err
	}

	resp := NewCategoryResponse(category, itemCount)
	return &resp, nil
}

// Delete removes a category. Deletion is blocked while items still reference it.
func (s *CategoryService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		category, err := repos.Categories().FindByID(ctx, id)
		if err != nil {
			return err
		}
		count, err := repos.Items().CountByCategory(ctx, category.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewDomainError("CONFLICT",
				fmt.Sprintf("Cannot delete category %q because it has %d items associated with it.", category.Name, count))
		}
		if err := repos.Categories().Delete(ctx, category.ID); err != nil {
			return err
		}
		return appendLog(ctx, repos, userID, audit.ActionDelete, category.TableName(), category.ID,
			fmt.Sprintf("Deleted category: %s", category.Name))
	})
}

// Get returns one category with its item count
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.items.CountByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	resp := NewCategoryResponse(category, count)
	return &resp, nil
}

// List returns categories with item counts
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, int64, error) {
	filter.Normalize()
	page, err := s.categories.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CategoryResponse, 0, len(page.Items))
	for i := range page.Items {
		count, err := s.items.CountByCategory(ctx, page.Items[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, NewCategoryResponse(&page.Items[i], count))
	}
	return out, page.Total, nil
}
