package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/audit"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// ItemService handles item CRUD operations. Every mutation runs inside a
// transaction scope together with its audit entry.
type ItemService struct {
	items inventory.ItemRepository
	scope TransactionScope
}

// NewItemService creates a new ItemService
func NewItemService(items inventory.ItemRepository, scope TransactionScope) *ItemService {
	return &ItemService{items: items, scope: scope}
}

// Create creates a new item and audits the creation
func (s *ItemService) Create(ctx context.Context, userID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	item, err := inventory.NewItem(inventory.NewItemParams{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		MinStock:    req.MinStock,
		UnitPrice:   req.UnitPrice,
		Supplier:    req.Supplier,
		CategoryID:  req.CategoryID,
		WarehouseID: req.WarehouseID,
	})
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.Items().ExistsByCode(ctx, item.Code, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Item code already exists. Please use a different code.")
		}
		if _, err := repos.Categories().FindByID(ctx, item.CategoryID); err != nil {
			return err
		}
		if item.WarehouseID != nil {
			if _, err := repos.Warehouses().FindByID(ctx, *item.WarehouseID); err != nil {
				return err
			}
		}
		if err := repos.Items().Create(ctx, item); err != nil {
			return err
		}
		return appendLog(ctx, repos, userID, audit.ActionCreate, item.TableName(), item.ID,
			fmt.Sprintf("Added new item: %s", item.Name))
	})
	if err != nil {
		return nil, err
	}

	resp := NewItemResponse(item)
	return &resp, nil
}

// Update replaces an item's attributes and audits the old and new values
func (s *ItemService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	var item *inventory.Item

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		item, err = repos.Items().FindByID(ctx, id)
		if err != nil {
			return err
		}

		exists, err := repos.Items().ExistsByCode(ctx, req.Code, item.ID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Item code already exists. Please use a different code.")
		}
		if _, err := repos.Categories().FindByID(ctx, req.CategoryID); err != nil {
			return err
		}
		if req.WarehouseID != nil {
			if _, err := repos.Warehouses().FindByID(ctx, *req.WarehouseID); err != nil {
				return err
			}
		}

		oldValues := fmt.Sprintf("Code: %s, Name: %s, Quantity: %d", item.Code, item.Name, item.Quantity)

		if err := item.Update(inventory.NewItemParams{
			Code:        req.Code,
			Name:        req.Name,
			Description: req.Description,
			Quantity:    req.Quantity,
			MinStock:    req.MinStock,
			UnitPrice:   req.UnitPrice,
			Supplier:    req.Supplier,
			CategoryID:  req.CategoryID,
			WarehouseID: req.WarehouseID,
		}); err != nil {
			return err
		}
		if err := repos.Items().Update(ctx, item); err != nil {
			return err
		}
		return appendLog(ctx, repos, userID, audit.ActionUpdate, item.TableName(), item.ID,
			fmt.Sprintf("Updated item from (%s) to (%s, %s, %d)", oldValues, item.Code, item.Name, item.Quantity))
	})
	if err != nil {
		return nil, err
	}

	resp := NewItemResponse(item)
	return &resp, nil
}

// Delete removes an item and audits the deletion
func (s *ItemService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.Items().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Items().Delete(ctx, item.ID); err != nil {
			return err
		}
		return appendLog(ctx, repos, userID, audit.ActionDelete, item.TableName(), item.ID,
			fmt.Sprintf("Deleted item: Code: %s, Name: %s", item.Code, item.Name))
	})
}

// Get returns one item by id
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := NewItemResponse(item)
	return &resp, nil
}

// List returns items matching the filter
func (s *ItemService) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error) {
	domainFilter := inventory.ItemFilter{
		Filter:      shared.Filter{Page: filter.Page, PageSize: filter.PageSize, Search: filter.Search},
		CategoryID:  filter.CategoryID,
		WarehouseID: filter.WarehouseID,
		Stock:       filter.Stock,
	}
	domainFilter.Normalize()

	page, err := s.items.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]ItemResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewItemResponse(&page.Items[i]))
	}
	return items, page.Total, nil
}

// appendLog writes one audit row inside the current transaction. A failure
// to record the entry aborts the surrounding mutation.
func appendLog(ctx context.Context, repos TransactionalRepositories, userID uuid.UUID, action audit.Action, table string, recordID uuid.UUID, details string) error {
	entry, err := audit.NewActivityLog(userID, action, table, recordID, details)
	if err != nil {
		return err
	}
	return repos.ActivityLogs().Append(ctx, entry)
}
