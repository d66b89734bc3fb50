package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/audit"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// WarehouseService handles warehouse CRUD operations
type WarehouseService struct {
	warehouses inventory.WarehouseRepository
	items      inventory.ItemRepository
	scope      TransactionScope
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouses inventory.WarehouseRepository, items inventory.ItemRepository, scope TransactionScope) *WarehouseService {
	return &WarehouseService{warehouses: warehouses, items: items, scope: scope}
}

// Create creates a new warehouse and audits the creation
func (s *WarehouseService) Create(ctx context.Context, userID uuid.UUID, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := inventory.NewWarehouse(req.Name, req.Location, req.Manager)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.Warehouses().ExistsByName(ctx, warehouse.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Warehouse name already exists. Please use a different name.")
		}
		if err := repos.Warehouses().Create(ctx, warehouse); err != nil {
			return err
		}
		return appendLog(ctx, repos, userID, audit.ActionCreate, warehouse.TableName(), warehouse.ID,
			fmt.Sprintf("Added new warehouse: %s", warehouse.Name))
	})
	if err != nil {
		return nil, err
	}

	resp := NewWarehouseResponse(warehouse, 0)
	return &resp, nil
}

// Update renames a warehouse and audits the old and new names
func (s *WarehouseService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	var warehouse *inventory.Warehouse
	var itemCount int64

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		warehouse, err = repos.Warehouses().FindByID(ctx, id)
		if err != nil {
			return err
		}

		exists, err := repos.Warehouses().ExistsByName(ctx, req.Name, warehouse.ID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Warehouse name already exists. Please use a different name.")
		}

		oldName := warehouse.Name
		if err := warehouse.Rename(req.Name); err != nil {
			return err
		}
		if err := warehouse.SetLocation(req.Location); err != nil {
			return err
		}
		if err := warehouse.SetManager(req.Manager); err != nil {
			return err
		}
		if err := repos.Warehouses().Update(ctx, warehouse); err != nil {
			return err
		}
		if itemCount, err = repos.Items().CountByWarehouse(ctx, warehouse.ID); err != nil {
			return err
		}
		return appendLog(ctx, repos, userID, audit.ActionUpdate, warehouse.TableName(), warehouse.ID,
			fmt.Sprintf("Updated warehouse from %q to %q", oldName, warehouse.Name))
	})
	if err != nil {
		return nil, err
	}

	resp := NewWarehouseResponse(warehouse, itemCount)
	return &resp, nil
}

// Delete removes a warehouse. Deletion is blocked while items still reference it.
func (s *WarehouseService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		warehouse, err := repos.Warehouses().FindByID(ctx, id)
		if err != nil {
			return err
		}
		count, err := repos.Items().CountByWarehouse(ctx, warehouse.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewDomainError("CONFLICT",
				fmt.Sprintf("Cannot delete warehouse %q because it has %d items associated with it.", warehouse.Name, count))
		}
		if err := repos.Warehouses().Delete(ctx, warehouse.ID); err != nil {
			return err
		}
		return appendLog(ctx, repos, userID, audit.ActionDelete, warehouse.TableName(), warehouse.ID,
			fmt.Sprintf("Deleted warehouse: %s", warehouse.Name))
	})
}

// Get returns one warehouse with its item count
func (s *WarehouseService) Get(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.items.CountByWarehouse(ctx, warehouse.ID)
	if err != nil {
		return nil, err
	}
	resp := NewWarehouseResponse(warehouse, count)
	return &resp, nil
}

// List returns warehouses with item counts
func (s *WarehouseService) List(ctx context.Context, filter shared.Filter) ([]WarehouseResponse, int64, error) {
	filter.Normalize()
	page, err := s.warehouses.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]WarehouseResponse, 0, len(page.Items))
	for i := range page.Items {
		count, err := s.items.CountByWarehouse(ctx, page.Items[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, NewWarehouseResponse(&page.Items[i], count))
	}
	return out, page.Total, nil
}
