package inventory

import (
	"context"

	"github.com/stockroom/backend/internal/domain/inventory"
)

const (
	lowStockPreviewLimit = 10
	recentMovementLimit  = 5
)

// DashboardService aggregates the read-only statistics for the landing page
type DashboardService struct {
	items      inventory.ItemRepository
	categories inventory.CategoryRepository
	warehouses inventory.WarehouseRepository
	movements  inventory.MovementRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	items inventory.ItemRepository,
	categories inventory.CategoryRepository,
	warehouses inventory.WarehouseRepository,
	movements inventory.MovementRepository,
) *DashboardService {
	return &DashboardService{
		items:      items,
		categories: categories,
		warehouses: warehouses,
		movements:  movements,
	}
}

// Stats collects entity counts, stock alerts and the most recent movements
func (s *DashboardService) Stats(ctx context.Context) (*DashboardResponse, error) {
	resp := &DashboardResponse{}

	var err error
	if resp.TotalItems, err = s.items.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalCategories, err = s.categories.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalWarehouses, err = s.warehouses.Count(ctx); err != nil {
		return nil, err
	}
	if resp.LowStockItems, err = s.items.CountLowStock(ctx); err != nil {
		return nil, err
	}
	if resp.OutOfStockItems, err = s.items.CountOutOfStock(ctx); err != nil {
		return nil, err
	}
	if resp.IncomingCount, err = s.movements.CountIncoming(ctx); err != nil {
		return nil, err
	}
	if resp.OutgoingCount, err = s.movements.CountOutgoing(ctx); err != nil {
		return nil, err
	}
	if resp.TotalValue, err = s.items.TotalInventoryValue(ctx); err != nil {
		return nil, err
	}

	lowStock, err := s.items.FindLowStock(ctx, lowStockPreviewLimit)
	if err != nil {
		return nil, err
	}
	resp.LowStock = make([]ItemResponse, 0, len(lowStock))
	for i := range lowStock {
		resp.LowStock = append(resp.LowStock, NewItemResponse(&lowStock[i]))
	}

	incoming, err := s.movements.RecentIncoming(ctx, recentMovementLimit)
	if err != nil {
		return nil, err
	}
	resp.RecentIncoming = make([]IncomingResponse, 0, len(incoming))
	for i := range incoming {
		resp.RecentIncoming = append(resp.RecentIncoming, NewIncomingResponse(&incoming[i]))
	}

	outgoing, err := s.movements.RecentOutgoing(ctx, recentMovementLimit)
	if err != nil {
		return nil, err
	}
	resp.RecentOutgoing = make([]OutgoingResponse, 0, len(outgoing))
	for i := range outgoing {
		resp.RecentOutgoing = append(resp.RecentOutgoing, NewOutgoingResponse(&outgoing[i]))
	}

	return resp, nil
}
