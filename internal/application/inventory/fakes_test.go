package inventory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/audit"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// memStore backs all fake repositories so a NoOpTransactionScope over them
// behaves like one shared database.
type memStore struct {
	mu         sync.Mutex
	items      map[uuid.UUID]inventory.Item
	categories map[uuid.UUID]inventory.Category
	warehouses map[uuid.UUID]inventory.Warehouse
	incoming   []inventory.IncomingItem
	outgoing   []inventory.OutgoingItem
	logs       []audit.ActivityLog
}

func newMemStore() *memStore {
	return &memStore{
		items:      make(map[uuid.UUID]inventory.Item),
		categories: make(map[uuid.UUID]inventory.Category),
		warehouses: make(map[uuid.UUID]inventory.Warehouse),
	}
}

func (s *memStore) scope() *NoOpTransactionScope {
	return NewNoOpTransactionScope(
		&fakeItemRepo{s},
		&fakeCategoryRepo{s},
		&fakeWarehouseRepo{s},
		&fakeMovementRepo{s},
		&fakeActivityLogRepo{s},
	)
}

func (s *memStore) addCategory(name string) uuid.UUID {
	c, _ := inventory.NewCategory(name, "")
	s.categories[c.ID] = *c
	return c.ID
}

func (s *memStore) addWarehouse(name string) uuid.UUID {
	w, _ := inventory.NewWarehouse(name, "", "")
	s.warehouses[w.ID] = *w
	return w.ID
}

func (s *memStore) addItem(code, name string, quantity int) *inventory.Item {
	item := mustNewItem(code, name, quantity, s.addCategory("cat-"+code))
	s.items[item.ID] = *item
	return item
}

func mustNewItem(code, name string, quantity int, categoryID uuid.UUID) *inventory.Item {
	item, err := inventory.NewItem(inventory.NewItemParams{
		Code:       code,
		Name:       name,
		Quantity:   quantity,
		MinStock:   2,
		UnitPrice:  decimal.NewFromInt(10),
		CategoryID: categoryID,
	})
	if err != nil {
		panic(err)
	}
	return item
}

type fakeItemRepo struct{ s *memStore }

func (r *fakeItemRepo) Create(_ context.Context, item *inventory.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *inventory.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return shared.ErrNotFound
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &item, nil
}

func (r *fakeItemRepo) FindByCode(_ context.Context, code string) (*inventory.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.items {
		if item.Code == code {
			out := item
			return &out, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeItemRepo) FindAll(_ context.Context, filter inventory.ItemFilter) (*shared.Paginated[inventory.Item], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []inventory.Item
	for _, item := range r.s.items {
		if filter.Search != "" && !strings.Contains(item.Name, filter.Search) && !strings.Contains(item.Code, filter.Search) {
			continue
		}
		if filter.CategoryID != nil && item.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Stock == "low" && !item.IsLowStock() {
			continue
		}
		if filter.Stock == "out" && !item.IsOutOfStock() {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	p := shared.NewPaginated(out, int64(len(out)), filter.Page, filter.PageSize)
	return &p, nil
}

func (r *fakeItemRepo) ExistsByCode(_ context.Context, code string, excludeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.items {
		if item.Code == code && item.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeItemRepo) AdjustQuantity(_ context.Context, id uuid.UUID, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	if item.Quantity+delta < 0 {
		return shared.NewInsufficientStockError(item.Quantity, -delta)
	}
	item.Quantity += delta
	r.s.items[id] = item
	return nil
}

func (r *fakeItemRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.items)), nil
}

func (r *fakeItemRepo) CountLowStock(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, item := range r.s.items {
		if item.IsLowStock() {
			n++
		}
	}
	return n, nil
}

func (r *fakeItemRepo) CountOutOfStock(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, item := range r.s.items {
		if item.IsOutOfStock() {
			n++
		}
	}
	return n, nil
}

func (r *fakeItemRepo) TotalInventoryValue(_ context.Context) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, item := range r.s.items {
		total = total.Add(item.TotalValue())
	}
	return total, nil
}

func (r *fakeItemRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, item := range r.s.items {
		if item.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeItemRepo) CountByWarehouse(_ context.Context, warehouseID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, item := range r.s.items {
		if item.WarehouseID != nil && *item.WarehouseID == warehouseID {
			n++
		}
	}
	return n, nil
}

func (r *fakeItemRepo) FindLowStock(_ context.Context, limit int) ([]inventory.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []inventory.Item
	for _, item := range r.s.items {
		if item.IsLowStock() {
			out = append(out, item)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCategoryRepo struct{ s *memStore }

func (r *fakeCategoryRepo) Create(_ context.Context, c *inventory.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *inventory.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return shared.ErrNotFound
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context, filter shared.Filter) (*shared.Paginated[inventory.Category], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []inventory.Category
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	p := shared.NewPaginated(out, int64(len(out)), filter.Page, filter.PageSize)
	return &p, nil
}

func (r *fakeCategoryRepo) ExistsByName(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.categories)), nil
}

type fakeWarehouseRepo struct{ s *memStore }

func (r *fakeWarehouseRepo) Create(_ context.Context, w *inventory.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *fakeWarehouseRepo) Update(_ context.Context, w *inventory.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[w.ID]; !ok {
		return shared.ErrNotFound
	}
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.warehouses, id)
	return nil
}

func (r *fakeWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &w, nil
}

func (r *fakeWarehouseRepo) FindAll(_ context.Context, filter shared.Filter) (*shared.Paginated[inventory.Warehouse], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []inventory.Warehouse
	for _, w := range r.s.warehouses {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	p := shared.NewPaginated(out, int64(len(out)), filter.Page, filter.PageSize)
	return &p, nil
}

func (r *fakeWarehouseRepo) ExistsByName(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.warehouses {
		if w.Name == name && w.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeWarehouseRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.warehouses)), nil
}

type fakeMovementRepo struct{ s *memStore }

func (r *fakeMovementRepo) CreateIncoming(_ context.Context, m *inventory.IncomingItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.incoming = append(r.s.incoming, *m)
	return nil
}

func (r *fakeMovementRepo) CreateOutgoing(_ context.Context, m *inventory.OutgoingItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.outgoing = append(r.s.outgoing, *m)
	return nil
}

func (r *fakeMovementRepo) FindIncoming(_ context.Context, filter shared.Filter) (*shared.Paginated[inventory.IncomingItem], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]inventory.IncomingItem(nil), r.s.incoming...)
	p := shared.NewPaginated(out, int64(len(out)), filter.Page, filter.PageSize)
	return &p, nil
}

func (r *fakeMovementRepo) FindOutgoing(_ context.Context, filter shared.Filter) (*shared.Paginated[inventory.OutgoingItem], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]inventory.OutgoingItem(nil), r.s.outgoing...)
	p := shared.NewPaginated(out, int64(len(out)), filter.Page, filter.PageSize)
	return &p, nil
}

func (r *fakeMovementRepo) FindIncomingByItem(_ context.Context, itemID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.IncomingItem], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []inventory.IncomingItem
	for _, m := range r.s.incoming {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	p := shared.NewPaginated(out, int64(len(out)), filter.Page, filter.PageSize)
	return &p, nil
}

func (r *fakeMovementRepo) FindOutgoingByItem(_ context.Context, itemID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.OutgoingItem], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []inventory.OutgoingItem
	for _, m := range r.s.outgoing {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	p := shared.NewPaginated(out, int64(len(out)), filter.Page, filter.PageSize)
	return &p, nil
}

func (r *fakeMovementRepo) CountIncoming(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.incoming)), nil
}

func (r *fakeMovementRepo) CountOutgoing(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.outgoing)), nil
}

func (r *fakeMovementRepo) RecentIncoming(_ context.Context, limit int) ([]inventory.IncomingItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]inventory.IncomingItem(nil), r.s.incoming...)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *fakeMovementRepo) RecentOutgoing(_ context.Context, limit int) ([]inventory.OutgoingItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]inventory.OutgoingItem(nil), r.s.outgoing...)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type fakeActivityLogRepo struct{ s *memStore }

func (r *fakeActivityLogRepo) Append(_ context.Context, entry *audit.ActivityLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.logs = append(r.s.logs, *entry)
	return nil
}

func (r *fakeActivityLogRepo) FindAll(_ context.Context, filter audit.LogFilter) (*shared.Paginated[audit.ActivityLog], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]audit.ActivityLog(nil), r.s.logs...)
	p := shared.NewPaginated(out, int64(len(out)), filter.Page, filter.PageSize)
	return &p, nil
}

func (r *fakeActivityLogRepo) Recent(_ context.Context, limit int) ([]audit.ActivityLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]audit.ActivityLog(nil), r.s.logs...)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}
