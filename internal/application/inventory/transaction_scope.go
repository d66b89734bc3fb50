package inventory

import (
	"context"

	"github.com/stockroom/backend/internal/domain/audit"
	"github.com/stockroom/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed or
// rolled back atomically. Every mutation and its audit entry go through a
// scope so the two can never diverge.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory and audit
// repositories within a transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// Items returns the item repository scoped to the current transaction
	Items() inventory.ItemRepository
	// Categories returns the category repository scoped to the current transaction
	Categories() inventory.CategoryRepository
	// Warehouses returns the warehouse repository scoped to the current transaction
	Warehouses() inventory.WarehouseRepository
	// Movements returns the movement repository scoped to the current transaction
	Movements() inventory.MovementRepository
	// ActivityLogs returns the audit log repository scoped to the current transaction
	ActivityLogs() audit.ActivityLogRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	items        inventory.ItemRepository
	categories   inventory.CategoryRepository
	warehouses   inventory.WarehouseRepository
	movements    inventory.MovementRepository
	activityLogs audit.ActivityLogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	items inventory.ItemRepository,
	categories inventory.CategoryRepository,
	warehouses inventory.WarehouseRepository,
	movements inventory.MovementRepository,
	activityLogs audit.ActivityLogRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		items:        items,
		categories:   categories,
		warehouses:   warehouses,
		movements:    movements,
		activityLogs: activityLogs,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Items returns the item repository.
func (s *NoOpTransactionScope) Items() inventory.ItemRepository { return s.items }

// Categories returns the category repository.
func (s *NoOpTransactionScope) Categories() inventory.CategoryRepository { return s.categories }

// Warehouses returns the warehouse repository.
func (s *NoOpTransactionScope) Warehouses() inventory.WarehouseRepository { return s.warehouses }

// Movements returns the movement repository.
func (s *NoOpTransactionScope) Movements() inventory.MovementRepository { return s.movements }

// ActivityLogs returns the audit log repository.
func (s *NoOpTransactionScope) ActivityLogs() audit.ActivityLogRepository { return s.activityLogs }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
