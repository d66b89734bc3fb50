package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/audit"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIncoming(t *testing.T) {
	t.Run("increments stock and audits", func(t *testing.T) {
		store := newMemStore()
		item := store.addItem("LAP-001", "Laptop", 5)
		svc := NewMovementService(&fakeMovementRepo{store}, store.scope())
		userID := uuid.New()

		resp, err := svc.RecordIncoming(context.Background(), userID, RecordIncomingRequest{
			ItemID:   item.ID,
			Quantity: 3,
			Supplier: "Acme",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Quantity)
		assert.Equal(t, userID, resp.ReceivedBy)

		assert.Equal(t, 8, store.items[item.ID].Quantity)
		require.Len(t, store.logs, 1)
		assert.Equal(t, audit.ActionCreate, store.logs[0].Action)
		assert.Equal(t, "incoming_items", store.logs[0].TableName)
		assert.Equal(t, resp.ID, store.logs[0].RecordID)
		assert.Equal(t, "Received 3 units of Laptop", store.logs[0].Details)
	})

	t.Run("unknown item", func(t *testing.T) {
		store := newMemStore()
		svc := NewMovementService(&fakeMovementRepo{store}, store.scope())

		_, err := svc.RecordIncoming(context.Background(), uuid.New(), RecordIncomingRequest{
			ItemID:   uuid.New(),
			Quantity: 3,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Empty(t, store.incoming)
		assert.Empty(t, store.logs)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		store := newMemStore()
		item := store.addItem("LAP-001", "Laptop", 5)
		svc := NewMovementService(&fakeMovementRepo{store}, store.scope())

		_, err := svc.RecordIncoming(context.Background(), uuid.New(), RecordIncomingRequest{
			ItemID:   item.ID,
			Quantity: 0,
		})
		assert.Error(t, err)
		assert.Equal(t, 5, store.items[item.ID].Quantity)
	})
}

func TestRecordOutgoing(t *testing.T) {
	t.Run("decrements stock and audits", func(t *testing.T) {
		store := newMemStore()
		item := store.addItem("LAP-001", "Laptop", 5)
		svc := NewMovementService(&fakeMovementRepo{store}, store.scope())

		resp, err := svc.RecordOutgoing(context.Background(), uuid.New(), RecordOutgoingRequest{
			ItemID:      item.ID,
			Quantity:    2,
			Destination: "IT Department",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Quantity)

		assert.Equal(t, 3, store.items[item.ID].Quantity)
		require.Len(t, store.logs, 1)
		assert.Equal(t, "outgoing_items", store.logs[0].TableName)
		assert.Equal(t, "Issued 2 units of Laptop to IT Department", store.logs[0].Details)
	})

	t.Run("insufficient stock leaves everything unchanged", func(t *testing.T) {
		store := newMemStore()
		item := store.addItem("LAP-001", "Laptop", 5)
		svc := NewMovementService(&fakeMovementRepo{store}, store.scope())

		_, err := svc.RecordOutgoing(context.Background(), uuid.New(), RecordOutgoingRequest{
			ItemID:      item.ID,
			Quantity:    6,
			Destination: "IT Department",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, "Insufficient stock! Available: 5, Requested: 6", domainErr.Message)

		assert.Equal(t, 5, store.items[item.ID].Quantity)
		assert.Empty(t, store.outgoing)
		assert.Empty(t, store.logs)
	})

	t.Run("can drain stock to exactly zero", func(t *testing.T) {
		store := newMemStore()
		item := store.addItem("LAP-001", "Laptop", 5)
		svc := NewMovementService(&fakeMovementRepo{store}, store.scope())

		_, err := svc.RecordOutgoing(context.Background(), uuid.New(), RecordOutgoingRequest{
			ItemID:      item.ID,
			Quantity:    5,
			Destination: "Lab",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, store.items[item.ID].Quantity)
	})

	t.Run("missing destination rejected", func(t *testing.T) {
		store := newMemStore()
		item := store.addItem("LAP-001", "Laptop", 5)
		svc := NewMovementService(&fakeMovementRepo{store}, store.scope())

		_, err := svc.RecordOutgoing(context.Background(), uuid.New(), RecordOutgoingRequest{
			ItemID:   item.ID,
			Quantity: 1,
		})
		assert.Error(t, err)
		assert.Equal(t, 5, store.items[item.ID].Quantity)
		assert.Empty(t, store.logs)
	})
}

func TestQuantityConservation(t *testing.T) {
	store := newMemStore()
	item := store.addItem("LAP-001", "Laptop", 10)
	svc := NewMovementService(&fakeMovementRepo{store}, store.scope())
	ctx := context.Background()
	userID := uuid.New()

	incoming := []int{4, 7, 1}
	outgoing := []int{3, 9, 2}
	for _, qty := range incoming {
		_, err := svc.RecordIncoming(ctx, userID, RecordIncomingRequest{ItemID: item.ID, Quantity: qty})
		require.NoError(t, err)
	}
	for _, qty := range outgoing {
		_, err := svc.RecordOutgoing(ctx, userID, RecordOutgoingRequest{ItemID: item.ID, Quantity: qty, Destination: "Lab"})
		require.NoError(t, err)
	}

	// 10 + (4+7+1) - (3+9+2)
	assert.Equal(t, 8, store.items[item.ID].Quantity)
	assert.Len(t, store.incoming, 3)
	assert.Len(t, store.outgoing, 3)
	assert.Len(t, store.logs, 6)
}

func TestListMovements(t *testing.T) {
	store := newMemStore()
	itemA := store.addItem("LAP-001", "Laptop", 10)
	itemB := store.addItem("MON-001", "Monitor", 10)
	svc := NewMovementService(&fakeMovementRepo{store}, store.scope())
	ctx := context.Background()
	userID := uuid.New()

	for _, id := range []uuid.UUID{itemA.ID, itemA.ID, itemB.ID} {
		_, err := svc.RecordIncoming(ctx, userID, RecordIncomingRequest{ItemID: id, Quantity: 1})
		require.NoError(t, err)
	}

	all, total, err := svc.ListIncoming(ctx, nil, shared.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	forA, total, err := svc.ListIncoming(ctx, &itemA.ID, shared.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, forA, 2)
}
