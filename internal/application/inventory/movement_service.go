package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/audit"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// MovementService records stock movements. Each movement inserts an
// append-only row, adjusts the item's quantity and writes the audit entry in
// one database transaction, so the item quantity always equals its initial
// value plus all recorded receipts minus all recorded issues.
type MovementService struct {
	movements inventory.MovementRepository
	scope     TransactionScope
}

// NewMovementService creates a new MovementService
func NewMovementService(movements inventory.MovementRepository, scope TransactionScope) *MovementService {
	return &MovementService{movements: movements, scope: scope}
}

// RecordIncoming records a stock receipt and increments the item's quantity
func (s *MovementService) RecordIncoming(ctx context.Context, userID uuid.UUID, req RecordIncomingRequest) (*IncomingResponse, error) {
	var movement *inventory.IncomingItem

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.Items().FindByID(ctx, req.ItemID)
		if err != nil {
			return err
		}

		receivedDate := time.Now()
		if req.ReceivedDate != nil {
			receivedDate = *req.ReceivedDate
		}
		movement, err = inventory.NewIncomingItem(inventory.NewIncomingParams{
			ItemID:       item.ID,
			Quantity:     req.Quantity,
			UnitPrice:    req.UnitPrice,
			Supplier:     req.Supplier,
			BatchNumber:  req.BatchNumber,
			ExpiryDate:   req.ExpiryDate,
			ReceivedDate: receivedDate,
			Notes:        req.Notes,
			ReceivedBy:   userID,
		})
		if err != nil {
			return err
		}

		if err := repos.Movements().CreateIncoming(ctx, movement); err != nil {
			return err
		}
		if err := repos.Items().AdjustQuantity(ctx, item.ID, movement.Quantity); err != nil {
			return err
		}
		return appendLog(ctx, repos, userID, audit.ActionCreate, movement.TableName(), movement.ID,
			fmt.Sprintf("Received %d units of %s", movement.Quantity, item.Name))
	})
	if err != nil {
		return nil, err
	}

	resp := NewIncomingResponse(movement)
	return &resp, nil
}

// RecordOutgoing records a stock issue and decrements the item's quantity.
// The decrement is a conditional update, so two concurrent issues can never
// drive the quantity below zero: the loser gets an insufficient stock error
// and its transaction rolls back with no movement row and no audit entry.
func (s *MovementService) RecordOutgoing(ctx context.Context, userID uuid.UUID, req RecordOutgoingRequest) (*OutgoingResponse, error) {
	var movement *inventory.OutgoingItem

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.Items().FindByID(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if !item.CanFulfill(req.Quantity) {
			return shared.NewInsufficientStockError(item.Quantity, req.Quantity)
		}

		issuedDate := time.Now()
		if req.IssuedDate != nil {
			issuedDate = *req.IssuedDate
		}
		movement, err = inventory.NewOutgoingItem(inventory.NewOutgoingParams{
			ItemID:        item.ID,
			Quantity:      req.Quantity,
			Destination:   req.Destination,
			Purpose:       req.Purpose,
			RequestNumber: req.RequestNumber,
			IssuedDate:    issuedDate,
			Notes:         req.Notes,
			IssuedBy:      userID,
		})
		if err != nil {
			return err
		}

		if err := repos.Movements().CreateOutgoing(ctx, movement); err != nil {
			return err
		}
		if err := repos.Items().AdjustQuantity(ctx, item.ID, -movement.Quantity); err != nil {
			return err
		}
		return appendLog(ctx, repos, userID, audit.ActionCreate, movement.TableName(), movement.ID,
			fmt.Sprintf("Issued %d units of %s to %s", movement.Quantity, item.Name, movement.Destination))
	})
	if err != nil {
		return nil, err
	}

	resp := NewOutgoingResponse(movement)
	return &resp, nil
}

// ListIncoming returns stock receipts, newest first
func (s *MovementService) ListIncoming(ctx context.Context, itemID *uuid.UUID, filter shared.Filter) ([]IncomingResponse, int64, error) {
	filter.Normalize()

	var page *shared.Paginated[inventory.IncomingItem]
	var err error
	if itemID != nil {
		page, err = s.movements.FindIncomingByItem(ctx, *itemID, filter)
	} else {
		page, err = s.movements.FindIncoming(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}

	out := make([]IncomingResponse, 0, len(page.Items))
	for i := range page.Items {
		out = append(out, NewIncomingResponse(&page.Items[i]))
	}
	return out, page.Total, nil
}

// ListOutgoing returns stock issues, newest first
func (s *MovementService) ListOutgoing(ctx context.Context, itemID *uuid.UUID, filter shared.Filter) ([]OutgoingResponse, int64, error) {
	filter.Normalize()

	var page *shared.Paginated[inventory.OutgoingItem]
	var err error
	if itemID != nil {
		page, err = s.movements.FindOutgoingByItem(ctx, *itemID, filter)
	} else {
		page, err = s.movements.FindOutgoing(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}

	out := make([]OutgoingResponse, 0, len(page.Items))
	for i := range page.Items {
		out = append(out, NewOutgoingResponse(&page.Items[i]))
	}
	return out, page.Total, nil
}
