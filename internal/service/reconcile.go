package service

import (
	"context"
	"fmt"

	"github.com/prathibhasolutions/prathibha-tech/internal/repository"

	"github.com/google/uuid"
)

// itemSnapshot captures the stock-relevant state of an invoice item at one
// point in its lifecycle. Reconciliation always works on an explicit
// (before, after) pair of snapshots; there is no shared pre-save state.
type itemSnapshot struct {
	StockID  *uuid.UUID
	Quantity int
}

// stockAdjustment is a signed quantity change against one stock record.
// Positive deltas return units to stock, negative deltas deduct.
type stockAdjustment struct {
	StockID uuid.UUID
	Delta   int
}

// stockAdjustments derives the stock deltas for an invoice item transition.
// old is nil on create, new is nil on delete. Items without a stock
// reference are inert.
func stockAdjustments(old, new *itemSnapshot) []stockAdjustment {
	switch {
	case old == nil && new == nil:
		return nil

	case old == nil:
		if new.StockID == nil {
			return nil
		}
		return []stockAdjustment{{StockID: *new.StockID, Delta: -new.Quantity}}

	case new == nil:
		if old.StockID == nil {
			return nil
		}
		return []stockAdjustment{{StockID: *old.StockID, Delta: old.Quantity}}
	}

	sameRef := old.StockID != nil && new.StockID != nil && *old.StockID == *new.StockID
	if sameRef {
		delta := old.Quantity - new.Quantity
		if delta == 0 {
			return nil
		}
		return []stockAdjustment{{StockID: *old.StockID, Delta: delta}}
	}

	// Reference changed (including to or from nil): restore the old stock in
	// full, then deduct the new quantity from the new stock.
	var adjustments []stockAdjustment
	if old.StockID != nil {
		adjustments = append(adjustments, stockAdjustment{StockID: *old.StockID, Delta: old.Quantity})
	}
	if new.StockID != nil {
		adjustments = append(adjustments, stockAdjustment{StockID: *new.StockID, Delta: -new.Quantity})
	}
	return adjustments
}

// StockReconciler keeps Stock quantities consistent with the invoice items
// that reference them. Deductions clamp at zero instead of failing: an
// oversell silently floors the stock rather than blocking the sale. The
// legacy movement model (InventoryService) applies the strict policy.
type StockReconciler struct {
	stockRepo repository.StockRepository
}

func NewStockReconciler(stockRepo repository.StockRepository) *StockReconciler {
	return &StockReconciler{stockRepo: stockRepo}
}

// Apply reconciles one item transition. It is expected to run inside the
// transaction that persists the item mutation.
func (r *StockReconciler) Apply(ctx context.Context, old, new *itemSnapshot) error {
	for _, adj := range stockAdjustments(old, new) {
		if err := r.stockRepo.AdjustQuantity(ctx, adj.StockID, adj.Delta); err != nil {
			return fmt.Errorf("failed to adjust stock %s by %d: %w", adj.StockID, adj.Delta, err)
		}
	}
	return nil
}

func snapshotOf(stockID *uuid.UUID, quantity int) *itemSnapshot {
	return &itemSnapshot{StockID: stockID, Quantity: quantity}
}
