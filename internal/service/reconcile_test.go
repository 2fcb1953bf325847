package service

import (
	"context"
	"testing"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockAdjustments(t *testing.T) {
	stockA := uuid.New()
	stockB := uuid.New()

	tests := []struct {
		name string
		old  *itemSnapshot
		new  *itemSnapshot
		want []stockAdjustment
	}{
		{
			name: "create deducts",
			old:  nil,
			new:  &itemSnapshot{StockID: &stockA, Quantity: 3},
			want: []stockAdjustment{{StockID: stockA, Delta: -3}},
		},
		{
			name: "create without stock ref is inert",
			old:  nil,
			new:  &itemSnapshot{StockID: nil, Quantity: 3},
			want: nil,
		},
		{
			name: "delete restores",
			old:  &itemSnapshot{StockID: &stockA, Quantity: 3},
			new:  nil,
			want: []stockAdjustment{{StockID: stockA, Delta: 3}},
		},
		{
			name: "quantity decrease returns difference",
			old:  &itemSnapshot{StockID: &stockA, Quantity: 7},
			new:  &itemSnapshot{StockID: &stockA, Quantity: 5},
			want: []stockAdjustment{{StockID: stockA, Delta: 2}},
		},
		{
			name: "quantity increase deducts difference",
			old:  &itemSnapshot{StockID: &stockA, Quantity: 5},
			new:  &itemSnapshot{StockID: &stockA, Quantity: 7},
			want: []stockAdjustment{{StockID: stockA, Delta: -2}},
		},
		{
			name: "unchanged quantity is a no-op",
			old:  &itemSnapshot{StockID: &stockA, Quantity: 5},
			new:  &itemSnapshot{StockID: &stockA, Quantity: 5},
			want: nil,
		},
		{
			name: "reference change restores old and deducts new",
			old:  &itemSnapshot{StockID: &stockA, Quantity: 4},
			new:  &itemSnapshot{StockID: &stockB, Quantity: 6},
			want: []stockAdjustment{
				{StockID: stockA, Delta: 4},
				{StockID: stockB, Delta: -6},
			},
		},
		{
			name: "reference removed restores old only",
			old:  &itemSnapshot{StockID: &stockA, Quantity: 4},
			new:  &itemSnapshot{StockID: nil, Quantity: 6},
			want: []stockAdjustment{{StockID: stockA, Delta: 4}},
		},
		{
			name: "reference added deducts new only",
			old:  &itemSnapshot{StockID: nil, Quantity: 4},
			new:  &itemSnapshot{StockID: &stockB, Quantity: 6},
			want: []stockAdjustment{{StockID: stockB, Delta: -6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stockAdjustments(tt.old, tt.new))
		})
	}
}

func TestReconcilerClampsAtZero(t *testing.T) {
	stockRepo := newFakeStockRepo()
	stock := &model.Stock{ProductName: "SSD 512GB", Quantity: 2}
	require.NoError(t, stockRepo.Create(context.Background(), stock))

	reconciler := NewStockReconciler(stockRepo)
	err := reconciler.Apply(context.Background(), nil, snapshotOf(&stock.ID, 5))
	require.NoError(t, err)

	assert.Equal(t, 0, stockRepo.quantity(stock.ID), "oversell floors at zero instead of going negative")
}

func TestReconcilerRoundTripRestoresQuantity(t *testing.T) {
	stockRepo := newFakeStockRepo()
	stock := &model.Stock{ProductName: "Keyboard", Quantity: 10}
	require.NoError(t, stockRepo.Create(context.Background(), stock))

	reconciler := NewStockReconciler(stockRepo)
	ctx := context.Background()

	require.NoError(t, reconciler.Apply(ctx, nil, snapshotOf(&stock.ID, 3)))
	assert.Equal(t, 7, stockRepo.quantity(stock.ID))

	require.NoError(t, reconciler.Apply(ctx, snapshotOf(&stock.ID, 3), snapshotOf(&stock.ID, 5)))
	assert.Equal(t, 5, stockRepo.quantity(stock.ID))

	require.NoError(t, reconciler.Apply(ctx, snapshotOf(&stock.ID, 5), nil))
	assert.Equal(t, 10, stockRepo.quantity(stock.ID))
}

func TestNextNumber(t *testing.T) {
	assert.Equal(t, "INV-2025-0001", nextNumber("INV-2025-", ""))
	assert.Equal(t, "INV-2025-0002", nextNumber("INV-2025-", "INV-2025-0001"))
	assert.Equal(t, "INV-2025-0100", nextNumber("INV-2025-", "INV-2025-0099"))
	assert.Equal(t, "INV-2025-10000", nextNumber("INV-2025-", "INV-2025-9999"))
	assert.Equal(t, "QTN-2026-0001", nextNumber("QTN-2026-", ""))
}

func TestYearPrefix(t *testing.T) {
	assert.Equal(t, "INV-2025-", yearPrefix("INV", 2025))
	assert.Equal(t, "QTN-2024-", yearPrefix("QTN", 2024))
}
