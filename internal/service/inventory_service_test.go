package service

import (
	"context"
	"testing"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventoryFixture struct {
	svc          *inventoryService
	productRepo  *fakeProductRepo
	movementRepo *fakeMovementRepo
	auditRepo    *fakeAuditRepo
}

func newInventoryFixture(t *testing.T) *inventoryFixture {
	t.Helper()
	f := &inventoryFixture{
		productRepo:  newFakeProductRepo(),
		movementRepo: &fakeMovementRepo{},
		auditRepo:    &fakeAuditRepo{},
	}
	f.svc = &inventoryService{
		productRepo:  f.productRepo,
		movementRepo: f.movementRepo,
		auditRepo:    f.auditRepo,
		txManager:    fakeTxManager{},
	}
	return f
}

func (f *inventoryFixture) addProduct(t *testing.T, name string) uuid.UUID {
	t.Helper()
	res, err := f.svc.CreateProduct(context.Background(), testActor(), ProductRequest{Name: name})
	require.NoError(t, err)
	id, err := uuid.Parse(res.ID)
	require.NoError(t, err)
	return id
}

func TestRecordMovementDerivesStockFromLedger(t *testing.T) {
	f := newInventoryFixture(t)
	ctx := context.Background()
	id := f.addProduct(t, "RAM 8GB")

	_, err := f.svc.RecordMovement(ctx, testActor(), MovementRequest{
		ProductID:    id.String(),
		MovementType: model.MovementIn,
		Quantity:     10,
	})
	require.NoError(t, err)

	_, err = f.svc.RecordMovement(ctx, testActor(), MovementRequest{
		ProductID:    id.String(),
		MovementType: model.MovementOut,
		Quantity:     4,
	})
	require.NoError(t, err)

	product, err := f.svc.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6, product.CurrentStock)
}

func TestRecordMovementRejectsOversizedOut(t *testing.T) {
	f := newInventoryFixture(t)
	ctx := context.Background()
	id := f.addProduct(t, "RAM 8GB")

	_, err := f.svc.RecordMovement(ctx, testActor(), MovementRequest{
		ProductID:    id.String(),
		MovementType: model.MovementIn,
		Quantity:     3,
	})
	require.NoError(t, err)

	_, err = f.svc.RecordMovement(ctx, testActor(), MovementRequest{
		ProductID:    id.String(),
		MovementType: model.MovementOut,
		Quantity:     5,
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The rejected movement must not reach the ledger.
	product, err := f.svc.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, product.CurrentStock)
}

func TestRecordMovementOnMissingProductFails(t *testing.T) {
	f := newInventoryFixture(t)

	_, err := f.svc.RecordMovement(context.Background(), testActor(), MovementRequest{
		ProductID:    uuid.NewString(),
		MovementType: model.MovementIn,
		Quantity:     1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}

func TestProductLifecycleWritesAuditTrail(t *testing.T) {
	f := newInventoryFixture(t)
	ctx := context.Background()
	id := f.addProduct(t, "SSD 512GB")

	_, err := f.svc.UpdateProduct(ctx, testActor(), id, ProductRequest{Name: "SSD 1TB"})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteProduct(ctx, testActor(), id))

	assert.Len(t, f.auditRepo.eventsFor(model.AuditActionAdd, "Product"), 1)
	changes := f.auditRepo.eventsFor(model.AuditActionChange, "Product")
	require.Len(t, changes, 1)
	assert.Equal(t, "SSD 1TB", changes[0].EntityRepr)
	deletes := f.auditRepo.eventsFor(model.AuditActionDelete, "Product")
	require.Len(t, deletes, 1)
	assert.Equal(t, "SSD 1TB", deletes[0].EntityRepr)
}

func TestRecordMovementAuditMessageNamesProduct(t *testing.T) {
	f := newInventoryFixture(t)
	ctx := context.Background()
	id := f.addProduct(t, "Keyboard")

	_, err := f.svc.RecordMovement(ctx, testActor(), MovementRequest{
		ProductID:    id.String(),
		MovementType: model.MovementIn,
		Quantity:     2,
	})
	require.NoError(t, err)

	events := f.auditRepo.eventsFor(model.AuditActionAdd, "InventoryMovement")
	require.Len(t, events, 1)
	assert.Equal(t, "IN 2 x Keyboard", events[0].EntityRepr)
}
