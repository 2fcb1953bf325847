package service

import (
	"context"
	"testing"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockFixture struct {
	svc       *stockService
	stockRepo *fakeStockRepo
	auditRepo *fakeAuditRepo
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	f := &stockFixture{
		stockRepo: newFakeStockRepo(),
		auditRepo: &fakeAuditRepo{},
	}
	f.svc = &stockService{
		stockRepo: f.stockRepo,
		auditRepo: f.auditRepo,
		txManager: fakeTxManager{},
	}
	return f
}

func TestCreateStockNormalizesSerialNumber(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	withSerial, err := f.svc.CreateStock(ctx, testActor(), CreateStockRequest{
		ProductName:  "Printer",
		SerialNumber: "SN-1001",
		Quantity:     2,
		CostPrice:    "5000",
		SalePrice:    "6500",
	})
	require.NoError(t, err)
	require.NotNil(t, withSerial.SerialNumber)
	assert.Equal(t, "SN-1001", *withSerial.SerialNumber)

	withoutSerial, err := f.svc.CreateStock(ctx, testActor(), CreateStockRequest{
		ProductName: "Mouse",
		Quantity:    10,
	})
	require.NoError(t, err)
	assert.Nil(t, withoutSerial.SerialNumber)
	assert.Equal(t, "0.00", withoutSerial.CostPrice)
}

func TestUpdateStockClearsSerialWithEmptyString(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateStock(ctx, testActor(), CreateStockRequest{
		ProductName:  "Printer",
		SerialNumber: "SN-1001",
		Quantity:     2,
	})
	require.NoError(t, err)

	empty := ""
	updated, err := f.svc.UpdateStock(ctx, testActor(), created.ID, UpdateStockRequest{SerialNumber: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.SerialNumber)
}

func TestStockLifecycleWritesAuditTrail(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateStock(ctx, testActor(), CreateStockRequest{
		ProductName: "Printer",
		Quantity:    2,
		SalePrice:   "6500",
	})
	require.NoError(t, err)

	qty := 5
	_, err = f.svc.UpdateStock(ctx, testActor(), created.ID, UpdateStockRequest{Quantity: &qty})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteStock(ctx, testActor(), created.ID))

	adds := f.auditRepo.eventsFor(model.AuditActionAdd, "Stock")
	require.Len(t, adds, 1)
	assert.Equal(t, "admin", adds[0].Username)
	assert.Equal(t, "127.0.0.1", adds[0].RemoteAddr)
	assert.Len(t, f.auditRepo.eventsFor(model.AuditActionChange, "Stock"), 1)

	deletes := f.auditRepo.eventsFor(model.AuditActionDelete, "Stock")
	require.Len(t, deletes, 1)
	assert.Contains(t, deletes[0].EntityRepr, "Printer")

	_, err = f.svc.GetStock(ctx, created.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock not found")
}

func TestUpdateStockRejectsMalformedPrice(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateStock(ctx, testActor(), CreateStockRequest{ProductName: "Printer"})
	require.NoError(t, err)

	bad := "not-a-number"
	_, err = f.svc.UpdateStock(ctx, testActor(), created.ID, UpdateStockRequest{SalePrice: &bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sale_price")
}
