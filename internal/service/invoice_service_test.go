package service

import (
	"context"
	"testing"
	"time"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/pkg/render"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invoiceFixture struct {
	svc         *invoiceService
	invoiceRepo *fakeInvoiceRepo
	financeRepo *fakeFinanceRepo
	auditRepo   *fakeAuditRepo
	stockRepo   *fakeStockRepo
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	f := &invoiceFixture{
		invoiceRepo: newFakeInvoiceRepo(),
		financeRepo: &fakeFinanceRepo{},
		auditRepo:   &fakeAuditRepo{},
		stockRepo:   newFakeStockRepo(),
	}
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	f.svc = &invoiceService{
		invoiceRepo: f.invoiceRepo,
		financeRepo: f.financeRepo,
		auditRepo:   f.auditRepo,
		txManager:   fakeTxManager{},
		reconciler:  NewStockReconciler(f.stockRepo),
		log:         log,
		upi:         render.UPIConfig{},
		now:         func() time.Time { return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC) },
	}
	return f
}

func testActor() Actor {
	return Actor{Username: "admin", RemoteAddr: "127.0.0.1"}
}

func (f *invoiceFixture) addStock(t *testing.T, name string, quantity int) *model.Stock {
	t.Helper()
	stock := &model.Stock{ProductName: name, Quantity: quantity}
	require.NoError(t, f.stockRepo.Create(context.Background(), stock))
	return stock
}

func TestCreateInvoiceAssignsSequentialNumbers(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateInvoice(ctx, testActor(), CreateInvoiceRequest{CustomerName: "Ravi"})
	require.NoError(t, err)
	second, err := f.svc.CreateInvoice(ctx, testActor(), CreateInvoiceRequest{CustomerName: "Meena"})
	require.NoError(t, err)

	assert.Equal(t, "INV-2025-0001", first.InvoiceNo)
	assert.Equal(t, "INV-2025-0002", second.InvoiceNo)
}

func TestCreateInvoiceSequenceRestartsEachYear(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateInvoice(ctx, testActor(), CreateInvoiceRequest{CustomerName: "Ravi"})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC) }
	next, err := f.svc.CreateInvoice(ctx, testActor(), CreateInvoiceRequest{CustomerName: "Meena"})
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-0001", next.InvoiceNo)
}

func TestCreateInvoiceComputesTotals(t *testing.T) {
	f := newInvoiceFixture(t)

	inv, err := f.svc.CreateInvoice(context.Background(), testActor(), CreateInvoiceRequest{
		CustomerName:  "Ravi",
		AdvanceAmount: "121",
		Items: []InvoiceItemRequest{{
			Particulars: "Monitor 24 inch",
			Quantity:    2,
			UnitPrice:   "500",
			Discount:    "50",
			GSTPercent:  "18",
		}},
	})
	require.NoError(t, err)

	// (2*500 - 50) * 1.18 = 1121.00
	assert.Equal(t, "1121.00", inv.TotalAmount)
	assert.Equal(t, "1000.00", inv.Balance)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "1121.00", inv.Items[0].Total)
	assert.Equal(t, "Rupees One Thousand One Hundred Twenty One Only", inv.AmountInWords)
}

func TestCreateInvoiceOverpaymentGoesNegative(t *testing.T) {
	f := newInvoiceFixture(t)

	inv, err := f.svc.CreateInvoice(context.Background(), testActor(), CreateInvoiceRequest{
		CustomerName:  "Ravi",
		AdvanceAmount: "1500",
		Items: []InvoiceItemRequest{{
			Particulars: "Monitor 24 inch",
			Quantity:    2,
			UnitPrice:   "500",
			Discount:    "50",
			GSTPercent:  "18",
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "-379.00", inv.Balance, "overpayment keeps the negative balance")
}

func TestInvoiceItemLifecycleReconcilesStock(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	stock := f.addStock(t, "SSD 512GB", 10)

	inv, err := f.svc.CreateInvoice(ctx, testActor(), CreateInvoiceRequest{
		CustomerName: "Ravi",
		Items: []InvoiceItemRequest{{
			StockID:     stock.ID.String(),
			Particulars: "SSD 512GB",
			Quantity:    3,
			UnitPrice:   "4000",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, f.stockRepo.quantity(stock.ID))

	itemID := inv.Items[0].ID
	_, err = f.svc.UpdateItem(ctx, testActor(), inv.ID, itemID, InvoiceItemRequest{
		StockID:     stock.ID.String(),
		Particulars: "SSD 512GB",
		Quantity:    5,
		UnitPrice:   "4000",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, f.stockRepo.quantity(stock.ID))

	_, err = f.svc.DeleteItem(ctx, testActor(), inv.ID, itemID)
	require.NoError(t, err)
	assert.Equal(t, 10, f.stockRepo.quantity(stock.ID), "deleting the item restores the full quantity")
}

func TestInvoiceItemStockRefChange(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	stockA := f.addStock(t, "Mouse", 10)
	stockB := f.addStock(t, "Keyboard", 6)

	inv, err := f.svc.CreateInvoice(ctx, testActor(), CreateInvoiceRequest{
		CustomerName: "Ravi",
		Items: []InvoiceItemRequest{{
			StockID:     stockA.ID.String(),
			Particulars: "Mouse",
			Quantity:    4,
			UnitPrice:   "500",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, f.stockRepo.quantity(stockA.ID))

	_, err = f.svc.UpdateItem(ctx, testActor(), inv.ID, inv.Items[0].ID, InvoiceItemRequest{
		StockID:     stockB.ID.String(),
		Particulars: "Keyboard",
		Quantity:    2,
		UnitPrice:   "800",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, f.stockRepo.quantity(stockA.ID), "old stock restored in full")
	assert.Equal(t, 4, f.stockRepo.quantity(stockB.ID), "new stock deducted")
}

func TestPaidInvoicePostsFinanceCreditOnce(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateInvoice(ctx, testActor(), CreateInvoiceRequest{
		CustomerName:  "Ravi",
		PaymentStatus: model.PaymentStatusPaid,
		Items: []InvoiceItemRequest{{
			Particulars: "Monitor",
			Quantity:    1,
			UnitPrice:   "5000",
		}},
	})
	require.NoError(t, err)

	require.Len(t, f.financeRepo.entries, 1)
	entry := f.financeRepo.entries[0]
	assert.Equal(t, model.TxTypeCredit, entry.TransactionType)
	assert.Equal(t, model.ReasonInvoicePayment, entry.Reason)
	assert.Equal(t, "5000.00", entry.Amount.StringFixed(2))
	require.NotNil(t, entry.InvoiceNo)
	assert.Equal(t, inv.InvoiceNo, *entry.InvoiceNo)

	// Re-saving the paid invoice must not post a second credit.
	name := "Ravi Kumar"
	_, err = f.svc.UpdateInvoice(ctx, testActor(), inv.ID, UpdateInvoiceRequest{CustomerName: &name})
	require.NoError(t, err)
	assert.Len(t, f.financeRepo.entries, 1)
}

func TestUnpaidInvoicePostsNothing(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.svc.CreateInvoice(context.Background(), testActor(), CreateInvoiceRequest{
		CustomerName: "Ravi",
		Items: []InvoiceItemRequest{{
			Particulars: "Monitor",
			Quantity:    1,
			UnitPrice:   "5000",
		}},
	})
	require.NoError(t, err)

	assert.Empty(t, f.financeRepo.entries)
}

func TestMarkingInvoicePaidPostsCredit(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateInvoice(ctx, testActor(), CreateInvoiceRequest{
		CustomerName: "Ravi",
		Items: []InvoiceItemRequest{{
			Particulars: "Monitor",
			Quantity:    1,
			UnitPrice:   "5000",
		}},
	})
	require.NoError(t, err)

	paid := model.PaymentStatusPaid
	_, err = f.svc.UpdateInvoice(ctx, testActor(), inv.ID, UpdateInvoiceRequest{PaymentStatus: &paid})
	require.NoError(t, err)

	require.Len(t, f.financeRepo.entries, 1)
	assert.Equal(t, model.ReasonInvoicePayment, f.financeRepo.entries[0].Reason)
}

func TestBulkDeleteRecordsPerInvoiceAuditEvents(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	stock := f.addStock(t, "RAM 8GB", 20)

	var ids []string
	for _, customer := range []string{"Ravi", "Meena", "Anil"} {
		inv, err := f.svc.CreateInvoice(ctx, testActor(), CreateInvoiceRequest{
			CustomerName: customer,
			Items: []InvoiceItemRequest{{
				StockID:     stock.ID.String(),
				Particulars: "RAM 8GB",
				Quantity:    2,
				UnitPrice:   "1500",
			}},
		})
		require.NoError(t, err)
		ids = append(ids, inv.ID)
	}
	assert.Equal(t, 14, f.stockRepo.quantity(stock.ID))

	require.NoError(t, f.svc.DeleteInvoices(ctx, testActor(), ids))

	assert.Equal(t, 20, f.stockRepo.quantity(stock.ID), "all consumed stock returned")
	assert.Empty(t, f.invoiceRepo.invoices)

	deletes := f.auditRepo.eventsFor(model.AuditActionDelete, "Invoice")
	require.Len(t, deletes, 3)
	for _, event := range deletes {
		assert.Contains(t, event.EntityRepr, "INV-2025-", "representation captured before deletion")
	}
}

func TestBulkDeleteUnknownInvoiceFails(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateInvoice(ctx, testActor(), CreateInvoiceRequest{CustomerName: "Ravi"})
	require.NoError(t, err)

	err = f.svc.DeleteInvoices(ctx, testActor(), []string{inv.ID, "not-a-uuid"})
	require.Error(t, err)
}

func TestUpdateInvoiceRecomputesTotalsFromStoredItems(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateInvoice(ctx, testActor(), CreateInvoiceRequest{
		CustomerName: "Ravi",
		Items: []InvoiceItemRequest{{
			Particulars: "Monitor",
			Quantity:    1,
			UnitPrice:   "1000",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", inv.TotalAmount)

	discount := "100"
	gst := "18"
	updated, err := f.svc.UpdateInvoice(ctx, testActor(), inv.ID, UpdateInvoiceRequest{
		Discount:   &discount,
		GSTPercent: &gst,
	})
	require.NoError(t, err)

	// (1000 - 100) * 1.18 = 1062.00
	assert.Equal(t, "1062.00", updated.TotalAmount)
	assert.Equal(t, "1062.00", updated.Balance)
}

func TestCreateInvoiceRecordsAuditEvent(t *testing.T) {
	f := newInvoiceFixture(t)

	inv, err := f.svc.CreateInvoice(context.Background(), testActor(), CreateInvoiceRequest{CustomerName: "Ravi"})
	require.NoError(t, err)

	adds := f.auditRepo.eventsFor(model.AuditActionAdd, "Invoice")
	require.Len(t, adds, 1)
	assert.Equal(t, "admin", adds[0].Username)
	assert.Equal(t, "127.0.0.1", adds[0].RemoteAddr)
	require.NotNil(t, adds[0].EntityID)
	assert.Equal(t, inv.ID, *adds[0].EntityID)
}
