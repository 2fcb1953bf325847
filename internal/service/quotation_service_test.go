package service

import (
	"context"
	"testing"
	"time"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quotationFixture struct {
	svc           *quotationService
	quotationRepo *fakeQuotationRepo
	auditRepo     *fakeAuditRepo
}

func newQuotationFixture(t *testing.T) *quotationFixture {
	t.Helper()
	f := &quotationFixture{
		quotationRepo: newFakeQuotationRepo(),
		auditRepo:     &fakeAuditRepo{},
	}
	f.svc = &quotationService{
		quotationRepo: f.quotationRepo,
		auditRepo:     f.auditRepo,
		txManager:     fakeTxManager{},
		now:           func() time.Time { return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC) },
	}
	return f
}

func TestCreateQuotationAssignsOwnSequence(t *testing.T) {
	f := newQuotationFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateQuotation(ctx, testActor(), CreateQuotationRequest{CustomerName: "Ravi"})
	require.NoError(t, err)
	second, err := f.svc.CreateQuotation(ctx, testActor(), CreateQuotationRequest{CustomerName: "Meena"})
	require.NoError(t, err)

	assert.Equal(t, "QTN-2025-0001", first.QuotationNo)
	assert.Equal(t, "QTN-2025-0002", second.QuotationNo)
}

func TestQuotationTotalsMatchInvoiceMath(t *testing.T) {
	f := newQuotationFixture(t)

	q, err := f.svc.CreateQuotation(context.Background(), testActor(), CreateQuotationRequest{
		CustomerName: "Ravi",
		Items: []QuotationItemRequest{{
			Particulars: "Monitor 24 inch",
			Quantity:    2,
			UnitPrice:   "500",
			Discount:    "50",
			GSTPercent:  "18",
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "1121.00", q.TotalAmount)
	require.Len(t, q.Items, 1)
	assert.Equal(t, "1121.00", q.Items[0].Total)
}

func TestQuotationItemMutationsRecomputeTotal(t *testing.T) {
	f := newQuotationFixture(t)
	ctx := context.Background()

	q, err := f.svc.CreateQuotation(ctx, testActor(), CreateQuotationRequest{
		CustomerName: "Ravi",
		Items: []QuotationItemRequest{{
			Particulars: "Monitor",
			Quantity:    1,
			UnitPrice:   "1000",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", q.TotalAmount)

	q, err = f.svc.AddItem(ctx, testActor(), q.ID, QuotationItemRequest{
		Particulars: "HDMI cable",
		Quantity:    2,
		UnitPrice:   "250",
	})
	require.NoError(t, err)
	assert.Equal(t, "1500.00", q.TotalAmount)

	require.Len(t, q.Items, 2)
	var cableID string
	for _, item := range q.Items {
		if item.Particulars == "HDMI cable" {
			cableID = item.ID
		}
	}
	require.NotEmpty(t, cableID)

	q, err = f.svc.DeleteItem(ctx, testActor(), q.ID, cableID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", q.TotalAmount)
}

func TestDeleteQuotationCapturesReprBeforehand(t *testing.T) {
	f := newQuotationFixture(t)
	ctx := context.Background()

	q, err := f.svc.CreateQuotation(ctx, testActor(), CreateQuotationRequest{CustomerName: "Ravi"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteQuotation(ctx, testActor(), q.ID))

	deletes := f.auditRepo.eventsFor(model.AuditActionDelete, "Quotation")
	require.Len(t, deletes, 1)
	assert.Contains(t, deletes[0].EntityRepr, "QTN-2025-0001")
	assert.Empty(t, f.quotationRepo.quotations)
}

func TestQuotationItemFromAnotherQuotationRejected(t *testing.T) {
	f := newQuotationFixture(t)
	ctx := context.Background()

	q1, err := f.svc.CreateQuotation(ctx, testActor(), CreateQuotationRequest{
		CustomerName: "Ravi",
		Items:        []QuotationItemRequest{{Particulars: "Monitor", Quantity: 1, UnitPrice: "1000"}},
	})
	require.NoError(t, err)
	q2, err := f.svc.CreateQuotation(ctx, testActor(), CreateQuotationRequest{CustomerName: "Meena"})
	require.NoError(t, err)

	_, err = f.svc.UpdateItem(ctx, testActor(), q2.ID, q1.Items[0].ID, QuotationItemRequest{
		Particulars: "Monitor",
		Quantity:    1,
		UnitPrice:   "900",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong")
}
