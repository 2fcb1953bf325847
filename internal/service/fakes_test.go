package service

import (
	"context"
	"sort"
	"strings"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes. They reproduce only the behavior the services
// rely on: not-found errors, ordering of number scans, clamp-at-zero stock
// adjustments, and the unique invoice_no guard on finance entries.

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// --- Stock ---

type fakeStockRepo struct {
	stocks map[uuid.UUID]*model.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stocks: make(map[uuid.UUID]*model.Stock)}
}

func (r *fakeStockRepo) Create(ctx context.Context, stock *model.Stock) error {
	if stock.ID == uuid.Nil {
		stock.ID = uuid.New()
	}
	copied := *stock
	r.stocks[stock.ID] = &copied
	return nil
}

func (r *fakeStockRepo) Update(ctx context.Context, stock *model.Stock) error {
	if _, ok := r.stocks[stock.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *stock
	r.stocks[stock.ID] = &copied
	return nil
}

func (r *fakeStockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.stocks, id)
	return nil
}

func (r *fakeStockRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error) {
	stock, ok := r.stocks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *stock
	return &copied, nil
}

func (r *fakeStockRepo) List(ctx context.Context, page, limit int, search string) ([]model.Stock, int64, error) {
	var out []model.Stock
	for _, s := range r.stocks {
		if search == "" || strings.Contains(strings.ToLower(s.ProductName), strings.ToLower(search)) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, int64(len(out)), nil
}

func (r *fakeStockRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error {
	stock, ok := r.stocks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stock.Quantity += delta
	if stock.Quantity < 0 {
		stock.Quantity = 0
	}
	return nil
}

func (r *fakeStockRepo) quantity(id uuid.UUID) int {
	return r.stocks[id].Quantity
}

// --- Invoice ---

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*model.Invoice
	items    map[uuid.UUID]*model.InvoiceItem
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[uuid.UUID]*model.Invoice),
		items:    make(map[uuid.UUID]*model.InvoiceItem),
	}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *model.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	copied := *invoice
	copied.Items = nil
	r.invoices[invoice.ID] = &copied
	return nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *model.Invoice) error {
	if _, ok := r.invoices[invoice.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *invoice
	copied.Items = nil
	r.invoices[invoice.ID] = &copied
	return nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.invoices[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for itemID, item := range r.items {
		if item.InvoiceID == id {
			delete(r.items, itemID)
		}
	}
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *invoice
	return &copied, nil
}

func (r *fakeInvoiceRepo) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	invoice, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, _ := r.ListItems(ctx, id)
	invoice.Items = items
	return invoice, nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, filter repository.InvoiceListFilter) ([]model.Invoice, int64, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if filter.PaymentStatus != "" && inv.PaymentStatus != filter.PaymentStatus {
			continue
		}
		if filter.InvoiceNo != "" && !strings.Contains(inv.InvoiceNo, filter.InvoiceNo) {
			continue
		}
		out = append(out, *inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNo > out[j].InvoiceNo })
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) ListUnpaid(ctx context.Context) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if inv.PaymentStatus == model.PaymentStatusUnpaid {
			out = append(out, *inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].InvoiceNo > out[j].InvoiceNo
	})
	return out, nil
}

func (r *fakeInvoiceRepo) UpdateTotals(ctx context.Context, id uuid.UUID, total, balance decimal.Decimal) error {
	invoice, ok := r.invoices[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	invoice.TotalAmount = total
	invoice.Balance = balance
	return nil
}

func (r *fakeInvoiceRepo) LockYearSequence(ctx context.Context, year int) error { return nil }

func (r *fakeInvoiceRepo) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	last := ""
	for _, inv := range r.invoices {
		if strings.HasPrefix(inv.InvoiceNo, prefix) && inv.InvoiceNo > last {
			last = inv.InvoiceNo
		}
	}
	return last, nil
}

func (r *fakeInvoiceRepo) CreateItem(ctx context.Context, item *model.InvoiceItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeInvoiceRepo) UpdateItem(ctx context.Context, item *model.InvoiceItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeInvoiceRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeInvoiceRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*model.InvoiceItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeInvoiceRepo) ListItems(ctx context.Context, invoiceID uuid.UUID) ([]model.InvoiceItem, error) {
	var out []model.InvoiceItem
	for _, item := range r.items {
		if item.InvoiceID == invoiceID {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

// --- Quotation ---

type fakeQuotationRepo struct {
	quotations map[uuid.UUID]*model.Quotation
	items      map[uuid.UUID]*model.QuotationItem
}

func newFakeQuotationRepo() *fakeQuotationRepo {
	return &fakeQuotationRepo{
		quotations: make(map[uuid.UUID]*model.Quotation),
		items:      make(map[uuid.UUID]*model.QuotationItem),
	}
}

func (r *fakeQuotationRepo) Create(ctx context.Context, quotation *model.Quotation) error {
	if quotation.ID == uuid.Nil {
		quotation.ID = uuid.New()
	}
	copied := *quotation
	copied.Items = nil
	r.quotations[quotation.ID] = &copied
	return nil
}

func (r *fakeQuotationRepo) Update(ctx context.Context, quotation *model.Quotation) error {
	if _, ok := r.quotations[quotation.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *quotation
	copied.Items = nil
	r.quotations[quotation.ID] = &copied
	return nil
}

func (r *fakeQuotationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.quotations[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for itemID, item := range r.items {
		if item.QuotationID == id {
			delete(r.items, itemID)
		}
	}
	delete(r.quotations, id)
	return nil
}

func (r *fakeQuotationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error) {
	quotation, ok := r.quotations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *quotation
	return &copied, nil
}

func (r *fakeQuotationRepo) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Quotation, error) {
	quotation, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, _ := r.ListItems(ctx, id)
	quotation.Items = items
	return quotation, nil
}

func (r *fakeQuotationRepo) List(ctx context.Context, filter repository.QuotationListFilter) ([]model.Quotation, int64, error) {
	var out []model.Quotation
	for _, q := range r.quotations {
		if filter.QuotationNo != "" && !strings.Contains(q.QuotationNo, filter.QuotationNo) {
			continue
		}
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuotationNo > out[j].QuotationNo })
	return out, int64(len(out)), nil
}

func (r *fakeQuotationRepo) UpdateTotals(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	quotation, ok := r.quotations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	quotation.TotalAmount = total
	return nil
}

func (r *fakeQuotationRepo) LockYearSequence(ctx context.Context, year int) error { return nil }

func (r *fakeQuotationRepo) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	last := ""
	for _, q := range r.quotations {
		if strings.HasPrefix(q.QuotationNo, prefix) && q.QuotationNo > last {
			last = q.QuotationNo
		}
	}
	return last, nil
}

func (r *fakeQuotationRepo) CreateItem(ctx context.Context, item *model.QuotationItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeQuotationRepo) UpdateItem(ctx context.Context, item *model.QuotationItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeQuotationRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeQuotationRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*model.QuotationItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeQuotationRepo) ListItems(ctx context.Context, quotationID uuid.UUID) ([]model.QuotationItem, error) {
	var out []model.QuotationItem
	for _, item := range r.items {
		if item.QuotationID == quotationID {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

// --- Finance ---

type fakeFinanceRepo struct {
	entries []model.FinanceEntry
}

func (r *fakeFinanceRepo) Create(ctx context.Context, entry *model.FinanceEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.InvoiceNo != nil {
		for _, e := range r.entries {
			if e.InvoiceNo != nil && *e.InvoiceNo == *entry.InvoiceNo {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeFinanceRepo) List(ctx context.Context, filter repository.FinanceListFilter) ([]model.FinanceEntry, int64, error) {
	var out []model.FinanceEntry
	for _, e := range r.entries {
		if filter.TransactionType != "" && e.TransactionType != filter.TransactionType {
			continue
		}
		if filter.Reason != "" && e.Reason != filter.Reason {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Description), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeFinanceRepo) SumByType(ctx context.Context, txType string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.entries {
		if e.TransactionType == txType {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (r *fakeFinanceRepo) ExistsForInvoice(ctx context.Context, invoiceNo string) (bool, error) {
	for _, e := range r.entries {
		if e.InvoiceNo != nil && *e.InvoiceNo == invoiceNo {
			return true, nil
		}
	}
	return false, nil
}

// --- Audit ---

type fakeAuditRepo struct {
	events []model.AuditEvent
}

func (r *fakeAuditRepo) Record(ctx context.Context, event *model.AuditEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, filter repository.AuditListFilter) ([]model.AuditEvent, int64, error) {
	var out []model.AuditEvent
	for _, e := range r.events {
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.UserID != "" && (e.UserID == nil || e.UserID.String() != filter.UserID) {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAuditRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.events)), nil
}

func (r *fakeAuditRepo) eventsFor(action, entityType string) []model.AuditEvent {
	var out []model.AuditEvent
	for _, e := range r.events {
		if e.Action == action && e.EntityType == entityType {
			out = append(out, e)
		}
	}
	return out
}

// --- Legacy warehouse ---

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *model.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) List(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		if search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

type fakeMovementRepo struct {
	movements []model.InventoryMovement
}

func (r *fakeMovementRepo) Create(ctx context.Context, movement *model.InventoryMovement) error {
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *fakeMovementRepo) List(ctx context.Context, productID *uuid.UUID, page, limit int) ([]model.InventoryMovement, int64, error) {
	var out []model.InventoryMovement
	for _, m := range r.movements {
		if productID != nil && m.ProductID != *productID {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMovementRepo) CurrentStock(ctx context.Context, productID uuid.UUID) (int, error) {
	total := 0
	for _, m := range r.movements {
		if m.ProductID != productID {
			continue
		}
		if m.MovementType == model.MovementIn {
			total += m.Quantity
		} else {
			total -= m.Quantity
		}
	}
	return total, nil
}
