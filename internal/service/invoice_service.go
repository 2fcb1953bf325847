package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/repository"
	ws "github.com/prathibhasolutions/prathibha-tech/internal/websocket"
	"github.com/prathibhasolutions/prathibha-tech/pkg/pricing"
	"github.com/prathibhasolutions/prathibha-tech/pkg/render"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type InvoiceItemRequest struct {
	StockID     string `json:"stock_id"` // optional: link to a stock record
	Particulars string `json:"particulars" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	UnitPrice   string `json:"unit_price" binding:"required"`
	Discount    string `json:"discount"`
	GSTPercent  string `json:"gst_percent"`
}

type CreateInvoiceRequest struct {
	Date            string               `json:"date"` // YYYY-MM-DD, defaults to today
	CustomerName    string               `json:"customer_name" binding:"required"`
	CustomerPhone   string               `json:"customer_phone"`
	CustomerAddress string               `json:"customer_address"`
	Discount        string               `json:"discount"`
	GSTPercent      string               `json:"gst_percent"`
	AdvanceAmount   string               `json:"advance_amount"`
	PaymentStatus   string               `json:"payment_status" binding:"omitempty,oneof=UNPAID PAID"`
	Items           []InvoiceItemRequest `json:"items" binding:"dive"`
}

// UpdateInvoiceRequest edits document-level fields. Derived totals and the
// invoice number are not accepted here; totals are recomputed on save and
// the number is immutable once assigned.
type UpdateInvoiceRequest struct {
	Date            *string `json:"date"`
	CustomerName    *string `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone"`
	CustomerAddress *string `json:"customer_address"`
	Discount        *string `json:"discount"`
	GSTPercent      *string `json:"gst_percent"`
	AdvanceAmount   *string `json:"advance_amount"`
	PaymentStatus   *string `json:"payment_status" binding:"omitempty,oneof=UNPAID PAID"`
}

type InvoiceItemResponse struct {
	ID          string  `json:"id"`
	StockID     *string `json:"stock_id"`
	Particulars string  `json:"particulars"`
	Quantity    int     `json:"quantity"`
	UnitPrice   string  `json:"unit_price"`
	Discount    string  `json:"discount"`
	GSTPercent  string  `json:"gst_percent"`
	Total       string  `json:"total"`
}

type InvoiceResponse struct {
	ID              string                `json:"id"`
	InvoiceNo       string                `json:"invoice_no"`
	Date            string                `json:"date"`
	CustomerName    string                `json:"customer_name"`
	CustomerPhone   string                `json:"customer_phone"`
	CustomerAddress string                `json:"customer_address"`
	Discount        string                `json:"discount"`
	GSTPercent      string                `json:"gst_percent"`
	TotalAmount     string                `json:"total_amount"`
	AdvanceAmount   string                `json:"advance_amount"`
	Balance         string                `json:"balance"`
	PaymentStatus   string                `json:"payment_status"`
	AmountInWords   string                `json:"amount_in_words,omitempty"`
	PaymentQR       string                `json:"payment_qr,omitempty"`
	Items           []InvoiceItemResponse `json:"items"`
	CreatedAt       string                `json:"created_at"`
}

type InvoiceFilter struct {
	PaymentStatus string
	InvoiceNo     string
	DateFrom      *time.Time
	DateTo        *time.Time
	Page          int
	Limit         int
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, actor Actor, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]InvoiceResponse, int64, error)
	UpdateInvoice(ctx context.Context, actor Actor, id string, req UpdateInvoiceRequest) (InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, actor Actor, id string) error
	DeleteInvoices(ctx context.Context, actor Actor, ids []string) error

	AddItem(ctx context.Context, actor Actor, invoiceID string, req InvoiceItemRequest) (InvoiceResponse, error)
	UpdateItem(ctx context.Context, actor Actor, invoiceID, itemID string, req InvoiceItemRequest) (InvoiceResponse, error)
	DeleteItem(ctx context.Context, actor Actor, invoiceID, itemID string) (InvoiceResponse, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	financeRepo repository.FinanceRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	reconciler  *StockReconciler
	hub         *ws.Hub
	log         *logrus.Logger
	upi         render.UPIConfig
	now         func() time.Time
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	financeRepo repository.FinanceRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	reconciler *StockReconciler,
	hub *ws.Hub,
	log *logrus.Logger,
	upi render.UPIConfig,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		financeRepo: financeRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		reconciler:  reconciler,
		hub:         hub,
		log:         log,
		upi:         upi,
		now:         time.Now,
	}
}

// --- Implementation ---

func (s *invoiceService) CreateInvoice(ctx context.Context, actor Actor, req CreateInvoiceRequest) (InvoiceResponse, error) {
	date, err := parseDate(req.Date, s.now())
	if err != nil {
		return InvoiceResponse{}, err
	}

	discount, err := parseAmount(req.Discount, "discount")
	if err != nil {
		return InvoiceResponse{}, err
	}
	gst, err := parseAmount(req.GSTPercent, "gst_percent")
	if err != nil {
		return InvoiceResponse{}, err
	}
	advance, err := parseAmount(req.AdvanceAmount, "advance_amount")
	if err != nil {
		return InvoiceResponse{}, err
	}

	status := req.PaymentStatus
	if status == "" {
		status = model.PaymentStatusUnpaid
	}

	invoice := model.Invoice{
		Date:            date,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Discount:        discount,
		GSTPercent:      gst,
		AdvanceAmount:   advance,
		PaymentStatus:   status,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		invoiceNo, numErr := s.assignInvoiceNo(txCtx)
		if numErr != nil {
			return numErr
		}
		invoice.InvoiceNo = invoiceNo

		if createErr := s.invoiceRepo.Create(txCtx, &invoice); createErr != nil {
			return fmt.Errorf("failed to create invoice: %w", createErr)
		}

		for _, itemReq := range req.Items {
			if _, itemErr := s.createItem(txCtx, invoice.ID, itemReq); itemErr != nil {
				return itemErr
			}
		}

		if recErr := s.recomputeTotals(txCtx, &invoice); recErr != nil {
			return recErr
		}

		details, _ := json.Marshal(req)
		event := auditEvent(actor, model.AuditActionAdd, "Invoice", invoice.ID.String(), invoice.String(), string(details))
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return fmt.Errorf("failed to record audit event: %w", auditErr)
		}

		return s.maybeAutoPostPayment(txCtx, &invoice)
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	return s.GetInvoice(ctx, invoice.ID.String())
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByIDWithItems(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, errors.New("invoice not found")
		}
		return InvoiceResponse{}, fmt.Errorf("database error: %w", err)
	}

	resp := toInvoiceResponse(*invoice)
	resp.AmountInWords = render.AmountToWords(invoice.TotalAmount)
	if invoice.Balance.IsPositive() {
		resp.PaymentQR = render.PaymentQR(s.log, s.upi, invoice.Balance)
	}
	return resp, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	invoices, total, err := s.invoiceRepo.List(ctx, repository.InvoiceListFilter{
		PaymentStatus: filter.PaymentStatus,
		InvoiceNo:     filter.InvoiceNo,
		DateFrom:      filter.DateFrom,
		DateTo:        filter.DateTo,
		Page:          filter.Page,
		Limit:         filter.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	result := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, toInvoiceResponse(inv))
	}
	return result, total, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, actor Actor, id string, req UpdateInvoiceRequest) (InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, errors.New("invoice not found")
		}
		return InvoiceResponse{}, fmt.Errorf("database error: %w", err)
	}

	if req.Date != nil {
		date, dateErr := parseDate(*req.Date, s.now())
		if dateErr != nil {
			return InvoiceResponse{}, dateErr
		}
		invoice.Date = date
	}
	if req.CustomerName != nil {
		invoice.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		invoice.CustomerPhone = *req.CustomerPhone
	}
	if req.CustomerAddress != nil {
		invoice.CustomerAddress = *req.CustomerAddress
	}
	if req.Discount != nil {
		if invoice.Discount, err = parseAmount(*req.Discount, "discount"); err != nil {
			return InvoiceResponse{}, err
		}
	}
	if req.GSTPercent != nil {
		if invoice.GSTPercent, err = parseAmount(*req.GSTPercent, "gst_percent"); err != nil {
			return InvoiceResponse{}, err
		}
	}
	if req.AdvanceAmount != nil {
		if invoice.AdvanceAmount, err = parseAmount(*req.AdvanceAmount, "advance_amount"); err != nil {
			return InvoiceResponse{}, err
		}
	}
	if req.PaymentStatus != nil {
		invoice.PaymentStatus = *req.PaymentStatus
	}

	wasPaid := false
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.invoiceRepo.Update(txCtx, invoice); updateErr != nil {
			return fmt.Errorf("failed to update invoice: %w", updateErr)
		}
		if recErr := s.recomputeTotals(txCtx, invoice); recErr != nil {
			return recErr
		}

		details, _ := json.Marshal(req)
		event := auditEvent(actor, model.AuditActionChange, "Invoice", invoice.ID.String(), invoice.String(), string(details))
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return fmt.Errorf("failed to record audit event: %w", auditErr)
		}

		wasPaid = invoice.PaymentStatus == model.PaymentStatusPaid
		return s.maybeAutoPostPayment(txCtx, invoice)
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	if wasPaid && s.hub != nil {
		s.hub.BroadcastEvent("invoice.paid", map[string]interface{}{
			"invoice_no": invoice.InvoiceNo,
			"amount":     invoice.TotalAmount.StringFixed(2),
		})
	}

	return s.GetInvoice(ctx, id)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, actor Actor, id string) error {
	return s.DeleteInvoices(ctx, actor, []string{id})
}

// DeleteInvoices removes the given invoices in one transaction, returning
// each item's quantity to its stock and recording one audit event per
// invoice with the representation captured before removal.
func (s *invoiceService) DeleteInvoices(ctx context.Context, actor Actor, ids []string) error {
	invoiceIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("invalid invoice id %q: %w", id, err)
		}
		invoiceIDs = append(invoiceIDs, parsed)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, invoiceID := range invoiceIDs {
			invoice, err := s.invoiceRepo.FindByIDWithItems(txCtx, invoiceID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("invoice %s not found", invoiceID)
				}
				return fmt.Errorf("database error: %w", err)
			}

			// Capture the representation before the row disappears.
			event := auditEvent(actor, model.AuditActionDelete, "Invoice", invoice.ID.String(), invoice.String(), "")

			for _, item := range invoice.Items {
				if err := s.reconciler.Apply(txCtx, snapshotOf(item.StockID, item.Quantity), nil); err != nil {
					return err
				}
			}

			if err := s.invoiceRepo.Delete(txCtx, invoiceID); err != nil {
				return fmt.Errorf("failed to delete invoice: %w", err)
			}
			if err := s.auditRepo.Record(txCtx, event); err != nil {
				return fmt.Errorf("failed to record audit event: %w", err)
			}
		}
		return nil
	})
}

func (s *invoiceService) AddItem(ctx context.Context, actor Actor, invoiceID string, req InvoiceItemRequest) (InvoiceResponse, error) {
	return s.mutateItems(ctx, actor, invoiceID, fmt.Sprintf("item added: %s", req.Particulars),
		func(txCtx context.Context, invoice *model.Invoice) error {
			_, err := s.createItem(txCtx, invoice.ID, req)
			return err
		})
}

func (s *invoiceService) UpdateItem(ctx context.Context, actor Actor, invoiceID, itemID string, req InvoiceItemRequest) (InvoiceResponse, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid item id: %w", err)
	}

	return s.mutateItems(ctx, actor, invoiceID, fmt.Sprintf("item changed: %s", req.Particulars),
		func(txCtx context.Context, invoice *model.Invoice) error {
			item, findErr := s.invoiceRepo.FindItemByID(txCtx, id)
			if findErr != nil {
				return fmt.Errorf("invoice item not found: %w", findErr)
			}
			if item.InvoiceID != invoice.ID {
				return errors.New("item does not belong to this invoice")
			}

			before := snapshotOf(item.StockID, item.Quantity)
			if applyErr := applyItemRequest(item, req); applyErr != nil {
				return applyErr
			}
			if saveErr := s.invoiceRepo.UpdateItem(txCtx, item); saveErr != nil {
				return fmt.Errorf("failed to update invoice item: %w", saveErr)
			}
			return s.reconciler.Apply(txCtx, before, snapshotOf(item.StockID, item.Quantity))
		})
}

func (s *invoiceService) DeleteItem(ctx context.Context, actor Actor, invoiceID, itemID string) (InvoiceResponse, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid item id: %w", err)
	}

	return s.mutateItems(ctx, actor, invoiceID, "item removed",
		func(txCtx context.Context, invoice *model.Invoice) error {
			item, findErr := s.invoiceRepo.FindItemByID(txCtx, id)
			if findErr != nil {
				return fmt.Errorf("invoice item not found: %w", findErr)
			}
			if item.InvoiceID != invoice.ID {
				return errors.New("item does not belong to this invoice")
			}

			before := snapshotOf(item.StockID, item.Quantity)
			if delErr := s.invoiceRepo.DeleteItem(txCtx, id); delErr != nil {
				return fmt.Errorf("failed to delete invoice item: %w", delErr)
			}
			return s.reconciler.Apply(txCtx, before, nil)
		})
}

// mutateItems wraps an item mutation with the full reconciliation chain:
// mutation, document totals recompute, audit, conditional finance posting.
func (s *invoiceService) mutateItems(ctx context.Context, actor Actor, invoiceID, message string, mutate func(context.Context, *model.Invoice) error) (InvoiceResponse, error) {
	id, err := uuid.Parse(invoiceID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, errors.New("invoice not found")
		}
		return InvoiceResponse{}, fmt.Errorf("database error: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if mutErr := mutate(txCtx, invoice); mutErr != nil {
			return mutErr
		}
		if recErr := s.recomputeTotals(txCtx, invoice); recErr != nil {
			return recErr
		}

		event := auditEvent(actor, model.AuditActionChange, "Invoice", invoice.ID.String(), invoice.String(), message)
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return fmt.Errorf("failed to record audit event: %w", auditErr)
		}

		return s.maybeAutoPostPayment(txCtx, invoice)
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	return s.GetInvoice(ctx, invoiceID)
}

// createItem persists a new line item and deducts its quantity from the
// referenced stock.
func (s *invoiceService) createItem(ctx context.Context, invoiceID uuid.UUID, req InvoiceItemRequest) (*model.InvoiceItem, error) {
	item := &model.InvoiceItem{InvoiceID: invoiceID}
	if err := applyItemRequest(item, req); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create invoice item: %w", err)
	}
	if err := s.reconciler.Apply(ctx, nil, snapshotOf(item.StockID, item.Quantity)); err != nil {
		return nil, err
	}
	return item, nil
}

// recomputeTotals derives the document totals from the currently persisted
// items and writes only the derived columns, so the save path cannot recurse.
func (s *invoiceService) recomputeTotals(ctx context.Context, invoice *model.Invoice) error {
	items, err := s.invoiceRepo.ListItems(ctx, invoice.ID)
	if err != nil {
		return fmt.Errorf("failed to load invoice items: %w", err)
	}

	itemTotal := decimal.Zero
	for _, item := range items {
		itemTotal = itemTotal.Add(pricing.LineTotal(item.Quantity, item.UnitPrice, item.Discount, item.GSTPercent))
	}

	total := pricing.DocumentTotal(itemTotal, invoice.Discount, invoice.GSTPercent)
	balance := pricing.Balance(total, invoice.AdvanceAmount)

	if err := s.invoiceRepo.UpdateTotals(ctx, invoice.ID, total, balance); err != nil {
		return fmt.Errorf("failed to persist invoice totals: %w", err)
	}

	invoice.TotalAmount = total
	invoice.Balance = balance
	return nil
}

// maybeAutoPostPayment posts a single finance credit when an invoice is
// fully paid. The unique invoice_no column on finance entries is the
// idempotency guard; re-saving a paid invoice never posts twice.
func (s *invoiceService) maybeAutoPostPayment(ctx context.Context, invoice *model.Invoice) error {
	if invoice.PaymentStatus != model.PaymentStatusPaid || !invoice.TotalAmount.IsPositive() {
		return nil
	}

	exists, err := s.financeRepo.ExistsForInvoice(ctx, invoice.InvoiceNo)
	if err != nil {
		return fmt.Errorf("failed to check existing finance entry: %w", err)
	}
	if exists {
		return nil
	}

	invoiceNo := invoice.InvoiceNo
	entry := &model.FinanceEntry{
		Date:            s.now(),
		TransactionType: model.TxTypeCredit,
		Amount:          invoice.TotalAmount,
		Reason:          model.ReasonInvoicePayment,
		Description:     fmt.Sprintf("Payment received for invoice %s", invoiceNo),
		InvoiceNo:       &invoiceNo,
	}
	if err := s.financeRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to post finance credit: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"invoice_no": invoiceNo,
		"amount":     invoice.TotalAmount.StringFixed(2),
	}).Info("posted payment credit to finance ledger")
	return nil
}

// assignInvoiceNo picks the next year-scoped sequential number. The per-year
// advisory lock serializes concurrent creations so two invoices cannot race
// to the same sequence value.
func (s *invoiceService) assignInvoiceNo(ctx context.Context) (string, error) {
	year := s.now().Year()
	if err := s.invoiceRepo.LockYearSequence(ctx, year); err != nil {
		return "", fmt.Errorf("failed to lock invoice sequence: %w", err)
	}

	prefix := yearPrefix("INV", year)
	last, err := s.invoiceRepo.LastNumberWithPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to scan invoice numbers: %w", err)
	}
	return nextNumber(prefix, last), nil
}

// --- Helpers ---

func applyItemRequest(item *model.InvoiceItem, req InvoiceItemRequest) error {
	if req.StockID != "" {
		stockID, err := uuid.Parse(req.StockID)
		if err != nil {
			return fmt.Errorf("invalid stock_id: %w", err)
		}
		item.StockID = &stockID
	} else {
		item.StockID = nil
	}

	unitPrice, err := parseAmount(req.UnitPrice, "unit_price")
	if err != nil {
		return err
	}
	discount, err := parseAmount(req.Discount, "discount")
	if err != nil {
		return err
	}
	gst, err := parseAmount(req.GSTPercent, "gst_percent")
	if err != nil {
		return err
	}

	item.Particulars = req.Particulars
	item.Quantity = req.Quantity
	item.UnitPrice = unitPrice
	item.Discount = discount
	item.GSTPercent = gst
	return nil
}

func parseAmount(value, field string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", field, err)
	}
	return amount, nil
}

func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}
	return date, nil
}

func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		resp := InvoiceItemResponse{
			ID:          item.ID.String(),
			Particulars: item.Particulars,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Discount:    item.Discount.StringFixed(2),
			GSTPercent:  item.GSTPercent.StringFixed(2),
			Total:       pricing.LineTotal(item.Quantity, item.UnitPrice, item.Discount, item.GSTPercent).StringFixed(2),
		}
		if item.StockID != nil {
			idStr := item.StockID.String()
			resp.StockID = &idStr
		}
		items = append(items, resp)
	}

	return InvoiceResponse{
		ID:              inv.ID.String(),
		InvoiceNo:       inv.InvoiceNo,
		Date:            inv.Date.Format("2006-01-02"),
		CustomerName:    inv.CustomerName,
		CustomerPhone:   inv.CustomerPhone,
		CustomerAddress: inv.CustomerAddress,
		Discount:        inv.Discount.StringFixed(2),
		GSTPercent:      inv.GSTPercent.StringFixed(2),
		TotalAmount:     inv.TotalAmount.StringFixed(2),
		AdvanceAmount:   inv.AdvanceAmount.StringFixed(2),
		Balance:         inv.Balance.StringFixed(2),
		PaymentStatus:   inv.PaymentStatus,
		Items:           items,
		CreatedAt:       inv.CreatedAt.Format(time.RFC3339),
	}
}
