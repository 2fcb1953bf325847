package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/repository"
	"github.com/prathibhasolutions/prathibha-tech/pkg/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type QuotationItemRequest struct {
	Particulars string `json:"particulars" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	UnitPrice   string `json:"unit_price" binding:"required"`
	Discount    string `json:"discount"`
	GSTPercent  string `json:"gst_percent"`
}

type CreateQuotationRequest struct {
	Date            string                 `json:"date"`
	CustomerName    string                 `json:"customer_name" binding:"required"`
	CustomerPhone   string                 `json:"customer_phone"`
	CustomerAddress string                 `json:"customer_address"`
	Discount        string                 `json:"discount"`
	GSTPercent      string                 `json:"gst_percent"`
	Items           []QuotationItemRequest `json:"items" binding:"dive"`
}

type UpdateQuotationRequest struct {
	Date            *string `json:"date"`
	CustomerName    *string `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone"`
	CustomerAddress *string `json:"customer_address"`
	Discount        *string `json:"discount"`
	GSTPercent      *string `json:"gst_percent"`
}

type QuotationItemResponse struct {
	ID          string `json:"id"`
	Particulars string `json:"particulars"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Discount    string `json:"discount"`
	GSTPercent  string `json:"gst_percent"`
	Total       string `json:"total"`
}

type QuotationResponse struct {
	ID              string                  `json:"id"`
	QuotationNo     string                  `json:"quotation_no"`
	Date            string                  `json:"date"`
	CustomerName    string                  `json:"customer_name"`
	CustomerPhone   string                  `json:"customer_phone"`
	CustomerAddress string                  `json:"customer_address"`
	Discount        string                  `json:"discount"`
	GSTPercent      string                  `json:"gst_percent"`
	TotalAmount     string                  `json:"total_amount"`
	Items           []QuotationItemResponse `json:"items"`
	CreatedAt       string                  `json:"created_at"`
}

type QuotationFilter struct {
	QuotationNo string
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	Limit       int
}

// --- Interface ---

type QuotationService interface {
	CreateQuotation(ctx context.Context, actor Actor, req CreateQuotationRequest) (QuotationResponse, error)
	GetQuotation(ctx context.Context, id string) (QuotationResponse, error)
	ListQuotations(ctx context.Context, filter QuotationFilter) ([]QuotationResponse, int64, error)
	UpdateQuotation(ctx context.Context, actor Actor, id string, req UpdateQuotationRequest) (QuotationResponse, error)
	DeleteQuotation(ctx context.Context, actor Actor, id string) error

	AddItem(ctx context.Context, actor Actor, quotationID string, req QuotationItemRequest) (QuotationResponse, error)
	UpdateItem(ctx context.Context, actor Actor, quotationID, itemID string, req QuotationItemRequest) (QuotationResponse, error)
	DeleteItem(ctx context.Context, actor Actor, quotationID, itemID string) (QuotationResponse, error)
}

type quotationService struct {
	quotationRepo repository.QuotationRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
	now           func() time.Time
}

func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) QuotationService {
	return &quotationService{
		quotationRepo: quotationRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
		now:           time.Now,
	}
}

// --- Implementation ---

func (s *quotationService) CreateQuotation(ctx context.Context, actor Actor, req CreateQuotationRequest) (QuotationResponse, error) {
	date, err := parseDate(req.Date, s.now())
	if err != nil {
		return QuotationResponse{}, err
	}
	discount, err := parseAmount(req.Discount, "discount")
	if err != nil {
		return QuotationResponse{}, err
	}
	gst, err := parseAmount(req.GSTPercent, "gst_percent")
	if err != nil {
		return QuotationResponse{}, err
	}

	quotation := model.Quotation{
		Date:            date,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Discount:        discount,
		GSTPercent:      gst,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		quotationNo, numErr := s.assignQuotationNo(txCtx)
		if numErr != nil {
			return numErr
		}
		quotation.QuotationNo = quotationNo

		if createErr := s.quotationRepo.Create(txCtx, &quotation); createErr != nil {
			return fmt.Errorf("failed to create quotation: %w", createErr)
		}

		for _, itemReq := range req.Items {
			item := &model.QuotationItem{QuotationID: quotation.ID}
			if applyErr := applyQuotationItemRequest(item, itemReq); applyErr != nil {
				return applyErr
			}
			if itemErr := s.quotationRepo.CreateItem(txCtx, item); itemErr != nil {
				return fmt.Errorf("failed to create quotation item: %w", itemErr)
			}
		}

		if recErr := s.recomputeTotals(txCtx, &quotation); recErr != nil {
			return recErr
		}

		details, _ := json.Marshal(req)
		event := auditEvent(actor, model.AuditActionAdd, "Quotation", quotation.ID.String(), quotation.String(), string(details))
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return fmt.Errorf("failed to record audit event: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return QuotationResponse{}, err
	}

	return s.GetQuotation(ctx, quotation.ID.String())
}

func (s *quotationService) GetQuotation(ctx context.Context, id string) (QuotationResponse, error) {
	quotationID, err := uuid.Parse(id)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("invalid quotation id: %w", err)
	}

	quotation, err := s.quotationRepo.FindByIDWithItems(ctx, quotationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuotationResponse{}, errors.New("quotation not found")
		}
		return QuotationResponse{}, fmt.Errorf("database error: %w", err)
	}

	return toQuotationResponse(*quotation), nil
}

func (s *quotationService) ListQuotations(ctx context.Context, filter QuotationFilter) ([]QuotationResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	quotations, total, err := s.quotationRepo.List(ctx, repository.QuotationListFilter{
		QuotationNo: filter.QuotationNo,
		DateFrom:    filter.DateFrom,
		DateTo:      filter.DateTo,
		Page:        filter.Page,
		Limit:       filter.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch quotations: %w", err)
	}

	result := make([]QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		result = append(result, toQuotationResponse(q))
	}
	return result, total, nil
}

func (s *quotationService) UpdateQuotation(ctx context.Context, actor Actor, id string, req UpdateQuotationRequest) (QuotationResponse, error) {
	quotationID, err := uuid.Parse(id)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("invalid quotation id: %w", err)
	}

	quotation, err := s.quotationRepo.FindByID(ctx, quotationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuotationResponse{}, errors.New("quotation not found")
		}
		return QuotationResponse{}, fmt.Errorf("database error: %w", err)
	}

	if req.Date != nil {
		date, dateErr := parseDate(*req.Date, s.now())
		if dateErr != nil {
			return QuotationResponse{}, dateErr
		}
		quotation.Date = date
	}
	if req.CustomerName != nil {
		quotation.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		quotation.CustomerPhone = *req.CustomerPhone
	}
	if req.CustomerAddress != nil {
		quotation.CustomerAddress = *req.CustomerAddress
	}
	if req.Discount != nil {
		if quotation.Discount, err = parseAmount(*req.Discount, "discount"); err != nil {
			return QuotationResponse{}, err
		}
	}
	if req.GSTPercent != nil {
		if quotation.GSTPercent, err = parseAmount(*req.GSTPercent, "gst_percent"); err != nil {
			return QuotationResponse{}, err
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.quotationRepo.Update(txCtx, quotation); updateErr != nil {
			return fmt.Errorf("failed to update quotation: %w", updateErr)
		}
		if recErr := s.recomputeTotals(txCtx, quotation); recErr != nil {
			return recErr
		}

		details, _ := json.Marshal(req)
		event := auditEvent(actor, model.AuditActionChange, "Quotation", quotation.ID.String(), quotation.String(), string(details))
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return fmt.Errorf("failed to record audit event: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return QuotationResponse{}, err
	}

	return s.GetQuotation(ctx, id)
}

func (s *quotationService) DeleteQuotation(ctx context.Context, actor Actor, id string) error {
	quotationID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid quotation id: %w", err)
	}

	quotation, err := s.quotationRepo.FindByID(ctx, quotationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("quotation not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		event := auditEvent(actor, model.AuditActionDelete, "Quotation", quotation.ID.String(), quotation.String(), "")

		if delErr := s.quotationRepo.Delete(txCtx, quotationID); delErr != nil {
			return fmt.Errorf("failed to delete quotation: %w", delErr)
		}
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return fmt.Errorf("failed to record audit event: %w", auditErr)
		}
		return nil
	})
}

func (s *quotationService) AddItem(ctx context.Context, actor Actor, quotationID string, req QuotationItemRequest) (QuotationResponse, error) {
	return s.mutateItems(ctx, actor, quotationID, fmt.Sprintf("item added: %s", req.Particulars),
		func(txCtx context.Context, quotation *model.Quotation) error {
			item := &model.QuotationItem{QuotationID: quotation.ID}
			if err := applyQuotationItemRequest(item, req); err != nil {
				return err
			}
			if err := s.quotationRepo.CreateItem(txCtx, item); err != nil {
				return fmt.Errorf("failed to create quotation item: %w", err)
			}
			return nil
		})
}

func (s *quotationService) UpdateItem(ctx context.Context, actor Actor, quotationID, itemID string, req QuotationItemRequest) (QuotationResponse, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("invalid item id: %w", err)
	}

	return s.mutateItems(ctx, actor, quotationID, fmt.Sprintf("item changed: %s", req.Particulars),
		func(txCtx context.Context, quotation *model.Quotation) error {
			item, findErr := s.quotationRepo.FindItemByID(txCtx, id)
			if findErr != nil {
				return fmt.Errorf("quotation item not found: %w", findErr)
			}
			if item.QuotationID != quotation.ID {
				return errors.New("item does not belong to this quotation")
			}
			if applyErr := applyQuotationItemRequest(item, req); applyErr != nil {
				return applyErr
			}
			if saveErr := s.quotationRepo.UpdateItem(txCtx, item); saveErr != nil {
				return fmt.Errorf("failed to update quotation item: %w", saveErr)
			}
			return nil
		})
}

func (s *quotationService) DeleteItem(ctx context.Context, actor Actor, quotationID, itemID string) (QuotationResponse, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("invalid item id: %w", err)
	}

	return s.mutateItems(ctx, actor, quotationID, "item removed",
		func(txCtx context.Context, quotation *model.Quotation) error {
			item, findErr := s.quotationRepo.FindItemByID(txCtx, id)
			if findErr != nil {
				return fmt.Errorf("quotation item not found: %w", findErr)
			}
			if item.QuotationID != quotation.ID {
				return errors.New("item does not belong to this quotation")
			}
			if delErr := s.quotationRepo.DeleteItem(txCtx, id); delErr != nil {
				return fmt.Errorf("failed to delete quotation item: %w", delErr)
			}
			return nil
		})
}

func (s *quotationService) mutateItems(ctx context.Context, actor Actor, quotationID, message string, mutate func(context.Context, *model.Quotation) error) (QuotationResponse, error) {
	id, err := uuid.Parse(quotationID)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("invalid quotation id: %w", err)
	}

	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuotationResponse{}, errors.New("quotation not found")
		}
		return QuotationResponse{}, fmt.Errorf("database error: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if mutErr := mutate(txCtx, quotation); mutErr != nil {
			return mutErr
		}
		if recErr := s.recomputeTotals(txCtx, quotation); recErr != nil {
			return recErr
		}

		event := auditEvent(actor, model.AuditActionChange, "Quotation", quotation.ID.String(), quotation.String(), message)
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return fmt.Errorf("failed to record audit event: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return QuotationResponse{}, err
	}

	return s.GetQuotation(ctx, quotationID)
}

func (s *quotationService) recomputeTotals(ctx context.Context, quotation *model.Quotation) error {
	items, err := s.quotationRepo.ListItems(ctx, quotation.ID)
	if err != nil {
		return fmt.Errorf("failed to load quotation items: %w", err)
	}

	itemTotal := decimal.Zero
	for _, item := range items {
		itemTotal = itemTotal.Add(pricing.LineTotal(item.Quantity, item.UnitPrice, item.Discount, item.GSTPercent))
	}

	total := pricing.DocumentTotal(itemTotal, quotation.Discount, quotation.GSTPercent)
	if err := s.quotationRepo.UpdateTotals(ctx, quotation.ID, total); err != nil {
		return fmt.Errorf("failed to persist quotation totals: %w", err)
	}

	quotation.TotalAmount = total
	return nil
}

func (s *quotationService) assignQuotationNo(ctx context.Context) (string, error) {
	year := s.now().Year()
	if err := s.quotationRepo.LockYearSequence(ctx, year); err != nil {
		return "", fmt.Errorf("failed to lock quotation sequence: %w", err)
	}

	prefix := yearPrefix("QTN", year)
	last, err := s.quotationRepo.LastNumberWithPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to scan quotation numbers: %w", err)
	}
	return nextNumber(prefix, last), nil
}

func applyQuotationItemRequest(item *model.QuotationItem, req QuotationItemRequest) error {
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

func toQuotationResponse(q model.Quotation) QuotationResponse {
	items := make([]QuotationItemResponse, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, QuotationItemResponse{
			ID:          item.ID.String(),
			Particulars: item.Particulars,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Discount:    item.Discount.StringFixed(2),
			GSTPercent:  item.GSTPercent.StringFixed(2),
			Total:       pricing.LineTotal(item.Quantity, item.UnitPrice, item.Discount, item.GSTPercent).StringFixed(2),
		})
	}

	return QuotationResponse{
		ID:              q.ID.String(),
		QuotationNo:     q.QuotationNo,
		Date:            q.Date.Format("2006-01-02"),
		CustomerName:    q.CustomerName,
		CustomerPhone:   q.CustomerPhone,
		CustomerAddress: q.CustomerAddress,
		Discount:        q.Discount.StringFixed(2),
		GSTPercent:      q.GSTPercent.StringFixed(2),
		TotalAmount:     q.TotalAmount.StringFixed(2),
		Items:           items,
		CreatedAt:       q.CreatedAt.Format(time.RFC3339),
	}
}
