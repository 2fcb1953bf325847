package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/repository"
)

var validReasons = map[string]bool{
	model.ReasonInvoicePayment: true,
	model.ReasonSales:          true,
	model.ReasonPurchase:       true,
	model.ReasonSalary:         true,
	model.ReasonRent:           true,
	model.ReasonMaintenance:    true,
	model.ReasonOther:          true,
}

// --- DTOs ---

type CreateFinanceEntryRequest struct {
	Date            string `json:"date"`
	TransactionType string `json:"transaction_type" binding:"required,oneof=CREDIT DEBIT"`
	Amount          string `json:"amount" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
	Description     string `json:"description"`
}

type FinanceEntryResponse struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	TransactionType string  `json:"transaction_type"`
	Amount          string  `json:"amount"`
	Reason          string  `json:"reason"`
	Description     string  `json:"description"`
	InvoiceNo       *string `json:"invoice_no"`
}

type FinanceFilter struct {
	TransactionType string
	Reason          string
	Search          string
	DateFrom        *time.Time
	DateTo          *time.Time
	Page            int
	Limit           int
}

type BalanceResponse struct {
	TotalCredit string `json:"total_credit"`
	TotalDebit  string `json:"total_debit"`
	Balance     string `json:"balance"`
}

// --- Interface ---

type FinanceService interface {
	CreateEntry(ctx context.Context, actor Actor, req CreateFinanceEntryRequest) (FinanceEntryResponse, error)
	ListEntries(ctx context.Context, filter FinanceFilter) ([]FinanceEntryResponse, int64, error)
	// Balance derives the running cash position; it is never stored.
	Balance(ctx context.Context) (BalanceResponse, error)
}

type financeService struct {
	financeRepo repository.FinanceRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	now         func() time.Time
}

func NewFinanceService(
	financeRepo repository.FinanceRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) FinanceService {
	return &financeService{
		financeRepo: financeRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		now:         time.Now,
	}
}

// --- Implementation ---

func (s *financeService) CreateEntry(ctx context.Context, actor Actor, req CreateFinanceEntryRequest) (FinanceEntryResponse, error) {
	if !validReasons[req.Reason] {
		return FinanceEntryResponse{}, fmt.Errorf("invalid reason: %s", req.Reason)
	}

	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		return FinanceEntryResponse{}, err
	}
	if !amount.IsPositive() {
		return FinanceEntryResponse{}, fmt.Errorf("amount must be positive")
	}

	date, err := parseDate(req.Date, s.now())
	if err != nil {
		return FinanceEntryResponse{}, err
	}

	entry := model.FinanceEntry{
		Date:            date,
		TransactionType: req.TransactionType,
		Amount:          amount,
		Reason:          req.Reason,
		Description:     req.Description,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.financeRepo.Create(txCtx, &entry); createErr != nil {
			return fmt.Errorf("failed to create finance entry: %w", createErr)
		}

		details, _ := json.Marshal(req)
		event := auditEvent(actor, model.AuditActionAdd, "FinanceEntry", entry.ID.String(), entry.String(), string(details))
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return fmt.Errorf("failed to record audit event: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return FinanceEntryResponse{}, err
	}

	return toFinanceEntryResponse(entry), nil
}

func (s *financeService) ListEntries(ctx context.Context, filter FinanceFilter) ([]FinanceEntryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	entries, total, err := s.financeRepo.List(ctx, repository.FinanceListFilter{
		TransactionType: filter.TransactionType,
		Reason:          filter.Reason,
		Search:          filter.Search,
		DateFrom:        filter.DateFrom,
		DateTo:          filter.DateTo,
		Page:            filter.Page,
		Limit:           filter.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch finance entries: %w", err)
	}

	res := make([]FinanceEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, toFinanceEntryResponse(e))
	}
	return res, total, nil
}

func (s *financeService) Balance(ctx context.Context) (BalanceResponse, error) {
	credit, err := s.financeRepo.SumByType(ctx, model.TxTypeCredit)
	if err != nil {
		return BalanceResponse{}, fmt.Errorf("failed to sum credits: %w", err)
	}
	debit, err := s.financeRepo.SumByType(ctx, model.TxTypeDebit)
	if err != nil {
		return BalanceResponse{}, fmt.Errorf("failed to sum debits: %w", err)
	}

	return BalanceResponse{
		TotalCredit: credit.StringFixed(2),
		TotalDebit:  debit.StringFixed(2),
		Balance:     credit.Sub(debit).StringFixed(2),
	}, nil
}

func toFinanceEntryResponse(e model.FinanceEntry) FinanceEntryResponse {
	return FinanceEntryResponse{
		ID:              e.ID.String(),
		Date:            e.Date.Format("2006-01-02"),
		TransactionType: e.TransactionType,
		Amount:          e.Amount.StringFixed(2),
		Reason:          e.Reason,
		Description:     e.Description,
		InvoiceNo:       e.InvoiceNo,
	}
}
