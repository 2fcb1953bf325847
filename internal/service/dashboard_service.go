package service

import (
	"context"
	"fmt"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/repository"
)

// --- DTOs ---

type UnpaidInvoiceSummary struct {
	ID           string `json:"id"`
	InvoiceNo    string `json:"invoice_no"`
	Date         string `json:"date"`
	CustomerName string `json:"customer_name"`
	TotalAmount  string `json:"total_amount"`
	Balance      string `json:"balance"`
}

type StockLevel struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type DashboardResponse struct {
	Balance        string                 `json:"balance"`
	TotalCredit    string                 `json:"total_credit"`
	TotalDebit     string                 `json:"total_debit"`
	UnpaidInvoices []UnpaidInvoiceSummary `json:"unpaid_invoices"`
	StockLevels    []StockLevel           `json:"stock_levels"`
	WarehouseStock []StockLevel           `json:"warehouse_stock"`
}

// --- Interface ---

// DashboardService composes the landing view from the other domains. Each
// section is fetched through the owning repository; nothing here is cached
// or denormalized.
type DashboardService interface {
	Overview(ctx context.Context) (DashboardResponse, error)
}

type dashboardService struct {
	financeRepo  repository.FinanceRepository
	invoiceRepo  repository.InvoiceRepository
	stockRepo    repository.StockRepository
	productRepo  repository.ProductRepository
	movementRepo repository.InventoryMovementRepository
}

func NewDashboardService(
	financeRepo repository.FinanceRepository,
	invoiceRepo repository.InvoiceRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.InventoryMovementRepository,
) DashboardService {
	return &dashboardService{
		financeRepo:  financeRepo,
		invoiceRepo:  invoiceRepo,
		stockRepo:    stockRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

const dashboardStockLimit = 200

func (s *dashboardService) Overview(ctx context.Context) (DashboardResponse, error) {
	credit, err := s.financeRepo.SumByType(ctx, model.TxTypeCredit)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to sum credits: %w", err)
	}
	debit, err := s.financeRepo.SumByType(ctx, model.TxTypeDebit)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to sum debits: %w", err)
	}

	unpaid, err := s.invoiceRepo.ListUnpaid(ctx)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to fetch unpaid invoices: %w", err)
	}
	unpaidSummaries := make([]UnpaidInvoiceSummary, 0, len(unpaid))
	for _, inv := range unpaid {
		unpaidSummaries = append(unpaidSummaries, UnpaidInvoiceSummary{
			ID:           inv.ID.String(),
			InvoiceNo:    inv.InvoiceNo,
			Date:         inv.Date.Format("2006-01-02"),
			CustomerName: inv.CustomerName,
			TotalAmount:  inv.TotalAmount.StringFixed(2),
			Balance:      inv.Balance.StringFixed(2),
		})
	}

	stocks, _, err := s.stockRepo.List(ctx, 1, dashboardStockLimit, "")
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to fetch stock: %w", err)
	}
	stockLevels := make([]StockLevel, 0, len(stocks))
	for _, st := range stocks {
		stockLevels = append(stockLevels, StockLevel{
			ID:          st.ID.String(),
			ProductName: st.ProductName,
			Quantity:    st.Quantity,
		})
	}

	products, _, err := s.productRepo.List(ctx, 1, dashboardStockLimit, "")
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to fetch products: %w", err)
	}
	warehouse := make([]StockLevel, 0, len(products))
	for _, p := range products {
		qty, stockErr := s.movementRepo.CurrentStock(ctx, p.ID)
		if stockErr != nil {
			return DashboardResponse{}, fmt.Errorf("failed to derive stock: %w", stockErr)
		}
		warehouse = append(warehouse, StockLevel{
			ID:          p.ID.String(),
			ProductName: p.Name,
			Quantity:    qty,
		})
	}

	return DashboardResponse{
		Balance:        credit.Sub(debit).StringFixed(2),
		TotalCredit:    credit.StringFixed(2),
		TotalDebit:     debit.StringFixed(2),
		UnpaidInvoices: unpaidSummaries,
		StockLevels:    stockLevels,
		WarehouseStock: warehouse,
	}, nil
}
