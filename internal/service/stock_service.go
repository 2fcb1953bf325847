package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/repository"
	ws "github.com/prathibhasolutions/prathibha-tech/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateStockRequest struct {
	ProductName  string `json:"product_name" binding:"required"`
	SerialNumber string `json:"serial_number"`
	Quantity     int    `json:"quantity" binding:"min=0"`
	CostPrice    string `json:"cost_price"`
	SalePrice    string `json:"sale_price"`
}

type UpdateStockRequest struct {
	ProductName  *string `json:"product_name"`
	SerialNumber *string `json:"serial_number"`
	Quantity     *int    `json:"quantity" binding:"omitempty,min=0"`
	CostPrice    *string `json:"cost_price"`
	SalePrice    *string `json:"sale_price"`
}

type StockResponse struct {
	ID           string  `json:"id"`
	ProductName  string  `json:"product_name"`
	SerialNumber *string `json:"serial_number"`
	Quantity     int     `json:"quantity"`
	CostPrice    string  `json:"cost_price"`
	SalePrice    string  `json:"sale_price"`
}

// --- Interface ---

type StockService interface {
	CreateStock(ctx context.Context, actor Actor, req CreateStockRequest) (StockResponse, error)
	GetStock(ctx context.Context, id string) (StockResponse, error)
	ListStocks(ctx context.Context, page, limit int, search string) ([]StockResponse, int64, error)
	UpdateStock(ctx context.Context, actor Actor, id string, req UpdateStockRequest) (StockResponse, error)
	DeleteStock(ctx context.Context, actor Actor, id string) error
}

type stockService struct {
	stockRepo repository.StockRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	hub       *ws.Hub
}

func NewStockService(
	stockRepo repository.StockRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) StockService {
	return &stockService{
		stockRepo: stockRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		hub:       hub,
	}
}

// --- Implementation ---

func (s *stockService) CreateStock(ctx context.Context, actor Actor, req CreateStockRequest) (StockResponse, error) {
	costPrice, err := parseAmount(req.CostPrice, "cost_price")
	if err != nil {
		return StockResponse{}, err
	}
	salePrice, err := parseAmount(req.SalePrice, "sale_price")
	if err != nil {
		return StockResponse{}, err
	}

	stock := model.Stock{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		CostPrice:   costPrice,
		SalePrice:   salePrice,
	}
	if req.SerialNumber != "" {
		stock.SerialNumber = &req.SerialNumber
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.stockRepo.Create(txCtx, &stock); createErr != nil {
			return fmt.Errorf("failed to create stock: %w", createErr)
		}

		details, _ := json.Marshal(req)
		event := auditEvent(actor, model.AuditActionAdd, "Stock", stock.ID.String(), stock.String(), string(details))
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return fmt.Errorf("failed to record audit event: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return StockResponse{}, err
	}

	s.broadcast(stock)
	return toStockResponse(stock), nil
}

func (s *stockService) GetStock(ctx context.Context, id string) (StockResponse, error) {
	stockID, err := uuid.Parse(id)
	if err != nil {
		return StockResponse{}, fmt.Errorf("invalid stock id: %w", err)
	}

	stock, err := s.stockRepo.FindByID(ctx, stockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StockResponse{}, errors.New("stock not found")
		}
		return StockResponse{}, fmt.Errorf("database error: %w", err)
	}
	return toStockResponse(*stock), nil
}

func (s *stockService) ListStocks(ctx context.Context, page, limit int, search string) ([]StockResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	stocks, total, err := s.stockRepo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, err
	}

	res := make([]StockResponse, 0, len(stocks))
	for _, st := range stocks {
		res = append(res, toStockResponse(st))
	}
	return res, total, nil
}

func (s *stockService) UpdateStock(ctx context.Context, actor Actor, id string, req UpdateStockRequest) (StockResponse, error) {
	stockID, err := uuid.Parse(id)
	if err != nil {
		return StockResponse{}, fmt.Errorf("invalid stock id: %w", err)
	}

	stock, err := s.stockRepo.FindByID(ctx, stockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StockResponse{}, errors.New("stock not found")
		}
		return StockResponse{}, fmt.Errorf("database error: %w", err)
	}

	if req.ProductName != nil {
		stock.ProductName = *req.ProductName
	}
	if req.SerialNumber != nil {
		if *req.SerialNumber == "" {
			stock.SerialNumber = nil
		} else {
			stock.SerialNumber = req.SerialNumber
		}
	}
	if req.Quantity != nil {
		stock.Quantity = *req.Quantity
	}
	if req.CostPrice != nil {
		if stock.CostPrice, err = parseAmount(*req.CostPrice, "cost_price"); err != nil {
			return StockResponse{}, err
		}
	}
	if req.SalePrice != nil {
		if stock.SalePrice, err = parseAmount(*req.SalePrice, "sale_price"); err != nil {
			return StockResponse{}, err
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.stockRepo.Update(txCtx, stock); updateErr != nil {
			return fmt.Errorf("failed to update stock: %w", updateErr)
		}

		details, _ := json.Marshal(req)
		event := auditEvent(actor, model.AuditActionChange, "Stock", stock.ID.String(), stock.String(), string(details))
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return fmt.Errorf("failed to record audit event: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return StockResponse{}, err
	}

	s.broadcast(*stock)
	return toStockResponse(*stock), nil
}

func (s *stockService) DeleteStock(ctx context.Context, actor Actor, id string) error {
	stockID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid stock id: %w", err)
	}

	stock, err := s.stockRepo.FindByID(ctx, stockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("stock not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Invoice items referencing this stock keep their history; the foreign
	// key is nulled by the ON DELETE SET NULL constraint.
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		event := auditEvent(actor, model.AuditActionDelete, "Stock", stock.ID.String(), stock.String(), "")

		if delErr := s.stockRepo.Delete(txCtx, stockID); delErr != nil {
			return fmt.Errorf("failed to delete stock: %w", delErr)
		}
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return fmt.Errorf("failed to record audit event: %w", auditErr)
		}
		return nil
	})
}

func (s *stockService) broadcast(stock model.Stock) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastEvent("stock.adjusted", map[string]interface{}{
		"stock_id":     stock.ID.String(),
		"product_name": stock.ProductName,
		"quantity":     stock.Quantity,
	})
}

func toStockResponse(stock model.Stock) StockResponse {
	return StockResponse{
		ID:           stock.ID.String(),
		ProductName:  stock.ProductName,
		SerialNumber: stock.SerialNumber,
		Quantity:     stock.Quantity,
		CostPrice:    stock.CostPrice.StringFixed(2),
		SalePrice:    stock.SalePrice.StringFixed(2),
	}
}
