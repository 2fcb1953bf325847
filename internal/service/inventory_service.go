package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/repository"

	"github.com/google/uuid"
)

// ErrInsufficientStock is returned when an OUT movement would take a
// product's derived on-hand quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock for movement")

// --- DTOs ---

type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CurrentStock int    `json:"current_stock"`
}

type MovementRequest struct {
	ProductID    string `json:"product_id" binding:"required"`
	MovementType string `json:"movement_type" binding:"required,oneof=IN OUT"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	Note         string `json:"note"`
}

type MovementResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	MovementType string `json:"movement_type"`
	Quantity     int    `json:"quantity"`
	Note         string `json:"note"`
	CreatedAt    string `json:"created_at"`
}

// --- Interface ---

// InventoryService is the movement-ledger stock model: on-hand quantity is
// always derived from the movement history, never stored on the product.
type InventoryService interface {
	CreateProduct(ctx context.Context, actor Actor, req ProductRequest) (ProductResponse, error)
	UpdateProduct(ctx context.Context, actor Actor, id uuid.UUID, req ProductRequest) (ProductResponse, error)
	DeleteProduct(ctx context.Context, actor Actor, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (ProductResponse, error)
	ListProducts(ctx context.Context, page, limit int, search string) ([]ProductResponse, int64, error)

	RecordMovement(ctx context.Context, actor Actor, req MovementRequest) (MovementResponse, error)
	ListMovements(ctx context.Context, productID *uuid.UUID, page, limit int) ([]MovementResponse, int64, error)
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.InventoryMovementRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewInventoryService(
	productRepo repository.ProductRepository,
	movementRepo repository.InventoryMovementRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) InventoryService {
	return &inventoryService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

// --- Products ---

func (s *inventoryService) CreateProduct(ctx context.Context, actor Actor, req ProductRequest) (ProductResponse, error) {
	product := model.Product{Name: req.Name, Description: req.Description}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.productRepo.Create(txCtx, &product); createErr != nil {
			return fmt.Errorf("failed to create product: %w", createErr)
		}
		event := auditEvent(actor, model.AuditActionAdd, "Product", product.ID.String(), product.Name, "")
		return s.auditRepo.Record(txCtx, event)
	})
	if err != nil {
		return ProductResponse{}, err
	}

	return toProductResponse(product, 0), nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, actor Actor, id uuid.UUID, req ProductRequest) (ProductResponse, error) {
	var res ProductResponse
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, findErr := s.productRepo.FindByID(txCtx, id)
		if findErr != nil {
			return fmt.Errorf("product not found: %w", findErr)
		}

		product.Name = req.Name
		product.Description = req.Description
		if updateErr := s.productRepo.Update(txCtx, product); updateErr != nil {
			return fmt.Errorf("failed to update product: %w", updateErr)
		}

		stock, stockErr := s.movementRepo.CurrentStock(txCtx, id)
		if stockErr != nil {
			return fmt.Errorf("failed to derive stock: %w", stockErr)
		}

		event := auditEvent(actor, model.AuditActionChange, "Product", product.ID.String(), product.Name, "")
		if auditErr := s.auditRepo.Record(txCtx, event); auditErr != nil {
			return auditErr
		}

		res = toProductResponse(*product, stock)
		return nil
	})
	if err != nil {
		return ProductResponse{}, err
	}
	return res, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, actor Actor, id uuid.UUID) error {
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, findErr := s.productRepo.FindByID(txCtx, id)
		if findErr != nil {
			return fmt.Errorf("product not found: %w", findErr)
		}

		if deleteErr := s.productRepo.Delete(txCtx, id); deleteErr != nil {
			return fmt.Errorf("failed to delete product: %w", deleteErr)
		}

		event := auditEvent(actor, model.AuditActionDelete, "Product", id.String(), product.Name, "")
		return s.auditRepo.Record(txCtx, event)
	})
}

func (s *inventoryService) GetProduct(ctx context.Context, id uuid.UUID) (ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("product not found: %w", err)
	}
	stock, err := s.movementRepo.CurrentStock(ctx, id)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("failed to derive stock: %w", err)
	}
	return toProductResponse(*product, stock), nil
}

func (s *inventoryService) ListProducts(ctx context.Context, page, limit int, search string) ([]ProductResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	products, total, err := s.productRepo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		stock, stockErr := s.movementRepo.CurrentStock(ctx, p.ID)
		if stockErr != nil {
			return nil, 0, fmt.Errorf("failed to derive stock: %w", stockErr)
		}
		res = append(res, toProductResponse(p, stock))
	}
	return res, total, nil
}

// --- Movements ---

func (s *inventoryService) RecordMovement(ctx context.Context, actor Actor, req MovementRequest) (MovementResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return MovementResponse{}, fmt.Errorf("invalid product id: %w", err)
	}

	var movement model.InventoryMovement
	var product *model.Product

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		product, findErr = s.productRepo.FindByID(txCtx, productID)
		if findErr != nil {
			return fmt.Errorf("product not found: %w", findErr)
		}

		if req.MovementType == model.MovementOut {
			stock, stockErr := s.movementRepo.CurrentStock(txCtx, productID)
			if stockErr != nil {
				return fmt.Errorf("failed to derive stock: %w", stockErr)
			}
			if req.Quantity > stock {
				return ErrInsufficientStock
			}
		}

		movement = model.InventoryMovement{
			ProductID:    productID,
			MovementType: req.MovementType,
			Quantity:     req.Quantity,
			Note:         req.Note,
		}
		if createErr := s.movementRepo.Create(txCtx, &movement); createErr != nil {
			return fmt.Errorf("failed to create movement: %w", createErr)
		}

		message := fmt.Sprintf("%s %d x %s", req.MovementType, req.Quantity, product.Name)
		event := auditEvent(actor, model.AuditActionAdd, "InventoryMovement", movement.ID.String(), message, req.Note)
		return s.auditRepo.Record(txCtx, event)
	})
	if err != nil {
		return MovementResponse{}, err
	}

	movement.Product = product
	return toMovementResponse(movement), nil
}

func (s *inventoryService) ListMovements(ctx context.Context, productID *uuid.UUID, page, limit int) ([]MovementResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	movements, total, err := s.movementRepo.List(ctx, productID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch movements: %w", err)
	}

	res := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		res = append(res, toMovementResponse(m))
	}
	return res, total, nil
}

func toProductResponse(p model.Product, stock int) ProductResponse {
	return ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Description:  p.Description,
		CurrentStock: stock,
	}
}

func toMovementResponse(m model.InventoryMovement) MovementResponse {
	var productName string
	if m.Product != nil {
		productName = m.Product.Name
	}
	return MovementResponse{
		ID:           m.ID.String(),
		ProductID:    m.ProductID.String(),
		ProductName:  productName,
		MovementType: m.MovementType,
		Quantity:     m.Quantity,
		Note:         m.Note,
		CreatedAt:    m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
