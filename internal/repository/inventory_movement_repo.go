package repository

import (
	"context"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *model.InventoryMovement) error
	List(ctx context.Context, productID *uuid.UUID, page, limit int) ([]model.InventoryMovement, int64, error)
	// CurrentStock derives on-hand quantity as SUM(IN) - SUM(OUT).
	CurrentStock(ctx context.Context, productID uuid.UUID) (int, error)
}

type inventoryMovementRepository struct {
	db *gorm.DB
}

func NewInventoryMovementRepository(db *gorm.DB) InventoryMovementRepository {
	return &inventoryMovementRepository{db: db}
}

func (r *inventoryMovementRepository) Create(ctx context.Context, movement *model.InventoryMovement) error {
	return GetDB(ctx, r.db).Create(movement).Error
}

func (r *inventoryMovementRepository) List(ctx context.Context, productID *uuid.UUID, page, limit int) ([]model.InventoryMovement, int64, error) {
	var movements []model.InventoryMovement
	var total int64

	db := GetDB(ctx, r.db).Model(&model.InventoryMovement{})
	if productID != nil {
		db = db.Where("product_id = ?", *productID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Product").Order("created_at desc").Offset(offset).Limit(limit).Find(&movements).Error; err != nil {
		return nil, 0, err
	}

	return movements, total, nil
}

func (r *inventoryMovementRepository) CurrentStock(ctx context.Context, productID uuid.UUID) (int, error) {
	var result struct {
		Stock int
	}
	err := GetDB(ctx, r.db).Model(&model.InventoryMovement{}).
		Select("COALESCE(SUM(CASE WHEN movement_type = 'IN' THEN quantity ELSE -quantity END), 0) as stock").
		Where("product_id = ?", productID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	return result.Stock, nil
}
