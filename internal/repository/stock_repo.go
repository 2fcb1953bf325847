package repository

import (
	"context"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockRepository interface {
	Create(ctx context.Context, stock *model.Stock) error
	Update(ctx context.Context, stock *model.Stock) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error)
	List(ctx context.Context, page, limit int, search string) ([]model.Stock, int64, error)
	// AdjustQuantity applies a signed delta to the on-hand quantity in a
	// single atomic UPDATE, clamping the result at zero.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, stock *model.Stock) error {
	return GetDB(ctx, r.db).Create(stock).Error
}

func (r *stockRepository) Update(ctx context.Context, stock *model.Stock) error {
	return GetDB(ctx, r.db).Save(stock).Error
}

func (r *stockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Stock{}).Error
}

func (r *stockRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error) {
	var stock model.Stock
	if err := GetDB(ctx, r.db).First(&stock, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepository) List(ctx context.Context, page, limit int, search string) ([]model.Stock, int64, error) {
	var stocks []model.Stock
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Stock{})
	if search != "" {
		db = db.Where("product_name ILIKE ? OR serial_number ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("product_name asc").Offset(offset).Limit(limit).Find(&stocks).Error; err != nil {
		return nil, 0, err
	}

	return stocks, total, nil
}

func (r *stockRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error {
	return GetDB(ctx, r.db).Model(&model.Stock{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("GREATEST(quantity + ?, 0)", delta)).Error
}
