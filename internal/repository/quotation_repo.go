package repository

import (
	"context"
	"time"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const quotationSeqLockBase int64 = 0x51544E << 32 // "QTN"

type QuotationListFilter struct {
	QuotationNo string
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	Limit       int
}

type QuotationRepository interface {
	Create(ctx context.Context, quotation *model.Quotation) error
	Update(ctx context.Context, quotation *model.Quotation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error)
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Quotation, error)
	List(ctx context.Context, filter QuotationListFilter) ([]model.Quotation, int64, error)

	UpdateTotals(ctx context.Context, id uuid.UUID, total decimal.Decimal) error
	LockYearSequence(ctx context.Context, year int) error
	LastNumberWithPrefix(ctx context.Context, prefix string) (string, error)

	CreateItem(ctx context.Context, item *model.QuotationItem) error
	UpdateItem(ctx context.Context, item *model.QuotationItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	FindItemByID(ctx context.Context, id uuid.UUID) (*model.QuotationItem, error)
	ListItems(ctx context.Context, quotationID uuid.UUID) ([]model.QuotationItem, error)
}

type quotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *model.Quotation) error {
	return GetDB(ctx, r.db).Create(quotation).Error
}

func (r *quotationRepository) Update(ctx context.Context, quotation *model.Quotation) error {
	return GetDB(ctx, r.db).Omit("Items").Save(quotation).Error
}

func (r *quotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("quotation_id = ?", id).Delete(&model.QuotationItem{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Quotation{}).Error
}

func (r *quotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error) {
	var quotation model.Quotation
	if err := GetDB(ctx, r.db).First(&quotation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (r *quotationRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Quotation, error) {
	var quotation model.Quotation
	if err := GetDB(ctx, r.db).Preload("Items").First(&quotation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (r *quotationRepository) List(ctx context.Context, filter QuotationListFilter) ([]model.Quotation, int64, error) {
	var quotations []model.Quotation
	var total int64

	apply := func(q *gorm.DB) *gorm.DB {
		if filter.QuotationNo != "" {
			q = q.Where("quotation_no ILIKE ?", "%"+filter.QuotationNo+"%")
		}
		if filter.DateFrom != nil {
			q = q.Where("date >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			q = q.Where("date <= ?", *filter.DateTo)
		}
		return q
	}

	db := GetDB(ctx, r.db)
	if err := apply(db.Model(&model.Quotation{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := apply(db.Preload("Items")).
		Order("date desc, quotation_no desc").Offset(offset).Limit(filter.Limit).
		Find(&quotations).Error; err != nil {
		return nil, 0, err
	}

	return quotations, total, nil
}

func (r *quotationRepository) UpdateTotals(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.Quotation{}).
		Where("id = ?", id).
		Update("total_amount", total).Error
}

func (r *quotationRepository) LockYearSequence(ctx context.Context, year int) error {
	return GetDB(ctx, r.db).Exec("SELECT pg_advisory_xact_lock(?)", quotationSeqLockBase+int64(year)).Error
}

func (r *quotationRepository) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	var last []string
	err := GetDB(ctx, r.db).Model(&model.Quotation{}).
		Where("quotation_no LIKE ?", prefix+"%").
		Order("quotation_no desc").
		Limit(1).
		Pluck("quotation_no", &last).Error
	if err != nil {
		return "", err
	}
	if len(last) == 0 {
		return "", nil
	}
	return last[0], nil
}

func (r *quotationRepository) CreateItem(ctx context.Context, item *model.QuotationItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *quotationRepository) UpdateItem(ctx context.Context, item *model.QuotationItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *quotationRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.QuotationItem{}).Error
}

func (r *quotationRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*model.QuotationItem, error) {
	var item model.QuotationItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *quotationRepository) ListItems(ctx context.Context, quotationID uuid.UUID) ([]model.QuotationItem, error) {
	var items []model.QuotationItem
	if err := GetDB(ctx, r.db).
		Where("quotation_id = ?", quotationID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
