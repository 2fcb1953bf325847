package repository

import (
	"context"
	"time"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FinanceListFilter struct {
	TransactionType string // CREDIT, DEBIT or empty for all
	Reason          string
	Search          string // text containment on description
	DateFrom        *time.Time
	DateTo          *time.Time
	Page            int
	Limit           int
}

type FinanceRepository interface {
	Create(ctx context.Context, entry *model.FinanceEntry) error
	List(ctx context.Context, filter FinanceListFilter) ([]model.FinanceEntry, int64, error)
	// SumByType aggregates the amount over all entries of one transaction type.
	SumByType(ctx context.Context, txType string) (decimal.Decimal, error)
	// ExistsForInvoice reports whether a credit for the invoice number was
	// already posted. Backed by the unique index on invoice_no.
	ExistsForInvoice(ctx context.Context, invoiceNo string) (bool, error)
}

type financeRepository struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) Create(ctx context.Context, entry *model.FinanceEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *financeRepository) List(ctx context.Context, filter FinanceListFilter) ([]model.FinanceEntry, int64, error) {
	var entries []model.FinanceEntry
	var total int64

	apply := func(q *gorm.DB) *gorm.DB {
		if filter.TransactionType != "" {
			q = q.Where("transaction_type = ?", filter.TransactionType)
		}
		if filter.Reason != "" {
			q = q.Where("reason = ?", filter.Reason)
		}
		if filter.Search != "" {
			q = q.Where("description ILIKE ?", "%"+filter.Search+"%")
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
	if err := apply(db.Model(&model.FinanceEntry{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := apply(db.Model(&model.FinanceEntry{})).
		Order("date desc").Offset(offset).Limit(filter.Limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *financeRepository) SumByType(ctx context.Context, txType string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := GetDB(ctx, r.db).Model(&model.FinanceEntry{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("transaction_type = ?", txType).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *financeRepository) ExistsForInvoice(ctx context.Context, invoiceNo string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.FinanceEntry{}).
		Where("invoice_no = ?", invoiceNo).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
