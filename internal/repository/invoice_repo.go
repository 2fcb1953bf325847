package repository

import (
	"context"
	"time"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// invoiceSeqLockBase namespaces the per-year advisory lock used to serialize
// invoice number assignment.
const invoiceSeqLockBase int64 = 0x494E56 << 32 // "INV"

type InvoiceListFilter struct {
	PaymentStatus string // UNPAID, PAID or empty for all
	InvoiceNo     string // partial match
	DateFrom      *time.Time
	DateTo        *time.Time
	Page          int
	Limit         int
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	Update(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, filter InvoiceListFilter) ([]model.Invoice, int64, error)
	ListUnpaid(ctx context.Context) ([]model.Invoice, error)

	// UpdateTotals persists only the derived columns, bypassing the full
	// save path so recomputation cannot recurse.
	UpdateTotals(ctx context.Context, id uuid.UUID, total, balance decimal.Decimal) error

	// LockYearSequence serializes number assignment for a calendar year for
	// the duration of the enclosing transaction.
	LockYearSequence(ctx context.Context, year int) error
	// LastNumberWithPrefix returns the lexicographically highest invoice_no
	// with the given prefix, or "" when none exists.
	LastNumberWithPrefix(ctx context.Context, prefix string) (string, error)

	CreateItem(ctx context.Context, item *model.InvoiceItem) error
	UpdateItem(ctx context.Context, item *model.InvoiceItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	FindItemByID(ctx context.Context, id uuid.UUID) (*model.InvoiceItem, error)
	ListItems(ctx context.Context, invoiceID uuid.UUID) ([]model.InvoiceItem, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Omit("Items").Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("invoice_id = ?", id).Delete(&model.InvoiceItem{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Invoice{}).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).Preload("Items").Preload("Items.Stock").First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter InvoiceListFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	apply := func(q *gorm.DB) *gorm.DB {
		if filter.PaymentStatus != "" {
			q = q.Where("payment_status = ?", filter.PaymentStatus)
		}
		if filter.InvoiceNo != "" {
			q = q.Where("invoice_no ILIKE ?", "%"+filter.InvoiceNo+"%")
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
	if err := apply(db.Model(&model.Invoice{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := apply(db.Preload("Items")).
		Order("date desc, invoice_no desc").Offset(offset).Limit(filter.Limit).
		Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

func (r *invoiceRepository) ListUnpaid(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := GetDB(ctx, r.db).
		Where("payment_status = ?", model.PaymentStatusUnpaid).
		Order("date desc, invoice_no desc").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) UpdateTotals(ctx context.Context, id uuid.UUID, total, balance decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_amount": total,
			"balance":      balance,
		}).Error
}

func (r *invoiceRepository) LockYearSequence(ctx context.Context, year int) error {
	return GetDB(ctx, r.db).Exec("SELECT pg_advisory_xact_lock(?)", invoiceSeqLockBase+int64(year)).Error
}

func (r *invoiceRepository) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	var last []string
	err := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Where("invoice_no LIKE ?", prefix+"%").
		Order("invoice_no desc").
		Limit(1).
		Pluck("invoice_no", &last).Error
	if err != nil {
		return "", err
	}
	if len(last) == 0 {
		return "", nil
	}
	return last[0], nil
}

func (r *invoiceRepository) CreateItem(ctx context.Context, item *model.InvoiceItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *invoiceRepository) UpdateItem(ctx context.Context, item *model.InvoiceItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *invoiceRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.InvoiceItem{}).Error
}

func (r *invoiceRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*model.InvoiceItem, error) {
	var item model.InvoiceItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *invoiceRepository) ListItems(ctx context.Context, invoiceID uuid.UUID) ([]model.InvoiceItem, error) {
	var items []model.InvoiceItem
	if err := GetDB(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
