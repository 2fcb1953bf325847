package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus enum constants
const (
	PaymentStatusUnpaid = "UNPAID"
	PaymentStatusPaid   = "PAID"
)

// Invoice is a customer-facing sales document. TotalAmount and Balance are
// derived from the attached items plus document-level discount/GST/advance;
// they are recomputed on every save and never settable independently.
// InvoiceNo is assigned on first save and immutable afterwards.
type Invoice struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNo       string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"invoice_no"` // INV-{year}-{seq:04d}
	Date            time.Time       `gorm:"not null" json:"date"`
	CustomerName    string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone   string          `gorm:"type:varchar(20)" json:"customer_phone"`
	CustomerAddress string          `gorm:"type:text" json:"customer_address"`
	Discount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	GSTPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"gst_percent"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	AdvanceAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"advance_amount"`
	Balance         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance"` // may go negative on overpayment
	PaymentStatus   string          `gorm:"type:varchar(10);not null;default:'UNPAID';index" json:"payment_status"`
	Items           []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (i Invoice) String() string {
	return fmt.Sprintf("%s - %s", i.InvoiceNo, i.CustomerName)
}

// InvoiceItem is a line on an invoice. It optionally references a Stock
// record; the reference is nulled (not cascaded) when the stock record is
// deleted so billing history survives. Line totals are always derived via the
// pricing calculator, never stored.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	StockID     *uuid.UUID      `gorm:"type:uuid;index" json:"stock_id"`
	Stock       *Stock          `gorm:"foreignKey:StockID;constraint:OnDelete:SET NULL" json:"stock,omitempty"`
	Particulars string          `gorm:"type:varchar(255);not null" json:"particulars"`
	Quantity    int             `gorm:"type:int;not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Discount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	GSTPercent  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"gst_percent"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (i InvoiceItem) String() string {
	return fmt.Sprintf("%s x%d", i.Particulars, i.Quantity)
}
