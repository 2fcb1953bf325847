package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quotation is a priced proposal document. It shares the invoice pricing
// shape but carries no stock linkage, advance, balance or payment status.
type Quotation struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuotationNo     string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"quotation_no"` // QTN-{year}-{seq:04d}
	Date            time.Time       `gorm:"not null" json:"date"`
	CustomerName    string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone   string          `gorm:"type:varchar(20)" json:"customer_phone"`
	CustomerAddress string          `gorm:"type:text" json:"customer_address"`
	Discount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	GSTPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"gst_percent"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	Items           []QuotationItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (q Quotation) String() string {
	return fmt.Sprintf("%s - %s", q.QuotationNo, q.CustomerName)
}

// QuotationItem is a line on a quotation.
type QuotationItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"quotation_id"`
	Particulars string          `gorm:"type:varchar(255);not null" json:"particulars"`
	Quantity    int             `gorm:"type:int;not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Discount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	GSTPercent  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"gst_percent"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (i QuotationItem) String() string {
	return fmt.Sprintf("%s x%d", i.Particulars, i.Quantity)
}
