package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock represents a sellable inventory item with on-hand quantity.
// Quantity is adjusted by the reconciliation engine whenever invoice items
// referencing it are created, edited or deleted, and is never persisted
// negative (deductions clamp at zero).
type Stock struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductName  string          `gorm:"type:varchar(255);not null" json:"product_name"`
	SerialNumber *string         `gorm:"type:varchar(100)" json:"serial_number"`
	Quantity     int             `gorm:"type:int;not null;default:0;check:quantity >= 0" json:"quantity"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cost_price"`
	SalePrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"sale_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// String is the audit-trail representation of the record.
func (s Stock) String() string {
	if s.SerialNumber != nil && *s.SerialNumber != "" {
		return fmt.Sprintf("%s (%s)", s.ProductName, *s.SerialNumber)
	}
	return s.ProductName
}
