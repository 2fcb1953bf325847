package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType enum constants
const (
	TxTypeCredit = "CREDIT"
	TxTypeDebit  = "DEBIT"
)

// Reason enum constants for finance entries
const (
	ReasonInvoicePayment = "INVOICE_PAYMENT"
	ReasonSales          = "SALES"
	ReasonPurchase       = "PURCHASE"
	ReasonSalary         = "SALARY"
	ReasonRent           = "RENT"
	ReasonMaintenance    = "MAINTENANCE"
	ReasonOther          = "OTHER"
)

// FinanceEntry is a cash-ledger row. The ledger is append-mostly and the
// running balance is always derived (SUM of credits minus debits), never
// stored. InvoiceNo links auto-posted payment credits back to the paying
// invoice; the unique index is the idempotency guard for auto-posting.
type FinanceEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Date            time.Time       `gorm:"not null;index" json:"date"`
	TransactionType string          `gorm:"type:varchar(6);not null;index" json:"transaction_type"` // CREDIT, DEBIT
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reason          string          `gorm:"type:varchar(30);not null" json:"reason"`
	Description     string          `gorm:"type:text" json:"description"`
	InvoiceNo       *string         `gorm:"type:varchar(20);uniqueIndex" json:"invoice_no"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (f FinanceEntry) String() string {
	return fmt.Sprintf("%s - %s (%s)", f.TransactionType, f.Amount.StringFixed(2), f.Reason)
}
