package database

import (
	"log"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Stock{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.Quotation{},
		&model.QuotationItem{},
		&model.FinanceEntry{},
		&model.AuditEvent{},
		&model.Product{},
		&model.InventoryMovement{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
