package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MovementType enum constants for warehouse movements
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// Product is the legacy warehouse catalog entry. Its on-hand quantity is
// never stored; it is always the aggregate of IN minus OUT movements.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p Product) String() string {
	return p.Name
}

// InventoryMovement is the legacy stock ledger. Unlike the Stock engine it
// enforces strict sufficiency: an OUT movement larger than the current
// aggregate stock fails the save outright.
type InventoryMovement struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product      *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	MovementType string    `gorm:"type:varchar(3);not null" json:"movement_type"` // IN, OUT
	Quantity     int       `gorm:"type:int;not null;check:quantity > 0" json:"quantity"`
	Note         string    `gorm:"type:varchar(255)" json:"note"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (m InventoryMovement) String() string {
	name := m.ProductID.String()
	if m.Product != nil {
		name = m.Product.Name
	}
	return fmt.Sprintf("%s - %s - %d", name, m.MovementType, m.Quantity)
}
