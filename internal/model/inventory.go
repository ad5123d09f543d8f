package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryRecord is the authoritative per-(reference, location, size) quantity
// row. StockQuantity counts sellable units; DisplayQuantity counts units held
// out for exhibition. Both are kept >= 0 at all times — debits go through
// conditional updates that refuse to drive either negative.
type InventoryRecord struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReferenceCode   string          `gorm:"type:varchar(50);uniqueIndex:idx_inventory_key;not null"`
	LocationID      uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_inventory_key;not null"`
	Size            string          `gorm:"type:varchar(10);uniqueIndex:idx_inventory_key;not null"`
	StockQuantity   int             `gorm:"not null;default:0"`
	DisplayQuantity int             `gorm:"not null;default:0"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2)"`
	BoxPrice        decimal.Decimal `gorm:"type:decimal(10,2)"`
	MinimumStock    int             `gorm:"not null;default:5"`
	UpdatedAt       time.Time

	Location *Location `gorm:"foreignKey:LocationID"`
}

func (InventoryRecord) TableName() string { return "inventory" }
