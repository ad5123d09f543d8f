package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement kinds.
const (
	MovementSale             = "sale"
	MovementTransferPickup   = "transfer_pickup"
	MovementTransferDelivery = "transfer_delivery"
	MovementTransferCancel   = "transfer_cancel"
	MovementReturnPickup     = "return_pickup"
	MovementReturnDelivery   = "return_delivery"
	MovementReturnCancel     = "return_cancel"
	MovementManualAdjustment = "manual_adjustment"
	MovementDisplayShift     = "display_shift"
)

// StockMovement is an immutable audit entry recorded for every ledger
// mutation. Rows are never updated or deleted — compensations create
// inverse entries.
type StockMovement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReferenceCode string    `gorm:"type:varchar(50);index;not null"`
	LocationID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Size          string    `gorm:"type:varchar(10);not null"`
	Kind          string    `gorm:"type:varchar(30);not null"`
	Quantity      int       `gorm:"not null"` // positive = credit, negative = debit
	StockBefore   int       `gorm:"not null"`
	StockAfter    int       `gorm:"not null"`
	Reason        string
	// ReferenceID links to the originating Sale, TransferRequest or ReturnRequest
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

func (StockMovement) TableName() string { return "stock_movements" }
