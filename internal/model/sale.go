package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses. A sale is created either confirmed (stock debited at
// creation) or pending_confirmation (stock debited only when confirmed
// later). Both confirmed and rejected are terminal.
const (
	SaleConfirmed           = "confirmed"
	SalePendingConfirmation = "pending_confirmation"
	SaleRejected            = "rejected"
)

// Sale records a multi-item, multi-payment sale at a location.
type Sale struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SellerID             uuid.UUID       `gorm:"type:uuid;index;not null"`
	LocationID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RequiresConfirmation bool            `gorm:"not null;default:false"`
	Status               string          `gorm:"type:varchar(30);not null"`
	ConfirmedAt          *time.Time
	// ReceiptReference is an opaque URL or storage key produced by an
	// external upload step; stored and returned verbatim.
	ReceiptReference *string
	Notes            *string
	CreatedAt        time.Time

	Items    []SaleItem    `gorm:"foreignKey:SaleID"`
	Payments []SalePayment `gorm:"foreignKey:SaleID"`
	Seller   *User         `gorm:"foreignKey:SellerID"`
}

// SaleItem is one line of a sale, keyed by the ledger triple.
type SaleItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ReferenceCode string          `gorm:"type:varchar(50);not null"`
	Size          string          `gorm:"type:varchar(10);not null"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// SalePayment is one declared payment split. The sum of a sale's payment
// amounts must equal its total within 0.01.
// Method: "cash" | "card" | "transfer" | "other"
type SalePayment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Method    string          `gorm:"type:varchar(20);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Reference *string
	CreatedAt time.Time
}
