package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a cash outflow recorded by a seller, with an optional receipt
// reference produced by an external upload step.
type Expense struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	LocationID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	Concept          string          `gorm:"not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ReceiptReference *string
	Notes            *string
	CreatedAt        time.Time
}
