package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount request statuses. approved and rejected are terminal.
const (
	DiscountPending  = "pending"
	DiscountApproved = "approved"
	DiscountRejected = "rejected"
)

// DiscountRequest is a bounded-amount approval request. It never touches the
// stock ledger — applying an approved discount to a sale total is the
// caller's responsibility.
type DiscountRequest struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SellerID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Reason          string          `gorm:"not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'"`
	AdministratorID *uuid.UUID      `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	Comments        *string
	CreatedAt       time.Time
}
