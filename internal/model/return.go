package model

import (
	"time"

	"github.com/google/uuid"
)

// ReturnRequest reverses a delivered transfer. Source and destination are
// the original transfer's destination and source, swapped. It follows the
// same status machine as TransferRequest with its own ledger effects.
type ReturnRequest struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OriginalTransferID    uuid.UUID `gorm:"type:uuid;index;not null"`
	RequesterID           uuid.UUID `gorm:"type:uuid;index;not null"`
	SourceLocationID      uuid.UUID `gorm:"type:uuid;not null"`
	DestinationLocationID uuid.UUID `gorm:"type:uuid;not null"`
	ReferenceCode         string    `gorm:"type:varchar(50);not null"`
	Size                  string    `gorm:"type:varchar(10);not null"`
	Quantity              int       `gorm:"not null"`
	CourierID             *uuid.UUID `gorm:"type:uuid"`
	WarehouseKeeperID     *uuid.UUID `gorm:"type:uuid"`
	Status                string     `gorm:"type:varchar(20);not null;default:'pending'"`
	SourceDebited         bool       `gorm:"not null;default:false"`
	RequestedAt           time.Time
	AcceptedAt            *time.Time
	PickedUpAt            *time.Time
	DeliveredAt           *time.Time
	CancelledAt           *time.Time
	Notes                 *string

	OriginalTransfer    *TransferRequest `gorm:"foreignKey:OriginalTransferID"`
	SourceLocation      *Location        `gorm:"foreignKey:SourceLocationID"`
	DestinationLocation *Location        `gorm:"foreignKey:DestinationLocationID"`
}
