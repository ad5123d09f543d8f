package model

import (
	"time"

	"github.com/google/uuid"
)

// Shipment statuses, shared by TransferRequest and ReturnRequest.
// Legal order: pending -> accepted -> in_transit -> delivered.
// cancelled is reachable from pending or accepted only.
const (
	ShipmentPending   = "pending"
	ShipmentAccepted  = "accepted"
	ShipmentInTransit = "in_transit"
	ShipmentDelivered = "delivered"
	ShipmentCancelled = "cancelled"
)

// Transfer purposes and pickup arrangements.
const (
	PurposeExhibition = "exhibition"
	PurposeSale       = "sale"

	PickupSelf    = "self"
	PickupCourier = "courier"

	StorageWarehouse = "warehouse"
	StorageDisplay   = "display"
)

// TransferRequest moves (reference, size, quantity) from a source location to
// the requester's location. The warehouse keeper's accept is the pick
// confirmation: it debits the source; delivery credits the destination.
type TransferRequest struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID           uuid.UUID `gorm:"type:uuid;index;not null"`
	SourceLocationID      uuid.UUID `gorm:"type:uuid;not null"`
	DestinationLocationID uuid.UUID `gorm:"type:uuid;not null"`
	ReferenceCode         string    `gorm:"type:varchar(50);not null"`
	Size                  string    `gorm:"type:varchar(10);not null"`
	Quantity              int       `gorm:"not null"`
	Purpose               string    `gorm:"type:varchar(20);not null"` // "exhibition" | "sale"
	PickupType            string    `gorm:"type:varchar(20);not null"` // "self" | "courier"
	DestinationStorage    string    `gorm:"type:varchar(20);not null"` // "warehouse" | "display"
	CourierID             *uuid.UUID `gorm:"type:uuid"`
	WarehouseKeeperID     *uuid.UUID `gorm:"type:uuid"`
	Status                string     `gorm:"type:varchar(20);not null;default:'pending'"`
	// SourceDebited tracks whether the source pick debit has landed, so a
	// cancellation knows whether a compensating credit is owed.
	SourceDebited bool `gorm:"not null;default:false"`
	RequestedAt   time.Time
	AcceptedAt    *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	Notes         *string

	SourceLocation      *Location `gorm:"foreignKey:SourceLocationID"`
	DestinationLocation *Location `gorm:"foreignKey:DestinationLocationID"`
	Courier             *User     `gorm:"foreignKey:CourierID"`
	WarehouseKeeper     *User     `gorm:"foreignKey:WarehouseKeeperID"`
}
